package teamforming

import (
	"errors"
	"fmt"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

var (
	// ErrNotEnoughLeaders means the roster cannot be covered by the
	// available lead candidates at the configured team size. This is a
	// configuration problem and is reported before any assignment work.
	ErrNotEnoughLeaders = errors.New("not enough lead candidates for the target team size")

	// ErrDuplicateID means the input roster violated the unique-ID contract.
	ErrDuplicateID = errors.New("duplicate participant ID in roster")
)

// Config holds the tuning knobs for a team-forming run.
type Config struct {
	// TargetTeamSize is the number of members each team should end up with.
	// Teams may finish one over target; finishing under target is a
	// reportable outcome, not an error.
	TargetTeamSize int

	// TargetTzSpan is the span below which timezone fit is considered
	// equally good. Differences under this threshold never override the
	// experience-balance signal.
	TargetTzSpan float64

	// MaxTzSpan is the hard ceiling on a team's timezone span. No phase
	// ever places a participant that would push a team past it.
	MaxTzSpan float64

	// TargetExpRadius bounds how far the swap repairer may push a team's
	// average experience from the global average.
	TargetExpRadius float64

	// SwapSearchDepth bounds the recursive chain search. Worst-case work
	// grows roughly with rosterSize^depth, so keep it small.
	SwapSearchDepth int
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.TargetTeamSize < 1 {
		return fmt.Errorf("target team size must be at least 1, got %d", c.TargetTeamSize)
	}
	if c.TargetTzSpan < 0 {
		return fmt.Errorf("target timezone span must be non-negative, got %v", c.TargetTzSpan)
	}
	if c.MaxTzSpan < c.TargetTzSpan {
		return fmt.Errorf("max timezone span %v is below target span %v", c.MaxTzSpan, c.TargetTzSpan)
	}
	if c.TargetExpRadius < 0 {
		return fmt.Errorf("experience radius must be non-negative, got %v", c.TargetExpRadius)
	}
	if c.SwapSearchDepth < 1 {
		return fmt.Errorf("swap search depth must be at least 1, got %d", c.SwapSearchDepth)
	}
	return nil
}

// Team is an ordered list of participants. The first member is always the
// current leader.
type Team struct {
	ID      int
	Members []*model.Participant
}

// Leader returns the team's current leader, or nil for an empty team.
func (t *Team) Leader() *model.Participant {
	if len(t.Members) == 0 {
		return nil
	}
	return t.Members[0]
}

// Size returns the current number of members.
func (t *Team) Size() int {
	return len(t.Members)
}

// TzSpan returns the team's current timezone span.
func (t *Team) TzSpan() float64 {
	return TzSpan(timezones(t.Members)...)
}

// SpanWith returns the team's timezone span if tz were added.
func (t *Team) SpanWith(tz float64) float64 {
	return TzSpan(append(timezones(t.Members), tz)...)
}

// AvgExperience returns the team's mean experience score.
func (t *Team) AvgExperience() float64 {
	return avgExperience(t.Members)
}

func (t *Team) remove(p *model.Participant) {
	for i, m := range t.Members {
		if m.ID == p.ID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}

func timezones(members []*model.Participant) []float64 {
	tzs := make([]float64, len(members))
	for i, m := range members {
		tzs[i] = m.Timezone
	}
	return tzs
}

func avgExperience(members []*model.Participant) float64 {
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, m := range members {
		total += m.Experience
	}
	return float64(total) / float64(len(members))
}

// Result is the outcome of a team-forming run.
type Result struct {
	// Teams in creation order, each with its leader first.
	Teams []*Team

	// Unassigned holds participants no team could absorb without breaking
	// the span ceiling. A non-empty set is an expected, reportable outcome.
	Unassigned []*model.Participant

	// GlobalExpAvg is the mean experience over the full roster, the value
	// every per-team average is pulled toward.
	GlobalExpAvg float64
}
