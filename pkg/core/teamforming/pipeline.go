package teamforming

import (
	"fmt"
	"sort"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// run holds all mutable state for a single team-forming invocation. Nothing
// persists between runs; the whole computation is a function of the roster
// and the configuration.
type run struct {
	cfg          Config
	teams        []*Team
	unassigned   []*model.Participant
	globalExpAvg float64
}

// FormTeams assigns the roster to teams: leader selection, two greedy
// drafting passes, a chain-swap repair phase for undersized teams, and a
// final leader reconciliation. The phases are deterministic, so identical
// input and configuration always produce identical partitions.
//
// Teams below target size and a non-empty unassigned set are normal
// outcomes, reported in the Result rather than as errors.
func FormTeams(roster []*model.Participant, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid team forming config: %w", err)
	}
	if err := checkUniqueIDs(roster); err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return &Result{}, nil
	}

	leaders, err := selectLeaders(roster, cfg)
	if err != nil {
		return nil, err
	}

	r := &run{cfg: cfg, globalExpAvg: globalAverage(roster)}

	isLeader := make(map[int64]bool, len(leaders))
	for i, leader := range leaders {
		isLeader[leader.ID] = true
		r.teams = append(r.teams, &Team{ID: i, Members: []*model.Participant{leader}})
	}
	for _, p := range roster {
		if !isLeader[p.ID] {
			r.unassigned = append(r.unassigned, p)
		}
	}

	r.draftRounds()
	r.placeLeftovers()
	r.repair()
	r.reconcileLeaders()

	return &Result{
		Teams:        r.teams,
		Unassigned:   r.unassigned,
		GlobalExpAvg: r.globalExpAvg,
	}, nil
}

// reconcileLeaders re-sorts every team by (LeadPriority, Experience)
// descending so the strongest candidate sits at index 0. Swaps can relocate
// a stronger candidate onto a team mid-repair; this pass corrects that.
func (r *run) reconcileLeaders() {
	for _, team := range r.teams {
		sort.SliceStable(team.Members, func(i, j int) bool {
			return betterLeadKey(team.Members[i], team.Members[j])
		})
	}
}

// assignFromPool moves the pool member at index idx onto team.
func (r *run) assignFromPool(team *Team, idx int) {
	p := r.unassigned[idx]
	r.unassigned = append(r.unassigned[:idx], r.unassigned[idx+1:]...)
	team.Members = append(team.Members, p)
}

// moveFromPool moves a specific participant from the pool onto team.
func (r *run) moveFromPool(team *Team, p *model.Participant) {
	r.removeFromPool(p)
	team.Members = append(team.Members, p)
}

func (r *run) removeFromPool(p *model.Participant) {
	for i, u := range r.unassigned {
		if u.ID == p.ID {
			r.unassigned = append(r.unassigned[:i], r.unassigned[i+1:]...)
			return
		}
	}
}

func checkUniqueIDs(roster []*model.Participant) error {
	seen := make(map[int64]bool, len(roster))
	for _, p := range roster {
		if seen[p.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func globalAverage(roster []*model.Participant) float64 {
	total := 0
	for _, p := range roster {
		total += p.Experience
	}
	return float64(total) / float64(len(roster))
}
