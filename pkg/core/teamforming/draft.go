package teamforming

import (
	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// expImprovement measures how much adding candidate to a team would move its
// average experience toward the global average. Positive values mean the
// team's average gets strictly closer.
func expImprovement(candidate *model.Participant, members []*model.Participant, globalAvg float64) float64 {
	total := 0
	for _, m := range members {
		total += m.Experience
	}
	before := float64(total)/float64(len(members)) - globalAvg
	after := float64(total+candidate.Experience)/float64(len(members)+1) - globalAvg
	return before*before - after*after
}

// draftFit is the shared scoring key for both drafting phases: minimize the
// effective span (spans at or below target count the same), then maximize
// the experience improvement.
type draftFit struct {
	effectiveSpan float64
	improvement   float64
}

func (f draftFit) betterThan(other draftFit) bool {
	if f.effectiveSpan != other.effectiveSpan {
		return f.effectiveSpan < other.effectiveSpan
	}
	return f.improvement > other.improvement
}

// draftRounds is phase 1: TargetTeamSize-1 round-robin rounds in fixed team
// order, each team drafting the best available participant that keeps its
// span under the ceiling. A team that finds nobody this round stays short;
// the span ceiling is never violated to fill a seat.
//
// Eligibility is re-evaluated against the live pool every round rather than
// from a cached candidate list.
func (r *run) draftRounds() {
	for round := 0; round < r.cfg.TargetTeamSize-1; round++ {
		for _, team := range r.teams {
			idx := r.bestPoolCandidate(team)
			if idx < 0 {
				continue
			}
			r.assignFromPool(team, idx)
		}
	}
}

// bestPoolCandidate returns the index into the unassigned pool of the best
// draft pick for team, or -1 when nobody fits under the span ceiling.
// Ties on the full key are broken by pool order, which is arbitrary.
func (r *run) bestPoolCandidate(team *Team) int {
	best := -1
	var bestFit draftFit
	for i, p := range r.unassigned {
		span := team.SpanWith(p.Timezone)
		if span > r.cfg.MaxTzSpan {
			continue
		}
		fit := draftFit{
			effectiveSpan: max(span, r.cfg.TargetTzSpan),
			improvement:   expImprovement(p, team.Members, r.globalExpAvg),
		}
		if best < 0 || fit.betterThan(bestFit) {
			best = i
			bestFit = fit
		}
	}
	return best
}

// placeLeftovers is phase 2: a single pass over a snapshot of the pool,
// placing each participant on the best team that still has room (size at
// most target) and stays under the span ceiling. Participants nobody can
// absorb remain unassigned.
func (r *run) placeLeftovers() {
	snapshot := make([]*model.Participant, len(r.unassigned))
	copy(snapshot, r.unassigned)

	for _, p := range snapshot {
		var best *Team
		var bestFit draftFit
		for _, team := range r.teams {
			if team.Size() > r.cfg.TargetTeamSize {
				continue
			}
			span := team.SpanWith(p.Timezone)
			if span > r.cfg.MaxTzSpan {
				continue
			}
			fit := draftFit{
				effectiveSpan: max(span, r.cfg.TargetTzSpan),
				improvement:   expImprovement(p, team.Members, r.globalExpAvg),
			}
			if best == nil || fit.betterThan(bestFit) {
				best = team
				bestFit = fit
			}
		}
		if best != nil {
			r.moveFromPool(best, p)
		}
	}
}
