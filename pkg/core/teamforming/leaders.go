package teamforming

import (
	"fmt"
	"sort"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// selectLeaders picks one leader per intended team, spread across the
// population's actual timezone distribution.
//
// The roster is ordered by (tz - 12) mod 24, re-anchoring the circle so the
// seam falls mid-Pacific, the sparsest region. Every TargetTeamSize-th
// participant (starting at offset TargetTeamSize/2) then serves as an anchor
// point, and the best remaining candidate is matched to each anchor.
func selectLeaders(roster []*model.Participant, cfg Config) ([]*model.Participant, error) {
	var pool []*model.Participant
	for _, p := range roster {
		if p.IsLeadCandidate() {
			pool = append(pool, p)
		}
	}
	if (len(pool)+1)*cfg.TargetTeamSize <= len(roster) {
		return nil, fmt.Errorf("%w: %d candidates for %d participants at team size %d",
			ErrNotEnoughLeaders, len(pool), len(roster), cfg.TargetTeamSize)
	}

	ordered := make([]*model.Participant, len(roster))
	copy(ordered, roster)
	sort.SliceStable(ordered, func(i, j int) bool {
		return normalizeTz(ordered[i].Timezone-12) < normalizeTz(ordered[j].Timezone-12)
	})

	// Candidates within halfTargetSpan of the anchor count as distance
	// halfTargetSpan: leader quality is never traded away for a trivially
	// closer timezone.
	halfTargetSpan := cfg.TargetTzSpan / 2

	var leaders []*model.Participant
	for i := cfg.TargetTeamSize / 2; i < len(ordered); i += cfg.TargetTeamSize {
		if len(pool) == 0 {
			// Rounding can produce one more anchor than the precondition
			// guarantees candidates for; the final team forms leaderless
			// capacity absorbed by the other teams instead.
			break
		}
		anchorTz := ordered[i].Timezone

		best := -1
		bestDist := 0.0
		for j, cand := range pool {
			dist := TzDist(cand.Timezone, anchorTz)
			if dist < halfTargetSpan {
				dist = halfTargetSpan
			}
			if best < 0 || dist < bestDist ||
				(dist == bestDist && betterLeadKey(cand, pool[best])) {
				best = j
				bestDist = dist
			}
		}

		leaders = append(leaders, pool[best])
		pool = append(pool[:best], pool[best+1:]...)
	}
	return leaders, nil
}

// betterLeadKey reports whether a outranks b on (LeadPriority, Experience).
func betterLeadKey(a, b *model.Participant) bool {
	if a.LeadPriority != b.LeadPriority {
		return a.LeadPriority > b.LeadPriority
	}
	return a.Experience > b.Experience
}
