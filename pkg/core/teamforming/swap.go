package teamforming

import (
	"math"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// hop is one link in a repair chain: person moves into the running target
// team from source. A nil source means the unassigned pool, which is only
// valid as the chain's terminal hop.
type hop struct {
	person *model.Participant
	source *Team
}

// repair is phase 3: every team short of the target size attempts one chain
// search per missing seat. Chains move members between teams, or pull from
// the unassigned pool, without ever violating the span ceiling or pushing a
// team's average experience outside the configured radius.
func (r *run) repair() {
	for _, team := range r.teams {
		missing := r.cfg.TargetTeamSize - team.Size()
		for i := 0; i < missing; i++ {
			involved := map[int]bool{team.ID: true}
			chain := r.findSwap(team.Members, involved, r.cfg.SwapSearchDepth, true)
			if chain == nil {
				break
			}
			r.applyChain(team, chain)
		}
	}
}

// findSwap searches for a chain of moves that delivers one new member to a
// team currently holding targetMembers. The search only reads state;
// mutation happens in applyChain once a full chain is confirmed, so a failed
// branch never leaves teams half-moved.
//
// targetMembers is passed explicitly rather than as a *Team because
// recursive calls evaluate a source team as it would look after losing the
// member moved by the outer hop.
func (r *run) findSwap(targetMembers []*model.Participant, involved map[int]bool, depth int, allowUnassigned bool) []hop {
	target := r.cfg.TargetTeamSize

	// Terminal case 1: pull straight from the unassigned pool.
	if allowUnassigned {
		for _, p := range r.unassigned {
			if r.fitsWith(targetMembers, p) {
				return []hop{{person: p, source: nil}}
			}
		}
	}

	// Terminal case 2: steal from a team big enough to lose a member
	// outright. The donor must stay at or above target, and both sides of
	// the move must satisfy span and experience constraints.
	for _, src := range r.teams {
		if involved[src.ID] || src.Size() <= target+1 {
			continue
		}
		for _, m := range src.Members[1:] { // index 0 is the leader, never moved
			if r.fitsWithout(src.Members, m) && r.fitsWith(targetMembers, m) {
				return []hop{{person: m, source: src}}
			}
		}
	}

	if depth <= 1 {
		return nil
	}

	// Chain case: borrow from a team that can only afford the loss if it is
	// itself refilled, then recurse to refill it. The unassigned shortcut is
	// disabled on recursive calls so chains terminate through the pool at
	// most once, as the final hop.
	for _, src := range r.teams {
		if involved[src.ID] || src.Size() < target {
			continue
		}
		for i, m := range src.Members {
			if i == 0 {
				continue
			}
			if !r.fitsWith(targetMembers, m) {
				continue
			}
			subInvolved := make(map[int]bool, len(involved)+1)
			for id := range involved {
				subInvolved[id] = true
			}
			subInvolved[src.ID] = true

			rest := r.findSwap(membersWithout(src.Members, m), subInvolved, depth-1, false)
			if rest != nil {
				return append([]hop{{person: m, source: src}}, rest...)
			}
		}
	}

	return nil
}

// applyChain executes a confirmed chain atomically: each hop's person joins
// the running target team and leaves their source, which becomes the next
// hop's target.
func (r *run) applyChain(target *Team, chain []hop) {
	running := target
	for _, h := range chain {
		if h.source == nil {
			r.removeFromPool(h.person)
		} else {
			h.source.remove(h.person)
		}
		running.Members = append(running.Members, h.person)
		running = h.source
	}
}

// fitsWith reports whether adding p to members keeps the timezone span under
// the ceiling and the average experience within radius of the global mean.
func (r *run) fitsWith(members []*model.Participant, p *model.Participant) bool {
	if TzSpan(append(timezones(members), p.Timezone)...) > r.cfg.MaxTzSpan {
		return false
	}
	total := p.Experience
	for _, m := range members {
		total += m.Experience
	}
	avg := float64(total) / float64(len(members)+1)
	return math.Abs(avg-r.globalExpAvg) <= r.cfg.TargetExpRadius
}

// fitsWithout reports whether members minus m still satisfies both
// constraints. Removing a point can only shrink the span, but the check is
// kept symmetric with fitsWith.
func (r *run) fitsWithout(members []*model.Participant, m *model.Participant) bool {
	remaining := membersWithout(members, m)
	if TzSpan(timezones(remaining)...) > r.cfg.MaxTzSpan {
		return false
	}
	return math.Abs(avgExperience(remaining)-r.globalExpAvg) <= r.cfg.TargetExpRadius
}

func membersWithout(members []*model.Participant, m *model.Participant) []*model.Participant {
	out := make([]*model.Participant, 0, len(members)-1)
	for _, p := range members {
		if p.ID != m.ID {
			out = append(out, p)
		}
	}
	return out
}
