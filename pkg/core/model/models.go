package model

// Participant represents a confirmed code jam participant
type Participant struct {
	// ID is the participant's Discord ID. Identity is keyed solely on this
	// field: two records with the same ID describe the same person.
	ID int64

	// Timezone is a point on the 24-hour circle, normalized to [0, 24).
	Timezone float64

	// Experience is the combined Python + Git experience score.
	Experience int

	// LeadPriority is 0 for non-candidates; higher values indicate a
	// stronger preference for leading a team.
	LeadPriority int

	// Display-only fields, unused by the team-forming algorithm.
	Name       string
	GithubName string
}

// IsLeadCandidate reports whether the participant volunteered to lead.
func (p *Participant) IsLeadCandidate() bool {
	return p.LeadPriority > 0
}
