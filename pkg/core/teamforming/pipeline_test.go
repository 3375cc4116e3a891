package teamforming

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// jamRoster builds a 25-person roster with 5 lead candidates evenly spaced
// around the timezone circle.
func jamRoster() []*model.Participant {
	var roster []*model.Participant
	for i := 0; i < 25; i++ {
		p := &model.Participant{
			ID:         int64(i + 1),
			Timezone:   float64(i) * 24.0 / 25.0,
			Experience: i % 7,
			Name:       fmt.Sprintf("participant-%d", i+1),
		}
		if i%5 == 0 {
			p.LeadPriority = 2
		}
		roster = append(roster, p)
	}
	return roster
}

func TestFormTeams_EndToEnd(t *testing.T) {
	cfg := testConfig()
	roster := jamRoster()

	result, err := FormTeams(roster, cfg)
	require.NoError(t, err)
	require.Len(t, result.Teams, 5)

	t.Run("partition covers the roster exactly once", func(t *testing.T) {
		seen := make(map[int64]int)
		total := 0
		for _, team := range result.Teams {
			for _, m := range team.Members {
				seen[m.ID]++
				total++
			}
		}
		for _, p := range result.Unassigned {
			seen[p.ID]++
			total++
		}
		assert.Equal(t, len(roster), total)
		for _, p := range roster {
			assert.Equal(t, 1, seen[p.ID], "participant %d not placed exactly once", p.ID)
		}
	})

	t.Run("team sizes account for everyone", func(t *testing.T) {
		placed := 0
		for _, team := range result.Teams {
			assert.LessOrEqual(t, team.Size(), cfg.TargetTeamSize+1)
			placed += team.Size()
		}
		assert.Equal(t, len(roster), placed+len(result.Unassigned))
	})

	t.Run("every team stays under the span ceiling", func(t *testing.T) {
		for _, team := range result.Teams {
			assert.LessOrEqual(t, team.TzSpan(), cfg.MaxTzSpan, "team %d", team.ID)
		}
	})

	t.Run("leader heads every team", func(t *testing.T) {
		for _, team := range result.Teams {
			require.NotNil(t, team.Leader())
			for _, m := range team.Members[1:] {
				assert.False(t, betterLeadKey(m, team.Leader()),
					"member %d outranks leader %d on team %d", m.ID, team.Leader().ID, team.ID)
			}
		}
	})
}

func TestFormTeams_Idempotent(t *testing.T) {
	cfg := testConfig()

	first, err := FormTeams(jamRoster(), cfg)
	require.NoError(t, err)
	second, err := FormTeams(jamRoster(), cfg)
	require.NoError(t, err)

	require.Len(t, second.Teams, len(first.Teams))
	for i, team := range first.Teams {
		require.Len(t, second.Teams[i].Members, len(team.Members), "team %d", i)
		for j, m := range team.Members {
			assert.Equal(t, m.ID, second.Teams[i].Members[j].ID)
		}
	}
	require.Len(t, second.Unassigned, len(first.Unassigned))
	for i, p := range first.Unassigned {
		assert.Equal(t, p.ID, second.Unassigned[i].ID)
	}
}

func TestFormTeams_NotEnoughLeaders(t *testing.T) {
	var roster []*model.Participant
	for i := 0; i < 25; i++ {
		roster = append(roster, member(int64(i+1), float64(i%24), 3))
	}

	_, err := FormTeams(roster, testConfig())
	assert.ErrorIs(t, err, ErrNotEnoughLeaders)
}

func TestFormTeams_DuplicateID(t *testing.T) {
	roster := jamRoster()
	roster = append(roster, &model.Participant{ID: roster[0].ID, Timezone: 5})

	_, err := FormTeams(roster, testConfig())
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestFormTeams_EmptyRoster(t *testing.T) {
	result, err := FormTeams(nil, testConfig())
	require.NoError(t, err)
	assert.Empty(t, result.Teams)
	assert.Empty(t, result.Unassigned)
}

func TestFormTeams_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTzSpan = cfg.TargetTzSpan - 1

	_, err := FormTeams(jamRoster(), cfg)
	assert.Error(t, err)
}

func TestFormTeams_GlobalAverage(t *testing.T) {
	result, err := FormTeams(jamRoster(), testConfig())
	require.NoError(t, err)

	total := 0
	for _, p := range jamRoster() {
		total += p.Experience
	}
	assert.InDelta(t, float64(total)/25.0, result.GlobalExpAvg, 1e-9)
}
