package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
	"github.com/camcaswell/CJ-team-forming/pkg/core/teamforming"
)

func sampleResult() *teamforming.Result {
	return &teamforming.Result{
		Teams: []*teamforming.Team{
			{
				ID: 0,
				Members: []*model.Participant{
					{ID: 1, Name: "alice", GithubName: "alice-gh", Timezone: 1, Experience: 4, LeadPriority: 2},
					{ID: 2, Name: "bob", GithubName: "bob-gh", Timezone: 2, Experience: 1},
					{ID: 3, Name: "carol", GithubName: "carol-gh", Timezone: 0.5, Experience: 3},
				},
			},
			{
				ID: 1,
				Members: []*model.Participant{
					{ID: 4, Name: "dave", GithubName: "dave-gh", Timezone: 9, Experience: 2, LeadPriority: 1},
					{ID: 5, Name: "erin", GithubName: "erin-gh", Timezone: 10, Experience: 3},
				},
			},
		},
		Unassigned: []*model.Participant{
			{ID: 6, Name: "frank", GithubName: "frank-gh", Timezone: 17, Experience: 0},
		},
		GlobalExpAvg: 2.5,
	}
}

func sampleConfig() teamforming.Config {
	return teamforming.Config{
		TargetTeamSize:  3,
		TargetTzSpan:    3,
		MaxTzSpan:       4,
		TargetExpRadius: 1.5,
		SwapSearchDepth: 3,
	}
}

func TestGenerate(t *testing.T) {
	f, err := Generate("run-123", sampleResult(), sampleConfig())
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Teams"}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Run", cell("Summary", "A1"))
	assert.Equal(t, "run-123", cell("Summary", "B1"))
	assert.Equal(t, "3", cell("Summary", "B3"))
	assert.Equal(t, "2", cell("Summary", "B8"))
	assert.Equal(t, "1", cell("Summary", "B9"))

	// per-team table starts under the header at row 11
	assert.Equal(t, "Team", cell("Summary", "A11"))
	assert.Equal(t, "alice", cell("Summary", "E12"))
	assert.Equal(t, "dave", cell("Summary", "E13"))

	assert.Equal(t, "Team", cell("Teams", "A1"))
	assert.Equal(t, "Leader", cell("Teams", "B2"))
	assert.Equal(t, "alice", cell("Teams", "C2"))
	assert.Equal(t, "Member", cell("Teams", "B3"))

	// unassigned section follows the teams
	assert.Equal(t, "Unassigned", cell("Teams", "A7"))
	assert.Equal(t, "frank", cell("Teams", "C7"))
}

func TestGenerate_SavesToDisk(t *testing.T) {
	f, err := Generate("run-123", sampleResult(), sampleConfig())
	require.NoError(t, err)
	defer f.Close()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.GetCellValue("Teams", "C2")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestGenerate_EmptyResult(t *testing.T) {
	f, err := Generate("run-123", &teamforming.Result{}, sampleConfig())
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Summary", "B8")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
}
