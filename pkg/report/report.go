package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/camcaswell/CJ-team-forming/pkg/core/teamforming"
)

const (
	summarySheet = "Summary"
	teamsSheet   = "Teams"
)

// Generate builds an Excel workbook for a team-forming run: a summary sheet
// with per-team statistics and a roster sheet listing every member grouped
// by team, leaders first.
func Generate(runID string, result *teamforming.Result, cfg teamforming.Config) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummarySheet(f, runID, result, cfg); err != nil {
		return nil, fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := writeTeamsSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing teams sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeSummarySheet(f *excelize.File, runID string, result *teamforming.Result, cfg teamforming.Config) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Run", runID},
		{"Generated", time.Now().Format("2006-01-02 15:04")},
		{"Target team size", cfg.TargetTeamSize},
		{"Target tz span", cfg.TargetTzSpan},
		{"Max tz span", cfg.MaxTzSpan},
		{"Experience radius", cfg.TargetExpRadius},
		{"Global experience avg", result.GlobalExpAvg},
		{"Teams", len(result.Teams)},
		{"Unassigned", len(result.Unassigned)},
		{},
		{"Team", "Size", "TZ Span", "Avg Experience", "Leader"},
	}
	for _, team := range result.Teams {
		leaderName := ""
		if leader := team.Leader(); leader != nil {
			leaderName = leader.Name
		}
		rows = append(rows, []any{
			team.ID + 1,
			team.Size(),
			team.TzSpan(),
			team.AvgExperience(),
			leaderName,
		})
	}

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(summarySheet, cell, val); err != nil {
				return err
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
	})
	if err == nil {
		headerRow := 11
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), headerStyle)
	}

	return nil
}

func writeTeamsSheet(f *excelize.File, result *teamforming.Result) error {
	if _, err := f.NewSheet(teamsSheet); err != nil {
		return err
	}

	headers := []string{"Team", "Role", "Discord", "Github", "Timezone", "Experience", "Lead Priority"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(teamsSheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	writeMember := func(teamLabel string, role string, name, github string, tz float64, exp, lead int) error {
		values := []any{teamLabel, role, name, github, tz, exp, lead}
		for i, val := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(teamsSheet, cell, val); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	for _, team := range result.Teams {
		label := fmt.Sprintf("Team %d", team.ID+1)
		for i, m := range team.Members {
			role := "Member"
			if i == 0 {
				role = "Leader"
			}
			if err := writeMember(label, role, m.Name, m.GithubName, m.Timezone, m.Experience, m.LeadPriority); err != nil {
				return err
			}
		}
	}
	for _, p := range result.Unassigned {
		if err := writeMember("Unassigned", "", p.Name, p.GithubName, p.Timezone, p.Experience, p.LeadPriority); err != nil {
			return err
		}
	}

	return nil
}
