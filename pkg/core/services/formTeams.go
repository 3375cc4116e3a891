package services

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
	"github.com/camcaswell/CJ-team-forming/pkg/core/teamforming"
	"github.com/camcaswell/CJ-team-forming/pkg/report"
	"github.com/camcaswell/CJ-team-forming/pkg/rosterstore"
)

// FormTeamsResult carries everything the CLI needs to summarize a run.
type FormTeamsResult struct {
	RunID      string
	Roster     int
	Result     *teamforming.Result
	ReportPath string
}

// FormTeams loads the reviewed participant list, runs the team-forming
// pipeline, and records the outcome: final_teams.csv always, plus an Excel
// report when reportPath is non-empty.
func FormTeams(store *rosterstore.Store, logger *zap.Logger, cfg teamforming.Config, reportPath string) (*FormTeamsResult, error) {
	runID := uuid.New().String()
	logger.Info("Starting team forming run", zap.String("run_id", runID))

	roster, err := loadRoster(store, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Roster loaded", zap.Int("participants", len(roster)))

	result, err := teamforming.FormTeams(roster, cfg)
	if err != nil {
		return nil, fmt.Errorf("team forming failed: %w", err)
	}

	for _, team := range result.Teams {
		logger.Info("Formed team",
			zap.Int("team", team.ID+1),
			zap.Int("size", team.Size()),
			zap.Float64("tz_span", team.TzSpan()),
			zap.Float64("avg_experience", team.AvgExperience()),
			zap.String("leader", team.Leader().Name))
	}
	if len(result.Unassigned) > 0 {
		logger.Warn("Some participants could not be assigned",
			zap.Int("count", len(result.Unassigned)))
	}

	if err := writeFinalTeams(store, result); err != nil {
		return nil, err
	}

	out := &FormTeamsResult{RunID: runID, Roster: len(roster), Result: result}

	if reportPath != "" {
		workbook, err := report.Generate(runID, result, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate report: %w", err)
		}
		if err := workbook.SaveAs(reportPath); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		out.ReportPath = reportPath
		logger.Info("Report written", zap.String("path", reportPath))
	}

	return out, nil
}

// loadRoster reads final_participants.csv, re-checking the blacklist so ids
// added after manual vetting still drop out.
func loadRoster(store *rosterstore.Store, logger *zap.Logger) ([]*model.Participant, error) {
	blacklist, err := store.ReadBlacklist()
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist: %w", err)
	}

	rows, err := store.ReadFinalParticipants()
	if err != nil {
		return nil, fmt.Errorf("failed to read final participants: %w", err)
	}

	var roster []*model.Participant
	for _, row := range rows {
		p, err := row.ToParticipant()
		if err != nil {
			return nil, fmt.Errorf("invalid final participant row: %w", err)
		}
		if blacklist[p.ID] {
			logger.Debug("Dropping blacklisted participant", zap.Int64("discord_id", p.ID))
			continue
		}
		roster = append(roster, p)
	}
	return roster, nil
}

func writeFinalTeams(store *rosterstore.Store, result *teamforming.Result) error {
	var rows []rosterstore.FinalTeamRow
	appendMember := func(team int, isLeader bool, p *model.Participant) {
		rows = append(rows, rosterstore.FinalTeamRow{
			Team:            team,
			IsLeader:        isLeader,
			DiscordID:       p.ID,
			DiscordUsername: p.Name,
			GithubUsername:  p.GithubName,
			Timezone:        p.Timezone,
			Experience:      p.Experience,
			LeadPriority:    p.LeadPriority,
		})
	}

	for _, team := range result.Teams {
		for i, m := range team.Members {
			appendMember(team.ID+1, i == 0, m)
		}
	}
	for _, p := range result.Unassigned {
		appendMember(-1, false, p)
	}

	if err := store.WriteFinalTeams(rows); err != nil {
		return fmt.Errorf("failed to write final teams: %w", err)
	}
	return nil
}
