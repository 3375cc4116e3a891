package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/camcaswell/CJ-team-forming/pkg/rosterstore"
)

// BuildRosterResult summarizes the cross-referencing step.
type BuildRosterResult struct {
	Qualified   int // distinct qualified submissions considered
	Confirmed   int
	Blacklisted int // rows dropped by the blacklist
	Upserted    int // manual upsertion rows applied
	Final       int // rows written to final_participants.csv
}

// BuildRoster cross-references the qualified, confirmed, and blacklist files
// and applies manual upsertions to produce final_participants.csv, the file
// organizers review and vet before team forming.
//
// Answer texts are converted to ordinal scores here. The lead_priority
// column is seeded from the team-leader willingness answer (0 no, 1 either
// way, 2 yes) and is expected to be adjusted during manual leader vetting.
func BuildRoster(store *rosterstore.Store, logger *zap.Logger) (*BuildRosterResult, error) {
	blacklist, err := store.ReadBlacklist()
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist: %w", err)
	}
	logger.Info("Loaded blacklist", zap.Int("count", len(blacklist)))

	confirmedRows, err := store.ReadConfirmed()
	if err != nil {
		return nil, fmt.Errorf("failed to read confirmed csv: %w", err)
	}
	confirmed := make(map[int64]rosterstore.ConfirmedRow, len(confirmedRows))
	for _, row := range confirmedRows {
		id, err := strconv.ParseInt(row.DiscordID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad discord_id %q in confirmed csv: %w", row.DiscordID, err)
		}
		confirmed[id] = row
	}
	logger.Info("Loaded confirmed participants", zap.Int("count", len(confirmed)))

	qualifiedRows, err := store.ReadQualified()
	if err != nil {
		return nil, fmt.Errorf("failed to read qualified csv: %w", err)
	}

	result := &BuildRosterResult{Confirmed: len(confirmed)}

	// Later submissions overwrite earlier ones for the same person.
	final := make(map[int64]rosterstore.ParticipantRow)
	for _, q := range qualifiedRows {
		id, err := strconv.ParseInt(q.DiscordID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad discord_id %q in qualified csv: %w", q.DiscordID, err)
		}
		if blacklist[id] {
			result.Blacklisted++
			continue
		}
		conf, ok := confirmed[id]
		if !ok {
			continue
		}

		pyScore, err := rosterstore.AnswerScore(rosterstore.PythonExperienceAnswers, q.PythonExperience)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", id, err)
		}
		gitScore, err := rosterstore.AnswerScore(rosterstore.GitExperienceAnswers, q.GitExperience)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", id, err)
		}
		leadScore, err := rosterstore.AnswerScore(rosterstore.LeaderAnswers, q.TeamLeader)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", id, err)
		}

		final[id] = rosterstore.ParticipantRow{
			DiscordID:         q.DiscordID,
			DiscordUsername:   q.DiscordUsername,
			GithubUsername:    conf.GithubUsername,
			Timezone:          q.Timezone,
			PythonExperience:  strconv.Itoa(pyScore),
			GitExperience:     strconv.Itoa(gitScore),
			Age:               q.Age,
			CodejamExperience: q.CodejamExperience,
			TeamLeader:        q.TeamLeader,
			LeadPriority:      strconv.Itoa(leadScore),
		}
	}
	result.Qualified = len(final)
	logger.Info("Cross-referenced qualified participants", zap.Int("count", len(final)))

	upsertions, err := store.ReadUpsertions()
	if err != nil {
		return nil, fmt.Errorf("failed to read manual upsertions: %w", err)
	}
	for _, up := range upsertions {
		id, err := strconv.ParseInt(strings.TrimSpace(up.DiscordID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad discord_id %q in manual upsertions: %w", up.DiscordID, err)
		}
		final[id] = mergeUpsertion(final[id], up)
		result.Upserted++
	}
	if len(upsertions) > 0 {
		logger.Info("Applied manual upsertions", zap.Int("count", len(upsertions)))
	}

	ids := make([]int64, 0, len(final))
	for id := range final {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]rosterstore.ParticipantRow, len(ids))
	for i, id := range ids {
		rows[i] = final[id]
	}
	if err := store.WriteFinalParticipants(rows); err != nil {
		return nil, fmt.Errorf("failed to write final participants: %w", err)
	}

	result.Final = len(rows)
	logger.Info("Final participants written", zap.Int("count", len(rows)))
	return result, nil
}

// mergeUpsertion overlays the non-empty fields of an upsertion row onto an
// existing row. Whitespace is trimmed; blank fields keep the existing value,
// so a row for an unknown id inserts a new participant wholesale.
func mergeUpsertion(base, up rosterstore.ParticipantRow) rosterstore.ParticipantRow {
	overlay := func(dst *string, val string) {
		if v := strings.TrimSpace(val); v != "" {
			*dst = v
		}
	}
	overlay(&base.DiscordID, up.DiscordID)
	overlay(&base.DiscordUsername, up.DiscordUsername)
	overlay(&base.GithubUsername, up.GithubUsername)
	overlay(&base.Timezone, up.Timezone)
	overlay(&base.PythonExperience, up.PythonExperience)
	overlay(&base.GitExperience, up.GitExperience)
	overlay(&base.Age, up.Age)
	overlay(&base.CodejamExperience, up.CodejamExperience)
	overlay(&base.TeamLeader, up.TeamLeader)
	overlay(&base.LeadPriority, up.LeadPriority)
	return base
}
