package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/camcaswell/CJ-team-forming/pkg/rosterstore"
)

// FetchConfirmed downloads the confirmation form responses and records the
// participants who answered yes. Returns the total number of responses and
// the number confirmed.
func FetchConfirmed(ctx context.Context, forms FormsAPI, store *rosterstore.Store, logger *zap.Logger, formSlug string) (total, confirmed int, err error) {
	logger.Info("Fetching confirmation responses", zap.String("form", formSlug))

	submissions, err := forms.GetResponses(ctx, formSlug)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch confirmation responses: %w", err)
	}

	var rows []rosterstore.ConfirmedRow
	for _, sub := range submissions {
		if sub.Response[questionParticipation] != "Yes" {
			continue
		}
		rows = append(rows, rosterstore.ConfirmedRow{
			DiscordID:      fmt.Sprintf("%d", sub.User.ID),
			GithubUsername: sub.Response[questionGithub],
		})
	}

	if err := store.WriteConfirmed(rows); err != nil {
		return 0, 0, fmt.Errorf("failed to write confirmed csv: %w", err)
	}

	logger.Info("Confirmation responses recorded",
		zap.Int("responses", len(submissions)),
		zap.Int("confirmed", len(rows)))
	return len(submissions), len(rows), nil
}
