package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/camcaswell/CJ-team-forming/pkg/clients/formsclient"
	"github.com/camcaswell/CJ-team-forming/pkg/rosterstore"
)

// Question ids on the qualifier and confirmation forms.
const (
	questionAgeRange      = "age-range"
	questionTimezone      = "timezone"
	questionPythonExp     = "python-experience"
	questionGitExp        = "git-experience"
	questionTeamLeader    = "team-leader"
	questionCodejamExp    = "code-jam-experience"
	questionParticipation = "participation"
	questionGithub        = "github"
)

// FormsAPI is the slice of the forms client the services need.
type FormsAPI interface {
	GetResponses(ctx context.Context, formSlug string) ([]formsclient.Submission, error)
}

// FetchQualified downloads the raw qualifier submissions and records them in
// the store. Rows are neither filtered nor deduplicated here: a person who
// submitted twice appears twice until the roster is built.
func FetchQualified(ctx context.Context, forms FormsAPI, store *rosterstore.Store, logger *zap.Logger, formSlug string) (int, error) {
	logger.Info("Fetching qualifier responses", zap.String("form", formSlug))

	submissions, err := forms.GetResponses(ctx, formSlug)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch qualifier responses: %w", err)
	}
	logger.Debug("Qualifier responses received", zap.Int("count", len(submissions)))

	rows := make([]rosterstore.QualifiedRow, len(submissions))
	for i, sub := range submissions {
		rows[i] = rosterstore.QualifiedRow{
			DiscordID:         fmt.Sprintf("%d", sub.User.ID),
			DiscordUsername:   sub.User.Username,
			Age:               sub.Response[questionAgeRange],
			Timezone:          sub.Response[questionTimezone],
			PythonExperience:  sub.Response[questionPythonExp],
			GitExperience:     sub.Response[questionGitExp],
			TeamLeader:        sub.Response[questionTeamLeader],
			CodejamExperience: sub.Response[questionCodejamExp],
		}
	}

	if err := store.WriteQualified(rows); err != nil {
		return 0, fmt.Errorf("failed to write qualified csv: %w", err)
	}

	logger.Info("Qualifier responses recorded", zap.Int("count", len(rows)))
	return len(rows), nil
}
