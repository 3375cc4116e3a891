package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camcaswell/CJ-team-forming/internal/config"
	"github.com/camcaswell/CJ-team-forming/pkg/clients/formsclient"
	"github.com/camcaswell/CJ-team-forming/pkg/core/services"
	"github.com/camcaswell/CJ-team-forming/pkg/rosterstore"
	"github.com/camcaswell/CJ-team-forming/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg         *config.Config
	formsClient *formsclient.Client
	store       *rosterstore.Store
	logger      *zap.Logger
	ctx         context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamforming",
		Short: "Code Jam team forming CLI - Build the roster and form balanced teams",
		Long:  `A CLI tool for fetching code jam sign-ups, building the participant roster, and forming timezone- and experience-balanced teams.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: team_forming.yaml in cwd or home)")

	// Add all commands
	rootCmd.AddCommand(fetchQualifiedCmd())
	rootCmd.AddCommand(fetchConfirmedCmd())
	rootCmd.AddCommand(buildRosterCmd())
	rootCmd.AddCommand(formTeamsCmd())
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, the forms client, and the CSV store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// A .env next to the binary may carry the forms token. Absence is fine.
	godotenv.Load()

	// Initialize logger
	app.logger, err = logging.InitLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application")

	// Load configuration
	app.logger.Info("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Initialize forms client
	app.logger.Info("Initializing forms client")
	token := os.Getenv(config.TokenEnvVar)
	if token == "" {
		return fmt.Errorf("%s is not set", config.TokenEnvVar)
	}
	app.formsClient, err = formsclient.NewClient(app.cfg.FormsAPIBaseURL, token)
	if err != nil {
		return fmt.Errorf("failed to create forms client: %w", err)
	}
	app.logger.Debug("Forms client initialized successfully")

	// Initialize CSV store
	app.store, err = rosterstore.New(app.cfg.CSVDir)
	if err != nil {
		return fmt.Errorf("failed to initialize roster store: %w", err)
	}
	app.logger.Info("Roster store initialized", zap.String("dir", app.cfg.CSVDir))

	return nil
}

// Command definitions

func fetchQualifiedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetchQualified",
		Short: "Fetch qualifier form submissions and write qualified.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := services.FetchQualified(app.ctx, app.formsClient, app.store, app.logger, app.cfg.QualifierFormSlug)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Qualified sign-ups fetched!\n\n")
			fmt.Printf("Submissions written: %d\n\n", count)
			return nil
		},
	}
}

func fetchConfirmedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetchConfirmed",
		Short: "Fetch confirmation form submissions and write confirmed.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total, confirmed, err := services.FetchConfirmed(app.ctx, app.formsClient, app.store, app.logger, app.cfg.ConfirmationFormSlug)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Confirmations fetched!\n\n")
			fmt.Printf("Responses:  %d\n", total)
			fmt.Printf("Confirmed:  %d\n\n", confirmed)
			return nil
		},
	}
}

func buildRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buildRoster",
		Short: "Cross-reference fetched CSVs into final_participants.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.BuildRoster(app.store, app.logger)
			if err != nil {
				return err
			}

			printRosterSummary(result)
			return nil
		},
	}
}

func formTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formTeams",
		Short: "Form teams from final_participants.csv and write the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.FormTeams(app.store, app.logger, app.cfg.FormingParams(), app.cfg.ReportPath)
			if err != nil {
				return err
			}

			printFormingSummary(result)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch both forms, build the roster, form teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qualified, err := services.FetchQualified(app.ctx, app.formsClient, app.store, app.logger, app.cfg.QualifierFormSlug)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Fetched %d qualified sign-ups\n", qualified)

			total, confirmed, err := services.FetchConfirmed(app.ctx, app.formsClient, app.store, app.logger, app.cfg.ConfirmationFormSlug)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Fetched %d confirmations (%d confirmed)\n", total, confirmed)

			rosterResult, err := services.BuildRoster(app.store, app.logger)
			if err != nil {
				return err
			}
			printRosterSummary(rosterResult)

			formingResult, err := services.FormTeams(app.store, app.logger, app.cfg.FormingParams(), app.cfg.ReportPath)
			if err != nil {
				return err
			}
			printFormingSummary(formingResult)
			return nil
		},
	}
}

func printRosterSummary(result *services.BuildRosterResult) {
	fmt.Printf("\n✓ Roster built!\n\n")
	fmt.Printf("Qualified:    %d\n", result.Qualified)
	fmt.Printf("Confirmed:    %d\n", result.Confirmed)
	fmt.Printf("Blacklisted:  %d\n", result.Blacklisted)
	fmt.Printf("Upserted:     %d\n", result.Upserted)
	fmt.Printf("Final roster: %d\n\n", result.Final)
}

func printFormingSummary(result *services.FormTeamsResult) {
	fmt.Printf("\n✓ Teams formed!\n\n")
	fmt.Printf("Run ID:       %s\n", result.RunID)
	fmt.Printf("Roster size:  %d\n", result.Roster)
	fmt.Printf("Teams:        %d\n", len(result.Result.Teams))
	fmt.Printf("Unassigned:   %d\n\n", len(result.Result.Unassigned))

	for _, team := range result.Result.Teams {
		fmt.Printf("Team %d (lead %s): %d members, tz span %.1fh, avg experience %.2f\n",
			team.ID+1, team.Leader().Name, team.Size(), team.TzSpan(), team.AvgExperience())
	}
	if len(result.Result.Unassigned) > 0 {
		fmt.Printf("\nUnassigned:\n")
		for _, p := range result.Result.Unassigned {
			fmt.Printf("  - %s (tz %+.1f, experience %d)\n", p.Name, p.Timezone, p.Experience)
		}
	}
	if result.ReportPath != "" {
		fmt.Printf("\nReport written to %s\n", result.ReportPath)
	}
	fmt.Println()
}
