package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/duartecruz/weekend-picker/internal/config"
	"github.com/duartecruz/weekend-picker/pkg/clients/openaiclient"
	"github.com/duartecruz/weekend-picker/pkg/core/services"
	"github.com/duartecruz/weekend-picker/pkg/input"
	"github.com/duartecruz/weekend-picker/pkg/report"
	"github.com/duartecruz/weekend-picker/pkg/utils/logging"
)

const (
	exitOK         = 0
	exitGeneric    = 1
	exitValidation = 2
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	verbose bool
	app     *App
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "weekend-picker",
		Short: "Rank candidate weekends under hard and soft constraints",
		Long: `A CLI tool that ranks Friday-Sunday weekend options inside a date window,
honouring per-person hard (disallowing) and soft (penalizing) date constraints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(pickCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var validationErr *input.ValidationError
		if errors.As(err, &validationErr) {
			return exitValidation
		}
		return exitGeneric
	}

	return exitOK
}

// initApp sets up the logger and loads configuration
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// A .env file may carry OPENAI_API_KEY; absence is fine
	if err := godotenv.Load(); err == nil {
		app.logger.Debug("Loaded environment from .env file")
	}

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded",
		zap.Int("top_n", app.cfg.TopN),
		zap.String("output_format", app.cfg.OutputFormat))

	return nil
}

func pickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Rank weekend options from a JSON constraints file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			outputFormat, _ := cmd.Flags().GetString("output-format")
			includeNarrative, _ := cmd.Flags().GetBool("include-openai-narrative")
			apiKey, _ := cmd.Flags().GetString("openai-api-key")
			model, _ := cmd.Flags().GetString("model")

			topN := app.cfg.TopN
			if cmd.Flags().Changed("top-n") {
				topN, _ = cmd.Flags().GetInt("top-n")
			}
			if topN <= 0 {
				return &input.ValidationError{FieldPath: "top-n", Message: "must be greater than 0"}
			}

			if outputFormat == "" {
				outputFormat = app.cfg.OutputFormat
			}
			if outputFormat != "text" && outputFormat != "json" {
				return &input.ValidationError{FieldPath: "output-format", Message: "expected 'text' or 'json'"}
			}

			if model == "" {
				model = app.cfg.OpenAIModel
			}

			in, err := input.LoadFromJSONFile(inputPath)
			if err != nil {
				return err
			}

			result, err := services.PickWeekends(app.ctx, *in, topN, app.logger)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				rendered, err := report.FormatJSON(result.Payload)
				if err != nil {
					return err
				}
				fmt.Println(rendered)
			} else {
				fmt.Println(report.FormatText(result.Payload))
			}

			if !includeNarrative {
				return nil
			}

			if apiKey == "" {
				apiKey = os.Getenv("OPENAI_API_KEY")
			}
			if apiKey == "" {
				return &input.ValidationError{
					FieldPath: "openai-api-key",
					Message:   "OpenAI narrative requested but no API key was provided",
				}
			}

			client, err := openaiclient.NewClient(apiKey, model)
			if err != nil {
				return err
			}

			app.logger.Info("Requesting OpenAI narrative", zap.String("model", model))
			narrative, err := client.Narrative(app.ctx, result.Payload)
			if err != nil {
				return fmt.Errorf("openai narrative failed: %w", err)
			}

			fmt.Println("\nOpenAI Narrative:")
			fmt.Println()
			fmt.Println(narrative)

			return nil
		},
	}

	cmd.Flags().String("input", "", "Path to the input JSON file (required)")
	cmd.Flags().Int("top-n", 3, "Return the top N weekend options")
	cmd.Flags().String("output-format", "", "Output format: text or json (default from config)")
	cmd.Flags().Bool("include-openai-narrative", false, "Generate an additional narrative via the OpenAI API")
	cmd.Flags().String("openai-api-key", "", "OpenAI API key (default: OPENAI_API_KEY env var)")
	cmd.Flags().String("model", "", "OpenAI model for the narrative (default from config)")
	cmd.MarkFlagRequired("input")

	return cmd
}
