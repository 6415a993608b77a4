package cli

import (
	"context"
	"fmt"
	"os"

	"atscore/internal/ats"
	"atscore/internal/common"
	"atscore/internal/errors"
	"atscore/internal/types"
	"atscore/internal/utils"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Score a resume against ATS heuristics",
	Long: `Score a plain-text resume the way an applicant tracking system would.

The score combines seven weighted components:
- Parsability of the text layout
- Detection of standard resume sections
- Contact information completeness
- Keyword and action verb usage
- Experience and project coverage
- Bullet point structure
- Date ranges and chronology

The output includes the final score, the uncapped raw score, any cap that
was applied, per-component scores, and actionable issues.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if info, err := os.Stat(args[0]); err == nil && cfg.App.MaxFileSize > 0 && info.Size() > cfg.App.MaxFileSize {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Resume file exceeds maximum size of %s", utils.FormatFileSize(cfg.App.MaxFileSize)), nil)
	}

	maxTextSize := cfg.Analysis.MaxTextSize

	createInput := func(contents []string) (types.ScoreResumeInput, error) {
		if len(contents) != 1 {
			return types.ScoreResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		if maxTextSize > 0 && int64(len(contents[0])) > maxTextSize {
			return types.ScoreResumeInput{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("Resume text exceeds maximum size of %d bytes", maxTextSize), nil)
		}
		return types.ScoreResumeInput{
			Text: contents[0],
		}, nil
	}

	logDetails := func(input types.ScoreResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"resume_chars", len(input.Text),
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input types.ScoreResumeInput) (*types.EvaluationResult, error) {
		return ats.Analyze(input.Text), nil
	}

	err := common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
