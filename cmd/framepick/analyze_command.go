package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"framepick/internal/bundle"
	"framepick/internal/config"
	"framepick/internal/logging"
	"framepick/internal/pipeline"
)

func newAnalyzeCommand(configFlag *string) *cobra.Command {
	var outputPath string
	var jsonOut bool
	var noVariety bool

	cmd := &cobra.Command{
		Use:   "analyze <bundle.json>",
		Short: "Run the selection engine over a feature bundle",
		Long: `Analyze runs the frame scoring, classification and variety selection
engine over a feature bundle: a JSON document holding the outputs of
the external collaborators (scenes, extracted frames, sharpness,
faces, tags, decoded audio) for one video.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if noVariety {
				cfg.Selection.SelectVariety = false
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			b, err := bundle.Load(args[0])
			if err != nil {
				return err
			}

			runner, err := pipeline.NewRunner(cfg, b.Deps(), logger)
			if err != nil {
				return err
			}
			report, err := runner.Run(cmd.Context(), b.Video)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := report.Write(outputPath); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(report, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "results.json", "Path for the report JSON (empty to skip writing)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full report JSON to stdout")
	cmd.Flags().BoolVar(&noVariety, "no-variety", false, "Keep every frame that passes the sharpness gate")

	return cmd
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
