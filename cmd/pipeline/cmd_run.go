package main

import (
	"fmt"

	"github.com/ferdiebergado/shortly/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runConfigFile string
	runSkipStages []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline stages in order",
	Long: `Runs every enabled stage from the pipeline definition, in declared
order. Advisory stages (lint) report failures as warnings and never fail
the run; any other failing stage aborts the pipeline.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "pipeline.yml", "pipeline definition file")
	runCmd.Flags().StringSliceVar(&runSkipStages, "skip", nil, "stage names to skip")
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := pipeline.LoadConfig(runConfigFile)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(
		pipeline.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		pipeline.WithSkip(runSkipStages...),
	)

	results, runErr := runner.Run(cmd.Context(), cfg)
	printSummary(cmd, results)
	return runErr
}

func printSummary(cmd *cobra.Command, results []pipeline.StageResult) {
	cmd.Println()
	cmd.Println("Pipeline summary:")
	for _, res := range results {
		line := fmt.Sprintf("  %-20s %s", res.Name, res.Status)
		if res.Status == pipeline.StatusFailed || res.Status == pipeline.StatusWarned {
			line += fmt.Sprintf(" (exit code %d)", res.ExitCode)
		}
		if res.Duration > 0 {
			line += fmt.Sprintf(" [%s]", res.Duration.Round(timeRounding))
		}
		cmd.Println(line)
	}
}
