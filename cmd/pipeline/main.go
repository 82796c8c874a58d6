package main

import (
	"os"

	"github.com/ferdiebergado/shortly/internal/pkg/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Build, test and deploy the shortly service",
	Long: `pipeline runs the delivery stages for the shortly service:
dependency install, tests, lint, image build and a health-checked
single-container deploy.

Examples:
  pipeline run
  pipeline run --config pipeline.yml --skip lint
  pipeline deploy --image shortly:latest --name shortly --port 5000:5000
  pipeline down --name shortly`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(downCmd)
}

func main() {
	logging.SetupLogger(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"), os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
