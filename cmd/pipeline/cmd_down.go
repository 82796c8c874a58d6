package main

import (
	"log/slog"

	"github.com/ferdiebergado/shortly/internal/pipeline/docker"
	"github.com/spf13/cobra"
)

var downName string

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the deployed container",
	Long: `Stops and removes the named container. A container that is already
gone is treated as success.`,
	RunE: runDown,
}

func init() {
	downCmd.Flags().StringVar(&downName, "name", "shortly", "container name")
}

func runDown(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	engine, err := docker.NewEngine(ctx)
	if err != nil {
		return err
	}

	if err := engine.Stop(ctx, downName); err != nil {
		return err
	}
	if err := engine.Remove(ctx, downName); err != nil {
		return err
	}

	slog.Info("Container stopped and removed.", "name", downName)
	return nil
}
