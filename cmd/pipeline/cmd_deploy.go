package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/shortly/internal/pipeline/docker"
	"github.com/ferdiebergado/shortly/internal/pipeline/health"
	"github.com/spf13/cobra"
)

const timeRounding = time.Millisecond

var (
	deployImage          string
	deployName           string
	deployPort           string
	deployEnv            []string
	deployBuildDir       string
	deployReleaseTag     string
	deployHealthURL      string
	deployHealthInterval time.Duration
	deployHealthTimeout  time.Duration
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the service as a single container",
	Long: `Builds the image (when --build-dir is given), replaces any container
with the same name, starts a new one and polls the health endpoint. The
deploy only succeeds if the health check passes; otherwise the container
is stopped and removed again.`,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringVar(&deployImage, "image", "shortly:latest", "image to run")
	deployCmd.Flags().StringVar(&deployName, "name", "shortly", "container name")
	deployCmd.Flags().StringVar(&deployPort, "port", "5000:5000", "host:container port mapping")
	deployCmd.Flags().StringArrayVar(&deployEnv, "env", nil, "environment KEY=VALUE pairs for the container")
	deployCmd.Flags().StringVar(&deployBuildDir, "build-dir", "", "build the image from this directory first")
	deployCmd.Flags().StringVar(&deployReleaseTag, "release-tag", "", "additional tag applied to the image, e.g. shortly:stable")
	deployCmd.Flags().StringVar(&deployHealthURL, "health-url", "http://localhost:5000/health", "endpoint to poll after start")
	deployCmd.Flags().DurationVar(&deployHealthInterval, "health-interval", 2*time.Second, "poll interval")
	deployCmd.Flags().DurationVar(&deployHealthTimeout, "health-timeout", 30*time.Second, "how long to wait for a healthy response")
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	engine, err := docker.NewEngine(ctx)
	if err != nil {
		return err
	}

	if deployBuildDir != "" {
		if err := engine.Build(ctx, docker.BuildOptions{Dir: deployBuildDir, Tag: deployImage}); err != nil {
			return err
		}
	}

	if deployReleaseTag != "" {
		if err := engine.Tag(ctx, deployImage, deployReleaseTag); err != nil {
			return err
		}
	}

	// Replace a previous deployment of the same name, if any.
	if err := teardown(cmd, engine); err != nil {
		return err
	}

	containerID, err := engine.Run(ctx, docker.RunOptions{
		Image: deployImage,
		Name:  deployName,
		Port:  deployPort,
		Env:   deployEnv,
	})
	if err != nil {
		return err
	}
	slog.Info("Container started.", "name", deployName, "id", containerID)

	checker := health.NewChecker(deployHealthInterval, deployHealthTimeout)
	if err := checker.Wait(ctx, deployHealthURL); err != nil {
		slog.Error("Deploy failed health check, tearing down.", "name", deployName, "reason", err)
		if cleanupErr := teardown(cmd, engine); cleanupErr != nil {
			return errors.Join(err, cleanupErr)
		}
		return fmt.Errorf("deploy %s: %w", deployName, err)
	}

	slog.Info("Deploy succeeded.", "name", deployName, "image", deployImage, "health_url", deployHealthURL)
	return nil
}

func teardown(cmd *cobra.Command, engine *docker.Engine) error {
	ctx := cmd.Context()

	if !engine.ContainerExists(ctx, deployName) {
		return nil
	}

	if err := engine.Stop(ctx, deployName); err != nil {
		return err
	}
	return engine.Remove(ctx, deployName)
}
