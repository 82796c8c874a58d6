// Package docker shells out to the docker CLI for the image build and
// container lifecycle steps of a deploy.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const detectTimeout = 5 * time.Second

// Engine wraps the docker binary.
type Engine struct {
	binPath string
}

// NewEngine locates the docker binary and verifies the daemon is responsive.
func NewEngine(ctx context.Context) (*Engine, error) {
	binPath, err := exec.LookPath("docker")
	if err != nil {
		return nil, fmt.Errorf("docker binary not found: %w", err)
	}

	detectCtx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(detectCtx, binPath, "version", "--format", "{{.Server.Version}}")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("docker daemon not responding: %w", err)
	}

	return &Engine{binPath: binPath}, nil
}

// BuildOptions configure an image build.
type BuildOptions struct {
	// Dir is the build context directory.
	Dir string
	// Dockerfile overrides the default Dockerfile path, relative to Dir.
	Dockerfile string
	// Tag names the built image.
	Tag string
}

// Build builds and tags an image.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	args := []string{"build", "-t", opts.Tag}
	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}
	args = append(args, dir)

	slog.Info("Building image...", "tag", opts.Tag, "dir", dir)
	if _, err := e.run(ctx, args...); err != nil {
		return fmt.Errorf("build image %s: %w", opts.Tag, err)
	}
	return nil
}

// Tag applies an additional tag to an existing image.
func (e *Engine) Tag(ctx context.Context, source, target string) error {
	if _, err := e.run(ctx, "tag", source, target); err != nil {
		return fmt.Errorf("tag image %s as %s: %w", source, target, err)
	}
	return nil
}

// RunOptions configure a detached container.
type RunOptions struct {
	Image string
	Name  string
	// Port maps host to container, e.g. "5000:5000".
	Port string
	Env  []string
}

// Run starts a detached container and returns its ID.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (string, error) {
	args := []string{"run", "-d", "--name", opts.Name}
	if opts.Port != "" {
		args = append(args, "-p", opts.Port)
	}
	for _, env := range opts.Env {
		args = append(args, "-e", env)
	}
	args = append(args, opts.Image)

	slog.Info("Starting container...", "name", opts.Name, "image", opts.Image)
	out, err := e.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("run container %s: %w", opts.Name, err)
	}
	return strings.TrimSpace(out), nil
}

// Stop stops a container. A container that does not exist is not an error.
func (e *Engine) Stop(ctx context.Context, name string) error {
	if _, err := e.run(ctx, "stop", name); err != nil {
		if isAbsent(err) {
			slog.Info("Container already absent.", "name", name)
			return nil
		}
		return fmt.Errorf("stop container %s: %w", name, err)
	}
	return nil
}

// Remove removes a container. A container that does not exist is not an error.
func (e *Engine) Remove(ctx context.Context, name string) error {
	if _, err := e.run(ctx, "rm", name); err != nil {
		if isAbsent(err) {
			slog.Info("Container already absent.", "name", name)
			return nil
		}
		return fmt.Errorf("remove container %s: %w", name, err)
	}
	return nil
}

// ContainerExists reports whether a container with the name is known to the
// daemon, running or not.
func (e *Engine) ContainerExists(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, e.binPath, "container", "inspect", name)
	return cmd.Run() == nil
}

func (e *Engine) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &cliError{
			args:   args,
			stderr: strings.TrimSpace(stderr.String()),
			cause:  err,
		}
	}
	return stdout.String(), nil
}

// cliError carries the docker CLI stderr so callers can match on it.
type cliError struct {
	args   []string
	stderr string
	cause  error
}

func (e *cliError) Error() string {
	if e.stderr != "" {
		return fmt.Sprintf("docker %s: %s", strings.Join(e.args, " "), e.stderr)
	}
	return fmt.Sprintf("docker %s: %v", strings.Join(e.args, " "), e.cause)
}

func (e *cliError) Unwrap() error {
	return e.cause
}

func isAbsent(err error) bool {
	cliErr, ok := err.(*cliError)
	if !ok {
		return false
	}
	return strings.Contains(cliErr.stderr, "No such container")
}
