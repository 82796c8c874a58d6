package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Status is the outcome of a single stage.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusWarned  Status = "warned"
	StatusSkipped Status = "skipped"
)

// StageResult records how one stage finished.
type StageResult struct {
	Name     string
	Status   Status
	ExitCode int
	Duration time.Duration
	Err      error
}

// ErrStageFailed is returned by Run when a non-advisory stage fails.
var ErrStageFailed = errors.New("pipeline: stage failed")

// Runner executes pipeline stages sequentially.
type Runner struct {
	out  io.Writer
	errW io.Writer
	skip map[string]bool
}

type Option func(*Runner)

// WithOutput redirects stage stdout and stderr.
func WithOutput(out, errW io.Writer) Option {
	return func(r *Runner) {
		r.out = out
		r.errW = errW
	}
}

// WithSkip marks stages to skip by name in addition to those disabled in
// the pipeline definition.
func WithSkip(names ...string) Option {
	return func(r *Runner) {
		for _, name := range names {
			r.skip[name] = true
		}
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		out:  os.Stdout,
		errW: os.Stderr,
		skip: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the stages in declared order. Advisory stage failures are
// logged and do not stop the run; the first non-advisory failure aborts it.
// The returned results cover every stage reached, including the failed one.
func (r *Runner) Run(ctx context.Context, cfg *Config) ([]StageResult, error) {
	results := make([]StageResult, 0, len(cfg.Stages))

	for _, stage := range cfg.Stages {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("pipeline canceled before stage %q: %w", stage.Name, err)
		}

		if stage.Disabled || r.skip[stage.Name] {
			slog.Info("Stage skipped.", "stage", stage.Name)
			results = append(results, StageResult{Name: stage.Name, Status: StatusSkipped})
			continue
		}

		result := r.runStage(ctx, stage)
		results = append(results, result)

		switch result.Status {
		case StatusWarned:
			slog.Warn("Advisory stage failed, continuing.", "stage", stage.Name, "exit_code", result.ExitCode)
		case StatusFailed:
			slog.Error("Stage failed.", "stage", stage.Name, "exit_code", result.ExitCode, "reason", result.Err)
			return results, fmt.Errorf("%w: %s", ErrStageFailed, stage.Name)
		}
	}

	return results, nil
}

func (r *Runner) runStage(ctx context.Context, stage Stage) StageResult {
	slog.Info("Running stage...", "stage", stage.Name, "command", stage.Run)

	stageCtx := ctx
	if stage.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, stage.Timeout.Duration)
		defer cancel()
	}

	cmd := shellCommand(stageCtx, stage.Run)
	cmd.Dir = stage.Dir
	cmd.Env = append(os.Environ(), stage.Env...)
	cmd.Stdout = r.out
	cmd.Stderr = r.errW

	start := time.Now()
	err := cmd.Run()
	result := StageResult{
		Name:     stage.Name,
		Status:   StatusPassed,
		Duration: time.Since(start),
	}

	if err != nil {
		result.Err = err
		result.ExitCode = -1

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}

		if stageCtx.Err() != nil {
			result.Err = fmt.Errorf("stage %q: %w", stage.Name, stageCtx.Err())
		}

		if stage.Advisory {
			result.Status = StatusWarned
		} else {
			result.Status = StatusFailed
		}
		return result
	}

	slog.Info("Stage passed.", "stage", stage.Name, "duration", result.Duration)
	return result
}

// shellCommand wraps the command line in the platform shell.
func shellCommand(ctx context.Context, run string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", run)
	}
	return exec.CommandContext(ctx, "sh", "-c", run)
}
