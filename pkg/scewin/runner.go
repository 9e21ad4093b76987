// Package scewin invokes AMI's SCEWIN_64 command-line utility. The engine
// treats it as an opaque subprocess: success is exit code 0, and every
// failure kind — missing executable, missing input file, non-zero exit,
// crash, timeout — is distinguishable so callers can render specific
// messages.
package scewin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

var (
	ErrExeNotFound   = errors.New("scewin executable not found")
	ErrInputNotFound = errors.New("scewin input file not found")
	ErrTimeout       = errors.New("scewin timed out")
)

// DefaultTimeout bounds one SCEWIN invocation. NVRAM import/export on real
// hardware takes a few seconds; anything past this is a hung tool.
const DefaultTimeout = 30 * time.Second

// Result carries what a finished invocation produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a SCEWIN run that completed with a non-zero exit code.
type ExitError struct {
	Result Result
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("scewin exited with code %d", e.Result.ExitCode)
}

// Runner invokes SCEWIN with a bounded timeout. It holds no state between
// runs and never retries; retries are a caller decision.
type Runner struct {
	ExePath string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewRunner(exePath string, timeout time.Duration, logger *zap.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{ExePath: exePath, Timeout: timeout, Logger: logger}
}

// ImportArgs builds the argument vector for importing a settings overlay.
func ImportArgs(nvramPath string) []string {
	return []string{"/I", "/S", nvramPath}
}

// ExportArgs builds the argument vector for exporting the current NVRAM.
func ExportArgs(outputName string) []string {
	return []string{"/O", "/S", outputName}
}

// Import feeds an overlay file into the BIOS via `scewin /I /S <path>`.
func (r *Runner) Import(ctx context.Context, nvramPath string) (Result, error) {
	if _, err := os.Stat(nvramPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, nvramPath)
	}
	return r.run(ctx, ImportArgs(nvramPath))
}

// Export dumps the current NVRAM to outputName via `scewin /O /S <name>`.
// The file lands in the executable's directory, where SCEWIN writes it.
func (r *Runner) Export(ctx context.Context, outputName string) (Result, error) {
	return r.run(ctx, ExportArgs(outputName))
}

func (r *Runner) run(ctx context.Context, args []string) (Result, error) {
	if _, err := os.Stat(r.ExePath); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrExeNotFound, r.ExePath)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.ExePath, args...)
	cmd.Dir = filepath.Dir(r.ExePath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Info("running scewin", zap.String("exe", r.ExePath), zap.Strings("args", args))
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		r.Logger.Warn("scewin timed out", zap.Duration("timeout", r.Timeout))
		return res, fmt.Errorf("%w after %s", ErrTimeout, r.Timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		r.Logger.Warn("scewin failed",
			zap.Int("exit_code", res.ExitCode), zap.String("stderr", res.Stderr))
		return res, &ExitError{Result: res}
	}

	// Crash or failure to start.
	return res, fmt.Errorf("running scewin: %w", err)
}
