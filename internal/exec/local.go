package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultWaitDelay bounds how long Wait blocks on output pipes after the
// process has been killed. Grandchildren that inherited the pipes (common with
// `bash -lc`) would otherwise keep Wait blocked past the deadline.
const DefaultWaitDelay = 2 * time.Second

// Result holds everything captured from a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int

	// TimedOut is set when the context deadline killed the process.
	TimedOut bool
}

// Capture runs name with args in dir (empty means the current directory) and
// captures stdout and stderr separately. A non-zero exit is not an error; it is
// reported in Result.ExitCode. The returned error is only set when the command
// could not be started at all, e.g. because the binary is missing.
func Capture(ctx context.Context, dir, name string, args ...string) (Result, error) {
	command := exec.CommandContext(ctx, name, args...)
	command.WaitDelay = DefaultWaitDelay
	if dir != "" {
		command.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	runErr := command.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1
		return res, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(runErr, exec.ErrWaitDelay) {
			return res, nil
		}
		return res, runErr
	}

	return res, nil
}

// ShellCommand returns the argv that runs command through a login bash,
// with args appended space-separated.
func ShellCommand(command string, args []string) (string, []string) {
	joined := command
	if len(args) > 0 {
		joined = command + " " + strings.Join(args, " ")
	}
	return "bash", []string{"-lc", joined}
}

// Runner runs an external tool and returns its stdout. Collectors depend on
// this interface so tests can substitute canned output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// LocalRunner is the Runner backed by os/exec.
type LocalRunner struct{}

// Run executes the command and returns stdout on a zero exit. On a non-zero
// exit the error text is the trimmed stderr, or "<name> failed with exit
// status N" when stderr is empty.
func (LocalRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	res, err := Capture(ctx, dir, name, args...)
	if err != nil {
		return "", err
	}
	if res.TimedOut {
		return "", fmt.Errorf("%s timed out", name)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(string(res.Stderr))
		if msg == "" {
			msg = fmt.Sprintf("%s failed with exit status %d", name, res.ExitCode)
		}
		return "", errors.New(msg)
	}
	return string(res.Stdout), nil
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir, name string, args ...string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f(ctx, dir, name, args...)
}
