// Package plugin runs user-defined probe commands and turns their output
// into dashboard lines.
//
// A probe is any executable. It runs either directly (argv exec, no shell) or
// through `bash -lc` when its config sets shell: true. Each probe gets its own
// hard timeout; a probe that hangs is killed and reported as
// "timeout (30s)" without holding up the rest of the collection cycle any
// longer than that.
package plugin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/exec"
	"github.com/devdash/devdash/internal/logger"
)

// DefaultTimeout is the per-probe hard limit.
const DefaultTimeout = 30 * time.Second

// MaxLines is how many stdout lines a probe contributes.
const MaxLines = 12

// NoOutput is shown when a probe succeeds without printing anything.
const NoOutput = "(no output)"

// Mode selects how a probe command is launched.
type Mode int

const (
	// ModeDirect execs the command with its args, no shell involved.
	ModeDirect Mode = iota
	// ModeShell runs `bash -lc "<command> <args...>"`.
	ModeShell
)

func (m Mode) String() string {
	switch m {
	case ModeShell:
		return "shell"
	default:
		return "direct"
	}
}

// Output is the result of one probe run.
type Output struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
	Error string   `json:"error,omitempty"`
}

// Failed reports whether the probe produced an error instead of lines.
func (o Output) Failed() bool {
	return o.Error != ""
}

// Clone returns a copy with its own Lines slice.
func (o Output) Clone() Output {
	o.Lines = append([]string(nil), o.Lines...)
	return o
}

// Probe is a single configured command.
type Probe struct {
	Name    string
	Command string
	Args    []string
	Mode    Mode
}

// argv returns the program and arguments to exec.
func (p Probe) argv() (string, []string) {
	if p.Mode == ModeShell {
		return exec.ShellCommand(p.Command, p.Args)
	}
	return p.Command, p.Args
}

// Runner executes all configured probes.
type Runner struct {
	probes []Probe

	// Timeout applies to each probe individually. Zero means DefaultTimeout.
	Timeout time.Duration

	log logger.Logger
}

// NewRunner builds a Runner from config, skipping entries whose command is blank.
func NewRunner(cfgs []config.PluginConfig) *Runner {
	r := &Runner{
		Timeout: DefaultTimeout,
		log:     logger.NewEnvLogger("[plugin]"),
	}
	for _, c := range cfgs {
		if strings.TrimSpace(c.Command) == "" {
			continue
		}
		mode := ModeDirect
		if c.Shell {
			mode = ModeShell
		}
		r.probes = append(r.probes, Probe{
			Name:    c.Name,
			Command: c.Command,
			Args:    append([]string(nil), c.Args...),
			Mode:    mode,
		})
	}
	return r
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l logger.Logger) {
	r.log = l
}

// Len is the number of runnable probes.
func (r *Runner) Len() int {
	if r == nil {
		return 0
	}
	return len(r.probes)
}

// Names lists probe names in run order.
func (r *Runner) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.probes))
	for i, p := range r.probes {
		names[i] = p.Name
	}
	return names
}

// CollectAll runs every probe in order and returns exactly one Output per probe.
func (r *Runner) CollectAll(ctx context.Context) []Output {
	if r == nil {
		return []Output{}
	}
	out := make([]Output, 0, len(r.probes))
	for _, p := range r.probes {
		out = append(out, r.run(ctx, p))
	}
	return out
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

func (r *Runner) run(parent context.Context, p Probe) Output {
	limit := r.timeout()
	ctx, cancel := context.WithTimeout(parent, limit)
	defer cancel()

	name, args := p.argv()
	start := time.Now()
	res, err := exec.Capture(ctx, "", name, args...)
	r.log.Debug("probe %s (%s) finished in %s", p.Name, p.Mode, time.Since(start).Round(time.Millisecond))
	if missing, ok := exec.MissingCommand(name, res, err); ok && !res.TimedOut {
		r.log.Warn("probe %s: %q not found on PATH", p.Name, missing)
	}

	switch {
	case res.TimedOut:
		return Output{Name: p.Name, Lines: []string{}, Error: fmt.Sprintf("timeout (%s)", limit)}
	case err != nil:
		return Output{Name: p.Name, Lines: []string{}, Error: err.Error()}
	case res.ExitCode != 0:
		msg := strings.TrimSpace(string(res.Stderr))
		if msg == "" {
			msg = fmt.Sprintf("exit %d", res.ExitCode)
		}
		return Output{Name: p.Name, Lines: []string{}, Error: msg}
	}

	lines := firstLines(string(res.Stdout), MaxLines)
	if len(lines) == 0 {
		lines = []string{NoOutput}
	}
	return Output{Name: p.Name, Lines: lines}
}

// firstLines splits text on newlines (tolerating CRLF) and keeps at most n lines.
// A trailing newline does not produce an empty final line.
func firstLines(text string, n int) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if len(lines) == n {
			break
		}
		lines = append(lines, strings.TrimSuffix(l, "\r"))
	}
	return lines
}
