package exec

import (
	"errors"
	"os/exec"
	"regexp"
)

// Plugins run either directly or under `bash -lc`. A direct command that is
// missing fails at start with exec.ErrNotFound. A shell command that is
// missing exits 127 with bash's message. A script can also fail partway
// through on a tool it calls, either through its shebang (env) or through
// a nested /bin/sh.
var (
	shellMissing = []*regexp.Regexp{
		regexp.MustCompile(`bash: (?:line \d+: )?(\S+): command not found`),
		regexp.MustCompile(`bash: (?:line \d+: )?(\S+): No such file or directory`),
		regexp.MustCompile(`sh: \d+: (\S+): not found`),
	}
	scriptMissing = []*regexp.Regexp{
		regexp.MustCompile(`env: ['‘]?([^\s'’]+?)['’]?: No such file or directory`),
		regexp.MustCompile(`/bin/sh: (?:\d+: )?(\S+): not found`),
	}
)

// MissingCommand reports which executable a failed plugin run was missing.
// startErr is the error Capture returned. name is reported when the failure
// clearly means "not found" but the output does not say what was missing.
func MissingCommand(name string, res Result, startErr error) (string, bool) {
	if startErr != nil {
		if errors.Is(startErr, exec.ErrNotFound) {
			return name, true
		}
		return "", false
	}
	if res.ExitCode == 0 {
		return "", false
	}

	stderr := string(res.Stderr)
	if res.ExitCode == 127 {
		if cmd, ok := firstSubmatch(shellMissing, stderr); ok {
			return cmd, true
		}
	}
	if cmd, ok := firstSubmatch(scriptMissing, stderr); ok {
		return cmd, true
	}
	if res.ExitCode == 127 {
		return name, true
	}
	return "", false
}

func firstSubmatch(patterns []*regexp.Regexp, s string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}
