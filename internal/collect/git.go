package collect

import (
	"context"
	"strings"

	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/exec"
)

// CollectGit reads `git status --porcelain --branch` for repo.
// A failing git command yields the default status with Error set.
func CollectGit(ctx context.Context, run exec.Runner, repo string) GitStatus {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	out, err := run.Run(ctx, "", "git", "-C", repo, "status", "--porcelain", "--branch")
	if err != nil {
		st := DefaultGitStatus()
		st.Error = errors.Summary(err)
		return st
	}
	return ParseGitStatus(out)
}

// ParseGitStatus parses porcelain v1 output with a branch header.
//
// The first line, when it starts with "##", gives the branch (text before
// "...") and the ahead/behind marker (bracketed text after the upstream).
// Every other line is classified by its status code with leading spaces
// trimmed, so " A c.go" reads as index 'A'. With X and Y the first two
// characters of the trimmed line: staged when X is neither ' ' nor '?',
// unstaged when Y is not ' ', untracked when both are '?'. An untracked entry
// therefore also counts as unstaged.
func ParseGitStatus(text string) GitStatus {
	st := DefaultGitStatus()

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 && strings.HasPrefix(line, "##") {
			st.Branch, st.AheadBehind = parseBranchHeader(line)
			continue
		}
		line = strings.TrimLeft(line, " \t")
		if len(line) < 2 {
			continue
		}

		x, y := line[0], line[1]
		if x != ' ' && x != '?' {
			st.Staged++
		}
		if y != ' ' {
			st.Unstaged++
		}
		if x == '?' && y == '?' {
			st.Untracked++
		}
	}

	return st
}

func parseBranchHeader(line string) (branch, aheadBehind string) {
	info := strings.TrimPrefix(strings.TrimPrefix(line, "##"), " ")
	local, remote, hasRemote := strings.Cut(info, "...")
	branch = local
	if !hasRemote {
		// "## main" or "## main [gone]" with no upstream
		branch, _, _ = strings.Cut(local, " ")
		return branch, ""
	}
	if _, rest, ok := strings.Cut(remote, "["); ok {
		aheadBehind = strings.TrimSuffix(rest, "]")
	}
	return branch, aheadBehind
}
