package collect

import (
	"context"
	"errors"
	"testing"

	"github.com/devdash/devdash/internal/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitStatus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want GitStatus
	}{
		{
			name: "branch with upstream and mixed changes",
			text: "## main...origin/main [ahead 2]\nM  a.go\n?? b.go\n A c.go\n",
			// a.go and c.go staged; b.go untracked and unstaged
			want: GitStatus{Branch: "main", AheadBehind: "ahead 2", Staged: 2, Unstaged: 1, Untracked: 1},
		},
		{
			name: "staged and modified in worktree",
			text: "## feature/x...origin/feature/x [ahead 1, behind 3]\nMM both.go\nA  new.go\nR  old.go -> new2.go\n",
			want: GitStatus{Branch: "feature/x", AheadBehind: "ahead 1, behind 3", Staged: 3, Unstaged: 1},
		},
		{
			name: "in sync with upstream",
			text: "## main...origin/main\n",
			want: GitStatus{Branch: "main"},
		},
		{
			name: "no upstream",
			text: "## scratch\n?? notes.txt\n",
			want: GitStatus{Branch: "scratch", Unstaged: 1, Untracked: 1},
		},
		{
			name: "no header keeps default branch",
			text: " M a.go\n",
			want: GitStatus{Branch: UnknownBranch, Staged: 1},
		},
		{
			name: "header only counts on first line",
			text: "M  a.go\n## not-a-header\n",
			want: GitStatus{Branch: UnknownBranch, Staged: 2, Unstaged: 1},
		},
		{
			name: "short lines skipped",
			text: "## main\nM\n\n",
			want: GitStatus{Branch: "main"},
		},
		{
			name: "empty output",
			text: "",
			want: GitStatus{Branch: UnknownBranch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGitStatus(tt.text))
		})
	}
}

func TestGitStatusDirty(t *testing.T) {
	assert.False(t, DefaultGitStatus().Dirty())
	assert.True(t, GitStatus{Untracked: 1}.Dirty())
}

func TestCollectGit(t *testing.T) {
	t.Run("runs porcelain status in repo", func(t *testing.T) {
		var gotArgs []string
		run := exec.RunnerFunc(func(_ context.Context, _, name string, args ...string) (string, error) {
			require.Equal(t, "git", name)
			gotArgs = args
			return "## dev...origin/dev [behind 1]\n", nil
		})

		st := CollectGit(context.Background(), run, "/src/app")

		assert.Equal(t, []string{"-C", "/src/app", "status", "--porcelain", "--branch"}, gotArgs)
		assert.Equal(t, "dev", st.Branch)
		assert.Equal(t, "behind 1", st.AheadBehind)
		assert.Empty(t, st.Error)
	})

	t.Run("failure yields default status with error", func(t *testing.T) {
		run := exec.RunnerFunc(func(context.Context, string, string, ...string) (string, error) {
			return "", errors.New("fatal: not a git repository")
		})

		st := CollectGit(context.Background(), run, "/tmp")

		assert.Equal(t, UnknownBranch, st.Branch)
		assert.Zero(t, st.Staged+st.Unstaged+st.Untracked)
		assert.Equal(t, "fatal: not a git repository", st.Error)
	})
}
