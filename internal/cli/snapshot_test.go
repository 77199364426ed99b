package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/exec"
	"github.com/devdash/devdash/internal/logger"
	"github.com/devdash/devdash/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshotTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleSnapshot() collect.Snapshot {
	return collect.Snapshot{
		Git: collect.GitStatus{Branch: "main", AheadBehind: "ahead 2", Staged: 1, Unstaged: 3, Untracked: 4},
		System: collect.SystemStatus{
			CPUUsage:     41.5,
			CPUCores:     []float64{40, 43},
			MemUsedGB:    6,
			MemTotalGB:   16,
			DiskUsedGB:   200,
			DiskTotalGB:  500,
			LoadAvg:      [3]float64{1.25, 0.5, 0.25},
			UptimeSecs:   93600,
			ProcessCount: 1234,
			NetworkRxMB:  1500,
			TopProcesses: []collect.ProcessStat{{PID: "42", Name: "postgres", CPUPct: 12.5, MemMB: 300}},
		},
		Docker: collect.DockerStatus{
			Running: []string{"web | Up 2 hours | nginx"},
			Items:   []collect.DockerContainer{{ID: "abc", Name: "web", Status: "Up 2 hours", Image: "nginx", Ports: "80/tcp"}},
		},
		AWS: collect.AWSStatus{
			Instances: []string{"No instances"},
			Items:     []collect.AWSInstance{},
			Source:    "aws-cli (dev/us-east-1)",
			Error:     "credentials expired",
		},
		PRs: collect.PRStatus{
			Open:   []string{"#7 Fix flake (@ana)"},
			Items:  []collect.PRItem{{Number: 7, Title: "Fix flake", Author: "ana", UpdatedAt: "not-a-time"}},
			Source: "gh-cli",
		},
		Plugins: []plugin.Output{
			{Name: "queue", Lines: []string{"depth 3"}},
			{Name: "broken", Error: "exit status 2"},
		},
		CompletedAt: snapshotTime,
		CycleID:     "cycle-1",
	}
}

func TestFormatSnapshot(t *testing.T) {
	out := formatSnapshot(sampleSnapshot())

	for _, want := range []string{
		"GIT", "main", "ahead 2",
		"SYSTEM", "41.5% (2 cores)", "1,234", "1d 02h", "rx 1.5 GB / tx 0 B",
		"TOP PROCESSES", "postgres", "12.5%", "300 MB",
		"DOCKER", "web", "nginx", "80/tcp",
		"AWS EC2 (aws-cli (dev/us-east-1))", "No instances", "[X] credentials expired",
		"OPEN PRS (gh-cli)", "#7", "Fix flake", "@ana", "not-a-time",
		"PLUGINS", "queue", "depth 3", "broken", "failed", "exit status 2",
		"(cycle cycle-1)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatSnapshot_Empty(t *testing.T) {
	out := formatSnapshot(collect.Snapshot{
		Git:    collect.DefaultGitStatus(),
		Docker: collect.DockerStatus{Running: []string{collect.NoContainers}},
	})

	assert.Contains(t, out, collect.NoContainers)
	assert.Contains(t, out, "No plugins configured")
	assert.Contains(t, out, "AWS EC2 (n/a)")
	assert.NotContains(t, out, "TOP PROCESSES")
	assert.NotContains(t, out, "collected at")
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "n/a", relativeTime(""))
	assert.Equal(t, "yesterday", relativeTime("yesterday"))
	ts := time.Now().Add(-3 * time.Hour).UTC().Format(time.RFC3339)
	assert.Equal(t, "3 hours ago", relativeTime(ts))
}

func TestMBBytes(t *testing.T) {
	assert.Equal(t, "0 B", mbBytes(0))
	assert.Equal(t, "0 B", mbBytes(-4))
	assert.Equal(t, "12 MB", mbBytes(12.3))
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "n/a", orNA("  "))
	assert.Equal(t, "x", orNA("x"))
}

// failingCollector answers git and fails every other CLI.
func failingCollector() *collect.Collector {
	run := exec.RunnerFunc(func(_ context.Context, _, name string, _ ...string) (string, error) {
		if name == "git" {
			return "## feature\n?? new.go\n", nil
		}
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	})
	return &collect.Collector{
		Runner: run,
		HTTP:   &http.Client{},
		System: func(context.Context) collect.SystemStatus {
			return collect.SystemStatus{CPUUsage: 9, MemUsedGB: 2, MemTotalGB: 8}
		},
		Now: func() time.Time { return snapshotTime },
		Log: logger.NewBufferLogger(),
	}
}

func TestSnapshotCommand_Text(t *testing.T) {
	for _, k := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE"} {
		t.Setenv(k, "")
	}
	path := writeTestConfig(t, nil)

	var buf bytes.Buffer
	err := snapshotCommand(context.Background(), &buf, failingCollector(), SnapshotOptions{ConfigPath: path})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "feature")
	assert.Contains(t, out, "PR auth/setup needed")
	assert.Contains(t, out, "collected at")
}

func TestSnapshotCommand_JSON(t *testing.T) {
	for _, k := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE"} {
		t.Setenv(k, "")
	}
	path := writeTestConfig(t, func(c *config.Config) {
		c.Plugins = []config.PluginConfig{{Name: "hello", Command: "echo", Args: []string{"hi"}}}
	})

	var buf bytes.Buffer
	err := snapshotCommand(context.Background(), &buf, failingCollector(), SnapshotOptions{ConfigPath: path, JSON: true})
	require.NoError(t, err)

	var env struct {
		Success bool             `json:"success"`
		Data    collect.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "feature", env.Data.Git.Branch)
	assert.Equal(t, 1, env.Data.Git.Untracked)
	assert.Equal(t, 9.0, env.Data.System.CPUUsage)
	assert.Equal(t, "none", env.Data.PRs.Source)
	assert.NotEmpty(t, env.Data.Docker.Error)
	require.Len(t, env.Data.Plugins, 1)
	assert.Equal(t, "hello", env.Data.Plugins[0].Name)
}

func TestSnapshotCommand_ConfigErrorJSON(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	var buf bytes.Buffer
	err := snapshotCommand(context.Background(), &buf, failingCollector(), SnapshotOptions{ConfigPath: missing, JSON: true})
	require.Error(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfigNotFound, env.Error.Code)
}

func TestSnapshotCommand_RepoOverride(t *testing.T) {
	path := writeTestConfig(t, nil)
	var gitArgs []string
	c := failingCollector()
	c.Runner = exec.RunnerFunc(func(_ context.Context, _, name string, args ...string) (string, error) {
		if name == "git" {
			gitArgs = args
			return "## main\n", nil
		}
		return "", fmt.Errorf("missing")
	})

	err := snapshotCommand(context.Background(), &bytes.Buffer{}, c, SnapshotOptions{ConfigPath: path, Repo: "/srv/api"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(gitArgs), 2)
	assert.Equal(t, []string{"-C", "/srv/api"}, gitArgs[:2])
}
