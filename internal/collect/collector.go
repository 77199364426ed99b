package collect

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/exec"
	"github.com/devdash/devdash/internal/logger"
	"github.com/devdash/devdash/internal/plugin"
	"github.com/google/uuid"
)

const (
	// CommandTimeout bounds each external CLI a collector runs.
	CommandTimeout = 20 * time.Second
	// HTTPTimeout bounds the GitHub API request.
	HTTPTimeout = 10 * time.Second
	// DisplayLimit is how many entries the abbreviated display lists hold.
	DisplayLimit = 8
)

var logCollect = logger.NewEnvLogger("[collect]")

// Collector runs every source once per cycle. Each source writes only its own
// result; the snapshot is assembled after all of them have returned.
type Collector struct {
	Runner exec.Runner
	HTTP   *http.Client

	// System samples host metrics. Defaults to the process-wide sampler.
	System func(ctx context.Context) SystemStatus

	// Now stamps CompletedAt. Defaults to time.Now.
	Now func() time.Time

	Log logger.Logger
}

// NewCollector returns a Collector wired to real processes, HTTP and the
// host sampler.
func NewCollector() *Collector {
	return &Collector{
		Runner: exec.LocalRunner{},
		HTTP:   &http.Client{Timeout: HTTPTimeout},
		System: CollectSystem,
		Now:    time.Now,
		Log:    logCollect,
	}
}

// CollectAll gathers one Snapshot. The five collectors and the plugin set run
// concurrently; a failure in one source never affects another. There is no
// cycle-wide timeout, each source bounds itself.
func (c *Collector) CollectAll(ctx context.Context, cfg *config.Config, plugins *plugin.Runner) Snapshot {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	start := time.Now()

	var (
		wg       sync.WaitGroup
		git      GitStatus
		system   SystemStatus
		docker   DockerStatus
		aws      AWSStatus
		prs      PRStatus
		pluginsO []plugin.Output
	)

	wg.Add(6)
	go func() {
		defer wg.Done()
		git = CollectGit(ctx, c.Runner, cfg.RepoPath)
	}()
	go func() {
		defer wg.Done()
		system = c.System(ctx)
	}()
	go func() {
		defer wg.Done()
		docker = CollectDocker(ctx, c.Runner)
	}()
	go func() {
		defer wg.Done()
		aws = CollectAWS(ctx, c.Runner, cfg.AWS)
	}()
	go func() {
		defer wg.Done()
		pc := PRCollector{HTTP: c.HTTP, Runner: c.Runner}
		prs = pc.Collect(ctx, cfg.RepoPath, cfg.GitHub)
	}()
	go func() {
		defer wg.Done()
		pluginsO = plugins.CollectAll(ctx)
	}()
	wg.Wait()

	snap := Snapshot{
		Git:         git,
		System:      system,
		Docker:      docker,
		AWS:         aws,
		PRs:         prs,
		Plugins:     pluginsO,
		CompletedAt: c.Now(),
		CycleID:     uuid.NewString(),
	}

	c.Log.Debug("cycle %s collected in %s", snap.CycleID, time.Since(start).Round(time.Millisecond))
	for src, msg := range snap.Errors() {
		c.Log.Debug("cycle %s %s: %s", snap.CycleID, src, msg)
	}
	return snap
}
