package collect

import (
	"context"
	"time"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/plugin"
)

// ChannelCapacity is the buffer size of every loop channel.
const ChannelCapacity = 8

// Control is a message from the UI to the collection loop.
type Control interface {
	isControl()
}

// RefreshNow asks for an immediate cycle.
type RefreshNow struct{}

// ReloadRuntime swaps the loop's config and plugin set and restarts the
// refresh ticker with the new interval, then runs a cycle.
type ReloadRuntime struct {
	Config  *config.Config
	Plugins *plugin.Runner
}

func (RefreshNow) isControl()    {}
func (ReloadRuntime) isControl() {}

// CycleFunc gathers one snapshot. Collector.CollectAll satisfies it.
type CycleFunc func(ctx context.Context, cfg *config.Config, plugins *plugin.Runner) Snapshot

// Loop drives periodic collection in its own goroutine and talks to the UI
// only through its three channels.
type Loop struct {
	// Loading carries true when a cycle starts and false when it ends.
	Loading chan bool
	// Snapshots carries one Snapshot per completed cycle.
	Snapshots chan Snapshot
	// Control accepts RefreshNow and ReloadRuntime. Closing it stops the loop.
	Control chan Control

	cfg     *config.Config
	plugins *plugin.Runner
	cycle   CycleFunc
	cache   *Cache
}

// NewLoop creates a loop that will use collect for each cycle.
func NewLoop(cfg *config.Config, plugins *plugin.Runner, cycle CycleFunc) *Loop {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Loop{
		Loading:   make(chan bool, ChannelCapacity),
		Snapshots: make(chan Snapshot, ChannelCapacity),
		Control:   make(chan Control, ChannelCapacity),
		cfg:       cfg.Clone(),
		plugins:   plugins,
		cycle:     cycle,
		cache:     NewCache(),
	}
}

// SetCache replaces the staleness cache, mainly so tests can inject a clock.
func (l *Loop) SetCache(c *Cache) {
	l.cache = c
}

// Run blocks until ctx is cancelled or Control is closed. A cycle starts on
// every tick or control message; cycles never overlap because the loop does
// not read another trigger until the current snapshot has been handed off.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case msg, ok := <-l.Control:
			if !ok {
				return
			}
			if reload, isReload := msg.(ReloadRuntime); isReload {
				if reload.Config != nil {
					l.cfg = reload.Config.Clone()
				}
				l.plugins = reload.Plugins
				ticker.Reset(l.cfg.RefreshInterval())
				logCollect.Debug("runtime reloaded: refresh=%s plugins=%d", l.cfg.RefreshInterval(), l.plugins.Len())
			}
		}

		if !l.send(ctx, l.Loading, true) {
			return
		}
		snap := l.cycle(ctx, l.cfg, l.plugins)
		l.cache.Apply(&snap, l.cfg.CacheWindow())
		if !l.send(ctx, l.Loading, false) {
			return
		}

		select {
		case l.Snapshots <- snap:
		case <-ctx.Done():
			return
		}
	}
}

func (l *Loop) send(ctx context.Context, ch chan bool, v bool) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// TrySend queues msg without blocking. It returns false when the control
// queue is full.
func (l *Loop) TrySend(msg Control) bool {
	select {
	case l.Control <- msg:
		return true
	default:
		return false
	}
}
