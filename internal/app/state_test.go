package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemSnap(cpu, memUsed, memTotal, diskUsed, diskTotal float64) collect.Snapshot {
	return collect.Snapshot{System: collect.SystemStatus{
		CPUUsage:    cpu,
		MemUsedGB:   memUsed,
		MemTotalGB:  memTotal,
		DiskUsedGB:  diskUsed,
		DiskTotalGB: diskTotal,
	}}
}

func TestNew(t *testing.T) {
	s := New()

	assert.Equal(t, PaneGit, s.Selected)
	assert.Equal(t, ModeNormal, s.Mode())
	assert.True(t, s.Loading)
	assert.False(t, s.HasData)
	assert.Equal(t, collect.UnknownBranch, s.Data.Git.Branch)
	assert.Equal(t, DefaultLayout(), s.Layout)
	assert.Equal(t, config.DefaultAlerts(), s.Alerts)
	assert.Zero(t, s.History.Len())
	assert.Nil(t, s.Detail())
}

func TestApplyConfig(t *testing.T) {
	s := New()
	cfg := config.DefaultConfig()
	cfg.SystemUI.LayoutMode = "  Cockpit "
	cfg.Alerts.CPUWarnPct = 10
	cfg.Alerts.CPUCritPct = 20

	s.ApplyConfig(cfg)

	assert.Equal(t, LayoutCockpit, s.LayoutMode)
	assert.Equal(t, 10.0, s.Alerts.CPUWarnPct)

	s.ApplyConfig(nil)
	assert.Equal(t, LayoutCockpit, s.LayoutMode, "nil config is ignored")
}

func TestUpdateData_DerivedValues(t *testing.T) {
	s := New()
	s.LastError = "old failure"

	s.UpdateData(systemSnap(40.7, 4, 16, 50, 200))

	assert.False(t, s.Loading)
	assert.True(t, s.HasData)
	assert.Empty(t, s.LastError)
	assert.Equal(t, FlashTicks, s.Flash)
	assert.Equal(t, PeakHoldTicks, s.PeakHold)
	assert.Equal(t, []float64{40}, s.History.CPU())
	assert.Equal(t, []float64{25}, s.History.Mem())
	assert.Equal(t, []float64{25}, s.History.Disk())
	assert.InDelta(t, 40.7, s.CPUDelta, 1e-9)
	assert.InDelta(t, 25, s.MemDelta, 1e-9)
	assert.InDelta(t, 40.7, s.CPUPeak, 1e-9, "cpu peak keeps the fraction")
	assert.Equal(t, 25.0, s.MemPeak)

	s.UpdateData(systemSnap(10, 5, 16, 50, 200))

	assert.InDelta(t, -30.7, s.CPUDelta, 1e-9)
	// 31.25% truncates to 31 for the delta, compared against the unrounded 25
	assert.InDelta(t, 6, s.MemDelta, 1e-9)
	assert.InDelta(t, 0, s.DiskDelta, 1e-9)
	assert.InDelta(t, 40.7, s.CPUPeak, 1e-9, "peak does not drop on lower readings")
	assert.Equal(t, 31.0, s.MemPeak)
	assert.Equal(t, []float64{40, 10}, s.History.CPU())
}

func TestUpdateData_ClampsSamples(t *testing.T) {
	s := New()
	s.UpdateData(systemSnap(130, 20, 16, 1, 0))

	assert.Equal(t, []float64{100}, s.History.CPU())
	assert.Equal(t, []float64{100}, s.History.Mem())
	assert.Equal(t, []float64{0}, s.History.Disk(), "unknown disk total reads as 0%")
}

func TestUpdateData_ReplacesWholesale(t *testing.T) {
	s := New()
	s.UpdateData(collect.Snapshot{Plugins: []plugin.Output{{Name: "a"}}, Docker: collect.DockerStatus{Error: "x"}})
	s.UpdateData(collect.Snapshot{})

	assert.Empty(t, s.Data.Plugins)
	assert.Empty(t, s.Data.Docker.Error)
}

func TestTick_SpinnerAndFlash(t *testing.T) {
	s := New()
	s.UpdateData(systemSnap(50, 8, 16, 0, 0))

	for i := 0; i < 10; i++ {
		s.Tick()
	}

	assert.Equal(t, 10%SpinnerFrames, s.Spinner)
	assert.Zero(t, s.Flash)
}

func TestTick_PeakHoldThenDecay(t *testing.T) {
	s := New()
	s.UpdateData(systemSnap(50, 8, 16, 10, 100))

	for i := 0; i < PeakHoldTicks; i++ {
		s.Tick()
	}
	assert.Equal(t, 50.0, s.CPUPeak, "peak holds for the full hold period")
	assert.Equal(t, 50.0, s.MemPeak)
	assert.Zero(t, s.PeakHold)

	s.Tick()
	assert.InDelta(t, 49.6, s.CPUPeak, 1e-9)
	assert.InDelta(t, 49.75, s.MemPeak, 1e-9)
	assert.Equal(t, 10.0, s.DiskPeak, "disk peak does not decay")
}

func TestTick_NeverNegativeNeverOverfills(t *testing.T) {
	s := New()
	s.UpdateData(systemSnap(3, 1, 100, 0, 0))

	for i := 0; i < 1000; i++ {
		s.Tick()
		require.GreaterOrEqual(t, s.CPUPeak, 0.0)
		require.GreaterOrEqual(t, s.MemPeak, 0.0)
		require.LessOrEqual(t, s.History.Len(), HistorySize)
	}
	assert.Zero(t, s.CPUPeak)
	assert.Zero(t, s.MemPeak)
}

func TestHistoryBoundedAcrossUpdates(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		s.UpdateData(systemSnap(float64(i), 0, 0, 0, 0))
	}

	cpu := s.History.CPU()
	require.Len(t, cpu, HistorySize)
	assert.Equal(t, 36.0, cpu[0], "oldest samples are evicted first")
	assert.Equal(t, 99.0, cpu[len(cpu)-1])
}

func TestSetStatusErrorCompactFocus(t *testing.T) {
	s := New()

	s.SetStatus("hello")
	s.SetError("boom")
	assert.Equal(t, "hello", s.Status)
	assert.Equal(t, "boom", s.LastError)

	assert.True(t, s.ToggleCompact())
	assert.False(t, s.ToggleCompact())

	s.Focus(PaneAWS)
	assert.Equal(t, PaneAWS, s.Selected)
}

func TestAlerts(t *testing.T) {
	s := New()
	s.UpdateData(systemSnap(70, 15, 16, 0, 0))

	assert.Equal(t, AlertWarn, s.CPUAlert())
	assert.Equal(t, AlertCritical, s.MemAlert())

	s.UpdateData(systemSnap(10, 1, 16, 0, 0))
	assert.Equal(t, AlertOK, s.CPUAlert())
	assert.Equal(t, AlertOK, s.MemAlert())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		v    float64
		want AlertLevel
	}{
		{64.9, AlertOK},
		{65, AlertWarn},
		{84.9, AlertWarn},
		{85, AlertCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.v, 65, 85), "v=%v", tt.v)
	}
}

func TestStaleAlert(t *testing.T) {
	s := New()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, AlertCritical, s.StaleAlert(now), "no data yet")
	_, ok := s.DataAge(now)
	assert.False(t, ok)

	s.UpdateData(collect.Snapshot{CompletedAt: now})
	assert.Equal(t, AlertOK, s.StaleAlert(now.Add(2*time.Second)))
	assert.Equal(t, AlertWarn, s.StaleAlert(now.Add(2500*time.Millisecond)))
	assert.Equal(t, AlertCritical, s.StaleAlert(now.Add(5*time.Second)))
	assert.Equal(t, AlertOK, s.StaleAlert(now.Add(-time.Second)), "clock skew counts as fresh")
}

func TestHealthScore(t *testing.T) {
	s := New()
	assert.Zero(t, s.HealthScore())

	snap := systemSnap(100, 16, 16, 0, 0)
	snap.System.LoadAvg = [3]float64{16, 0, 0}
	s.UpdateData(snap)
	assert.Equal(t, 100, s.HealthScore())

	snap = systemSnap(40, 8, 16, 0, 0)
	snap.System.LoadAvg = [3]float64{2, 0, 0}
	s.UpdateData(snap)
	// 18 + 17 + 5
	assert.Equal(t, 40, s.HealthScore())

	label, level := HealthLabel(40)
	assert.Equal(t, "BUSY", label)
	assert.Equal(t, AlertWarn, level)
	label, _ = HealthLabel(10)
	assert.Equal(t, "CALM", label)
	label, _ = HealthLabel(90)
	assert.Equal(t, "HOT", label)
}

func dockerSnap(n int) collect.Snapshot {
	items := make([]collect.DockerContainer, n)
	for i := range items {
		items[i] = collect.DockerContainer{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("svc-%d", i)}
	}
	return collect.Snapshot{Docker: collect.DockerStatus{Items: items}}
}

func TestUpdateData_ClampsCursorWhenListShrinks(t *testing.T) {
	s := New()
	s.Focus(PaneDocker)

	s.UpdateData(dockerSnap(5))
	s.MoveListCursor(10)
	cur, ok := s.ListCursor(PaneDocker)
	require.True(t, ok)
	assert.Equal(t, 4, cur)

	s.UpdateData(dockerSnap(2))
	cur, ok = s.ListCursor(PaneDocker)
	require.True(t, ok)
	assert.Equal(t, 1, cur)
	assert.True(t, s.CanScrollList())

	s.UpdateData(dockerSnap(0))
	_, ok = s.ListCursor(PaneDocker)
	assert.False(t, ok)
	assert.False(t, s.CanScrollList())

	// A list that grows back starts from the clamped position.
	s.UpdateData(dockerSnap(3))
	cur, ok = s.ListCursor(PaneDocker)
	require.True(t, ok)
	assert.Equal(t, 0, cur)
}
