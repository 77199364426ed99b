package app

import (
	"math"
	"time"
)

// Level grades v against a warn/critical pair: below warn is OK, below
// critical is a warning, anything else is critical.
func Level(v, warn, crit float64) AlertLevel {
	switch {
	case v < warn:
		return AlertOK
	case v < crit:
		return AlertWarn
	default:
		return AlertCritical
	}
}

// CPUAlert grades the latest CPU reading.
func (s *State) CPUAlert() AlertLevel {
	return Level(clampPct(s.Data.System.CPUUsage), s.Alerts.CPUWarnPct, s.Alerts.CPUCritPct)
}

// MemAlert grades the latest memory reading.
func (s *State) MemAlert() AlertLevel {
	return Level(clampPct(s.Data.System.MemPercent()), s.Alerts.MemWarnPct, s.Alerts.MemCritPct)
}

// DataAge is how long ago the held snapshot completed. ok is false before
// the first snapshot arrives.
func (s *State) DataAge(now time.Time) (age time.Duration, ok bool) {
	if !s.HasData || s.Data.CompletedAt.IsZero() {
		return 0, false
	}
	return max(now.Sub(s.Data.CompletedAt), 0), true
}

// StaleAlert grades the snapshot's age. Having no snapshot at all is
// critical.
func (s *State) StaleAlert(now time.Time) AlertLevel {
	age, ok := s.DataAge(now)
	if !ok {
		return AlertCritical
	}
	return Level(age.Seconds(), s.Alerts.StaleWarnSecs, s.Alerts.StaleCritSecs)
}

// HealthScore folds CPU, memory and one-minute load into a 0-100 busyness
// score weighted 45/35/20. Load saturates at 8.
func (s *State) HealthScore() int {
	sys := s.Data.System
	c := int(clampPct(sys.CPUUsage) * 0.45)
	m := int(clampPct(sys.MemPercent()) * 0.35)
	l := int(min(max(sys.LoadAvg[0], 0), 8) / 8 * 20)
	return min(c+m+l, 100)
}

// HealthLabel names a HealthScore band.
func HealthLabel(score int) (string, AlertLevel) {
	switch {
	case score < 38:
		return "CALM", AlertOK
	case score < 68:
		return "BUSY", AlertWarn
	default:
		return "HOT", AlertCritical
	}
}

func clampPct(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 100)
}
