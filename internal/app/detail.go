package app

import (
	"fmt"
	"strings"
)

const (
	// NotAvailable stands in for blank detail fields.
	NotAvailable = "n/a"
	// MaxBodyLines caps the PR body shown in the detail modal.
	MaxBodyLines = 8
	// NothingToInspect is the status set when enter has nothing to open.
	NothingToInspect = "nothing to inspect in this pane"
)

// Detail returns the open detail modal, or nil.
func (s *State) Detail() *DetailModal {
	return s.detail
}

// OpenDetails builds the detail modal for the cursored record of the focused
// pane. With nothing selectable it sets a status message instead.
func (s *State) OpenDetails() {
	idx, ok := s.ListCursor(s.Selected)
	if !ok {
		s.SetStatus(NothingToInspect)
		return
	}

	d, ok := s.buildDetail(s.Selected, idx)
	if !ok {
		return
	}
	s.detail = &d
	s.mode = ModeDetailModal
	s.input = s.input[:0]
}

// CloseDetails dismisses the detail modal.
func (s *State) CloseDetails() {
	s.detail = nil
	if s.mode == ModeDetailModal {
		s.mode = ModeNormal
	}
}

func (s *State) buildDetail(p Pane, idx int) (DetailModal, bool) {
	switch p {
	case PaneSystem:
		procs := s.Data.System.TopProcesses
		if idx >= len(procs) {
			return DetailModal{}, false
		}
		pr := procs[idx]
		return DetailModal{
			Title: fmt.Sprintf("Process %s (%s)", pr.Name, pr.PID),
			Lines: []string{
				"pid: " + orNA(pr.PID),
				"name: " + orNA(pr.Name),
				"command: " + orNA(pr.Command),
				fmt.Sprintf("cpu: %.1f%%", pr.CPUPct),
				fmt.Sprintf("memory: %.1f MB", pr.MemMB),
				"runtime: " + FormatDurationShort(pr.RuntimeSecs),
				fmt.Sprintf("io read: %.1f MB", pr.ReadMB),
				fmt.Sprintf("io write: %.1f MB", pr.WriteMB),
			},
		}, true

	case PanePRs:
		items := s.Data.PRs.Items
		if idx >= len(items) {
			return DetailModal{}, false
		}
		pr := items[idx]
		lines := []string{
			fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			"author: " + orNA(pr.Author),
			"updated: " + orNA(pr.UpdatedAt),
			"url: " + orNA(pr.URL),
			"source: " + orNA(s.Data.PRs.Source),
		}
		if pr.Body != "" {
			lines = append(lines, "", "body:")
			lines = append(lines, firstLines(pr.Body, MaxBodyLines)...)
		}
		return DetailModal{Title: fmt.Sprintf("PR #%d", pr.Number), Lines: lines}, true

	case PaneDocker:
		items := s.Data.Docker.Items
		if idx >= len(items) {
			return DetailModal{}, false
		}
		c := items[idx]
		return DetailModal{
			Title: "Container " + c.Name,
			Lines: []string{
				"id: " + orNA(c.ID),
				"name: " + orNA(c.Name),
				"status: " + orNA(c.Status),
				"image: " + orNA(c.Image),
				"ports: " + orNA(c.Ports),
			},
		}, true

	case PaneAWS:
		items := s.Data.AWS.Items
		if idx >= len(items) {
			return DetailModal{}, false
		}
		in := items[idx]
		return DetailModal{
			Title: "EC2 " + in.ID,
			Lines: []string{
				"name: " + orNA(in.Name),
				"state: " + orNA(in.State),
				"type: " + orNA(in.InstanceType),
				"az: " + orNA(in.AZ),
				"public ip: " + orNA(in.PublicIP),
				"private ip: " + orNA(in.PrivateIP),
				"source: " + orNA(s.Data.AWS.Source),
			},
		}, true

	case PanePlugins:
		outs := s.Data.Plugins
		if idx >= len(outs) {
			return DetailModal{}, false
		}
		o := outs[idx]
		lines := []string{"name: " + orNA(o.Name)}
		if o.Failed() {
			lines = append(lines, "error: "+o.Error)
		} else {
			lines = append(lines, o.Lines...)
		}
		return DetailModal{Title: "Plugin " + o.Name, Lines: lines}, true
	}
	return DetailModal{}, false
}

// FormatDurationShort renders seconds as "3d 04h" when at least a day,
// otherwise "04h 12m".
func FormatDurationShort(secs uint64) string {
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh", days, hours)
	}
	return fmt.Sprintf("%02dh %02dm", hours, mins)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func firstLines(text string, n int) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
