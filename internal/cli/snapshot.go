package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/plugin"
	"github.com/devdash/devdash/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// SnapshotOptions holds options for the snapshot command.
type SnapshotOptions struct {
	ConfigPath string
	Repo       string
	JSON       bool
}

var (
	snapshotJSON bool
	snapshotRepo string
)

// snapshotCmd collects one cycle and prints it
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Collect once and print the result",
	Long: `Run a single collection cycle and print what the dashboard would show.

Useful for scripts, CI logs, or checking your config without opening the TUI.
Every source is collected even if some fail; failures appear next to the
source they belong to.

Examples:
  devdash snapshot
  devdash snapshot --json | jq '.data.system.cpu_usage'
  devdash snapshot --repo ~/src/api`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), collect.NewCollector(), SnapshotOptions{
			ConfigPath: cfgFile,
			Repo:       snapshotRepo,
			JSON:       snapshotJSON,
		})
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "print the snapshot as JSON")
	snapshotCmd.Flags().StringVar(&snapshotRepo, "repo", "", "repository to report on (overrides repo_path)")
	rootCmd.AddCommand(snapshotCmd)
}

// snapshotCommand loads config, runs one cycle through c and writes it to w.
func snapshotCommand(ctx context.Context, w io.Writer, c *collect.Collector, opts SnapshotOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, _, err := loadRuntimeConfig(opts.ConfigPath, 0, opts.Repo)
	if err != nil {
		if opts.JSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	snap := c.CollectAll(ctx, cfg, plugin.NewRunner(cfg.Plugins))
	if opts.JSON {
		return WriteJSONSuccess(w, snap)
	}
	_, err = io.WriteString(w, formatSnapshot(snap))
	return err
}

// formatSnapshot renders a snapshot as titled sections of tables.
func formatSnapshot(s collect.Snapshot) string {
	var b strings.Builder

	writeSection(&b, "GIT", keyValueTable([][2]string{
		{"Branch", s.Git.Branch},
		{"Tracking", orNA(s.Git.AheadBehind)},
		{"Staged", fmt.Sprintf("%d", s.Git.Staged)},
		{"Unstaged", fmt.Sprintf("%d", s.Git.Unstaged)},
		{"Untracked", fmt.Sprintf("%d", s.Git.Untracked)},
	}), s.Git.Error)

	sys := s.System
	writeSection(&b, "SYSTEM", keyValueTable([][2]string{
		{"CPU", fmt.Sprintf("%.1f%% (%d cores)", sys.CPUUsage, len(sys.CPUCores))},
		{"Memory", fmt.Sprintf("%.1f/%.1f GB (%.0f%%)", sys.MemUsedGB, sys.MemTotalGB, sys.MemPercent())},
		{"Swap", fmt.Sprintf("%.1f/%.1f GB (%.0f%%)", sys.SwapUsedGB, sys.SwapTotalGB, sys.SwapPercent())},
		{"Disk", fmt.Sprintf("%.1f/%.1f GB (%.0f%%)", sys.DiskUsedGB, sys.DiskTotalGB, sys.DiskPercent())},
		{"Load", fmt.Sprintf("%.2f %.2f %.2f", sys.LoadAvg[0], sys.LoadAvg[1], sys.LoadAvg[2])},
		{"Uptime", app.FormatDurationShort(sys.UptimeSecs)},
		{"Processes", humanize.Comma(int64(sys.ProcessCount))},
		{"Network", fmt.Sprintf("rx %s / tx %s", mbBytes(sys.NetworkRxMB), mbBytes(sys.NetworkTxMB))},
	}), sys.Error)

	if len(sys.TopProcesses) > 0 {
		rows := make([][]string, len(sys.TopProcesses))
		for i, p := range sys.TopProcesses {
			rows[i] = []string{p.PID, p.Name, fmt.Sprintf("%.1f%%", p.CPUPct), mbBytes(p.MemMB), app.FormatDurationShort(p.RuntimeSecs)}
		}
		writeSection(&b, "TOP PROCESSES", ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "PID", Width: 8},
			{Title: "Name", Width: 24},
			{Title: "CPU", Width: 8},
			{Title: "Memory", Width: 10},
			{Title: "Runtime", Width: 10},
		}, rows), "")
	}

	dockerRows := make([][]string, 0, len(s.Docker.Items))
	for _, c := range s.Docker.Items {
		dockerRows = append(dockerRows, []string{c.Name, c.Status, c.Image, c.Ports})
	}
	writeSection(&b, "DOCKER", listOrPlaceholder([]ui.TableColumn{
		{Title: "Name", Width: 24},
		{Title: "Status", Width: 22},
		{Title: "Image", Width: 30},
		{Title: "Ports", Width: 24},
	}, dockerRows, s.Docker.Running), s.Docker.Error)

	awsRows := make([][]string, 0, len(s.AWS.Items))
	for _, in := range s.AWS.Items {
		awsRows = append(awsRows, []string{in.ID, in.State, in.Name, in.InstanceType, in.AZ})
	}
	writeSection(&b, "AWS EC2 ("+orNA(s.AWS.Source)+")", listOrPlaceholder([]ui.TableColumn{
		{Title: "ID", Width: 20},
		{Title: "State", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 12},
		{Title: "AZ", Width: 12},
	}, awsRows, s.AWS.Instances), s.AWS.Error)

	prRows := make([][]string, 0, len(s.PRs.Items))
	for _, pr := range s.PRs.Items {
		prRows = append(prRows, []string{fmt.Sprintf("#%d", pr.Number), pr.Title, "@" + pr.Author, relativeTime(pr.UpdatedAt)})
	}
	writeSection(&b, "OPEN PRS ("+orNA(s.PRs.Source)+")", listOrPlaceholder([]ui.TableColumn{
		{Title: "#", Width: 7},
		{Title: "Title", Width: 48},
		{Title: "Author", Width: 18},
		{Title: "Updated", Width: 16},
	}, prRows, s.PRs.Open), s.PRs.Error)

	pluginRows := make([][]string, len(s.Plugins))
	for i, p := range s.Plugins {
		status, sample := "ok", ""
		if len(p.Lines) > 0 {
			sample = p.Lines[0]
		}
		if p.Failed() {
			status, sample = "failed", p.Error
		}
		pluginRows[i] = []string{p.Name, status, sample}
	}
	writeSection(&b, "PLUGINS", listOrPlaceholder([]ui.TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 8},
		{Title: "Output", Width: 60},
	}, pluginRows, []string{"No plugins configured"}), "")

	if !s.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "collected at %s (cycle %s)\n", s.CompletedAt.Local().Format(time.RFC3339), s.CycleID)
	}
	return b.String()
}

func writeSection(b *strings.Builder, title, body, errMsg string) {
	b.WriteString(ui.Bold(ui.ColorAccentBright).Render(title))
	b.WriteString("\n")
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	if errMsg != "" {
		b.WriteString(ui.Fg(ui.ColorBad).Render(ui.SymbolFail + " " + errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func keyValueTable(pairs [][2]string) string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Field", Width: 12},
		{Title: "Value", Width: 48},
	}, rows)
}

// listOrPlaceholder renders rows as a table, or the collector's display lines
// when there are no structured rows (e.g. "No running containers").
func listOrPlaceholder(cols []ui.TableColumn, rows [][]string, fallback []string) string {
	if len(rows) > 0 {
		return ui.RenderSimpleTable(cols, rows)
	}
	lines := make([]string, len(fallback))
	for i, l := range fallback {
		lines[i] = ui.SymbolBullet + strings.ReplaceAll(l, "\t", "  ")
	}
	return strings.Join(lines, "\n")
}

// relativeTime renders an RFC 3339 timestamp as "3 hours ago", or returns it
// unchanged when it does not parse.
func relativeTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return orNA(ts)
	}
	return humanize.Time(t)
}

// mbBytes formats a megabyte count with SI units.
func mbBytes(mb float64) string {
	if mb <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(mb * 1e6))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return app.NotAvailable
	}
	return s
}
