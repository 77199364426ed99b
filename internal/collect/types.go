package collect

import (
	"fmt"
	"time"

	"github.com/devdash/devdash/internal/plugin"
)

// Snapshot is everything gathered in one collection cycle. It is produced by
// the collection loop, passed by value over a channel and replaced wholesale
// by the dashboard state.
type Snapshot struct {
	Git         GitStatus       `json:"git"`
	System      SystemStatus    `json:"system"`
	Docker      DockerStatus    `json:"docker"`
	AWS         AWSStatus       `json:"aws"`
	PRs         PRStatus        `json:"prs"`
	Plugins     []plugin.Output `json:"plugins"`
	CompletedAt time.Time       `json:"completed_at"`

	// CycleID correlates log lines belonging to one cycle.
	CycleID string `json:"cycle_id"`
}

// Clone returns a deep copy; no slice is shared with the original.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.System = s.System.Clone()
	out.Docker = s.Docker.Clone()
	out.AWS = s.AWS.Clone()
	out.PRs = s.PRs.Clone()
	out.Plugins = make([]plugin.Output, len(s.Plugins))
	for i, p := range s.Plugins {
		out.Plugins[i] = p.Clone()
	}
	return out
}

// Errors lists the per-source failures of a snapshot keyed by source name.
func (s Snapshot) Errors() map[string]string {
	errs := make(map[string]string)
	add := func(k, v string) {
		if v != "" {
			errs[k] = v
		}
	}
	add("git", s.Git.Error)
	add("system", s.System.Error)
	add("docker", s.Docker.Error)
	add("aws", s.AWS.Error)
	add("prs", s.PRs.Error)
	for _, p := range s.Plugins {
		add("plugin:"+p.Name, p.Error)
	}
	return errs
}

// UnknownBranch is reported when git status could not be read.
const UnknownBranch = "n/a"

// GitStatus summarises the working tree of the configured repository.
type GitStatus struct {
	Branch      string `json:"branch"`
	AheadBehind string `json:"ahead_behind"`
	Staged      int    `json:"staged"`
	Unstaged    int    `json:"unstaged"`
	Untracked   int    `json:"untracked"`
	Error       string `json:"error,omitempty"`
}

// DefaultGitStatus is the status before anything has been read.
func DefaultGitStatus() GitStatus {
	return GitStatus{Branch: UnknownBranch}
}

// Dirty reports whether the tree has any changes.
func (g GitStatus) Dirty() bool {
	return g.Staged+g.Unstaged+g.Untracked > 0
}

// SystemStatus is a host metrics sample.
type SystemStatus struct {
	CPUUsage       float64       `json:"cpu_usage"`
	CPUCores       []float64     `json:"cpu_cores"`
	MemUsedGB      float64       `json:"mem_used_gb"`
	MemTotalGB     float64       `json:"mem_total_gb"`
	MemAvailableGB float64       `json:"mem_available_gb"`
	SwapUsedGB     float64       `json:"swap_used_gb"`
	SwapTotalGB    float64       `json:"swap_total_gb"`
	LoadAvg        [3]float64    `json:"load_avg"`
	UptimeSecs     uint64        `json:"uptime_secs"`
	ProcessCount   int           `json:"process_count"`
	TopProcesses   []ProcessStat `json:"top_processes"`
	DiskTotalGB    float64       `json:"disk_total_gb"`
	DiskUsedGB     float64       `json:"disk_used_gb"`
	NetworkRxMB    float64       `json:"network_rx_mb"`
	NetworkTxMB    float64       `json:"network_tx_mb"`
	Error          string        `json:"error,omitempty"`
}

// MemPercent is used/total as a percentage, 0 when total is unknown.
func (s SystemStatus) MemPercent() float64 {
	return percent(s.MemUsedGB, s.MemTotalGB)
}

// DiskPercent is used/total as a percentage, 0 when total is unknown.
func (s SystemStatus) DiskPercent() float64 {
	return percent(s.DiskUsedGB, s.DiskTotalGB)
}

// SwapPercent is used/total as a percentage, 0 when total is unknown.
func (s SystemStatus) SwapPercent() float64 {
	return percent(s.SwapUsedGB, s.SwapTotalGB)
}

func percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}

// Clone returns a deep copy.
func (s SystemStatus) Clone() SystemStatus {
	s.CPUCores = append([]float64(nil), s.CPUCores...)
	s.TopProcesses = append([]ProcessStat(nil), s.TopProcesses...)
	return s
}

// ProcessStat describes one process in the top list.
type ProcessStat struct {
	PID         string  `json:"pid"`
	Name        string  `json:"name"`
	Command     string  `json:"command"`
	RuntimeSecs uint64  `json:"runtime_secs"`
	CPUPct      float64 `json:"cpu_pct"`
	MemMB       float64 `json:"mem_mb"`
	ReadMB      float64 `json:"read_mb"`
	WriteMB     float64 `json:"write_mb"`
}

// DockerContainer is one row of `docker ps`.
type DockerContainer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Image  string `json:"image"`
	Ports  string `json:"ports"`
}

// Line is the container's abbreviated display row.
func (c DockerContainer) Line() string {
	return fmt.Sprintf("%s\t%s\t%s", c.Name, c.Status, c.Image)
}

// DockerStatus lists running containers.
type DockerStatus struct {
	Running []string          `json:"running"`
	Items   []DockerContainer `json:"items"`
	Error   string            `json:"error,omitempty"`
}

// Clone returns a deep copy.
func (d DockerStatus) Clone() DockerStatus {
	d.Running = append([]string(nil), d.Running...)
	d.Items = append([]DockerContainer(nil), d.Items...)
	return d
}

// AWSInstance is one EC2 instance.
type AWSInstance struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	Name         string `json:"name"`
	InstanceType string `json:"instance_type"`
	AZ           string `json:"az"`
	PublicIP     string `json:"public_ip"`
	PrivateIP    string `json:"private_ip"`
}

// Line is the instance's abbreviated display row.
func (i AWSInstance) Line() string {
	return fmt.Sprintf("%s | %s | %s", i.ID, i.State, i.Name)
}

// AWSStatus lists EC2 instances and where they came from.
type AWSStatus struct {
	Instances []string      `json:"instances"`
	Items     []AWSInstance `json:"items"`
	Source    string        `json:"source"`
	Error     string        `json:"error,omitempty"`
}

// Clone returns a deep copy.
func (a AWSStatus) Clone() AWSStatus {
	a.Instances = append([]string(nil), a.Instances...)
	a.Items = append([]AWSInstance(nil), a.Items...)
	return a
}

// PRItem is one open pull request. Body is only available from the API path.
type PRItem struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	UpdatedAt string `json:"updated_at"`
	Body      string `json:"body,omitempty"`
}

// Line is the pull request's display row.
func (p PRItem) Line() string {
	return fmt.Sprintf("#%d %s (@%s)", p.Number, p.Title, p.Author)
}

// PRStatus lists open pull requests and where they came from.
type PRStatus struct {
	Open   []string `json:"open"`
	Items  []PRItem `json:"items"`
	Source string   `json:"source"`
	Error  string   `json:"error,omitempty"`
}

// Clone returns a deep copy.
func (p PRStatus) Clone() PRStatus {
	p.Open = append([]string(nil), p.Open...)
	p.Items = append([]PRItem(nil), p.Items...)
	return p
}
