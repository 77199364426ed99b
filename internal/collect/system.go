package collect

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/devdash/devdash/internal/logger"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

const (
	// MaxCores is how many per-core readings are reported.
	MaxCores = 16
	// TopProcessCount is the length of the top process list.
	TopProcessCount = 3
	// MaxCommandTokens caps the displayed command line.
	MaxCommandTokens = 8

	bytesPerGB = 1024 * 1024 * 1024
	bytesPerMB = 1024 * 1024
)

// Sampler holds per-process CPU state between cycles. Process CPU usage is a
// delta between two readings, so the *process.Process handles must live as
// long as the program; they are refreshed every cycle, never rebuilt.
//
// A panic while sampling marks the sampler broken. The mutex is still
// released, and the next Sample drops the handle table and starts over, so a
// single bad read costs one cycle of per-process CPU numbers and nothing else.
type Sampler struct {
	mu     sync.Mutex
	procs  map[int32]*trackedProcess
	broken bool
	log    logger.Logger

	// listPIDs is process.PidsWithContext outside of tests.
	listPIDs func(ctx context.Context) ([]int32, error)
}

type trackedProcess struct {
	proc    *process.Process
	created int64
}

var (
	defaultSampler     *Sampler
	defaultSamplerOnce sync.Once
)

// DefaultSampler returns the process-wide sampler, creating it on first use.
func DefaultSampler() *Sampler {
	defaultSamplerOnce.Do(func() {
		defaultSampler = NewSampler()
	})
	return defaultSampler
}

// NewSampler creates an independent sampler. Most callers want DefaultSampler.
func NewSampler() *Sampler {
	return &Sampler{
		procs:    make(map[int32]*trackedProcess),
		log:      logger.NewEnvLogger("[system]"),
		listPIDs: process.PidsWithContext,
	}
}

// CollectSystem samples host metrics with the process-wide sampler.
func CollectSystem(ctx context.Context) SystemStatus {
	return DefaultSampler().Sample(ctx)
}

// Sample reads a full SystemStatus. Partial failures leave the affected
// fields zero; the first failure is reported in Error.
func (s *Sampler) Sample(ctx context.Context) (st SystemStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.broken = true
			s.log.Error("sampler panic recovered: %v", r)
			st = SystemStatus{Error: fmt.Sprintf("host metrics sampler failed: %v", r)}
		}
	}()

	if s.broken {
		s.log.Warn("resetting process table after earlier failure")
		s.procs = make(map[int32]*trackedProcess)
		s.broken = false
	}

	var firstErr error
	note := func(what string, err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", what, err)
		}
	}

	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		st.CPUUsage = pct[0]
	} else {
		note("cpu", err)
	}
	if cores, err := cpu.PercentWithContext(ctx, 0, true); err == nil {
		if len(cores) > MaxCores {
			cores = cores[:MaxCores]
		}
		st.CPUCores = cores
	} else {
		note("per-core cpu", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		st.MemUsedGB = float64(vm.Used) / bytesPerGB
		st.MemTotalGB = float64(vm.Total) / bytesPerGB
		st.MemAvailableGB = float64(vm.Available) / bytesPerGB
	} else {
		note("memory", err)
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		st.SwapUsedGB = float64(sw.Used) / bytesPerGB
		st.SwapTotalGB = float64(sw.Total) / bytesPerGB
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		st.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		st.UptimeSecs = up
	}

	st.DiskUsedGB, st.DiskTotalGB = sampleDisks(ctx)
	st.NetworkRxMB, st.NetworkTxMB = sampleNetwork(ctx)

	procs, err := s.refreshProcesses(ctx)
	note("processes", err)
	st.ProcessCount = len(procs)
	st.TopProcesses = s.topProcesses(ctx, procs, TopProcessCount)

	if firstErr != nil {
		st.Error = firstErr.Error()
	}
	return st
}

// refreshProcesses syncs the handle table with the live pid list and returns
// the handles in pid order.
func (s *Sampler) refreshProcesses(ctx context.Context) ([]*trackedProcess, error) {
	pids, err := s.listPIDs(ctx)
	if err != nil {
		return nil, err
	}

	live := make(map[int32]struct{}, len(pids))
	out := make([]*trackedProcess, 0, len(pids))
	for _, pid := range pids {
		live[pid] = struct{}{}

		tp, ok := s.procs[pid]
		if ok {
			// pid reuse shows up as a different creation time
			if created, err := tp.proc.CreateTimeWithContext(ctx); err == nil && created != tp.created {
				ok = false
			}
		}
		if !ok {
			p, err := process.NewProcessWithContext(ctx, pid)
			if err != nil {
				delete(s.procs, pid)
				continue
			}
			created, _ := p.CreateTimeWithContext(ctx)
			tp = &trackedProcess{proc: p, created: created}
			s.procs[pid] = tp
		}
		out = append(out, tp)
	}

	for pid := range s.procs {
		if _, ok := live[pid]; !ok {
			delete(s.procs, pid)
		}
	}
	return out, nil
}

// topProcesses ranks every process by CPU then memory and fills in the
// detail fields only for the winners.
func (s *Sampler) topProcesses(ctx context.Context, procs []*trackedProcess, n int) []ProcessStat {
	type ranked struct {
		tp    *trackedProcess
		cpu   float64
		memMB float64
	}
	all := make([]ranked, 0, len(procs))
	for _, tp := range procs {
		// Percent with a zero interval compares against the previous call on
		// this handle; the first call for a new process reports 0.
		cpuPct, err := tp.proc.PercentWithContext(ctx, 0)
		if err != nil {
			continue
		}
		var memMB float64
		if mi, err := tp.proc.MemoryInfoWithContext(ctx); err == nil {
			memMB = float64(mi.RSS) / bytesPerMB
		}
		all = append(all, ranked{tp: tp, cpu: cpuPct, memMB: memMB})
	}

	stats := make([]ProcessStat, len(all))
	for i, r := range all {
		stats[i] = ProcessStat{PID: strconv.Itoa(int(r.tp.proc.Pid)), CPUPct: r.cpu, MemMB: r.memMB}
	}
	order := RankProcesses(stats)
	if len(order) > n {
		order = order[:n]
	}

	now := time.Now()
	top := make([]ProcessStat, 0, len(order))
	for _, idx := range order {
		st := stats[idx]
		p := all[idx].tp.proc
		st.Name, _ = p.NameWithContext(ctx)
		if args, err := p.CmdlineSliceWithContext(ctx); err == nil {
			st.Command = TruncateCommand(args, MaxCommandTokens)
		}
		if all[idx].tp.created > 0 {
			started := time.UnixMilli(all[idx].tp.created)
			if now.After(started) {
				st.RuntimeSecs = uint64(now.Sub(started).Seconds())
			}
		}
		if io, err := p.IOCountersWithContext(ctx); err == nil {
			st.ReadMB = float64(io.ReadBytes) / bytesPerMB
			st.WriteMB = float64(io.WriteBytes) / bytesPerMB
		}
		top = append(top, st)
	}
	return top
}

// RankProcesses returns indexes into stats ordered by CPU descending, then
// memory descending. The sort is stable so equal entries keep their order.
func RankProcesses(stats []ProcessStat) []int {
	idx := make([]int, len(stats))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := stats[idx[a]], stats[idx[b]]
		if pa.CPUPct != pb.CPUPct {
			return pa.CPUPct > pb.CPUPct
		}
		return pa.MemMB > pb.MemMB
	})
	return idx
}

// TruncateCommand joins at most n argv tokens with spaces.
func TruncateCommand(args []string, n int) string {
	if len(args) > n {
		args = args[:n]
	}
	return strings.Join(args, " ")
}

// sampleDisks sums usage across mounted partitions, counting each device once.
func sampleDisks(ctx context.Context) (usedGB, totalGB float64) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return 0, 0
	}
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if _, dup := seen[p.Device]; dup {
			continue
		}
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || u.Total == 0 {
			continue
		}
		seen[p.Device] = struct{}{}
		usedGB += float64(u.Used) / bytesPerGB
		totalGB += float64(u.Total) / bytesPerGB
	}
	return usedGB, totalGB
}

// sampleNetwork returns cumulative received and transmitted megabytes across
// all interfaces.
func sampleNetwork(ctx context.Context) (rxMB, txMB float64) {
	counters, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		return 0, 0
	}
	return float64(counters[0].BytesRecv) / bytesPerMB, float64(counters[0].BytesSent) / bytesPerMB
}
