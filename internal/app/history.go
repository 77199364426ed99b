package app

// HistorySize is the number of samples kept per trend line.
const HistorySize = 64

// History holds the CPU, memory and disk utilisation trends, one sample per
// snapshot. Samples are whole percentages in [0, 100].
//
// History is owned by State and, like State, is not safe for concurrent use.
type History struct {
	cpu  *ringBuffer
	mem  *ringBuffer
	disk *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates empty trend buffers with the given capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = HistorySize
	}
	return &History{
		cpu:  newRingBuffer(size),
		mem:  newRingBuffer(size),
		disk: newRingBuffer(size),
	}
}

// Push appends one sample to each trend, evicting the oldest when full.
func (h *History) Push(cpu, mem, disk float64) {
	h.cpu.push(cpu)
	h.mem.push(mem)
	h.disk.push(disk)
}

// CPU returns the CPU trend, oldest first.
func (h *History) CPU() []float64 { return h.cpu.getAll() }

// Mem returns the memory trend, oldest first.
func (h *History) Mem() []float64 { return h.mem.getAll() }

// Disk returns the disk trend, oldest first.
func (h *History) Disk() []float64 { return h.disk.getAll() }

// LastCPU returns at most count of the newest CPU samples, oldest first.
func (h *History) LastCPU(count int) []float64 { return h.cpu.getLast(count) }

// LastMem returns at most count of the newest memory samples, oldest first.
func (h *History) LastMem(count int) []float64 { return h.mem.getLast(count) }

// Len is the number of samples held per trend.
func (h *History) Len() int {
	return h.cpu.count
}

// Cap is the per-trend capacity.
func (h *History) Cap() int {
	return h.cpu.size
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	// head is the next write slot, so the newest value sits at head-1
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

func (r *ringBuffer) getAll() []float64 {
	return r.getLast(r.count)
}
