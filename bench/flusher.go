package bench

// DefaultFlushSize is large enough to evict the last-level cache of current
// desktop CPUs.
const DefaultFlushSize = 128 << 20

// Flusher evicts CPU caches by writing over a scratch buffer larger than them.
// A Flusher is not safe for concurrent use.
type Flusher struct {
	scratch  []uint64
	scramble uint64
}

// NewFlusher creates a Flusher with a scratch buffer of at least `sizeBytes`
// bytes. Sizes below 8 bytes are rounded up.
func NewFlusher(sizeBytes int) *Flusher {
	words := (sizeBytes + 7) / 8
	if words < 1 {
		words = 1
	}
	return &Flusher{scratch: make([]uint64, words)}
}

// Flush writes every word of the scratch buffer. The value written depends on
// the previous flush so the compiler can't skip the stores.
func (f *Flusher) Flush() {
	for i := range f.scratch {
		f.scratch[i] = uint64(i) + f.scramble
	}
	f.scramble = f.scratch[len(f.scratch)/137]
}

// Size returns the size of the scratch buffer in bytes.
func (f *Flusher) Size() int {
	return len(f.scratch) * 8
}
