// Package sample holds the latest set of process readings pushed by the
// transport and the accessors the dashboard uses to read them.
//
// The buffer is replaced wholesale on every update. Readers load one
// Snapshot per render pass, so every chart drawn in that pass sees the same
// generation of data.
package sample

import (
	"sync/atomic"
	"time"
)

// Snapshot is one immutable generation of readings.
type Snapshot struct {
	Values   []float64
	Seq      uint64    // 0 until the first update arrives
	Received time.Time // zero until the first update arrives
}

// Len returns the number of slots in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

// Empty reports whether no update has been stored yet.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Seq == 0
}

// Age returns how long ago the snapshot was received, or 0 if it never was.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s.Empty() {
		return 0
	}
	return now.Sub(s.Received)
}

// Buffer is the shared cell between the transport and the render loop.
// Store and Load never block each other.
type Buffer struct {
	current atomic.Pointer[Snapshot]
	seq     atomic.Uint64
	now     func() time.Time
}

// NewBuffer creates a buffer holding an empty snapshot.
func NewBuffer() *Buffer {
	b := &Buffer{now: time.Now}
	b.current.Store(&Snapshot{})
	return b
}

// Store replaces the current snapshot with a copy of values.
func (b *Buffer) Store(values []float64) {
	cp := make([]float64, len(values))
	copy(cp, values)
	b.current.Store(&Snapshot{
		Values:   cp,
		Seq:      b.seq.Add(1),
		Received: b.now(),
	})
}

// Load returns the current snapshot. The result must not be modified.
func (b *Buffer) Load() *Snapshot {
	return b.current.Load()
}
