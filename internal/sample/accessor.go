package sample

import (
	"errors"
	"math"
)

// ErrStale is returned when a snapshot has no reading for an accessor's
// slot, either because nothing has arrived yet or because the upstream array
// is shorter than the dashboard expects.
var ErrStale = errors.New("no data for slot")

// Accessor reads one slot of a snapshot, optionally scaled down by Divisor.
// It is a plain value so a slice of them can be built in a loop safely.
type Accessor struct {
	Index   int
	Divisor float64 // values <= 0 read as 1
}

// At builds an accessor for index with no scaling.
func At(index int) Accessor {
	return Accessor{Index: index, Divisor: 1}
}

// Scaled builds an accessor for index divided by divisor.
func Scaled(index int, divisor float64) Accessor {
	return Accessor{Index: index, Divisor: divisor}
}

// Value returns the slot divided by the divisor.
func (a Accessor) Value(s *Snapshot) (float64, error) {
	raw, err := a.raw(s)
	if err != nil {
		return 0, err
	}
	if a.Divisor > 0 && a.Divisor != 1 {
		return raw / a.Divisor, nil
	}
	return raw, nil
}

// Word returns the raw slot as an integer, ignoring the divisor.
// Status codes and bit fields are read this way.
func (a Accessor) Word(s *Snapshot) (int64, error) {
	raw, err := a.raw(s)
	if err != nil {
		return 0, err
	}
	return int64(raw), nil
}

func (a Accessor) raw(s *Snapshot) (float64, error) {
	if a.Index < 0 || a.Index >= s.Len() {
		return 0, ErrStale
	}
	v := s.Values[a.Index]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrStale
	}
	return v, nil
}
