// Package transport feeds process values into the dashboard.
//
// A Source runs until its context is cancelled and pushes every update it
// receives into a Sink. Updates are whole value arrays; the sink keeps only
// the latest. Link state changes are reported to an Observer so the UI can
// show them.
package transport

import (
	"context"
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// Sink receives complete value arrays. Store must not block.
type Sink interface {
	Store(values []float64)
}

// Observer is told about link state changes. Implementations must be safe
// to call from the transport goroutine.
type Observer interface {
	Connecting(endpoint string)
	Connected(endpoint string)
	Disconnected(endpoint string, err error)
}

// Source produces values until ctx is done.
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

// NopObserver ignores all link events.
type NopObserver struct{}

func (NopObserver) Connecting(string)          {}
func (NopObserver) Connected(string)           {}
func (NopObserver) Disconnected(string, error) {}

// ToFloats converts a variant payload to a value array. Arrays and slices of
// any numeric or boolean type are converted element by element; a scalar
// becomes a one-element array.
func ToFloats(v interface{}) ([]float64, error) {
	if v == nil {
		return nil, fmt.Errorf("empty value")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]float64, rv.Len())
		for i := range out {
			f, err := cast.ToFloat64E(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	case reflect.String:
		return nil, fmt.Errorf("string value %q is not numeric data", v)
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
}
