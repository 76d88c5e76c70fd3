package dashboard

import (
	"fmt"

	"github.com/rileyhilliard/plcdash/internal/chart"
	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/sample"
)

// UnknownState is shown for a state code missing from the table, and for
// words no decoder can represent.
const UnknownState = "Value error"

// Decoder turns one slot of a snapshot into status text.
type Decoder func(snap *sample.Snapshot, acc sample.Accessor) string

// DecodeValue prints the scaled reading.
func DecodeValue(snap *sample.Snapshot, acc sample.Accessor) string {
	v, err := acc.Value(snap)
	if err != nil {
		return chart.ReadoutPlaceholder
	}
	return chart.FormatReadout(chart.Value(v))
}

// DecodeState looks the raw word up in a state table.
func DecodeState(table map[int]string) Decoder {
	return func(snap *sample.Snapshot, acc sample.Accessor) string {
		w, err := acc.Word(snap)
		if err != nil {
			return chart.ReadoutPlaceholder
		}
		if label, ok := table[int(w)]; ok {
			return label
		}
		return UnknownState
	}
}

// DecodeBits prints the raw word in binary, at least eight digits wide.
func DecodeBits(snap *sample.Snapshot, acc sample.Accessor) string {
	w, err := acc.Word(snap)
	if err != nil {
		return chart.ReadoutPlaceholder
	}
	if w < 0 {
		return UnknownState
	}
	return fmt.Sprintf("%08b", w)
}

// decoderFor resolves a decoder name from the config.
func decoderFor(name string, states map[int]string) (Decoder, error) {
	switch name {
	case "", config.DecoderValue:
		return DecodeValue, nil
	case config.DecoderState:
		return DecodeState(states), nil
	case config.DecoderBits:
		return DecodeBits, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", name)
	}
}
