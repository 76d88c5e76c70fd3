package transport

import (
	"context"
	"math"
	"time"
)

// SimulatorEndpoint is the endpoint name reported for simulated data.
const SimulatorEndpoint = "simulator"

// Wave is one simulated slot: Base + Amplitude*sin(2*pi*t/Period + Phase).
// A zero Period holds the slot at Base.
type Wave struct {
	Base      float64
	Amplitude float64
	Period    time.Duration
	Phase     float64
}

func (w Wave) at(elapsed time.Duration) float64 {
	if w.Period <= 0 {
		return w.Base
	}
	angle := 2*math.Pi*elapsed.Seconds()/w.Period.Seconds() + w.Phase
	return w.Base + w.Amplitude*math.Sin(angle)
}

// PlantWaves produces raw values in the same layout as the plant's
// group1 array: frequency x10, volts, kW x100, rpm, drive state, amps x100,
// amps (copper) x100, load x10, alert word, two spare slots, info word.
var PlantWaves = []Wave{
	{Base: 250, Amplitude: 240, Period: 20 * time.Second},
	{Base: 230, Amplitude: 8, Period: 7 * time.Second},
	{Base: 50, Amplitude: 45, Period: 15 * time.Second, Phase: 1},
	{Base: 500, Amplitude: 480, Period: 20 * time.Second},
	{Base: 4},
	{Base: 250, Amplitude: 200, Period: 11 * time.Second, Phase: 2},
	{Base: 240, Amplitude: 190, Period: 13 * time.Second, Phase: 2.5},
	{Base: 500, Amplitude: 450, Period: 9 * time.Second, Phase: 0.5},
	{Base: 0},
	{Base: 0},
	{Base: 0},
	{Base: 0b00000101},
}

// Simulator generates values locally, for demos and for running the
// dashboard without a server.
type Simulator struct {
	Waves    []Wave
	Interval time.Duration
	Observer Observer

	now func() time.Time
}

// NewSimulator creates a simulator publishing waves every interval.
func NewSimulator(waves []Wave, interval time.Duration, observer Observer) *Simulator {
	if len(waves) == 0 {
		waves = PlantWaves
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Simulator{Waves: waves, Interval: interval, Observer: observer, now: time.Now}
}

// Values returns the simulated array at the given elapsed time.
func (s *Simulator) Values(elapsed time.Duration) []float64 {
	out := make([]float64, len(s.Waves))
	for i, w := range s.Waves {
		out[i] = w.at(elapsed)
	}
	return out
}

// Run publishes until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, sink Sink) error {
	start := s.now()
	s.Observer.Connecting(SimulatorEndpoint)
	sink.Store(s.Values(0))
	s.Observer.Connected(SimulatorEndpoint)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sink.Store(s.Values(s.now().Sub(start)))
		}
	}
}
