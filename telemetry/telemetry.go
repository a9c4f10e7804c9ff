// Package telemetry exposes journey counters through the global OTel meter
// No SDK is installed here; without a registered provider every instrument is a no-op
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/constellation/telemetry"

// Recorder counts phase transitions and completed flight segments
type Recorder struct {
	transitions metric.Int64Counter
	segments    metric.Int64Counter
}

// New creates a recorder on the global meter provider
func New() (*Recorder, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates a recorder on m
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}

	var err error
	r.transitions, err = m.Int64Counter(
		"constellation.journey.transitions",
		metric.WithDescription("Journey phase transitions, by entered phase"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	r.segments, err = m.Int64Counter(
		"constellation.flight.segments",
		metric.WithDescription("Completed camera flight segments, by mode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating segments counter: %w", err)
	}

	return r, nil
}

// Transition records entry into phase
func (r *Recorder) Transition(phase string) {
	if r == nil {
		return
	}
	r.transitions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("phase", phase)))
}

// Segment records completion of a flight segment
func (r *Recorder) Segment(mode string) {
	if r == nil {
		return
	}
	r.segments.Add(context.Background(), 1, metric.WithAttributes(attribute.String("mode", mode)))
}
