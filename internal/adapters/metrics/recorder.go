package metrics

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
)

// Recorder is a bus subscriber that counts every event it sees, and
// refreshes the stock gauges of the event's machine.
type Recorder struct {
	registry *Registry
	repo     ports.MachineRepository
}

var _ ports.Subscriber = (*Recorder)(nil)

// NewRecorder creates a recorder. repo may be nil to skip stock gauges.
func NewRecorder(registry *Registry, repo ports.MachineRepository) *Recorder {
	return &Recorder{registry: registry, repo: repo}
}

func (r *Recorder) Name() string { return "metrics_recorder" }

func (r *Recorder) Topics() []domain.Topic { return domain.Topics() }

func (r *Recorder) Handle(ctx context.Context, event domain.Event, _ ports.PublishFunc) error {
	r.registry.RecordEvent(event.Topic())
	if r.repo == nil {
		return nil
	}
	m, err := r.repo.GetByID(ctx, event.MachineID())
	if err != nil || m == nil {
		// Unknown machines are reported by the stock handlers.
		return nil
	}
	r.registry.SetMachine(*m)
	return nil
}
