package memory

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// machineRepository keeps machines in process memory.
//
// It performs no locking: like the event bus it is owned by a single
// goroutine. Wrap it before sharing it across goroutines.
type machineRepository struct {
	machines map[string]domain.Machine
	order    []string
	log      zerolog.Logger
}

var _ ports.MachineRepository = (*machineRepository)(nil) // Ensure compliance

// NewMachineRepository creates an empty in-memory repository.
func NewMachineRepository(baseLogger *zerolog.Logger) ports.MachineRepository {
	return &machineRepository{
		machines: make(map[string]domain.Machine),
		log:      baseLogger.With().Str("component", "machine_repo").Logger(),
	}
}

// Create stores a copy of the machine.
func (r *machineRepository) Create(ctx context.Context, machine *domain.Machine) error {
	if _, ok := r.machines[machine.ID]; ok {
		return fmt.Errorf("machine %q already exists", machine.ID)
	}
	r.machines[machine.ID] = *machine
	r.order = append(r.order, machine.ID)
	r.log.Debug().Str("machine_id", machine.ID).Int("stock", machine.StockLevel).Msg("Machine created")
	return nil
}

// GetByID returns a copy of the stored machine, or nil, nil if absent.
func (r *machineRepository) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, nil // Return nil, nil for "not found"
	}
	return &m, nil
}

// Update overwrites the stored state of an existing machine.
func (r *machineRepository) Update(ctx context.Context, machine *domain.Machine) error {
	if _, ok := r.machines[machine.ID]; !ok {
		return fmt.Errorf("update machine %q: %w", machine.ID, domain.ErrUnknownMachine)
	}
	r.machines[machine.ID] = *machine
	return nil
}

// List returns copies of all machines in creation order.
func (r *machineRepository) List(ctx context.Context) ([]*domain.Machine, error) {
	out := make([]*domain.Machine, 0, len(r.order))
	for _, id := range r.order {
		m := r.machines[id]
		out = append(out, &m)
	}
	return out, nil
}

// Seed creates every machine from a fleet source.
func Seed(ctx context.Context, repo ports.MachineRepository, fleet []domain.Machine) error {
	for i := range fleet {
		if err := repo.Create(ctx, &fleet[i]); err != nil {
			return err
		}
	}
	return nil
}
