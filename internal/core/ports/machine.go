package ports

import (
	"VendingBus/internal/core/domain"
	"context"
)

// MachineRepository defines the stock storage the handlers work against.
type MachineRepository interface {
	// GetByID returns nil, nil when the machine does not exist.
	GetByID(ctx context.Context, id string) (*domain.Machine, error)

	Update(ctx context.Context, machine *domain.Machine) error

	// Create adds a new machine. Used when seeding the fleet.
	Create(ctx context.Context, machine *domain.Machine) error

	// List returns all machines in insertion order.
	List(ctx context.Context) ([]*domain.Machine, error)
}

// FleetSource provides the machines a run starts with.
type FleetSource interface {
	LoadFleet(ctx context.Context) ([]domain.Machine, error)
}
