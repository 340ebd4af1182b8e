// Package simulation produces the random sale and refill traffic used to
// exercise the bus.
package simulation

import (
	"VendingBus/internal/core/domain"
	"math/rand/v2"
)

// Generator draws random Sold and Refilled events for a fixed fleet.
// Half the events are sales of 1 or 2 units, the rest refills of 3 or 5.
type Generator struct {
	rng        *rand.Rand
	machineIDs []string
}

// NewGenerator creates a generator over machineIDs. The same seed always
// produces the same sequence.
func NewGenerator(seed uint64, machineIDs []string) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		machineIDs: append([]string(nil), machineIDs...),
	}
}

// Next returns the next random event. It panics if the fleet is empty.
func (g *Generator) Next() domain.Event {
	id := g.machineIDs[g.rng.IntN(len(g.machineIDs))]
	if g.rng.Float64() < 0.5 {
		return domain.NewSoldEvent(id, 1+g.rng.IntN(2))
	}
	if g.rng.Float64() < 0.5 {
		return domain.NewRefilledEvent(id, 3)
	}
	return domain.NewRefilledEvent(id, 5)
}

// Take returns n events.
func (g *Generator) Take(n int) []domain.Event {
	events := make([]domain.Event, 0, n)
	for range n {
		events = append(events, g.Next())
	}
	return events
}
