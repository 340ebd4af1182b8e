package domain

import "github.com/google/uuid"

// Event is an immutable fact about a machine. Quantity is only
// meaningful for Sold and Refilled events.
type Event struct {
	id        uuid.UUID
	topic     Topic
	machineID string
	quantity  int
	hasQty    bool
}

// NewSoldEvent records qty units sold by a machine.
func NewSoldEvent(machineID string, qty int) Event {
	return Event{id: uuid.New(), topic: TopicSold, machineID: machineID, quantity: qty, hasQty: true}
}

// NewRefilledEvent records qty units loaded into a machine.
func NewRefilledEvent(machineID string, qty int) Event {
	return Event{id: uuid.New(), topic: TopicRefilled, machineID: machineID, quantity: qty, hasQty: true}
}

// NewStockLowEvent signals that a machine dropped below LowStockThreshold.
func NewStockLowEvent(machineID string) Event {
	return Event{id: uuid.New(), topic: TopicStockLow, machineID: machineID}
}

// NewStockOkEvent signals that a machine is back at or above LowStockThreshold.
func NewStockOkEvent(machineID string) Event {
	return Event{id: uuid.New(), topic: TopicStockOk, machineID: machineID}
}

func (e Event) ID() uuid.UUID     { return e.id }
func (e Event) Topic() Topic      { return e.topic }
func (e Event) MachineID() string { return e.machineID }

// Quantity returns the unit count and whether the event carries one.
func (e Event) Quantity() (int, bool) {
	return e.quantity, e.hasQty
}
