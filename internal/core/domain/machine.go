package domain

// LowStockThreshold is the stock level below which a machine is considered low.
const LowStockThreshold = 3

// Machine is the stock state of a single vending machine.
type Machine struct {
	ID         string
	StockLevel int
	// LowStock is set on the OK->LOW transition and cleared on LOW->OK.
	// It keeps warnings edge-triggered.
	LowStock bool
}

// Sell removes qty units. It returns ErrInvalidQuantity or
// ErrInsufficientStock without touching the machine. crossedLow is true
// only on the OK->LOW transition.
func (m *Machine) Sell(qty int) (crossedLow bool, err error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}
	if qty > m.StockLevel {
		return false, ErrInsufficientStock
	}
	m.StockLevel -= qty
	if m.StockLevel < LowStockThreshold && !m.LowStock {
		m.LowStock = true
		return true, nil
	}
	return false, nil
}

// Refill adds qty units. recovered is true only on the LOW->OK transition.
// A non-positive qty is rejected with ErrInvalidQuantity.
func (m *Machine) Refill(qty int) (recovered bool, err error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}
	m.StockLevel += qty
	if m.StockLevel >= LowStockThreshold && m.LowStock {
		m.LowStock = false
		return true, nil
	}
	return false, nil
}
