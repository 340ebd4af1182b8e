package domain

import "time"

// AlertKind distinguishes low-stock warnings from recovery notices.
type AlertKind string

const (
	AlertLow AlertKind = "low"
	AlertOk  AlertKind = "ok"
)

// StockAlert is what operators get told when a machine changes stock state.
type StockAlert struct {
	Kind      AlertKind
	MachineID string
	EventID   string
	At        time.Time
}
