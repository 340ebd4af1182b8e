package ports

import (
	"VendingBus/internal/core/domain"
	"context"
)

// AlertNotifier forwards stock alerts to operators.
// Implementations must not block the caller on network I/O.
type AlertNotifier interface {
	Notify(ctx context.Context, alert domain.StockAlert) error
}
