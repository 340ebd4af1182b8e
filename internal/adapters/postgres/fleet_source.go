package postgres

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// fleetSource reads the starting fleet from the machines table.
// Stock changes made during a run are never written back.
type fleetSource struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.FleetSource = (*fleetSource)(nil) // Ensure compliance

// NewFleetSource creates a read-only fleet loader.
func NewFleetSource(db *DB, baseLogger *zerolog.Logger) ports.FleetSource {
	return &fleetSource{
		db:  db,
		log: baseLogger.With().Str("component", "fleet_source").Logger(),
	}
}

const fleetQuery = `SELECT id, stock_level, low_stock FROM machines ORDER BY id`

// LoadFleet returns every machine row ordered by id.
func (s *fleetSource) LoadFleet(ctx context.Context) ([]domain.Machine, error) {
	rows, err := s.db.pool.Query(ctx, fleetQuery)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query machines")
		return nil, fmt.Errorf("query machines: %w", err)
	}

	fleet, err := pgx.CollectRows(rows, scanMachine)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to scan machine rows")
		return nil, fmt.Errorf("scan machines: %w", err)
	}

	for _, m := range fleet {
		if m.StockLevel < 0 {
			return nil, fmt.Errorf("machine %s has negative stock %d", m.ID, m.StockLevel)
		}
	}

	s.log.Info().Int("count", len(fleet)).Msg("Fleet loaded")
	return fleet, nil
}

// scanMachine is a pgx.RowToFunc for the fleet query.
func scanMachine(row pgx.CollectableRow) (domain.Machine, error) {
	var m domain.Machine
	err := row.Scan(&m.ID, &m.StockLevel, &m.LowStock)
	return m, err
}
