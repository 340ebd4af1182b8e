package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

//go:embed migrations/001_machines.sql
var machinesSchema string

var testDB *DB

// TestMain sets up a connection to the test database. The package tests
// are skipped when TEST_DATABASE_URL is not set.
func TestMain(m *testing.M) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgres tests")
		os.Exit(0)
	}

	nopLogger := zerolog.Nop()
	var err error
	testDB, err = NewDB(context.Background(), url, &nopLogger)
	if err != nil {
		fmt.Printf("TestMain: Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}

	if _, err := testDB.pool.Exec(context.Background(), machinesSchema); err != nil {
		fmt.Printf("TestMain: Failed to apply schema: %v\n", err)
		testDB.Close()
		os.Exit(1)
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

// Helper to insert machines and remove them after the test
func insertTestMachines(t *testing.T, rows ...[3]any) {
	t.Helper()
	for _, r := range rows {
		_, err := testDB.pool.Exec(t.Context(),
			"INSERT INTO machines (id, stock_level, low_stock) VALUES ($1, $2, $3)", r[0], r[1], r[2])
		if err != nil {
			t.Fatalf("insert machine %v: %v", r[0], err)
		}
		id := r[0]
		t.Cleanup(func() {
			if _, err := testDB.pool.Exec(context.Background(), "DELETE FROM machines WHERE id = $1", id); err != nil {
				t.Logf("Warning: Failed to cleanup machine %v: %v", id, err)
			}
		})
	}
}
