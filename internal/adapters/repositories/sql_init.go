package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vehicle-allocation-service/internal/domain"
)

// Initialize the vehicle catalog schema. The statements are valid for both
// Postgres and SQLite; prices are stored as text to keep them exact.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehicleTypesQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_types (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		luggage_capacity INTEGER NOT NULL DEFAULT 0 CHECK (luggage_capacity >= 0),
		price_per_day TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_vehicle_types_active_sort
	ON vehicle_types(is_active, sort_order, id);
	`

	statements := []string{
		createVehicleTypesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert vehicle types. The slice position becomes the catalog sort order,
// which is the order the optimizer searches in.
func SeedVehicleTypes(ctx context.Context, db *sql.DB, driver string, types []domain.VehicleType) error {
	if db == nil {
		return errors.New("seed vehicle types: DB is nil")
	}

	for i, vt := range types {
		if err := vt.Validate(); err != nil {
			return fmt.Errorf("seed vehicle types: item at index %d: %w", i, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed vehicle types: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := rebind(driver, `
	INSERT INTO vehicle_types (
		id,
		name,
		capacity,
		luggage_capacity,
		price_per_day,
		sort_order,
		is_active
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		capacity = EXCLUDED.capacity,
		luggage_capacity = EXCLUDED.luggage_capacity,
		price_per_day = EXCLUDED.price_per_day,
		sort_order = EXCLUDED.sort_order,
		is_active = EXCLUDED.is_active;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed vehicle types: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, vt := range types {
		if _, err := stmt.ExecContext(ctx, vt.ID, vt.Name, vt.Capacity, vt.LuggageCapacity, vt.PricePerDay.String(), i, vt.Active); err != nil {
			return fmt.Errorf("seed vehicle types: insert id=%d: %w", vt.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vehicle types: commit tx: %w", err)
	}

	return nil
}
