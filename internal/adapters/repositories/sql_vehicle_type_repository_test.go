package repositories

import (
	"context"
	"database/sql"
	"testing"
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/platform/db"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func testCatalog() []domain.VehicleType {
	return []domain.VehicleType{
		{ID: 3, Name: "Van", Capacity: 12, LuggageCapacity: 10, PricePerDay: decimal.RequireFromString("2500.00"), Active: true},
		{ID: 1, Name: "Sedan", Capacity: 4, LuggageCapacity: 3, PricePerDay: decimal.RequireFromString("1000.25"), Active: true},
		{ID: 2, Name: "SUV", Capacity: 7, LuggageCapacity: 5, PricePerDay: decimal.RequireFromString("1500"), Active: false},
	}
}

func TestSQLVehicleTypeRepositoryListKeepsSeedOrder(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	if err := SeedVehicleTypes(ctx, conn, "sqlite", testCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSQLVehicleTypeRepository(conn, "sqlite")
	types, err := repo.ListVehicleTypes(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(types) != 3 {
		t.Fatalf("types = %d, want 3", len(types))
	}
	wantIDs := []int{3, 1, 2}
	for i, id := range wantIDs {
		if types[i].ID != id {
			t.Fatalf("types[%d].ID = %d, want %d", i, types[i].ID, id)
		}
	}

	if !types[1].PricePerDay.Equal(decimal.RequireFromString("1000.25")) {
		t.Errorf("sedan price = %s, want 1000.25", types[1].PricePerDay)
	}
	if types[2].Active {
		t.Error("SUV should be inactive")
	}
	if types[0].LuggageCapacity != 10 {
		t.Errorf("van luggage = %d, want 10", types[0].LuggageCapacity)
	}
}

func TestSeedVehicleTypesUpserts(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	if err := SeedVehicleTypes(ctx, conn, "sqlite", testCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated := []domain.VehicleType{
		{ID: 1, Name: "Sedan", Capacity: 4, PricePerDay: decimal.RequireFromString("900"), Active: false},
	}
	if err := SeedVehicleTypes(ctx, conn, "sqlite", updated); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	repo := NewSQLVehicleTypeRepository(conn, "sqlite")
	got, err := repo.GetVehicleTypes(ctx, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sedan, ok := got[1]
	if !ok {
		t.Fatal("sedan missing after upsert")
	}
	if sedan.Active || !sedan.PricePerDay.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("sedan not updated: %+v", sedan)
	}
}

func TestSeedVehicleTypesRejectsInvalid(t *testing.T) {
	conn := openTestDB(t)

	bad := []domain.VehicleType{{ID: 1, Name: "Broken", Capacity: 0, PricePerDay: decimal.NewFromInt(1)}}
	if err := SeedVehicleTypes(context.Background(), conn, "sqlite", bad); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestSQLVehicleTypeRepositoryGetVehicleTypesSkipsUnknown(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	if err := SeedVehicleTypes(ctx, conn, "sqlite", testCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSQLVehicleTypeRepository(conn, "sqlite")
	got, err := repo.GetVehicleTypes(ctx, []int{1, 2, 2, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d vehicle types, want 2", len(got))
	}
	if _, ok := got[99]; ok {
		t.Fatal("unknown id 99 should be absent")
	}

	empty, err := repo.GetVehicleTypes(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty lookup = %v, %v", empty, err)
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b IN (?,?)"

	if got := rebind("sqlite", q); got != q {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
	if got, want := rebind("pgx", q), "SELECT * FROM t WHERE a = $1 AND b IN ($2,$3)"; got != want {
		t.Errorf("pgx rebind = %q, want %q", got, want)
	}
}
