package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewVehicleCombinationDerivesTotals(t *testing.T) {
	// build test data
	sedan := &VehicleType{ID: 1, Name: "Sedan", Capacity: 4, PricePerDay: decimal.RequireFromString("1000.50"), Active: true}
	van := &VehicleType{ID: 3, Name: "Van", Capacity: 12, PricePerDay: decimal.RequireFromString("2500"), Active: true}

	c := NewVehicleCombination([]VehicleCount{
		{VehicleType: sedan, Count: 2},
		{VehicleType: van, Count: 0},
		{VehicleType: van, Count: 1},
	}, 15, 3)

	// verify behavior
	if got := len(c.Entries()); got != 2 {
		t.Fatalf("entries = %d, want 2 (zero counts dropped)", got)
	}
	if c.TotalVehicles() != 3 {
		t.Errorf("vehicles = %d, want 3", c.TotalVehicles())
	}
	if c.TotalCapacity() != 20 {
		t.Errorf("capacity = %d, want 20", c.TotalCapacity())
	}
	if c.UnusedSeats() != 5 {
		t.Errorf("unused seats = %d, want 5", c.UnusedSeats())
	}
	if want := decimal.RequireFromString("4501"); !c.CostPerDay().Equal(want) {
		t.Errorf("cost per day = %s, want %s", c.CostPerDay(), want)
	}
	if want := decimal.RequireFromString("13503"); !c.TotalCost().Equal(want) {
		t.Errorf("total cost = %s, want %s", c.TotalCost(), want)
	}
	if !c.Feasible() {
		t.Error("expected feasible combination")
	}
	if c.Recommended() {
		t.Error("new combination must not be recommended")
	}
	if !c.WithRecommended(true).Recommended() {
		t.Error("WithRecommended(true) did not set the flag")
	}
}

func TestVehicleCombinationEntriesIsCopy(t *testing.T) {
	suv := &VehicleType{ID: 2, Name: "SUV", Capacity: 7, PricePerDay: decimal.NewFromInt(1500), Active: true}
	c := NewVehicleCombination([]VehicleCount{{VehicleType: suv, Count: 2}}, 13, 1)

	entries := c.Entries()
	entries[0].Count = 99

	if c.Entries()[0].Count != 2 {
		t.Fatalf("combination entries mutated through returned slice")
	}
	if c.TotalVehicles() != 2 {
		t.Fatalf("vehicles = %d, want 2", c.TotalVehicles())
	}
}

func TestVehicleTypeValidate(t *testing.T) {
	tests := []struct {
		name    string
		vt      VehicleType
		wantErr bool
	}{
		{"valid", VehicleType{ID: 1, Name: "Sedan", Capacity: 4, PricePerDay: decimal.NewFromInt(1000)}, false},
		{"free vehicle", VehicleType{ID: 1, Name: "Shuttle", Capacity: 20, PricePerDay: decimal.Zero}, false},
		{"zero capacity", VehicleType{ID: 1, Name: "Sedan", Capacity: 0, PricePerDay: decimal.NewFromInt(1000)}, true},
		{"negative capacity", VehicleType{ID: 1, Name: "Sedan", Capacity: -4, PricePerDay: decimal.NewFromInt(1000)}, true},
		{"negative luggage", VehicleType{ID: 1, Name: "Sedan", Capacity: 4, LuggageCapacity: -1}, true},
		{"negative price", VehicleType{ID: 1, Name: "Sedan", Capacity: 4, PricePerDay: decimal.NewFromInt(-1)}, true},
		{"blank name", VehicleType{ID: 1, Name: "  ", Capacity: 4}, true},
		{"missing id", VehicleType{Name: "Sedan", Capacity: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vt.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidVehicleType) {
					t.Fatalf("error %v does not wrap ErrInvalidVehicleType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestActiveVehicleTypesKeepsOrderAndReferences(t *testing.T) {
	types := []VehicleType{
		{ID: 1, Name: "Sedan", Capacity: 4, Active: true},
		{ID: 2, Name: "Limo", Capacity: 8, Active: false},
		{ID: 3, Name: "Van", Capacity: 12, Active: true},
	}

	active := ActiveVehicleTypes(types)
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	if active[0].ID != 1 || active[1].ID != 3 {
		t.Fatalf("active order = [%d %d], want [1 3]", active[0].ID, active[1].ID)
	}
	if active[1] != &types[2] {
		t.Fatal("active entries should reference the caller's catalog, not copies")
	}
}
