package catalogfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"vehicle-allocation-service/internal/domain"

	"github.com/shopspring/decimal"
)

const yamlCatalog = `
vehicle_types:
  - id: 1
    name: Sedan
    capacity: 4
    luggage_capacity: 3
    price_per_day: "1000.00"
  - id: 2
    name: SUV
    capacity: 7
    luggage_capacity: 5
    price_per_day: "1500.00"
  - id: 4
    name: Minibus
    capacity: 20
    price_per_day: "3999.99"
    active: false
`

const jsonCatalog = `[
  {"id": 1, "name": "Sedan", "capacity": 4, "price_per_day": "1000"},
  {"id": 3, "name": "Van", "capacity": 12, "price_per_day": "2500.10", "active": true}
]`

func TestParseYAMLDocument(t *testing.T) {
	types, err := Parse("catalog.yaml", []byte(yamlCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(types) != 3 {
		t.Fatalf("types = %d, want 3", len(types))
	}
	if !types[0].Active || !types[1].Active {
		t.Error("active should default to true")
	}
	if types[2].Active {
		t.Error("minibus should be inactive")
	}
	if !types[2].PricePerDay.Equal(decimal.RequireFromString("3999.99")) {
		t.Errorf("price = %s, want 3999.99", types[2].PricePerDay)
	}
	if types[0].LuggageCapacity != 3 {
		t.Errorf("luggage = %d, want 3", types[0].LuggageCapacity)
	}
}

func TestParseJSONList(t *testing.T) {
	types, err := Parse("catalog.json", []byte(jsonCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 2 || types[1].Name != "Van" {
		t.Fatalf("unexpected catalog: %+v", types)
	}
	if !types[1].PricePerDay.Equal(decimal.RequireFromString("2500.1")) {
		t.Errorf("price = %s, want 2500.1", types[1].PricePerDay)
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	tests := map[string]string{
		"missing price":  `[{"id": 1, "name": "Sedan", "capacity": 4}]`,
		"bad price":      `[{"id": 1, "name": "Sedan", "capacity": 4, "price_per_day": "cheap"}]`,
		"zero capacity":  `[{"id": 1, "name": "Sedan", "capacity": 0, "price_per_day": "10"}]`,
		"negative price": `[{"id": 1, "name": "Sedan", "capacity": 4, "price_per_day": "-10"}]`,
		"duplicate id":   `[{"id": 1, "name": "A", "capacity": 4, "price_per_day": "1"}, {"id": 1, "name": "B", "capacity": 4, "price_per_day": "1"}]`,
		"malformed json": `[{"id": 1,`,
		"empty document": ``,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse("catalog.json", []byte(body)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseLoadsBrokenInactiveEntries(t *testing.T) {
	body := `[
  {"id": 1, "name": "Sedan", "capacity": 4, "price_per_day": "1000"},
  {"id": 2, "name": "", "capacity": 0, "price_per_day": "800", "active": false}
]`

	types, err := Parse("catalog.json", []byte(body))
	if err != nil {
		t.Fatalf("an invalid inactive entry must not block the catalog: %v", err)
	}
	if len(types) != 2 || types[1].Active {
		t.Fatalf("unexpected catalog: %+v", types)
	}
	if !types[1].PricePerDay.Equal(decimal.NewFromInt(800)) {
		t.Errorf("price = %s, want 800", types[1].PricePerDay)
	}

	// The same entry marked active is rejected.
	active := `[{"id": 2, "name": "", "capacity": 0, "price_per_day": "800"}]`
	if _, err := Parse("catalog.json", []byte(active)); !errors.Is(err, domain.ErrInvalidVehicleType) {
		t.Fatalf("error = %v, want ErrInvalidVehicleType", err)
	}
}

func TestParseWrapsInvalidVehicleType(t *testing.T) {
	_, err := Parse("catalog.json", []byte(`[{"id": 1, "name": "Sedan", "capacity": -1, "price_per_day": "10"}]`))
	if !errors.Is(err, domain.ErrInvalidVehicleType) {
		t.Fatalf("error %v does not wrap ErrInvalidVehicleType", err)
	}
}

func TestFileVehicleTypeRepositoryListVehicleTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicle_types.yml")
	if err := os.WriteFile(path, []byte(yamlCatalog), 0o600); err != nil {
		t.Fatal(err)
	}

	repo := NewFileVehicleTypeRepository(path)
	types, err := repo.ListVehicleTypes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("types = %d, want 3", len(types))
	}

	missing := NewFileVehicleTypeRepository(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := missing.ListVehicleTypes(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
