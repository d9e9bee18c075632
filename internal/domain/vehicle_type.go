package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Represents a catalog entry describing one kind of vehicle that can be dispatched.
// A VehicleType is created from persisted configuration and is never mutated by
// the optimizer; a single run references the caller's values by pointer.
type VehicleType struct {
	ID              int             `validate:"gt=0"`
	Name            string          `validate:"required"`
	Capacity        int             `validate:"gt=0"`
	LuggageCapacity int             `validate:"gte=0"`
	PricePerDay     decimal.Decimal `validate:"-"`
	Active          bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate a catalog entry before it is used in a search.
// Luggage capacity is checked for sanity only; the optimizer never constrains on it.
func (v VehicleType) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: id=%d: name must not be blank", ErrInvalidVehicleType, v.ID)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: id=%d: %v", ErrInvalidVehicleType, v.ID, err)
	}

	if v.PricePerDay.IsNegative() {
		return fmt.Errorf("%w: id=%d: price per day must not be negative (got %s)", ErrInvalidVehicleType, v.ID, v.PricePerDay)
	}

	return nil
}

// Return only the active entries, preserving catalog order.
func ActiveVehicleTypes(types []VehicleType) []*VehicleType {
	out := make([]*VehicleType, 0, len(types))
	for i := range types {
		if types[i].Active {
			out = append(out, &types[i])
		}
	}
	return out
}

// Index a catalog by vehicle type ID for price lookups.
func IndexVehicleTypes(types []VehicleType) map[int]VehicleType {
	m := make(map[int]VehicleType, len(types))
	for _, t := range types {
		m[t.ID] = t
	}
	return m
}
