package services

import (
	"fmt"
	"math"
	"vehicle-allocation-service/internal/domain"
)

// MaxBilledDays caps the billed duration so absurd requests cannot overflow pricing.
const MaxBilledDays = 36500

// Normalize a requested trip duration into whole billed days.
// Partial days are always billed in full and the minimum is one day.
// Durations past MaxBilledDays are clamped; callers that must not truncate
// check ValidateDays first.
func BilledDays(requested float64) int {
	if math.IsNaN(requested) || requested <= 1 {
		return 1
	}
	if requested >= MaxBilledDays {
		return MaxBilledDays
	}
	return int(math.Ceil(requested))
}

// Reject durations BilledDays would have to clamp. NaN and non-positive
// values are not errors; they bill as one day.
func ValidateDays(requested float64) error {
	if requested > MaxBilledDays {
		return fmt.Errorf("%w: %v days exceeds %d", domain.ErrDurationTooLong, requested, MaxBilledDays)
	}
	return nil
}

// Validated state for a single optimization run.
// Types holds only active entries, in the caller's order, with the matching
// per-type unit bound at the same index. suffixMaxCapacity[i] is the largest
// capacity among types[i:], and zero past the end.
type vehicleCatalog struct {
	types             []*domain.VehicleType
	maxUnits          []int
	suffixMaxCapacity []int
	passengers        int
	billedDays        int
}

// Build the run context. A nil catalog with nil error means there is nothing
// to search (no active types or no passengers), which is a valid outcome.
func newVehicleCatalog(types []domain.VehicleType, passengers int, days float64) (*vehicleCatalog, error) {
	if passengers <= 0 {
		return nil, nil
	}

	active := domain.ActiveVehicleTypes(types)
	if len(active) == 0 {
		return nil, nil
	}

	maxUnits := make([]int, len(active))
	for i, vt := range active {
		if err := vt.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle catalog: %w", err)
		}
		// Ceiling division: rounding down could hide the exact-capacity solution.
		maxUnits[i] = (passengers + vt.Capacity - 1) / vt.Capacity
	}

	suffixMax := make([]int, len(active)+1)
	for i := len(active) - 1; i >= 0; i-- {
		suffixMax[i] = max(suffixMax[i+1], active[i].Capacity)
	}

	return &vehicleCatalog{
		types:             active,
		maxUnits:          maxUnits,
		suffixMaxCapacity: suffixMax,
		passengers:        passengers,
		billedDays:        BilledDays(days),
	}, nil
}
