package services

import (
	"fmt"
	"vehicle-allocation-service/internal/domain"
)

type OptimizeRequest struct {
	VehicleTypes []domain.VehicleType
	Passengers   int
	Days         float64
	MaxSolutions int
	MaxExplored  int // zero uses DefaultMaxExplored, negative disables the cap
}

// Search statistics for one run, reported alongside the shortlist.
type OptimizeStats struct {
	Explored     int
	Generated    int
	NonDominated int
	BilledDays   int
}

type OptimizeResult struct {
	Combinations []domain.VehicleCombination
	Stats        OptimizeStats
}

// Optimize chooses how many vehicles of each active type to dispatch for a
// passenger group and returns a ranked shortlist of non-dominated options.
//
// Options are ordered by vehicle count, then unused seats, then total cost;
// the first one is flagged as recommended. No passengers or no active vehicle
// types yields an empty list, not an error.
func Optimize(types []domain.VehicleType, passengers int, days float64, maxSolutions int) ([]domain.VehicleCombination, error) {
	res, err := OptimizeWithStats(OptimizeRequest{
		VehicleTypes: types,
		Passengers:   passengers,
		Days:         days,
		MaxSolutions: maxSolutions,
	})
	if err != nil {
		return nil, err
	}
	return res.Combinations, nil
}

// OptimizeWithStats runs generation, dominance filtering and ranking and
// reports how much work each stage did.
func OptimizeWithStats(req OptimizeRequest) (OptimizeResult, error) {
	res := OptimizeResult{
		Combinations: []domain.VehicleCombination{},
		Stats:        OptimizeStats{BilledDays: BilledDays(req.Days)},
	}

	if err := ValidateDays(req.Days); err != nil {
		return OptimizeResult{}, fmt.Errorf("optimize: %w", err)
	}

	catalog, err := newVehicleCatalog(req.VehicleTypes, req.Passengers, req.Days)
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("optimize: %w", err)
	}
	if catalog == nil {
		return res, nil
	}

	maxExplored := req.MaxExplored
	if maxExplored == 0 {
		maxExplored = DefaultMaxExplored
	}

	generated, explored, err := generateCombinations(catalog, maxExplored)
	res.Stats.Explored = explored
	if err != nil {
		// Stats survive so callers can see how far the search got.
		return OptimizeResult{Stats: res.Stats}, fmt.Errorf("optimize: passengers=%d: %w", req.Passengers, err)
	}
	res.Stats.Generated = len(generated)

	frontier := filterDominated(generated)
	res.Stats.NonDominated = len(frontier)

	res.Combinations = append(res.Combinations, rankCombinations(frontier, req.MaxSolutions)...)

	return res, nil
}
