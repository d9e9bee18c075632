package services

import (
	"slices"
	"vehicle-allocation-service/internal/domain"
)

// DefaultMaxSolutions is the shortlist size used when the caller asks for none.
const DefaultMaxSolutions = 10

// Lexicographic ranking key: fewer vehicles, then fewer empty seats, then lower cost.
func compareCombinations(a, b domain.VehicleCombination) int {
	if a.TotalVehicles() != b.TotalVehicles() {
		if a.TotalVehicles() < b.TotalVehicles() {
			return -1
		}
		return 1
	}

	if a.UnusedSeats() != b.UnusedSeats() {
		if a.UnusedSeats() < b.UnusedSeats() {
			return -1
		}
		return 1
	}

	return a.TotalCost().Cmp(b.TotalCost())
}

// Order combinations by the ranking key and keep the first k.
// Full ties fall back to generation order (stable sort). The first entry is
// flagged as recommended.
func rankCombinations(combos []domain.VehicleCombination, k int) []domain.VehicleCombination {
	if k <= 0 {
		k = DefaultMaxSolutions
	}

	ranked := slices.Clone(combos)
	slices.SortStableFunc(ranked, compareCombinations)

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	for i := range ranked {
		ranked[i] = ranked[i].WithRecommended(i == 0)
	}

	return ranked
}
