package services

import "vehicle-allocation-service/internal/domain"

// Report whether a is at least as good as b on vehicle count, unused seats and
// total cost, and strictly better on at least one of them.
func dominates(a, b domain.VehicleCombination) bool {
	costCmp := a.TotalCost().Cmp(b.TotalCost())

	if a.TotalVehicles() > b.TotalVehicles() || a.UnusedSeats() > b.UnusedSeats() || costCmp > 0 {
		return false
	}

	return a.TotalVehicles() < b.TotalVehicles() || a.UnusedSeats() < b.UnusedSeats() || costCmp < 0
}

// Keep only combinations that no other combination dominates.
// Exact ties on all three dimensions survive together. Generation order is preserved.
//
// Pairwise O(n²): solution sets stay in the tens once the generator has pruned.
func filterDominated(combos []domain.VehicleCombination) []domain.VehicleCombination {
	out := make([]domain.VehicleCombination, 0, len(combos))

	for i := range combos {
		dominated := false
		for j := range combos {
			if i != j && dominates(combos[j], combos[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, combos[i])
		}
	}

	return out
}
