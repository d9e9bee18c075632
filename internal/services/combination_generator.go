package services

import (
	"fmt"
	"math"
	"vehicle-allocation-service/internal/domain"
)

// DefaultMaxExplored bounds the number of search nodes one run may visit.
const DefaultMaxExplored = 1_000_000

// Search state for one generator run. Nothing here is shared between runs.
type combinationSearch struct {
	catalog     *vehicleCatalog
	counts      []int
	best        int
	explored    int
	maxExplored int
	solutions   []domain.VehicleCombination
}

// Enumerate every per-type count assignment that seats all passengers using
// depth-first backtracking over the catalog in order.
//
// Three cuts keep the search small without changing the ranked result:
// a partial assignment that already uses more vehicles than the best complete
// one found so far is abandoned; so is one whose remaining passengers would
// need too many vehicles even of the largest remaining type; and once the
// running capacity covers the passengers no further units are added (any
// extra unit only adds vehicles and empty seats). maxExplored <= 0 disables
// the node cap.
func generateCombinations(catalog *vehicleCatalog, maxExplored int) ([]domain.VehicleCombination, int, error) {
	if catalog == nil {
		return nil, 0, nil
	}

	s := &combinationSearch{
		catalog:     catalog,
		counts:      make([]int, len(catalog.types)),
		best:        math.MaxInt,
		maxExplored: maxExplored,
	}

	if err := s.visit(0, 0, 0); err != nil {
		return nil, s.explored, err
	}

	return s.solutions, s.explored, nil
}

func (s *combinationSearch) visit(idx, vehicles, capacity int) error {
	s.explored++
	if s.maxExplored > 0 && s.explored > s.maxExplored {
		return fmt.Errorf("generate combinations: explored %d nodes: %w", s.maxExplored, domain.ErrSearchLimitExceeded)
	}

	if idx == len(s.catalog.types) {
		if capacity >= s.catalog.passengers {
			s.emit(vehicles)
		}
		return nil
	}

	vt := s.catalog.types[idx]
	for n := 0; n <= s.catalog.maxUnits[idx]; n++ {
		v := vehicles + n
		// Vehicle count only grows with n, so nothing further in this loop can win.
		if v > s.best {
			break
		}

		c := capacity + n*vt.Capacity
		if rem := s.catalog.passengers - c; rem > 0 && !s.canStillWin(idx+1, v, rem) {
			continue
		}

		s.counts[idx] = n
		if err := s.visit(idx+1, v, c); err != nil {
			return err
		}

		if c >= s.catalog.passengers {
			break
		}
	}
	s.counts[idx] = 0

	return nil
}

// Report whether the remaining types can seat rem more passengers without
// exceeding the best vehicle count found so far. Even the largest remaining
// type needs ceil(rem/cap) more units.
func (s *combinationSearch) canStillWin(next, vehicles, rem int) bool {
	largest := s.catalog.suffixMaxCapacity[next]
	if largest == 0 {
		return false
	}
	return vehicles+(rem+largest-1)/largest <= s.best
}

func (s *combinationSearch) emit(vehicles int) {
	entries := make([]domain.VehicleCount, 0, len(s.counts))
	for i, n := range s.counts {
		if n > 0 {
			entries = append(entries, domain.VehicleCount{VehicleType: s.catalog.types[i], Count: n})
		}
	}

	s.solutions = append(s.solutions, domain.NewVehicleCombination(entries, s.catalog.passengers, s.catalog.billedDays))
	if vehicles < s.best {
		s.best = vehicles
	}
}
