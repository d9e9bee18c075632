package domain

import "github.com/shopspring/decimal"

// One vehicle type together with how many units of it are dispatched.
type VehicleCount struct {
	VehicleType *VehicleType
	Count       int
}

// Represents one candidate allocation of vehicles for a passenger group.
// All aggregate figures are derived once at construction from the entries,
// the passenger target and the billed days; they cannot be set independently.
type VehicleCombination struct {
	entries     []VehicleCount
	passengers  int
	billedDays  int
	vehicles    int
	capacity    int
	costPerDay  decimal.Decimal
	totalCost   decimal.Decimal
	recommended bool
}

// Build a combination from per-type counts. Entries with a non-positive count
// are dropped so that only dispatched vehicle types are listed.
func NewVehicleCombination(entries []VehicleCount, passengers, billedDays int) VehicleCombination {
	c := VehicleCombination{
		entries:    make([]VehicleCount, 0, len(entries)),
		passengers: passengers,
		billedDays: billedDays,
		costPerDay: decimal.Zero,
	}

	for _, e := range entries {
		if e.Count <= 0 || e.VehicleType == nil {
			continue
		}
		c.entries = append(c.entries, e)
		c.vehicles += e.Count
		c.capacity += e.Count * e.VehicleType.Capacity
		c.costPerDay = c.costPerDay.Add(e.VehicleType.PricePerDay.Mul(decimal.NewFromInt(int64(e.Count))))
	}
	c.totalCost = c.costPerDay.Mul(decimal.NewFromInt(int64(billedDays)))

	return c
}

// Return a copy of the dispatched entries in catalog order.
func (c VehicleCombination) Entries() []VehicleCount {
	return append([]VehicleCount(nil), c.entries...)
}

func (c VehicleCombination) Passengers() int { return c.passengers }

func (c VehicleCombination) BilledDays() int { return c.billedDays }

func (c VehicleCombination) TotalVehicles() int { return c.vehicles }

func (c VehicleCombination) TotalCapacity() int { return c.capacity }

// Seats left empty once every passenger is seated. Negative for an infeasible allocation.
func (c VehicleCombination) UnusedSeats() int { return c.capacity - c.passengers }

func (c VehicleCombination) CostPerDay() decimal.Decimal { return c.costPerDay }

func (c VehicleCombination) TotalCost() decimal.Decimal { return c.totalCost }

// Report whether the combination seats every passenger.
func (c VehicleCombination) Feasible() bool { return c.capacity >= c.passengers }

func (c VehicleCombination) Recommended() bool { return c.recommended }

// Return a copy carrying the recommended flag. Only the ranker sets it.
func (c VehicleCombination) WithRecommended(recommended bool) VehicleCombination {
	c.recommended = recommended
	return c
}
