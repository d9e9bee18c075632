package services

import (
	"vehicle-allocation-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Priced line of a stored allocation.
type PricedAllocationItem struct {
	VehicleType domain.VehicleType
	Count       int
	CostPerDay  decimal.Decimal
}

// Result of re-pricing a stored allocation.
// UnknownIDs lists vehicle type IDs that were not found in the lookup and
// therefore contributed nothing to the total.
type PriceBreakdown struct {
	Items      []PricedAllocationItem
	UnknownIDs []int
	BilledDays int
	CostPerDay decimal.Decimal
	TotalCost  decimal.Decimal
}

// CalculatePrice re-derives the total cost of a previously chosen allocation
// without running a search.
//
// Vehicle type IDs missing from lookup are ignored and contribute zero, so an
// allocation that references a deleted or deactivated type still prices. Use
// PriceAllocation when the caller needs to know which IDs were skipped.
func CalculatePrice(allocation []domain.AllocationItem, days float64, lookup map[int]domain.VehicleType) decimal.Decimal {
	return PriceAllocation(allocation, days, lookup).TotalCost
}

// PriceAllocation prices an allocation line by line.
// Lines with a non-positive count contribute nothing.
func PriceAllocation(allocation []domain.AllocationItem, days float64, lookup map[int]domain.VehicleType) PriceBreakdown {
	b := PriceBreakdown{
		Items:      make([]PricedAllocationItem, 0, len(allocation)),
		BilledDays: BilledDays(days),
		CostPerDay: decimal.Zero,
	}

	for _, item := range allocation {
		vt, ok := lookup[item.VehicleTypeID]
		if !ok {
			b.UnknownIDs = append(b.UnknownIDs, item.VehicleTypeID)
			continue
		}
		if item.Count <= 0 {
			continue
		}

		line := vt.PricePerDay.Mul(decimal.NewFromInt(int64(item.Count)))
		b.Items = append(b.Items, PricedAllocationItem{VehicleType: vt, Count: item.Count, CostPerDay: line})
		b.CostPerDay = b.CostPerDay.Add(line)
	}

	b.TotalCost = b.CostPerDay.Mul(decimal.NewFromInt(int64(b.BilledDays)))

	return b
}
