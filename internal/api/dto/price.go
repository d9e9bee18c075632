package dto

import (
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/services"

	"github.com/shopspring/decimal"
)

// Stored allocation to re-price, as read from a file or the command line.
type PriceRequest struct {
	Days       float64                 `json:"days" yaml:"days"`
	Allocation []domain.AllocationItem `json:"allocation" yaml:"allocation"`
}

type PricedLineResponse struct {
	VehicleTypeID int             `json:"vehicle_type_id" yaml:"vehicle_type_id"`
	Name          string          `json:"name" yaml:"name"`
	Count         int             `json:"count" yaml:"count"`
	PricePerDay   decimal.Decimal `json:"price_per_day" yaml:"price_per_day"`
	CostPerDay    decimal.Decimal `json:"cost_per_day" yaml:"cost_per_day"`
}

type PriceResponse struct {
	Lines      []PricedLineResponse `json:"lines" yaml:"lines"`
	UnknownIDs []int                `json:"unknown_vehicle_type_ids" yaml:"unknown_vehicle_type_ids"`
	NumDays    int                  `json:"num_days" yaml:"num_days"`
	CostPerDay decimal.Decimal      `json:"cost_per_day" yaml:"cost_per_day"`
	TotalCost  decimal.Decimal      `json:"total_cost" yaml:"total_cost"`
}

func NewPriceResponse(b services.PriceBreakdown) PriceResponse {
	out := PriceResponse{
		Lines:      make([]PricedLineResponse, 0, len(b.Items)),
		UnknownIDs: append([]int{}, b.UnknownIDs...),
		NumDays:    b.BilledDays,
		CostPerDay: b.CostPerDay,
		TotalCost:  b.TotalCost,
	}
	for _, it := range b.Items {
		out.Lines = append(out.Lines, PricedLineResponse{
			VehicleTypeID: it.VehicleType.ID,
			Name:          it.VehicleType.Name,
			Count:         it.Count,
			PricePerDay:   it.VehicleType.PricePerDay,
			CostPerDay:    it.CostPerDay,
		})
	}
	return out
}
