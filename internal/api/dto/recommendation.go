package dto

import (
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/services"

	"github.com/shopspring/decimal"
)

type VehicleLineResponse struct {
	VehicleTypeID   int             `json:"vehicle_type_id" yaml:"vehicle_type_id"`
	Name            string          `json:"name" yaml:"name"`
	Count           int             `json:"count" yaml:"count"`
	CapacityPerUnit int             `json:"capacity_per_unit" yaml:"capacity_per_unit"`
	PricePerDay     decimal.Decimal `json:"price_per_day" yaml:"price_per_day"`
}

type CombinationResponse struct {
	Vehicles          []VehicleLineResponse `json:"vehicles" yaml:"vehicles"`
	TotalVehicleCount int                   `json:"total_vehicle_count" yaml:"total_vehicle_count"`
	TotalCapacity     int                   `json:"total_capacity" yaml:"total_capacity"`
	UnusedSeats       int                   `json:"unused_seats" yaml:"unused_seats"`
	CostPerDay        decimal.Decimal       `json:"cost_per_day" yaml:"cost_per_day"`
	TotalCost         decimal.Decimal       `json:"total_cost" yaml:"total_cost"`
	NumDays           int                   `json:"num_days" yaml:"num_days"`
	Recommended       bool                  `json:"recommended" yaml:"recommended"`
}

type SearchStatsResponse struct {
	Explored     int `json:"explored" yaml:"explored"`
	Generated    int `json:"generated" yaml:"generated"`
	NonDominated int `json:"non_dominated" yaml:"non_dominated"`
}

type RecommendationResponse struct {
	Passengers   int                   `json:"passengers" yaml:"passengers"`
	NumDays      int                   `json:"num_days" yaml:"num_days"`
	Combinations []CombinationResponse `json:"combinations" yaml:"combinations"`
	Stats        SearchStatsResponse   `json:"stats" yaml:"stats"`
}

// Map one ranked combination to its wire shape.
func NewCombinationResponse(c domain.VehicleCombination) CombinationResponse {
	entries := c.Entries()
	lines := make([]VehicleLineResponse, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, VehicleLineResponse{
			VehicleTypeID:   e.VehicleType.ID,
			Name:            e.VehicleType.Name,
			Count:           e.Count,
			CapacityPerUnit: e.VehicleType.Capacity,
			PricePerDay:     e.VehicleType.PricePerDay,
		})
	}

	return CombinationResponse{
		Vehicles:          lines,
		TotalVehicleCount: c.TotalVehicles(),
		TotalCapacity:     c.TotalCapacity(),
		UnusedSeats:       c.UnusedSeats(),
		CostPerDay:        c.CostPerDay(),
		TotalCost:         c.TotalCost(),
		NumDays:           c.BilledDays(),
		Recommended:       c.Recommended(),
	}
}

func NewRecommendationResponse(passengers int, res services.OptimizeResult) RecommendationResponse {
	out := RecommendationResponse{
		Passengers:   passengers,
		NumDays:      res.Stats.BilledDays,
		Combinations: make([]CombinationResponse, 0, len(res.Combinations)),
		Stats: SearchStatsResponse{
			Explored:     res.Stats.Explored,
			Generated:    res.Stats.Generated,
			NonDominated: res.Stats.NonDominated,
		},
	}
	for _, c := range res.Combinations {
		out.Combinations = append(out.Combinations, NewCombinationResponse(c))
	}
	return out
}
