package ports

import (
	"context"
	"vehicle-allocation-service/internal/domain"
)

// Port: a boundary for retrieving the vehicle type catalog from a data source.
type VehicleTypeRepository interface {
	// Retrieve every vehicle type, active or not, in catalog order.
	ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error)
}

// Optional extension of VehicleTypeRepository that can fetch selected IDs directly.
type VehicleTypeLookup interface {
	VehicleTypeRepository
	// Return the vehicle types found for ids keyed by ID. Missing IDs are simply absent.
	GetVehicleTypes(ctx context.Context, ids []int) (map[int]domain.VehicleType, error)
}
