package domain

// A stored allocation line as kept by the booking side: an opaque
// {vehicle_type_id, count} pair that may outlive the vehicle type it references.
type AllocationItem struct {
	VehicleTypeID int `json:"vehicle_type_id" yaml:"vehicle_type_id"`
	Count         int `json:"count" yaml:"count"`
}
