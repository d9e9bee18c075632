package domain

import "errors"

// ErrInvalidVehicleType indicates a catalog entry that cannot take part in a search
// (non-positive capacity, negative price, missing identity).
var ErrInvalidVehicleType = errors.New("invalid vehicle type")

// ErrSearchLimitExceeded is returned when a search explores more partial
// assignments than the configured cap allows. No partial result is returned.
var ErrSearchLimitExceeded = errors.New("vehicle combination search limit exceeded")

// ErrDurationTooLong is returned when a trip would bill more days than the
// service supports.
var ErrDurationTooLong = errors.New("trip duration too long")
