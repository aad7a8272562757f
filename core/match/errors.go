package match

import (
	"errors"
	"fmt"
)

// ErrRouteUnavailable marks a failed or empty routing response. The candidate
// that needed the route is dropped; the search continues.
var ErrRouteUnavailable = errors.New("route unavailable")

// ErrStopMissing indicates a newly spliced stop could not be located in the
// rebuilt list. It points at an internal bug; the affected candidate is
// dropped and the failure logged, never escalated.
var ErrStopMissing = errors.New("inserted stop missing after rebuild")

// Constraint names used in violation reasons and diagnostics.
const (
	ConstraintCapacity       = "capacity"
	ConstraintExistingDetour = "existing_detour"
	ConstraintNewDetour      = "new_detour"
	ConstraintProximity      = "pickup_proximity"
)

// ConstraintViolation reports which feasibility check rejected a candidate.
// It is non-fatal: the search moves on to the next candidate.
type ConstraintViolation struct {
	Constraint string
	Detail     string
}

func (e ConstraintViolation) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("constraint %s violated", e.Constraint)
	}
	return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Detail)
}
