package model

import (
	"time"
)

// MatchKind tags the outcome of a matching run.
type MatchKind string

const (
	// MatchPool splices the request into an already planned trip.
	MatchPool MatchKind = "pool"
	// MatchNew starts a fresh trip on an idle vehicle.
	MatchNew MatchKind = "new"
	// MatchRejected means no trip nor vehicle can serve the request.
	MatchRejected MatchKind = "rejected"
)

// MatchResult is the decision returned by the matching engine. The engine
// only computes the shape a committed booking and trip should take; turning a
// non-rejected result into persisted state is the caller's job.
type MatchResult struct {
	Kind MatchKind `json:"kind"`

	// Set for pool and new results.
	BookingID   string        `json:"booking_id,omitempty"`
	VehicleID   string        `json:"vehicle_id,omitempty"`
	PickupTime  time.Time     `json:"pickup_time"`
	DropoffTime time.Time     `json:"dropoff_time"`
	Duration    time.Duration `json:"duration,omitempty"`
	Polyline    string        `json:"polyline,omitempty"`

	// TripID is set for pool results only; Stops is the full rebuilt stop
	// list for pool results and the two-stop plan for new results.
	TripID string     `json:"trip_id,omitempty"`
	Stops  []TripStop `json:"stops,omitempty"`

	// Set for rejected results.
	Reason            string     `json:"reason,omitempty"`
	EarliestAvailable *time.Time `json:"earliest_available,omitempty"`
}
