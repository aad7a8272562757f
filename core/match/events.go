package match

import "github.com/example/ridepool/core/model"

// Diagnostic categories. Every branch of the search emits one event; events
// never alter control flow.
const (
	CategoryAPI       = "api"
	CategoryAlgorithm = "algorithm"
	CategoryBooking   = "booking"
	CategoryTrip      = "trip"
)

// TripSkippedEvent is published when the coarse prune drops a trip before
// any insertion is attempted.
type TripSkippedEvent struct {
	TripID string
	Reason string
}

// InsertionEvent is published for every evaluated splice position.
type InsertionEvent struct {
	TripID     string
	PickupPos  int
	DropoffPos int
	Accepted   bool
	Reason     string
}

// VehicleEvent is published for every vehicle the availability resolver
// considered.
type VehicleEvent struct {
	VehicleID string
	Decision  string
	Reason    string
}

// ResultEvent carries the final decision of a matching run.
type ResultEvent struct {
	Request model.BookingRequest
	Result  model.MatchResult
}
