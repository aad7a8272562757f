package match

// IDAllocator produces identifiers for the bookings, trips and stops a match
// result describes. It is injected so tests stay deterministic and parallel
// runs never share hidden counters.
type IDAllocator interface {
	NewID() string
	// NewBookingNumber returns a short human-readable booking reference.
	NewBookingNumber() string
}
