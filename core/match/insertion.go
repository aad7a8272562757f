package match

import (
	"context"
	"fmt"
	"time"

	"github.com/example/ridepool/core/logger"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// pickupProximity is how far the computed pickup time may drift from the
// requested one, in either direction.
const pickupProximity = 15 * time.Minute

// insertionCandidate is one feasible splice of the request into an existing
// trip, with its fully recomputed schedule.
type insertionCandidate struct {
	trip        model.Trip
	stops       []model.TripStop
	pickupTime  time.Time
	dropoffTime time.Time
	duration    time.Duration
	polyline    string
	// score is the trip's confirmed passenger count before the insertion;
	// fuller trips rank higher.
	score int
}

// insertionEvaluator tests a single candidate splice of a request's pickup
// and dropoff into a trip's stop list. One evaluation issues up to two
// routing calls: the full rebuilt tour and the new rider's direct baseline.
type insertionEvaluator struct {
	routing routing.Provider
	log     logger.Logger
}

// evaluate splices the request at (pickupPos, dropoffPos), recomputes the
// whole schedule against the routing provider and applies the capacity,
// detour and proximity constraints. dropoffPos is counted against the list
// with the pickup already inserted, so it ranges over pickupPos+1..len+1.
func (e *insertionEvaluator) evaluate(
	ctx context.Context,
	trip model.Trip,
	bookings []model.Booking,
	req model.BookingRequest,
	bookingID string,
	seats int,
	pickupPos, dropoffPos int,
	cfg Config,
) (*insertionCandidate, error) {
	pickup := model.TripStop{
		Location:  req.PickupLocation,
		Address:   req.PickupAddress,
		Type:      model.StopPickup,
		BookingID: bookingID,
	}
	dropoff := model.TripStop{
		Location:  req.DropoffLocation,
		Address:   req.DropoffAddress,
		Type:      model.StopDropoff,
		BookingID: bookingID,
	}
	stops := insertStop(trip.Stops, pickupPos, pickup)
	stops = insertStop(stops, dropoffPos, dropoff)

	waypoints := make([]model.LatLng, len(stops))
	for i, s := range stops {
		waypoints[i] = s.Location
	}
	route, err := e.routing.Route(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}
	if len(route.Legs) != len(stops)-1 {
		return nil, fmt.Errorf("%w: got %d legs for %d stops", ErrRouteUnavailable, len(route.Legs), len(stops))
	}

	// Rebuild the schedule from the trip's departure: each stop beyond the
	// first is reached after its leg's travel time plus the per-stop dwell.
	t := trip.DepartureTime
	stops[0].ScheduledTime = t
	stops[0].Sequence = 0
	for i := 1; i < len(stops); i++ {
		t = t.Add(route.Legs[i-1].Duration).Add(cfg.StopService())
		stops[i].ScheduledTime = t
		stops[i].Sequence = i
	}

	var pickupTime, dropoffTime time.Time
	var located int
	for _, s := range stops {
		if s.BookingID != bookingID {
			continue
		}
		switch s.Type {
		case model.StopPickup:
			pickupTime = s.ScheduledTime
		case model.StopDropoff:
			dropoffTime = s.ScheduledTime
		}
		located++
	}
	if located != 2 {
		// Internal bug: the splice lost a stop. Drop this candidate only.
		e.log.Errorf("trip %s: %v (pickupPos=%d dropoffPos=%d)", trip.ID, ErrStopMissing, pickupPos, dropoffPos)
		return nil, ErrStopMissing
	}

	if err := e.checkCapacity(stops, bookings, bookingID, req.Passengers, seats); err != nil {
		return nil, err
	}
	if err := e.checkExistingDetour(trip, stops, bookings, cfg); err != nil {
		return nil, err
	}
	if err := e.checkNewDetour(ctx, req, pickupTime, dropoffTime, cfg); err != nil {
		return nil, err
	}
	if d := absDuration(pickupTime.Sub(req.RequestedPickup)); d > pickupProximity {
		return nil, ConstraintViolation{
			Constraint: ConstraintProximity,
			Detail:     fmt.Sprintf("computed pickup drifts %s from requested time", d.Round(time.Second)),
		}
	}

	score := 0
	for _, b := range bookings {
		score += b.Passengers
	}
	return &insertionCandidate{
		trip:        trip,
		stops:       stops,
		pickupTime:  pickupTime,
		dropoffTime: dropoffTime,
		duration:    route.TotalDuration,
		polyline:    route.Polyline,
		score:       score,
	}, nil
}

// checkCapacity walks the final stop order accumulating on-board passengers
// and rejects as soon as the running total exceeds the seat capacity.
func (e *insertionEvaluator) checkCapacity(stops []model.TripStop, bookings []model.Booking, bookingID string, passengers, seats int) error {
	counts := make(map[string]int, len(bookings)+1)
	for _, b := range bookings {
		counts[b.ID] = b.Passengers
	}
	counts[bookingID] = passengers

	onboard := 0
	for _, s := range stops {
		switch s.Type {
		case model.StopPickup:
			onboard += counts[s.BookingID]
		case model.StopDropoff:
			onboard -= counts[s.BookingID]
		}
		if onboard > seats {
			return ConstraintViolation{
				Constraint: ConstraintCapacity,
				Detail:     fmt.Sprintf("%d on board at stop %d exceeds %d seats", onboard, s.Sequence, seats),
			}
		}
	}
	return nil
}

// checkExistingDetour rejects when any already scheduled rider's recomputed
// dropoff slips past their promised one by more than the detour bound.
func (e *insertionEvaluator) checkExistingDetour(trip model.Trip, stops []model.TripStop, bookings []model.Booking, cfg Config) error {
	for _, b := range bookings {
		promised, ok := trip.DropoffTimeFor(b.ID)
		if !ok {
			continue
		}
		var recomputed time.Time
		for _, s := range stops {
			if s.Type == model.StopDropoff && s.BookingID == b.ID {
				recomputed = s.ScheduledTime
				break
			}
		}
		if delay := recomputed.Sub(promised); delay > cfg.MaxDetour() {
			return ConstraintViolation{
				Constraint: ConstraintExistingDetour,
				Detail:     fmt.Sprintf("booking %s delayed %s", b.ID, delay.Round(time.Second)),
			}
		}
	}
	return nil
}

// checkNewDetour compares the new rider's recomputed dropoff against their
// private direct route.
func (e *insertionEvaluator) checkNewDetour(ctx context.Context, req model.BookingRequest, pickupTime, dropoffTime time.Time, cfg Config) error {
	direct, err := e.routing.Route(ctx, []model.LatLng{req.PickupLocation, req.DropoffLocation})
	if err != nil {
		return fmt.Errorf("%w: direct baseline: %v", ErrRouteUnavailable, err)
	}
	if delay := dropoffTime.Sub(pickupTime.Add(direct.TotalDuration)); delay > cfg.MaxDetour() {
		return ConstraintViolation{
			Constraint: ConstraintNewDetour,
			Detail:     fmt.Sprintf("dropoff %s past direct route", delay.Round(time.Second)),
		}
	}
	return nil
}

// insertStop returns a fresh list with s inserted at pos, leaving the input
// untouched.
func insertStop(stops []model.TripStop, pos int, s model.TripStop) []model.TripStop {
	out := make([]model.TripStop, 0, len(stops)+1)
	out = append(out, stops[:pos]...)
	out = append(out, s)
	return append(out, stops[pos:]...)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
