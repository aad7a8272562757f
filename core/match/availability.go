package match

import (
	"context"
	"time"

	"github.com/example/ridepool/core/logger"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// availabilityDecision is the resolver's answer: a vehicle able to start a
// brand-new trip, or none plus the earliest time one is projected to free up.
type availabilityDecision struct {
	vehicle  *model.Vehicle
	earliest *time.Time
}

// availabilityResolver decides whether an idle vehicle can start a new trip
// at the requested time, given every vehicle's other trips.
type availabilityResolver struct {
	routing routing.Provider
	log     logger.Logger
	observe func(VehicleEvent)
}

// resolve scans the fleet in order and returns the first vehicle that can
// cover the candidate window [pickupAt, pickupAt+duration+stop service]
// without violating the inter-trip buffer on either side. First fit, not
// globally optimal.
func (r *availabilityResolver) resolve(
	ctx context.Context,
	pickupAt time.Time,
	duration time.Duration,
	pickup model.LatLng,
	snap model.Snapshot,
	cfg Config,
) availabilityDecision {
	windowEnd := pickupAt.Add(duration).Add(cfg.StopService())

	var earliest *time.Time
	track := func(t time.Time) {
		if earliest == nil || t.Before(*earliest) {
			cp := t
			earliest = &cp
		}
	}

	for i := range snap.Vehicles {
		v := snap.Vehicles[i]
		trips := snap.ActiveVehicleTrips(v.ID)

		if busy := r.overlapping(trips, pickupAt, windowEnd); busy != nil {
			// The vehicle is occupied during the window. Estimate when it
			// frees up: trip end plus the drive to the new pickup plus the
			// buffer.
			if last := busy.LastStop(); last != nil {
				if rt, err := r.routing.Route(ctx, []model.LatLng{last.Location, pickup}); err == nil {
					track(busy.LastStopTime().Add(rt.TotalDuration).Add(cfg.TripBuffer()))
				}
			}
			r.observe(VehicleEvent{VehicleID: v.ID, Decision: "busy", Reason: "trip " + busy.ID + " overlaps window"})
			continue
		}

		if ok := r.reachableAfterPrior(ctx, trips, pickupAt, pickup, cfg, track); !ok {
			r.observe(VehicleEvent{VehicleID: v.ID, Decision: "infeasible", Reason: "cannot reach pickup after prior trip"})
			continue
		}

		if next := nextTrip(trips, windowEnd); next != nil {
			// Static slack check against the following trip; real travel
			// time for that leg is deliberately not recomputed here.
			if next.DepartureTime.Sub(windowEnd) < cfg.TripBuffer() {
				r.observe(VehicleEvent{VehicleID: v.ID, Decision: "infeasible", Reason: "insufficient gap before trip " + next.ID})
				continue
			}
		}

		r.observe(VehicleEvent{VehicleID: v.ID, Decision: "selected", Reason: ""})
		return availabilityDecision{vehicle: &v}
	}

	return availabilityDecision{earliest: earliest}
}

// overlapping returns the first trip whose own window [departure, last stop]
// intersects the candidate window.
func (r *availabilityResolver) overlapping(trips []model.Trip, pickupAt, windowEnd time.Time) *model.Trip {
	for i := range trips {
		t := trips[i]
		if !t.DepartureTime.After(windowEnd) && !t.LastStopTime().Before(pickupAt) {
			return &t
		}
	}
	return nil
}

// reachableAfterPrior checks that the vehicle, coming off the latest trip
// that ends at or before the requested pickup, can be at the new pickup no
// later than pickup minus the buffer. A failed travel-time lookup makes the
// vehicle infeasible with no ready-time estimate.
func (r *availabilityResolver) reachableAfterPrior(
	ctx context.Context,
	trips []model.Trip,
	pickupAt time.Time,
	pickup model.LatLng,
	cfg Config,
	track func(time.Time),
) bool {
	prior := priorTrip(trips, pickupAt)
	if prior == nil {
		return true
	}
	last := prior.LastStop()
	if last == nil {
		return true
	}
	rt, err := r.routing.Route(ctx, []model.LatLng{last.Location, pickup})
	if err != nil {
		r.log.Debugf("prior-trip travel time lookup failed for trip %s: %v", prior.ID, err)
		return false
	}
	arrival := prior.LastStopTime().Add(rt.TotalDuration)
	if arrival.After(pickupAt.Add(-cfg.TripBuffer())) {
		track(arrival.Add(cfg.TripBuffer()))
		return false
	}
	return true
}

// priorTrip returns the latest trip ending at or before the requested
// pickup. trips must be sorted by departure ascending.
func priorTrip(trips []model.Trip, pickupAt time.Time) *model.Trip {
	var prior *model.Trip
	for i := range trips {
		t := trips[i]
		if !t.LastStopTime().After(pickupAt) {
			if prior == nil || t.LastStopTime().After(prior.LastStopTime()) {
				prior = &t
			}
		}
	}
	return prior
}

// nextTrip returns the earliest trip departing strictly after the candidate
// window ends. trips must be sorted by departure ascending.
func nextTrip(trips []model.Trip, windowEnd time.Time) *model.Trip {
	for i := range trips {
		if trips[i].DepartureTime.After(windowEnd) {
			return &trips[i]
		}
	}
	return nil
}
