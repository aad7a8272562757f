package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/ridepool/core/logger"
	"github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
	"github.com/example/ridepool/internal/eventbus"
)

// pruneWindow bounds the coarse trip prune: a trip is only worth the
// expensive insertion scan when its schedule lies within this window of the
// requested pickup.
const pruneWindow = 30 * time.Minute

// Engine decides, per booking request, whether to splice the request into an
// already planned trip, start a new trip on a free vehicle, or reject. It is
// a pure function of the snapshot, the config and the routing oracle: it
// holds no locks, mutates nothing and keeps no state between calls.
type Engine struct {
	routing      routing.Provider
	ids          IDAllocator
	log          logger.Logger
	metrics      metrics.MetricsSink
	bus          eventbus.EventBus
	insertion    *insertionEvaluator
	availability *availabilityResolver
}

// NewEngine creates an Engine. provider and ids are required; sink, bus and
// log may be nil and default to no-ops.
func NewEngine(provider routing.Provider, ids IDAllocator, sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger) (*Engine, error) {
	if provider == nil || ids == nil {
		return nil, fmt.Errorf("match: nil parameter provided to NewEngine")
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	e := &Engine{
		routing: provider,
		ids:     ids,
		log:     log,
		metrics: sink,
		bus:     bus,
	}
	e.insertion = &insertionEvaluator{routing: provider, log: log}
	e.availability = &availabilityResolver{
		routing: provider,
		log:     log,
		observe: func(ev VehicleEvent) {
			e.publish(ev)
			e.diag(CategoryAlgorithm, "vehicle_"+ev.Decision, map[string]any{
				"vehicle_id": ev.VehicleID,
				"reason":     ev.Reason,
			})
		},
	}
	return e, nil
}

// Match runs the full decision: prune planned trips, scan insertion
// positions first-fit per trip, rank survivors by confirmed passenger count,
// and fall back to a new trip on a free vehicle. Every branch emits a
// diagnostic event; none of them changes the outcome.
func (e *Engine) Match(ctx context.Context, req model.BookingRequest, snap model.Snapshot, cfg Config) model.MatchResult {
	if err := req.Validate(); err != nil {
		return e.finish(req, model.MatchResult{Kind: model.MatchRejected, Reason: err.Error()})
	}

	bookingID := e.ids.NewID()
	eligible := e.pruneTrips(req, snap)

	// Insertion scans across trips are independent; evaluate them
	// concurrently but keep the aggregation deterministic by collecting
	// into trip order, never arrival order.
	candidates := make([]*insertionCandidate, len(eligible))
	var wg sync.WaitGroup
	for i := range eligible {
		wg.Add(1)
		go func(i int, trip model.Trip) {
			defer wg.Done()
			candidates[i] = e.firstFeasibleSplice(ctx, trip, snap, req, bookingID, cfg)
		}(i, eligible[i])
	}
	wg.Wait()

	feasible := candidates[:0:0]
	for _, c := range candidates {
		if c != nil {
			feasible = append(feasible, c)
		}
	}
	if len(feasible) > 0 {
		// Prefer filling fuller vehicles; stable sort keeps snapshot order
		// as the tie break.
		sort.SliceStable(feasible, func(i, j int) bool {
			return feasible[i].score > feasible[j].score
		})
		best := feasible[0]
		return e.finish(req, model.MatchResult{
			Kind:        model.MatchPool,
			BookingID:   bookingID,
			TripID:      best.trip.ID,
			VehicleID:   best.trip.VehicleID,
			PickupTime:  best.pickupTime,
			DropoffTime: best.dropoffTime,
			Duration:    best.duration,
			Polyline:    best.polyline,
			Stops:       best.stops,
		})
	}

	// No pooling trip works: try a brand-new trip on a free vehicle.
	direct, err := e.routing.Route(ctx, []model.LatLng{req.PickupLocation, req.DropoffLocation})
	if err != nil {
		e.diag(CategoryAlgorithm, "direct_route_failed", map[string]any{"error": err.Error()})
		return e.finish(req, model.MatchResult{Kind: model.MatchRejected, Reason: "could not calculate route"})
	}

	dec := e.availability.resolve(ctx, req.RequestedPickup, direct.TotalDuration, req.PickupLocation, snap, cfg)
	if dec.vehicle == nil {
		res := model.MatchResult{
			Kind:              model.MatchRejected,
			Reason:            "no vehicle available",
			EarliestAvailable: dec.earliest,
		}
		if dec.earliest != nil {
			res.Reason = fmt.Sprintf("no vehicle available before %s", dec.earliest.Format(time.RFC3339))
		}
		return e.finish(req, res)
	}

	dropoffAt := req.RequestedPickup.Add(direct.TotalDuration).Add(cfg.StopService())
	stops := []model.TripStop{
		{
			ID:            e.ids.NewID(),
			Location:      req.PickupLocation,
			Address:       req.PickupAddress,
			Type:          model.StopPickup,
			BookingID:     bookingID,
			ScheduledTime: req.RequestedPickup,
			Sequence:      0,
		},
		{
			ID:            e.ids.NewID(),
			Location:      req.DropoffLocation,
			Address:       req.DropoffAddress,
			Type:          model.StopDropoff,
			BookingID:     bookingID,
			ScheduledTime: dropoffAt,
			Sequence:      1,
		},
	}
	return e.finish(req, model.MatchResult{
		Kind:        model.MatchNew,
		BookingID:   bookingID,
		VehicleID:   dec.vehicle.ID,
		PickupTime:  req.RequestedPickup,
		DropoffTime: dropoffAt,
		Duration:    direct.TotalDuration,
		Polyline:    direct.Polyline,
		Stops:       stops,
	})
}

// pruneTrips keeps the planned trips whose schedule is temporally plausible
// for the requested pickup.
func (e *Engine) pruneTrips(req model.BookingRequest, snap model.Snapshot) []model.Trip {
	var eligible []model.Trip
	for _, t := range snap.TripsByStatus(model.TripPlanned) {
		switch {
		case t.DepartureTime.After(req.RequestedPickup.Add(pruneWindow)):
			e.skipTrip(t.ID, "departs too long after requested pickup")
		case t.LastStopTime().Before(req.RequestedPickup.Add(-pruneWindow)):
			e.skipTrip(t.ID, "ends too long before requested pickup")
		default:
			eligible = append(eligible, t)
		}
	}
	return eligible
}

// firstFeasibleSplice scans position pairs in fixed order and returns the
// first feasible one. At most one candidate per trip: first fit within a
// trip, never best fit.
func (e *Engine) firstFeasibleSplice(ctx context.Context, trip model.Trip, snap model.Snapshot, req model.BookingRequest, bookingID string, cfg Config) *insertionCandidate {
	bookings := snap.ConfirmedTripBookings(trip.ID)
	seats := cfg.SeatsPerVehicle
	if v, ok := snap.VehicleByID(trip.VehicleID); ok && v.Seats > 0 {
		seats = v.Seats
	}

	for pickupPos := 0; pickupPos <= len(trip.Stops); pickupPos++ {
		for dropoffPos := pickupPos + 1; dropoffPos <= len(trip.Stops)+1; dropoffPos++ {
			cand, err := e.insertion.evaluate(ctx, trip, bookings, req, bookingID, seats, pickupPos, dropoffPos, cfg)
			ev := InsertionEvent{TripID: trip.ID, PickupPos: pickupPos, DropoffPos: dropoffPos, Accepted: err == nil}
			if err != nil {
				ev.Reason = reasonFor(err)
			}
			e.publish(ev)
			e.diag(CategoryAlgorithm, "insertion_evaluated", map[string]any{
				"trip_id":     ev.TripID,
				"pickup_pos":  ev.PickupPos,
				"dropoff_pos": ev.DropoffPos,
				"accepted":    ev.Accepted,
				"reason":      ev.Reason,
			})
			if err := e.metrics.RecordInsertion(metrics.InsertionEvent{
				TripID:     ev.TripID,
				PickupPos:  ev.PickupPos,
				DropoffPos: ev.DropoffPos,
				Accepted:   ev.Accepted,
				Reason:     ev.Reason,
			}); err != nil {
				e.log.Errorf("insertion metrics error: %v", err)
			}
			if err == nil {
				return cand
			}
		}
	}
	return nil
}

// finish publishes the result event, records metrics and returns the result
// unchanged.
func (e *Engine) finish(req model.BookingRequest, res model.MatchResult) model.MatchResult {
	e.publish(ResultEvent{Request: req, Result: res})
	category := CategoryBooking
	if res.Kind == model.MatchRejected {
		category = CategoryAPI
	}
	e.diag(category, "match_"+string(res.Kind), map[string]any{
		"trip_id":    res.TripID,
		"vehicle_id": res.VehicleID,
		"reason":     res.Reason,
	})
	if err := e.metrics.RecordMatch(metrics.MatchEvent{
		Outcome:     res.Kind,
		TripID:      res.TripID,
		VehicleID:   res.VehicleID,
		Passengers:  req.Passengers,
		Duration:    res.Duration,
		Reason:      res.Reason,
		RequestedAt: req.RequestedPickup,
		Time:        time.Now(),
	}); err != nil {
		e.log.Errorf("match metrics error: %v", err)
	}
	return res
}

func (e *Engine) skipTrip(tripID, reason string) {
	e.publish(TripSkippedEvent{TripID: tripID, Reason: reason})
	e.diag(CategoryTrip, "trip_skipped", map[string]any{"trip_id": tripID, "reason": reason})
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func (e *Engine) diag(category, action string, fields map[string]any) {
	fields["category"] = category
	fields["action"] = action
	e.log.Debugw(action, fields)
}

// reasonFor maps an evaluation error to a stable diagnostic label.
func reasonFor(err error) string {
	var cv ConstraintViolation
	switch {
	case errors.As(err, &cv):
		return cv.Constraint
	case errors.Is(err, ErrRouteUnavailable):
		return "route_unavailable"
	case errors.Is(err, ErrStopMissing):
		return "invariant_violation"
	default:
		return "error"
	}
}

// nopLogger is used when no logger is injected.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
