package fleet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/ridepool/core/match"
	"github.com/example/ridepool/core/model"
)

var (
	ErrTripNotFound    = errors.New("fleet: trip not found")
	ErrBookingNotFound = errors.New("fleet: booking not found")
	ErrVehicleNotFound = errors.New("fleet: vehicle not found")
)

// Store holds the fleet state the engine matches against. The engine itself
// never mutates anything; the store owns all commits. A single mutex
// serializes the read-snapshot, match, commit sequence so two concurrent
// requests can never be granted the same seat or vehicle slot.
type Store struct {
	mu       sync.Mutex
	ids      match.IDAllocator
	vehicles []model.Vehicle
	trips    []model.Trip
	bookings []model.Booking
}

// NewStore creates an empty store using the given allocator for booking
// numbers and trip ids.
func NewStore(ids match.IDAllocator) *Store {
	return &Store{ids: ids}
}

// Load replaces the store contents with the given snapshot.
func (s *Store) Load(snap model.Snapshot) {
	snap = snap.Clone()
	s.mu.Lock()
	s.vehicles = snap.Vehicles
	s.trips = snap.Trips
	s.bookings = snap.Bookings
	s.mu.Unlock()
}

// AddVehicle registers a vehicle in the fleet.
func (s *Store) AddVehicle(v model.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.vehicles = append(s.vehicles, v)
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the current fleet state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.Snapshot {
	return model.Snapshot{Vehicles: s.vehicles, Trips: s.trips, Bookings: s.bookings}.Clone()
}

// MatchAndCommit runs the given match function against the current state and
// commits a non-rejected result atomically. The lock is held across the
// whole sequence: matching reads a snapshot no other commit can invalidate.
func (s *Store) MatchAndCommit(ctx context.Context, req model.BookingRequest, run func(model.Snapshot) model.MatchResult) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := run(s.snapshotLocked())
	switch res.Kind {
	case model.MatchRejected:
		return res, nil
	case model.MatchPool:
		return res, s.commitPoolLocked(req, res)
	case model.MatchNew:
		return res, s.commitNewLocked(req, res)
	default:
		return res, fmt.Errorf("fleet: unknown match kind %q", res.Kind)
	}
}

func (s *Store) commitPoolLocked(req model.BookingRequest, res model.MatchResult) error {
	idx := s.tripIndexLocked(res.TripID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, res.TripID)
	}
	s.trips[idx].Stops = append([]model.TripStop(nil), res.Stops...)
	s.ensureStopIDsLocked(s.trips[idx].Stops)
	s.trips[idx].Polyline = res.Polyline

	// Rescheduling moved every rider's times; carry them onto the bookings.
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.TripID != res.TripID || b.Status != model.BookingConfirmed {
			continue
		}
		for _, stop := range s.trips[idx].Stops {
			if stop.BookingID != b.ID {
				continue
			}
			switch stop.Type {
			case model.StopPickup:
				b.EstimatedPickup = stop.ScheduledTime
			case model.StopDropoff:
				b.EstimatedDrop = stop.ScheduledTime
			}
		}
	}

	s.bookings = append(s.bookings, s.newBookingLocked(req, res, res.TripID))
	return nil
}

func (s *Store) commitNewLocked(req model.BookingRequest, res model.MatchResult) error {
	if _, ok := s.vehicleIndexLocked(res.VehicleID); !ok {
		return fmt.Errorf("%w: %s", ErrVehicleNotFound, res.VehicleID)
	}
	trip := model.Trip{
		ID:            s.ids.NewID(),
		VehicleID:     res.VehicleID,
		Status:        model.TripPlanned,
		Stops:         append([]model.TripStop(nil), res.Stops...),
		DepartureTime: res.PickupTime,
		Polyline:      res.Polyline,
	}
	s.ensureStopIDsLocked(trip.Stops)
	s.trips = append(s.trips, trip)
	s.bookings = append(s.bookings, s.newBookingLocked(req, res, trip.ID))
	return nil
}

func (s *Store) newBookingLocked(req model.BookingRequest, res model.MatchResult, tripID string) model.Booking {
	return model.Booking{
		ID:              res.BookingID,
		Number:          s.ids.NewBookingNumber(),
		TripID:          tripID,
		PickupLocation:  req.PickupLocation,
		PickupAddress:   req.PickupAddress,
		DropoffLocation: req.DropoffLocation,
		DropoffAddress:  req.DropoffAddress,
		RequestedPickup: req.RequestedPickup,
		EstimatedPickup: res.PickupTime,
		EstimatedDrop:   res.DropoffTime,
		Passengers:      req.Passengers,
		Status:          model.BookingConfirmed,
	}
}

// StartTrip transitions a planned trip to in_progress.
func (s *Store) StartTrip(tripID string) error {
	return s.transitionTrip(tripID, model.TripPlanned, model.TripInProgress)
}

// CompleteTrip transitions a running trip to completed and parks the vehicle
// at the trip's last stop.
func (s *Store) CompleteTrip(tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.tripIndexLocked(tripID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	if s.trips[idx].Status != model.TripInProgress {
		return fmt.Errorf("fleet: trip %s is %s, not %s", tripID, s.trips[idx].Status, model.TripInProgress)
	}
	s.trips[idx].Status = model.TripCompleted
	if last := s.trips[idx].LastStop(); last != nil {
		if vi, ok := s.vehicleIndexLocked(s.trips[idx].VehicleID); ok {
			loc := last.Location
			s.vehicles[vi].Location = &loc
		}
	}
	return nil
}

func (s *Store) transitionTrip(tripID string, from, to model.TripStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.tripIndexLocked(tripID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	if s.trips[idx].Status != from {
		return fmt.Errorf("fleet: trip %s is %s, not %s", tripID, s.trips[idx].Status, from)
	}
	s.trips[idx].Status = to
	return nil
}

// CancelBooking cancels a booking and removes its stops from the owning
// trip. A trip whose last confirmed booking is cancelled is cancelled too.
func (s *Store) CancelBooking(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var booking *model.Booking
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			booking = &s.bookings[i]
			break
		}
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if booking.Status == model.BookingCancelled {
		return nil
	}
	booking.Status = model.BookingCancelled

	if booking.TripID == "" {
		return nil
	}
	idx := s.tripIndexLocked(booking.TripID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, booking.TripID)
	}
	kept := s.trips[idx].Stops[:0:0]
	for _, stop := range s.trips[idx].Stops {
		if stop.BookingID != bookingID {
			kept = append(kept, stop)
		}
	}
	for i := range kept {
		kept[i].Sequence = i
	}
	s.trips[idx].Stops = kept

	remaining := 0
	for _, b := range s.bookings {
		if b.TripID == booking.TripID && b.Status == model.BookingConfirmed {
			remaining++
		}
	}
	if remaining == 0 {
		s.trips[idx].Status = model.TripCancelled
	}
	return nil
}

// Trips returns a copy of all trips.
func (s *Store) Trips() []model.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Trips
}

// Bookings returns a copy of all bookings.
func (s *Store) Bookings() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Bookings
}

// Vehicles returns a copy of all vehicles.
func (s *Store) Vehicles() []model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Vehicles
}

func (s *Store) tripIndexLocked(tripID string) int {
	for i := range s.trips {
		if s.trips[i].ID == tripID {
			return i
		}
	}
	return -1
}

func (s *Store) vehicleIndexLocked(vehicleID string) (int, bool) {
	for i := range s.vehicles {
		if s.vehicles[i].ID == vehicleID {
			return i, true
		}
	}
	return 0, false
}

// ensureStopIDsLocked backfills ids on stops the engine created without one.
func (s *Store) ensureStopIDsLocked(stops []model.TripStop) {
	for i := range stops {
		if stops[i].ID == "" {
			stops[i].ID = s.ids.NewID()
		}
	}
}
