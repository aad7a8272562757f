package model

import (
	"fmt"
	"time"
)

// TripStatus describes the lifecycle state of a trip.
type TripStatus string

const (
	TripPlanned    TripStatus = "planned"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

// Terminal reports whether the trip can no longer be scheduled against.
func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

// StopType distinguishes a rider boarding from a rider leaving the vehicle.
type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
)

// TripStop is one entry in a trip's ordered visiting plan.
type TripStop struct {
	ID            string    `json:"id"`
	Location      LatLng    `json:"location"`
	Address       string    `json:"address"`
	Type          StopType  `json:"type"`
	BookingID     string    `json:"booking_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Sequence      int       `json:"sequence"`
}

// Trip is a planned or running vehicle tour over an ordered list of stops.
// Stop order defines visiting order; sequence numbers are dense and strictly
// increasing.
type Trip struct {
	ID            string     `json:"id"`
	VehicleID     string     `json:"vehicle_id"`
	Status        TripStatus `json:"status"`
	Stops         []TripStop `json:"stops"`
	DepartureTime time.Time  `json:"departure_time"`
	Polyline      string     `json:"polyline,omitempty"`
}

// LastStop returns the final stop of the trip, or nil when the trip has no
// stops yet.
func (t Trip) LastStop() *TripStop {
	if len(t.Stops) == 0 {
		return nil
	}
	return &t.Stops[len(t.Stops)-1]
}

// LastStopTime returns the scheduled time of the final stop. A trip without
// stops ends at its departure time.
func (t Trip) LastStopTime() time.Time {
	if last := t.LastStop(); last != nil {
		return last.ScheduledTime
	}
	return t.DepartureTime
}

// DropoffTimeFor returns the scheduled dropoff time for the given booking,
// and whether the trip carries such a stop.
func (t Trip) DropoffTimeFor(bookingID string) (time.Time, bool) {
	for _, s := range t.Stops {
		if s.Type == StopDropoff && s.BookingID == bookingID {
			return s.ScheduledTime, true
		}
	}
	return time.Time{}, false
}

// Validate checks the structural invariants of a committed trip: dense
// strictly increasing sequence numbers, non-decreasing scheduled times, and
// every pickup followed by its dropoff within the same trip.
func (t Trip) Validate() error {
	pickups := make(map[string]int)
	for i, s := range t.Stops {
		if s.Sequence != i {
			return fmt.Errorf("trip %s: stop %s has sequence %d, want %d", t.ID, s.ID, s.Sequence, i)
		}
		if i > 0 && s.ScheduledTime.Before(t.Stops[i-1].ScheduledTime) {
			return fmt.Errorf("trip %s: scheduled times decrease at sequence %d", t.ID, i)
		}
		switch s.Type {
		case StopPickup:
			pickups[s.BookingID] = i
		case StopDropoff:
			if pos, ok := pickups[s.BookingID]; !ok || pos >= i {
				return fmt.Errorf("trip %s: dropoff for booking %s has no earlier pickup", t.ID, s.BookingID)
			}
			delete(pickups, s.BookingID)
		default:
			return fmt.Errorf("trip %s: unknown stop type %q", t.ID, s.Type)
		}
	}
	for id := range pickups {
		return fmt.Errorf("trip %s: pickup for booking %s has no dropoff", t.ID, id)
	}
	return nil
}
