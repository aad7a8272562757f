package model

import "sort"

// Snapshot is a read-only view of the fleet handed to the matching engine.
// The engine never mutates it; all slices are owned by the snapshot.
type Snapshot struct {
	Vehicles []Vehicle `json:"vehicles"`
	Trips    []Trip    `json:"trips"`
	Bookings []Booking `json:"bookings"`
}

// TripsByStatus returns the trips currently in the given status, preserving
// snapshot order.
func (s Snapshot) TripsByStatus(status TripStatus) []Trip {
	var out []Trip
	for _, t := range s.Trips {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// ConfirmedTripBookings returns the confirmed bookings riding on the given
// trip.
func (s Snapshot) ConfirmedTripBookings(tripID string) []Booking {
	var out []Booking
	for _, b := range s.Bookings {
		if b.TripID == tripID && b.Status == BookingConfirmed {
			out = append(out, b)
		}
	}
	return out
}

// TripPassengers returns the total confirmed passenger count on a trip.
func (s Snapshot) TripPassengers(tripID string) int {
	n := 0
	for _, b := range s.ConfirmedTripBookings(tripID) {
		n += b.Passengers
	}
	return n
}

// VehicleByID looks up a vehicle.
func (s Snapshot) VehicleByID(id string) (Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ActiveVehicleTrips returns the vehicle's non-terminal trips sorted by
// departure time ascending.
func (s Snapshot) ActiveVehicleTrips(vehicleID string) []Trip {
	var out []Trip
	for _, t := range s.Trips {
		if t.VehicleID == vehicleID && !t.Status.Terminal() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	return out
}

// Clone returns a deep copy of the snapshot, detached from the caller's
// backing arrays.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Vehicles: make([]Vehicle, len(s.Vehicles)),
		Trips:    make([]Trip, len(s.Trips)),
		Bookings: append([]Booking(nil), s.Bookings...),
	}
	for i, v := range s.Vehicles {
		if v.Location != nil {
			loc := *v.Location
			v.Location = &loc
		}
		out.Vehicles[i] = v
	}
	for i, t := range s.Trips {
		t.Stops = append([]TripStop(nil), t.Stops...)
		out.Trips[i] = t
	}
	return out
}
