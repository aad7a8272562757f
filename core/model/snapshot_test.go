package model

import (
	"testing"
	"time"
)

func fleetSnapshot() Snapshot {
	return Snapshot{
		Vehicles: []Vehicle{
			{ID: "v1", Seats: 4, Location: &LatLng{Lat: 48.0, Lng: 2.0}},
			{ID: "v2", Seats: 8},
		},
		Trips: []Trip{
			{ID: "T1", VehicleID: "v1", Status: TripPlanned, DepartureTime: base.Add(time.Hour)},
			{ID: "T2", VehicleID: "v1", Status: TripCompleted, DepartureTime: base.Add(-time.Hour)},
			{ID: "T3", VehicleID: "v1", Status: TripInProgress, DepartureTime: base},
		},
		Bookings: []Booking{
			{ID: "b1", TripID: "T1", Passengers: 2, Status: BookingConfirmed},
			{ID: "b2", TripID: "T1", Passengers: 3, Status: BookingCancelled},
			{ID: "b3", TripID: "T1", Passengers: 1, Status: BookingConfirmed},
		},
	}
}

func TestSnapshotTripsByStatus(t *testing.T) {
	got := fleetSnapshot().TripsByStatus(TripPlanned)
	if len(got) != 1 || got[0].ID != "T1" {
		t.Fatalf("got %+v", got)
	}
}

func TestSnapshotTripPassengers(t *testing.T) {
	// Cancelled bookings do not occupy seats.
	if n := fleetSnapshot().TripPassengers("T1"); n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
}

func TestSnapshotActiveVehicleTrips(t *testing.T) {
	got := fleetSnapshot().ActiveVehicleTrips("v1")
	if len(got) != 2 {
		t.Fatalf("expected 2 active trips, got %d", len(got))
	}
	if got[0].ID != "T3" || got[1].ID != "T1" {
		t.Fatalf("trips not sorted by departure: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestSnapshotClone(t *testing.T) {
	snap := fleetSnapshot()
	clone := snap.Clone()

	clone.Vehicles[0].Location.Lat = 0
	clone.Trips[0].Stops = append(clone.Trips[0].Stops, TripStop{ID: "x"})
	clone.Bookings[0].Status = BookingCancelled

	if snap.Vehicles[0].Location.Lat != 48.0 {
		t.Error("vehicle location shared with clone")
	}
	if len(snap.Trips[0].Stops) != 0 {
		t.Error("trip stops shared with clone")
	}
	if snap.Bookings[0].Status != BookingConfirmed {
		t.Error("bookings shared with clone")
	}
}
