package model

import "testing"

func TestBookingRequestValidate(t *testing.T) {
	req := BookingRequest{RequestedPickup: base, Passengers: 2}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := (BookingRequest{RequestedPickup: base}).Validate(); err == nil {
		t.Error("expected error for zero passengers")
	}
	if err := (BookingRequest{Passengers: 1}).Validate(); err == nil {
		t.Error("expected error for missing pickup time")
	}
}

func TestVehicleValidate(t *testing.T) {
	if err := (Vehicle{ID: "v1", Seats: 4}).Validate(); err != nil {
		t.Fatalf("valid vehicle rejected: %v", err)
	}
	if err := (Vehicle{Seats: 4}).Validate(); err == nil {
		t.Error("expected error for empty id")
	}
	if err := (Vehicle{ID: "v1"}).Validate(); err == nil {
		t.Error("expected error for zero seats")
	}
}
