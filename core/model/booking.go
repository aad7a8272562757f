package model

import (
	"fmt"
	"time"
)

// BookingStatus describes the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed rider reservation attached to a trip.
type Booking struct {
	ID              string        `json:"id"`
	Number          string        `json:"number"`
	TripID          string        `json:"trip_id,omitempty"`
	PickupLocation  LatLng        `json:"pickup_location"`
	PickupAddress   string        `json:"pickup_address"`
	DropoffLocation LatLng        `json:"dropoff_location"`
	DropoffAddress  string        `json:"dropoff_address"`
	RequestedPickup time.Time     `json:"requested_pickup"`
	EstimatedPickup time.Time     `json:"estimated_pickup"`
	EstimatedDrop   time.Time     `json:"estimated_dropoff"`
	Passengers      int           `json:"passengers"`
	Status          BookingStatus `json:"status"`
}

// BookingRequest is the ephemeral input to a single matching run. It is
// consumed by one engine call and never stored.
type BookingRequest struct {
	PickupLocation  LatLng    `json:"pickup_location"`
	PickupAddress   string    `json:"pickup_address"`
	DropoffLocation LatLng    `json:"dropoff_location"`
	DropoffAddress  string    `json:"dropoff_address"`
	RequestedPickup time.Time `json:"requested_pickup"`
	Passengers      int       `json:"passengers"`
}

// Validate checks that the request can be matched at all.
func (r BookingRequest) Validate() error {
	if r.Passengers <= 0 {
		return fmt.Errorf("passenger count must be positive")
	}
	if r.RequestedPickup.IsZero() {
		return fmt.Errorf("requested pickup time must be set")
	}
	return nil
}
