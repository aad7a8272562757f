package model

import "fmt"

// Vehicle represents a pool vehicle in the fleet.
type Vehicle struct {
	ID    string `json:"id"`
	Seats int    `json:"seats"`

	// Location is the last reported position of the vehicle. It is only set
	// once the vehicle is idle after completing a trip; vehicles that have
	// never driven have no location.
	Location *LatLng `json:"location,omitempty"`
}

// Validate checks that the vehicle configuration is sound.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vehicle id must not be empty")
	}
	if v.Seats <= 0 {
		return fmt.Errorf("vehicle %s: seat capacity must be positive", v.ID)
	}
	return nil
}
