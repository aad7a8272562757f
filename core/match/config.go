package match

import (
	"fmt"
	"time"
)

// Config defines the operating parameters of the matching engine. Durations
// are configured in whole minutes, matching how dispatchers reason about
// them.
type Config struct {
	// SeatsPerVehicle is the fleet-wide default seat capacity, used for
	// vehicles that do not declare their own.
	SeatsPerVehicle int `json:"seats_per_vehicle"`
	// MaxDetourMinutes bounds the extra dropoff delay an insertion may
	// impose, both on already scheduled riders and on the new rider versus
	// their direct route.
	MaxDetourMinutes int `json:"max_detour_minutes"`
	// StopServiceMinutes is the dwell time spent at every stop.
	StopServiceMinutes int `json:"stop_service_minutes"`
	// TripBufferMinutes is the minimum slack between two trips on the same
	// vehicle.
	TripBufferMinutes int `json:"trip_buffer_minutes"`
}

// SetDefaults fills unset fields with the standard fleet parameters.
func (c *Config) SetDefaults() {
	if c.SeatsPerVehicle == 0 {
		c.SeatsPerVehicle = 8
	}
	if c.MaxDetourMinutes == 0 {
		c.MaxDetourMinutes = 8
	}
	if c.StopServiceMinutes == 0 {
		c.StopServiceMinutes = 2
	}
	if c.TripBufferMinutes == 0 {
		c.TripBufferMinutes = 5
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.SeatsPerVehicle <= 0 {
		return fmt.Errorf("seats_per_vehicle must be positive")
	}
	if c.MaxDetourMinutes < 0 || c.StopServiceMinutes < 0 || c.TripBufferMinutes < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// MaxDetour returns the detour bound as a duration.
func (c Config) MaxDetour() time.Duration {
	return time.Duration(c.MaxDetourMinutes) * time.Minute
}

// StopService returns the per-stop dwell time as a duration.
func (c Config) StopService() time.Duration {
	return time.Duration(c.StopServiceMinutes) * time.Minute
}

// TripBuffer returns the inter-trip slack as a duration.
func (c Config) TripBuffer() time.Duration {
	return time.Duration(c.TripBufferMinutes) * time.Minute
}
