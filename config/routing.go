package config

import "fmt"

// Routing provider names.
const (
	ProviderGoogle = "googlemaps"
	ProviderOSRM   = "osrm"
	ProviderMock   = "mock"
)

// RoutingConfig selects and configures the routing backend.
type RoutingConfig struct {
	// Provider is one of "googlemaps", "osrm" or "mock".
	Provider string `json:"provider"`
	// GoogleAPIKey is required for the googlemaps provider.
	GoogleAPIKey string `json:"google_api_key"`
	// OSRMEndpoint is required for the osrm provider.
	OSRMEndpoint string `json:"osrm_endpoint"`

	Cache RouteCacheConfig `json:"cache"`
}

// RouteCacheConfig enables the redis cache for direct-route lookups.
type RouteCacheConfig struct {
	Enabled    bool   `json:"enabled"`
	RedisAddr  string `json:"redis_addr"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// SetDefaults applies sane defaults.
func (c *RoutingConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOSRM
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
}

// Validate checks mandatory fields for the selected provider.
func (c RoutingConfig) Validate() error {
	switch c.Provider {
	case ProviderGoogle:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("routing: google_api_key is required for the googlemaps provider")
		}
	case ProviderOSRM:
		if c.OSRMEndpoint == "" {
			return fmt.Errorf("routing: osrm_endpoint is required for the osrm provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("routing: unknown provider %q", c.Provider)
	}
	if c.Cache.Enabled && c.Cache.RedisAddr == "" {
		return fmt.Errorf("routing: redis_addr is required when the route cache is enabled")
	}
	return nil
}
