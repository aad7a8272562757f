package model

// LatLng is a WGS84 coordinate pair shared by stops, booking requests and
// routing waypoints.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
