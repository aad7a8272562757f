package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/example/ridepool/core/model"
)

func sampleTrips() []model.Trip {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return []model.Trip{{
		ID:        "T1",
		VehicleID: "v1",
		Status:    model.TripPlanned,
		Stops: []model.TripStop{
			{ID: "s1", Type: model.StopPickup, BookingID: "b1", ScheduledTime: at, Location: model.LatLng{Lat: 48.85, Lng: 2.35}, Sequence: 0},
			{ID: "s2", Type: model.StopDropoff, BookingID: "b1", ScheduledTime: at.Add(10 * time.Minute), Location: model.LatLng{Lat: 48.86, Lng: 2.36}, Sequence: 1},
		},
	}}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleTrips()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []model.Trip
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("not valid json: %v", err)
	}
	if len(out) != 1 || out[0].ID != "T1" {
		t.Fatalf("roundtrip lost data: %+v", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTrips()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 stops, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "trip_id,vehicle_id,status") {
		t.Errorf("header %q", lines[0])
	}
	if !strings.Contains(lines[1], "pickup") || !strings.Contains(lines[2], "dropoff") {
		t.Errorf("stop rows out of order:\n%s", buf.String())
	}
}
