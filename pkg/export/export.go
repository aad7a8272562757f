// Package export writes trip manifests to JSON or CSV, one row per stop.
// Dispatchers feed the CSV form to driver tablets and spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/example/ridepool/core/model"
)

// WriteJSON writes the trips to w in JSON format.
func WriteJSON(w io.Writer, trips []model.Trip) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trips)
}

// WriteCSV writes the trips to w as a flat stop manifest.
func WriteCSV(w io.Writer, trips []model.Trip) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trip_id", "vehicle_id", "status", "sequence", "stop_type", "booking_id", "scheduled_time", "lat", "lng", "address"}); err != nil {
		return err
	}
	for _, t := range trips {
		for _, s := range t.Stops {
			rec := []string{
				t.ID,
				t.VehicleID,
				string(t.Status),
				strconv.Itoa(s.Sequence),
				string(s.Type),
				s.BookingID,
				s.ScheduledTime.Format(time.RFC3339),
				strconv.FormatFloat(s.Location.Lat, 'f', 6, 64),
				strconv.FormatFloat(s.Location.Lng, 'f', 6, 64),
				s.Address,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
