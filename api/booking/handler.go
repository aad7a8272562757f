// Package booking exposes the matching engine over HTTP. The handlers own
// the caller side of the engine contract: snapshot, match, commit, notify.
package booking

import (
	"encoding/json"
	"net/http"

	"github.com/example/ridepool/core/fleet"
	"github.com/example/ridepool/core/logger"
	"github.com/example/ridepool/core/match"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/infra/notify"
)

// Handler serves the booking API.
type Handler struct {
	store    *fleet.Store
	engine   *match.Engine
	cfg      match.Config
	notifier notify.Notifier
	log      logger.Logger
}

// NewHandler creates a Handler. notifier may be nil.
func NewHandler(store *fleet.Store, engine *match.Engine, cfg match.Config, notifier notify.Notifier, log logger.Logger) *Handler {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Handler{store: store, engine: engine, cfg: cfg, notifier: notifier, log: log}
}

// Register mounts the API routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/bookings/request", h.requestBooking)
	mux.HandleFunc("/api/trips", h.listTrips)
	mux.HandleFunc("/api/vehicles", h.listVehicles)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// requestBooking runs one full match-and-commit cycle. The fleet store
// serializes concurrent requests so two riders can never be granted the
// same seat.
func (h *Handler) requestBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.store.MatchAndCommit(r.Context(), req, func(snap model.Snapshot) model.MatchResult {
		return h.engine.Match(r.Context(), req, snap, h.cfg)
	})
	if err != nil {
		h.log.Errorf("commit failed: %v", err)
		http.Error(w, "could not commit booking", http.StatusInternalServerError)
		return
	}

	if res.Kind != model.MatchRejected {
		if err := h.notifier.NotifyMatch(res); err != nil {
			h.log.Warnf("match notification failed: %v", err)
		}
	}

	status := http.StatusOK
	if res.Kind == model.MatchRejected {
		status = http.StatusConflict
	}
	h.writeJSON(w, status, res)
}

func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Trips())
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Vehicles())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("response encode failed: %v", err)
	}
}
