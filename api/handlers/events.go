package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/api/events"
	"github.com/linesmerrill/rider-docs-api/config"
)

// Events exported for testing purposes
type Events struct {
	Hub *events.Hub
}

// RiderEventsHandler upgrades to a websocket that receives a message each
// time one of the rider's credentials is scanned
func (e Events) RiderEventsHandler(w http.ResponseWriter, r *http.Request) {
	riderID := mux.Vars(r)["rider_id"]

	id, _, ok := api.RiderFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Unauthorized", http.StatusUnauthorized, w, nil)
		return
	}
	if id != riderID {
		config.ErrorStatus("forbidden", http.StatusForbidden, w, nil)
		return
	}

	if err := e.Hub.Serve(w, r, riderID); err != nil {
		zap.S().Warnw("failed to open event stream", "riderId", riderID, "error", err)
	}
}
