package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/rider-docs-api/api/events"
	"github.com/linesmerrill/rider-docs-api/api/handlers"
)

func TestEvents_RiderEventsHandlerUnauthorized(t *testing.T) {
	h := handlers.Events{Hub: events.NewHub()}
	req, _ := http.NewRequest("GET", "/api/v1/riders/rider-1/events", nil)
	req = mux.SetURLVars(req, map[string]string{"rider_id": "rider-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.RiderEventsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEvents_RiderEventsHandlerOtherRider(t *testing.T) {
	h := handlers.Events{Hub: events.NewHub()}
	req, _ := http.NewRequest("GET", "/api/v1/riders/rider-2/events", nil)
	req = mux.SetURLVars(asRider(req, "rider-1", "asha@example.com"), map[string]string{"rider_id": "rider-2"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.RiderEventsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rr.Body.String())
}

func TestEvents_RiderEventsHandlerNotAWebsocket(t *testing.T) {
	hub := events.NewHub()
	h := handlers.Events{Hub: hub}
	req, _ := http.NewRequest("GET", "/api/v1/riders/rider-1/events", nil)
	req = mux.SetURLVars(asRider(req, "rider-1", "asha@example.com"), map[string]string{"rider_id": "rider-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.RiderEventsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, hub.Connections("rider-1"))
}
