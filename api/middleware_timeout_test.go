package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	rr := httptest.NewRecorder()

	TimeoutMiddleware(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, rr.Body.String())
}

func TestTimeoutMiddlewareLateWritesAreDropped(t *testing.T) {
	finished := make(chan error, 1)
	late := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.Header().Set("X-Late", "true")
		_, err := w.Write([]byte(`{"late":true}`))
		finished <- err
	})
	rr := httptest.NewRecorder()

	TimeoutMiddleware(10*time.Millisecond)(late).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.ErrorIs(t, <-finished, http.ErrHandlerTimeout)
	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, rr.Body.String())
	assert.Empty(t, rr.Header().Get("X-Late"))
}

func TestTimeoutMiddlewareKeepsHandlerResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})
	rr := httptest.NewRecorder()

	TimeoutMiddleware(time.Second)(h).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestTimeoutMiddlewarePropagatesPanics(t *testing.T) {
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	assert.PanicsWithValue(t, "boom", func() {
		TimeoutMiddleware(time.Second)(boom).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestTimeoutMiddlewareFastHandler(t *testing.T) {
	rr := httptest.NewRecorder()

	TimeoutMiddleware(time.Second)(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTimeoutMiddlewareDisabled(t *testing.T) {
	h := TimeoutMiddleware(0)(okHandler)

	// disabled middleware hands back the handler itself
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
