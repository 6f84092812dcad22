package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/httplog"
)

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type testDBResponse struct {
	Status     string    `json:"status"`
	ServerTime *time.Time `json:"serverTime,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func health(store Probe) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			l := httplog.LogEntry(r.Context())
			l.Warn().Err(err).Msg("storage ping failed")
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
	})
}

// testDB proves a full round trip to the storage server by asking for its clock.
func testDB(store Probe) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now, err := store.ServerTime(r.Context())
		if err != nil {
			l := httplog.LogEntry(r.Context())
			l.Warn().Err(err).Msg("storage round trip failed")
			writeJSON(w, http.StatusServiceUnavailable, testDBResponse{Status: "error", Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, testDBResponse{Status: "ok", ServerTime: &now})
	})
}
