package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nerrad567/slotboard/internal/strategy"
)

// handleDashboard serves the dashboard tree rendered under the configured
// default options. This is the endpoint dashboard hosts poll.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tree := s.dashboard.Render(r.Context())
	writeJSON(w, http.StatusOK, tree)
}

// handleDashboardRender renders a one-off tree under caller-supplied
// options, bypassing the cache. Used by tooling to preview configuration
// changes without editing the server config.
func (s *Server) handleDashboardRender(w http.ResponseWriter, r *http.Request) {
	var raw strategy.RawOptions
	if err := decodeBody(r, &raw); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	tree := s.dashboard.RenderWith(r.Context(), raw)
	writeJSON(w, http.StatusOK, tree)
}

// handleDashboardRefresh drops all cached render state so the next request
// refetches from the hub.
func (s *Server) handleDashboardRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.Refresh(r.Context()); err != nil {
		s.logger.Error("dashboard refresh failed", "error", err)
		writeInternalError(w, "refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// handleHealth reports the server's own status plus each registered
// dependency probe. Any failing dependency degrades the overall status but
// the endpoint still returns 200; orchestrators distinguish via the body.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.HealthCheck(r.Context()); err != nil {
			deps[name] = err.Error()
			status = "degraded"
		} else {
			deps[name] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"version":      s.version,
		"dependencies": deps,
	})
}

// decodeBody decodes a JSON request body, tolerating an empty body as the
// zero value.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
