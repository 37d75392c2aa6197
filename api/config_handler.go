// Package api — configuration endpoints.
package api

import (
	"net/http"

	"github.com/seenimoa/alphavault/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config config.Config `json:"config"`
}

// handleGetConfig returns the running configuration with the EDGAR
// identity masked.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := *s.app.Config
	if cfg.Edgar.UserAgent != "" {
		cfg.Edgar.UserAgent = config.CheckCredentials(s.app.Config)[0].Masked
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ConfigResponse{Config: cfg},
	})
}

// handleGetCredentials returns the status of the configured credentials.
func (s *Server) handleGetCredentials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckCredentials(s.app.Config),
	})
}
