package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/eugenenazirov/treasury-dao/internal/project"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves a read-only, redacted view of a resolved project config.
type Handler struct {
	config project.ProjectConfig
	clock  func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler. Credentials in cfg are redacted before
// they are stored, so nothing served by the handler can leak them.
func NewHandler(cfg project.ProjectConfig, opts ...HandlerOption) *Handler {
	h := &Handler{
		config: cfg.Redacted(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.config.Document())
}

func (h *Handler) handleListNetworks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, networksResponse{Networks: h.config.NetworkNames()})
}

func (h *Handler) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	network, ok := h.config.Network(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown network", "no network named "+name,
			"Known networks: "+strings.Join(h.config.NetworkNames(), ", "))
		return
	}

	writeJSON(w, http.StatusOK, networkResponse{
		Name:            name,
		NetworkDocument: network.Document(),
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type networksResponse struct {
	Networks []string `json:"networks"`
}

type networkResponse struct {
	Name string `json:"name"`
	project.NetworkDocument
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}
