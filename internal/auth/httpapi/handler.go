// Package httpapi exposes the auth service over HTTP.
//
// Status mapping: absent credentials and expired tokens get 401 (the client
// can recover by re-authenticating); tokens that are present but malformed
// or wrongly signed get 403 (no retry will help).
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dkravets/video2mp3/internal/auth"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/shared"
)

type Handler struct {
	service *auth.Service
	logger  logging.Logger
}

func NewHandler(service *auth.Service, logger logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Router wires the auth endpoints onto a fresh mux.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /validate", h.Validate)
	return mux
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {

	username, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "missing credentials", http.StatusUnauthorized)
		return
	}

	tok, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info(r.Context(), "token issued", "username", username)
	w.Write([]byte(tok))
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {

	header := r.Header.Get("Authorization")
	if header == "" {
		http.Error(w, "missing credentials", http.StatusUnauthorized)
		return
	}

	raw, ok := bearerToken(header)
	if !ok {
		http.Error(w, "Invalid token: malformed authorization header", http.StatusForbidden)
		return
	}

	claims, err := h.service.Validate(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrTokenExpired):
			http.Error(w, "Token expired", http.StatusUnauthorized)
		case errors.Is(err, shared.ErrTokenMalformed):
			http.Error(w, "Decode error: "+err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Invalid token: "+err.Error(), http.StatusForbidden)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(claims); err != nil {
		h.logger.Error(r.Context(), "writing claims response", "error", err)
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
