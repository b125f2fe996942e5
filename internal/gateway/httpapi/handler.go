// Package httpapi exposes the gateway endpoints: login proxy, video upload
// and converted-file download.
package httpapi

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dkravets/video2mp3/internal/auth"
	"github.com/dkravets/video2mp3/internal/gateway/authclient"
	"github.com/dkravets/video2mp3/internal/logging"
)

// AuthClient is the slice of the auth service the gateway depends on.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Validate(ctx context.Context, token string) (auth.Identity, error)
}

// Uploader runs the store-then-publish sequence for one payload.
type Uploader interface {
	Upload(ctx context.Context, payload io.Reader, identity auth.Identity) error
}

// Presigner issues time-limited download URLs for converted files.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

const downloadLinkTTL = 15 * time.Minute

type Handler struct {
	auth      AuthClient
	uploader  Uploader
	downloads Presigner
	maxBytes  int64
	logger    logging.Logger
}

func NewHandler(auth AuthClient, uploader Uploader, downloads Presigner, maxBytes int64, logger logging.Logger) *Handler {
	return &Handler{auth: auth, uploader: uploader, downloads: downloads, maxBytes: maxBytes, logger: logger}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /upload", h.Upload)
	mux.HandleFunc("GET /download", h.Download)
	return mux
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {

	username, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "missing credentials", http.StatusUnauthorized)
		return
	}

	tok, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}

	w.Write([]byte(tok))
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {

	identity, ok := h.authorize(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, err := exactlyOneFile(r)
	if err != nil {
		http.Error(w, "exactly 1 file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := h.uploader.Upload(r.Context(), file, identity); err != nil {
		h.logger.Error(r.Context(), "upload failed", "username", identity.Username, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Write([]byte("success!"))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	fid := r.URL.Query().Get("fid")
	if fid == "" {
		http.Error(w, "fid is required", http.StatusBadRequest)
		return
	}

	url, err := h.downloads.PresignGet(r.Context(), fid, downloadLinkTTL)
	if err != nil {
		h.logger.Error(r.Context(), "presigning download", "fid", fid, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// authorize validates the bearer token with the auth service and requires
// the admin role, matching the policy the token issuer encodes.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {

	header := r.Header.Get("Authorization")
	if header == "" {
		http.Error(w, "missing credentials", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	identity, err := h.auth.Validate(r.Context(), raw)
	if err != nil {
		h.writeAuthError(w, r, err)
		return auth.Identity{}, false
	}

	if !identity.Admin {
		http.Error(w, "not authorized", http.StatusUnauthorized)
		return auth.Identity{}, false
	}

	return identity, true
}

// writeAuthError forwards an auth-service rejection verbatim; anything else
// is an internal failure of the gateway->auth call itself.
func (h *Handler) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var se *authclient.StatusError
	if errors.As(err, &se) {
		http.Error(w, se.Message, se.Code)
		return
	}
	h.logger.Error(r.Context(), "auth service unreachable", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// exactlyOneFile returns the single uploaded file, rejecting requests with
// zero or more than one file part.
func exactlyOneFile(r *http.Request) (multipart.File, error) {

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}

	var headers []*multipart.FileHeader
	for _, fhs := range r.MultipartForm.File {
		headers = append(headers, fhs...)
	}
	if len(headers) != 1 {
		return nil, errors.New("exactly 1 file required")
	}

	return headers[0].Open()
}
