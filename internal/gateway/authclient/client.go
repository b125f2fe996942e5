// Package authclient calls the auth service over HTTP on behalf of the
// gateway: proxying logins and validating bearer tokens on uploads.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkravets/video2mp3/internal/auth"
)

// StatusError carries an auth-service rejection so the gateway can forward
// the exact status and message to its own client.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("auth service: %d %s", e.Code, e.Message)
}

type Client struct {
	base string
	http *http.Client
}

// New returns a client for the auth service at baseURL (e.g.
// "http://auth:5000"). All calls share one bounded timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Login forwards the credentials and returns the issued token. A 401 from
// the auth service comes back as a *StatusError.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(username, password)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Validate checks the bearer token and returns the identity asserted by the
// auth service. Rejections come back as *StatusError with the auth service's
// status code and message.
func (c *Client) Validate(ctx context.Context, token string) (auth.Identity, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/validate", nil)
	if err != nil {
		return auth.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req)
	if err != nil {
		return auth.Identity{}, err
	}

	var claims struct {
		Username string `json:"username"`
		Admin    bool   `json:"admin"`
	}
	if err := json.Unmarshal(body, &claims); err != nil {
		return auth.Identity{}, fmt.Errorf("decoding claims: %w", err)
	}

	return auth.Identity{Username: claims.Username, Admin: claims.Admin}, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return body, nil
}
