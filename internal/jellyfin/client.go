// Package jellyfin implements the typed client for the upstream media-server
// API: the credential exchange used at login, the unauthenticated discovery
// probe, and the auth header every upstream call carries.
package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Login and discovery are small JSON exchanges; unlike proxied media calls
// they are bounded by a timeout.
const requestTimeout = 15 * time.Second

var (
	// ErrAuthRejected means the upstream refused the supplied credentials.
	ErrAuthRejected = errors.New("upstream rejected credentials")

	// ErrUnreachable covers transport failures and responses the upstream
	// should never produce on success.
	ErrUnreachable = errors.New("upstream unreachable")
)

// NormalizeServerURL strips trailing slashes from a candidate server URL.
// Sessions always store the normalized form.
func NormalizeServerURL(raw string) string {
	return strings.TrimRight(raw, "/")
}

// AuthResult carries the identity the upstream returns on a successful
// credential exchange.
type AuthResult struct {
	UserID      string
	Username    string
	AccessToken string
}

type authenticateRequest struct {
	Username string `json:"Username"`
	Password string `json:"Pw"`
}

type authenticateResponse struct {
	User struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"User"`
	AccessToken string `json:"AccessToken"`
}

// Client talks to a Jellyfin-compatible server.
type Client struct {
	http *http.Client
}

// NewClient wraps the shared HTTP client. A nil client falls back to a
// default one.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

// AuthenticateByName exchanges a username and password for an access token at
// {serverURL}/Users/AuthenticateByName. The auth header must be the
// unauthenticated variant.
func (c *Client) AuthenticateByName(
	ctx context.Context,
	serverURL, username, password, authHeader string,
) (*AuthResult, error) {
	body, err := json.Marshal(authenticateRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode auth request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, serverURL+"/Users/AuthenticateByName", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthHeaderName, authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrAuthRejected, resp.StatusCode)
	}

	var parsed authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid auth response: %v", ErrUnreachable, err)
	}

	return &AuthResult{
		UserID:      parsed.User.ID,
		Username:    parsed.User.Name,
		AccessToken: parsed.AccessToken,
	}, nil
}

// PublicSystemInfo probes {serverURL}/System/Info/Public and returns the raw
// system-info payload. The probe never creates state on either side.
func (c *Client) PublicSystemInfo(ctx context.Context, serverURL, authHeader string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/System/Info/Public", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set(AuthHeaderName, authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var info json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: invalid system info response: %v", ErrUnreachable, err)
	}

	return info, nil
}
