// Package proxy relays authenticated requests to the session's upstream
// server, including range-addressed media streams, without buffering bodies.
package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/metrics"
	"github.com/iamngoni/media-savant/internal/model"
)

// ErrMethodNotSupported is returned for inbound methods the upstream request
// cannot be built with. It maps to a client error, not a gateway error.
var ErrMethodNotSupported = errors.New("unsupported http method")

const streamBufferSize = 32 * 1024

// Forwarder relays inbound requests to the upstream bound to a session.
type Forwarder struct {
	http     *http.Client
	logger   zerolog.Logger
	identity config.AppConfig
}

// NewForwarder builds a forwarder on the shared pooled HTTP client.
func NewForwarder(httpClient *http.Client, logger *zerolog.Logger, cfg *config.Config) *Forwarder {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Forwarder{
		http:     httpClient,
		logger:   logger.With().Str("component", "proxy").Logger(),
		identity: cfg.App,
	}
}

// Forward issues the equivalent upstream request for an inbound one and
// relays status, media headers, and body back. It returns an error only if
// nothing has been written downstream yet; once bytes have been sent there is
// no rollback, and an upstream failure aborts the downstream connection so
// the client cannot mistake a truncated body for a complete one.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request, session *model.Session, tail string) error {
	target := session.ServerURL + "/" + tail
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMethodNotSupported, err)
	}

	copyInboundHeaders(req.Header, r.Header)

	return f.relay(w, req, session)
}

// Stream relays the direct video stream for an item:
// {server}/Videos/{id}/stream.mp4 with static playback and the item as media
// source. Only the Range header crosses inbound.
func (f *Forwarder) Stream(w http.ResponseWriter, r *http.Request, session *model.Session, itemID string) error {
	target := fmt.Sprintf(
		"%s/Videos/%s/stream.mp4?static=true&mediaSourceId=%s",
		session.ServerURL, itemID, itemID,
	)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", jellyfin.ErrUnreachable, err)
	}

	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}

	return f.relay(w, req, session)
}

// relay attaches the session's auth header, issues the upstream call, and
// streams the response downstream. The downstream write paces the upstream
// read; a client disconnect cancels the upstream request via the inbound
// request context.
func (f *Forwarder) relay(w http.ResponseWriter, req *http.Request, session *model.Session) error {
	req.Header.Set(jellyfin.AuthHeaderName, jellyfin.BuildAuthHeader(
		f.identity.ClientName,
		f.identity.DeviceName,
		session.DeviceID,
		f.identity.ClientVersion,
		session.AccessToken,
	))

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", jellyfin.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	metrics.ProxiedRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	copyOutboundHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	f.streamBody(w, resp, req.URL.Path)
	return nil
}

// streamBody copies the upstream body downstream in fixed-size chunks,
// flushing after each write so large media responses are never buffered.
func (f *Forwarder) streamBody(w http.ResponseWriter, resp *http.Response, path string) {
	flusher, canFlush := w.(http.Flusher)
	buf := make([]byte, streamBufferSize)

	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				f.logger.Debug().Err(writeErr).Str("path", path).Msg("client went away mid-stream")
				return
			}
			metrics.RelayedBytes.Add(float64(n))
			if canFlush {
				flusher.Flush()
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				f.logger.Warn().Err(err).Str("path", path).Msg("upstream read failed mid-stream")
				// Returning here would let the server finish the response
				// cleanly and hand the client a truncated body as if it
				// were complete. Abort the connection instead.
				panic(http.ErrAbortHandler)
			}
			return
		}
	}
}
