// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProxiedRequests counts requests relayed to the upstream media server,
	// by method and upstream status code.
	ProxiedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "media_savant",
		Name:      "proxied_requests_total",
		Help:      "Requests relayed to the upstream media server.",
	}, []string{"method", "status"})

	// RelayedBytes counts response body bytes relayed downstream.
	RelayedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "media_savant",
		Name:      "relayed_bytes_total",
		Help:      "Upstream response bytes relayed to clients.",
	})

	// SessionsCreated counts successful logins.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "media_savant",
		Name:      "sessions_created_total",
		Help:      "Sessions minted by successful logins.",
	})
)
