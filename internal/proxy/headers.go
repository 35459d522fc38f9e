package proxy

import "net/http"

// Single source of truth for which headers cross the trust boundary. Both the
// generic forwarder and the direct stream path consume these tables; anything
// not listed is dropped.
var (
	// inboundHeaders are relayed from the client request to the upstream.
	inboundHeaders = []string{"Content-Type", "Range", "Accept"}

	// outboundHeaders are relayed from the upstream response to the client.
	// They are the ones range-addressed media delivery depends on.
	outboundHeaders = []string{"Content-Type", "Content-Length", "Content-Range", "Accept-Ranges"}
)

func copyInboundHeaders(dst, src http.Header) {
	for _, name := range inboundHeaders {
		if value := src.Get(name); value != "" {
			dst.Set(name, value)
		}
	}
}

func copyOutboundHeaders(dst, src http.Header) {
	for _, name := range outboundHeaders {
		if value := src.Get(name); value != "" {
			dst.Set(name, value)
		}
	}
}
