package handler

import "net/http"

// Health is the liveness probe.
func Health(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, "ok")
}
