package model

// APIResponse is the envelope returned by every non-streaming endpoint.
type APIResponse struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// OK wraps a successful payload.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Err wraps a failure message.
func Err(message string) APIResponse {
	return APIResponse{Success: false, Error: &message}
}
