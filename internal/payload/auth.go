package payload

type LoginRequest struct {
	ServerURL string `json:"server_url" validate:"required,url"`
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"`
	DeviceID  string `json:"device_id"`
}

type SetupRequest struct {
	ServerURL string `json:"server_url" validate:"required,url"`
}
