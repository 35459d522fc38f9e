package jellyfin

import "fmt"

// AuthHeaderName is the vendor credential header expected by
// Jellyfin-compatible servers.
const AuthHeaderName = "X-Emby-Authorization"

// BuildAuthHeader assembles the MediaBrowser credential string. The four
// client identity fields are always present; a Token field is appended when a
// bearer token is supplied. Inputs are configuration constants or generated
// identifiers, so no escaping is performed.
func BuildAuthHeader(clientName, deviceName, deviceID, version, token string) string {
	header := fmt.Sprintf(
		`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s"`,
		clientName, deviceName, deviceID, version,
	)
	if token != "" {
		header += fmt.Sprintf(`, Token="%s"`, token)
	}

	return header
}
