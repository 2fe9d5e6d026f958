// Package routepath centralizes launchpad URL paths.
package routepath

const (
	Root         = "/"
	Countdown    = "/countdown"
	APICountdown = "/api/countdown"
	WSCountdown  = "/ws/countdown"
	Notify       = "/notify"
	Health       = "/up"
	Static       = "/static/"
)

// StaticAsset returns the URL of an embedded asset.
func StaticAsset(name string) string {
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	return Static + name
}
