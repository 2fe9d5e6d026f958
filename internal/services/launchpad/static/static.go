// Package static embeds the launchpad stylesheet and scripts.
package static

import "embed"

// FS exposes launchpad static assets for HTTP serving.
//
//go:embed css/*.css js/*.js
var FS embed.FS
