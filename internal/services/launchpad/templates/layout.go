// Package templates renders launchpad pages and fragments.
package templates

import (
	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/platform/branding"
	"github.com/beztern/launchpad/internal/platform/icons"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig swaps 4xx and 5xx fragments so form errors reach the page.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[45]..","swap":true,"error":false},{"code":"...","swap":true}]}`

// PageMeta is the document head of a full page.
type PageMeta struct {
	Title       string
	Description string
	Lang        string
}

// Page wraps body in the document shell.
func Page(meta PageMeta, body templ.Component) templ.Component {
	lang := meta.Lang
	if lang == "" {
		lang = "en"
	}
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(branding.PageTitle(meta.Title))
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw(`>`)
		}
		h.raw(`<meta name="htmx-config"`)
		h.attr("content", htmxConfig)
		h.raw(`>`)
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", routepath.StaticAsset("css/launchpad.css"))
		h.raw(`>`)
		h.raw(`<script defer`)
		h.attr("src", htmxScript)
		h.raw(`></script>`)
		for _, script := range []string{"js/countdown.js", "js/notify.js", "js/effects.js"} {
			h.raw(`<script defer`)
			h.attr("src", routepath.StaticAsset(script))
			h.raw(`></script>`)
		}
		h.raw(`</head><body>`)
		h.raw(icons.Sprite())
		h.component(body)
		h.raw(`</body></html>`)
	})
}
