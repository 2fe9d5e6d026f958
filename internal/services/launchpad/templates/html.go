package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/platform/icons"
)

// Localizer translates catalog keys for the request locale.
type Localizer interface {
	T(key string) string
}

type keyLocalizer struct{}

func (keyLocalizer) T(key string) string { return key }

func localizerOrKeys(loc Localizer) Localizer {
	if loc == nil {
		return keyLocalizer{}
	}
	return loc
}

// htmlWriter accumulates the first write error so components read as markup.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) href(value string) {
	h.attr("href", string(templ.URL(value)))
}

func (h *htmlWriter) icon(name string) {
	h.raw(`<svg class="icon icon-`, templ.EscapeString(icons.Resolve(name)), `" aria-hidden="true"><use`)
	h.attr("href", "#"+icons.SymbolID(name))
	h.raw(`></use></svg>`)
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(*htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}
