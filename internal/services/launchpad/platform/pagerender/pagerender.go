// Package pagerender writes templ components as HTTP responses.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

// Write renders c into a buffer and writes it with status. Nothing reaches the
// client when rendering fails, so callers can still send an error response.
func Write(w http.ResponseWriter, r *http.Request, status int, c templ.Component) error {
	if w == nil {
		return nil
	}
	if status <= 0 {
		status = http.StatusOK
	}
	var buf bytes.Buffer
	if c != nil {
		if err := c.Render(r.Context(), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
