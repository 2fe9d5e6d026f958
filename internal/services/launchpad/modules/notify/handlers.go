package notify

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/beztern/launchpad/internal/platform/errors"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/i18n"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/pagerender"
	"github.com/beztern/launchpad/internal/services/launchpad/templates"
)

const maxBodyBytes = 4 << 10

type handlers struct {
	service service
}

type submitRequest struct {
	Email string `json:"email"`
}

type submitResponse struct {
	Status       Status `json:"status"`
	MessageKey   string `json:"message_key"`
	Message      string `json:"message"`
	ResetAfterMS int64  `json:"reset_after_ms"`
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.FromRequest(r)
	email, err := readEmail(w, r)
	var result Result
	if err != nil {
		result = h.service.failure(KeyInvalidEmail)
	} else {
		result, err = h.service.submit(r.Context(), email, loc.Locale())
	}
	status := apperrors.HTTPStatus(err)
	if err != nil && r.Context().Err() != nil {
		// Client went away during the delay.
		return
	}

	if httpx.WantsJSON(r) {
		resp := submitResponse{
			Status:       result.Status,
			MessageKey:   result.MessageKey,
			Message:      loc.T(result.MessageKey),
			ResetAfterMS: result.ResetAfter.Milliseconds(),
		}
		if writeErr := httpx.WriteJSON(w, status, resp); writeErr != nil {
			h.service.logger.Debug("write sign-up response", zap.Error(writeErr))
		}
		return
	}

	view := templates.NotifyView{
		Status:     string(result.Status),
		MessageKey: result.MessageKey,
		ResetAfter: result.ResetAfter,
	}
	if renderErr := pagerender.Write(w, r, status, templates.NotifyStatus(view, loc)); renderErr != nil {
		h.service.logger.Error("render sign-up status", zap.Error(renderErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// readEmail accepts a JSON body or a form post.
func readEmail(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.EqualFold(mediaType, "application/json") {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", apperrors.Wrap(apperrors.KindInvalidInput, KeyInvalidEmail, "decode sign-up", err)
		}
		return req.Email, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", apperrors.Wrap(apperrors.KindInvalidInput, KeyInvalidEmail, "parse sign-up form", err)
	}
	return r.PostForm.Get("email"), nil
}
