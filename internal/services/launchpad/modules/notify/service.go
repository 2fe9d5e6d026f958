package notify

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/platform/clock"
	apperrors "github.com/beztern/launchpad/internal/platform/errors"
	"github.com/beztern/launchpad/internal/platform/id"
	"github.com/beztern/launchpad/internal/platform/requestctx"
	"github.com/beztern/launchpad/internal/services/launchpad/storage"
)

// Message keys set on sign-up errors.
const (
	KeyInvalidEmail = "notify.error.invalid_email"
	KeyUnavailable  = "notify.error.unavailable"
	KeySuccess      = "notify.success"
)

// Defaults applied when the dependencies leave delays unset.
const (
	DefaultSubmitDelay = 1500 * time.Millisecond
	DefaultResetAfter  = 3 * time.Second
)

const maxContactLength = 254

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Status is the outcome shown by the sign-up form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is one sign-up outcome.
type Result struct {
	Status     Status
	MessageKey string
	// Created is false when the contact had already signed up.
	Created    bool
	ResetAfter time.Duration
}

type service struct {
	store      storage.SubscriptionStore
	clock      clock.Clock
	scheduler  clock.Scheduler
	delay      time.Duration
	resetAfter time.Duration
	logger     *zap.Logger
}

// ValidEmail reports whether value looks like an email address.
func ValidEmail(value string) bool {
	value = strings.TrimSpace(value)
	return len(value) <= maxContactLength && emailPattern.MatchString(value)
}

// submit validates email, waits the simulated processing delay and records the
// sign-up. A repeated sign-up succeeds without creating a record.
func (s service) submit(ctx context.Context, email, locale string) (Result, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return s.failure(KeyInvalidEmail), apperrors.EK(apperrors.KindInvalidInput, KeyInvalidEmail, "invalid email address")
	}
	if err := clock.Sleep(ctx, s.scheduler, s.delay); err != nil {
		return s.failure(KeyUnavailable), apperrors.Wrap(apperrors.KindUnavailable, KeyUnavailable, "sign-up interrupted", err)
	}

	subscriptionID, err := id.NewID()
	if err != nil {
		return s.failure(KeyUnavailable), apperrors.Wrap(apperrors.KindUnavailable, KeyUnavailable, "generate subscription id", err)
	}
	sub := storage.Subscription{
		ID:        subscriptionID,
		Channel:   storage.ChannelEmail,
		Contact:   strings.ToLower(email),
		Locale:    locale,
		CreatedAt: s.clock.Now().UTC(),
	}
	created := true
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Error("record subscription",
				zap.String("request_id", requestctx.RequestIDFromContext(ctx)),
				zap.Error(err),
			)
			return s.failure(KeyUnavailable), apperrors.Wrap(apperrors.KindUnavailable, KeyUnavailable, "record subscription", err)
		}
		created = false
	}
	s.logger.Info("subscription recorded",
		zap.String("request_id", requestctx.RequestIDFromContext(ctx)),
		zap.String("channel", string(sub.Channel)),
		zap.String("locale", locale),
		zap.Bool("created", created),
	)
	return Result{Status: StatusSuccess, MessageKey: KeySuccess, Created: created, ResetAfter: s.resetAfter}, nil
}

func (s service) failure(key string) Result {
	return Result{Status: StatusError, MessageKey: key, ResetAfter: s.resetAfter}
}
