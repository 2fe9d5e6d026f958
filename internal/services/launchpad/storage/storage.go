// Package storage defines persistence contracts for launch notification
// sign-ups.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAlreadyExists indicates the contact already signed up on the channel.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotFound indicates a requested subscription is missing.
	ErrNotFound = errors.New("record not found")
)

// Channel is the medium a visitor asked to be notified on.
type Channel string

const (
	ChannelEmail Channel = "email"
)

// Subscription is one launch notification sign-up.
type Subscription struct {
	ID        string
	Channel   Channel
	Contact   string
	Locale    string
	CreatedAt time.Time
}

// SubscriptionStore persists sign-ups, unique on channel and contact.
type SubscriptionStore interface {
	// CreateSubscription returns ErrAlreadyExists for a repeated
	// channel/contact pair.
	CreateSubscription(ctx context.Context, sub Subscription) error
	GetSubscription(ctx context.Context, channel Channel, contact string) (Subscription, error)
	// ListSubscriptions returns the newest sign-ups first.
	ListSubscriptions(ctx context.Context, limit int) ([]Subscription, error)
	CountSubscriptions(ctx context.Context) (int, error)
}
