// Package sqlite provides a SQLite-backed subscription store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlitemigrate "github.com/beztern/launchpad/internal/platform/storage/sqlitemigrate"
	"github.com/beztern/launchpad/internal/services/launchpad/storage"
	"github.com/beztern/launchpad/internal/services/launchpad/storage/sqlite/migrations"
)

const maxListLimit = 1000

// Store persists subscriptions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite subscription store, creating the parent directory when
// needed, and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// CreateSubscription inserts one sign-up.
func (s *Store) CreateSubscription(ctx context.Context, sub storage.Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(sub.ID)
	contact := strings.TrimSpace(sub.Contact)
	channel := storage.Channel(strings.TrimSpace(string(sub.Channel)))
	if id == "" {
		return fmt.Errorf("subscription id is required")
	}
	if channel == "" {
		return fmt.Errorf("channel is required")
	}
	if contact == "" {
		return fmt.Errorf("contact is required")
	}
	createdAt := sub.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO subscriptions (id, channel, contact, locale, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id,
		string(channel),
		contact,
		strings.TrimSpace(sub.Locale),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// GetSubscription returns the sign-up for one channel and contact.
func (s *Store) GetSubscription(ctx context.Context, channel storage.Channel, contact string) (storage.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return storage.Subscription{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Subscription{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, channel, contact, locale, created_at
		   FROM subscriptions
		  WHERE channel = ? AND contact = ?`,
		string(channel),
		strings.TrimSpace(contact),
	)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Subscription{}, storage.ErrNotFound
		}
		return storage.Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

// ListSubscriptions returns up to limit sign-ups, newest first.
func (s *Store) ListSubscriptions(ctx context.Context, limit int) ([]storage.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, channel, contact, locale, created_at
		   FROM subscriptions
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]storage.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}

// CountSubscriptions returns the number of stored sign-ups.
func (s *Store) CountSubscriptions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (storage.Subscription, error) {
	var sub storage.Subscription
	var channel string
	var createdAt int64
	if err := row.Scan(&sub.ID, &channel, &sub.Contact, &sub.Locale, &createdAt); err != nil {
		return storage.Subscription{}, err
	}
	sub.Channel = storage.Channel(channel)
	sub.CreatedAt = fromMillis(createdAt)
	return sub, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed")
}

var _ storage.SubscriptionStore = (*Store)(nil)
