// Package store persists catalog products, saved quotes, the pricing
// configuration and operator accounts in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidInput marks caller-supplied values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// timeLayout is the text form every timestamp column is written in; it
// sorts lexically and is understood by SQLite's datetime().
const timeLayout = "2006-01-02 15:04:05"

// Store groups the per-table repositories over one database handle.
type Store struct {
	Settings   *Settings
	Sequences  *Sequences
	Products   *Products
	Categories *Categories
	Quotes     *Quotes
	Users      *Users
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used for created_at columns.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New(db *sql.DB, opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		Settings:   &Settings{db: db},
		Sequences:  &Sequences{db: db},
		Products:   &Products{db: db, now: o.now},
		Categories: &Categories{db: db},
		Quotes:     &Quotes{db: db},
		Users:      &Users{db: db},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// dbTime scans a timestamp column whether the driver hands back text or an
// already parsed time.
type dbTime struct {
	time.Time
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("scan time: unsupported type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan time: unrecognized format %q", s)
}

func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
