package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Sequences hands out the running SKU counter. Values start at 1 and each
// Next call advances by exactly one.
type Sequences struct {
	db *sql.DB
}

// Peek returns the value the next call to Next will hand out.
func (s *Sequences) Peek(ctx context.Context) (int, error) {
	return peekSequence(ctx, s.db)
}

// Next mints and returns one sequence number.
func (s *Sequences) Next(ctx context.Context) (int, error) {
	var n int
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		n, err = nextSequence(ctx, tx)
		return err
	})
	return n, err
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func peekSequence(ctx context.Context, q queryRower) (int, error) {
	var next int
	err := q.QueryRowContext(ctx, `SELECT next_value FROM sku_sequence WHERE id = 1`).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read sku sequence: %w", err)
	}
	return next, nil
}

func nextSequence(ctx context.Context, tx *sql.Tx) (int, error) {
	n, err := peekSequence(ctx, tx)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sku_sequence (id, next_value) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET next_value = excluded.next_value
	`, n+1); err != nil {
		return 0, fmt.Errorf("advance sku sequence: %w", err)
	}
	return n, nil
}
