package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/printgenie/internal/pricing"
)

// SavedQuote is a quote snapshot as it was shown to the customer. Reading
// it back never recalculates prices.
type SavedQuote struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Title     string        `json:"title"`
	Notes     string        `json:"notes"`
	Customer  string        `json:"customer"`
	Quote     pricing.Quote `json:"quote"`
}

type QuoteSummary struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Title     string         `json:"title"`
	Customer  string         `json:"customer"`
	Policy    pricing.Policy `json:"policy"`
	Quantity  int            `json:"quantity"`
	Total     float64        `json:"total"`
}

type Quotes struct {
	db *sql.DB
}

func (q *Quotes) Save(ctx context.Context, saved SavedQuote) error {
	snapshot, err := json.Marshal(saved.Quote)
	if err != nil {
		return fmt.Errorf("encode quote snapshot: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO quotes (id, created_at, title, notes, customer, policy, quantity, final_total, snapshot_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		saved.ID, formatTime(saved.CreatedAt), saved.Title, saved.Notes, saved.Customer,
		string(saved.Quote.Params.Policy), saved.Quote.Params.Quantity, saved.Quote.Pricing.FinalTotal,
		string(snapshot),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("quote %s: %w", saved.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// List returns quotes newest first, optionally filtered by a substring of
// the title, notes or customer.
func (q *Quotes) List(ctx context.Context, query string) ([]QuoteSummary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := q.db.QueryContext(ctx, `
		SELECT
			id,
			created_at,
			COALESCE(title, ''),
			COALESCE(customer, ''),
			policy,
			quantity,
			final_total
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ? OR COALESCE(customer, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteSummary, 0)
	for rows.Next() {
		var (
			item    QuoteSummary
			created dbTime
		)
		if err := rows.Scan(&item.ID, &created, &item.Title, &item.Customer, &item.Policy, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.CreatedAt = created.Time
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

func (q *Quotes) Get(ctx context.Context, id string) (SavedQuote, error) {
	var (
		saved    SavedQuote
		created  dbTime
		snapshot string
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, created_at, COALESCE(title, ''), COALESCE(notes, ''), COALESCE(customer, ''), snapshot_json
		FROM quotes
		WHERE id = ?
	`, id).Scan(&saved.ID, &created, &saved.Title, &saved.Notes, &saved.Customer, &snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuote{}, ErrNotFound
	}
	if err != nil {
		return SavedQuote{}, fmt.Errorf("get quote %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(snapshot), &saved.Quote); err != nil {
		return SavedQuote{}, fmt.Errorf("decode quote snapshot %s: %w", id, err)
	}
	saved.CreatedAt = created.Time
	return saved, nil
}
