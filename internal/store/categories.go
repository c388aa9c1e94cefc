package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Simplici0/printgenie/internal/refdata"
)

// CustomCategory is one operator-defined subcategory.
type CustomCategory struct {
	Category     string `json:"category"`
	CategoryCode string `json:"categoryCode"`
	Subcategory  string `json:"subcategory"`
	Code         string `json:"code"`
}

type Categories struct {
	db *sql.DB
}

// Add stores c. Codes are unique across custom categories; collisions with
// built-in codes are the caller's concern.
func (c *Categories) Add(ctx context.Context, cat CustomCategory) error {
	cat.Code = strings.ToUpper(strings.TrimSpace(cat.Code))
	cat.Category = strings.TrimSpace(cat.Category)
	cat.Subcategory = strings.TrimSpace(cat.Subcategory)
	if cat.Code == "" || cat.Category == "" || cat.Subcategory == "" {
		return fmt.Errorf("%w: incomplete custom category %+v", ErrInvalidInput, cat)
	}

	return withTx(ctx, c.db, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM custom_categories WHERE code = ?)`, cat.Code).Scan(&exists); err != nil {
			return fmt.Errorf("check category code: %w", err)
		}
		if exists {
			return fmt.Errorf("category code %s: %w", cat.Code, ErrDuplicate)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO custom_categories (category, category_code, subcategory, code)
			VALUES (?, ?, ?, ?)
		`, cat.Category, strings.ToUpper(cat.CategoryCode), cat.Subcategory, cat.Code); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		return nil
	})
}

// Overlay groups the stored rows by category name, in insertion order, for
// use as a refdata overlay.
func (c *Categories) Overlay(ctx context.Context) (refdata.Overlay, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT category, category_code, subcategory, code
		FROM custom_categories
		ORDER BY id
	`)
	if err != nil {
		return refdata.Overlay{}, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var overlay refdata.Overlay
	pos := make(map[string]int)
	for rows.Next() {
		var cat CustomCategory
		if err := rows.Scan(&cat.Category, &cat.CategoryCode, &cat.Subcategory, &cat.Code); err != nil {
			return refdata.Overlay{}, fmt.Errorf("scan category: %w", err)
		}
		sub := refdata.Subcategory{Name: cat.Subcategory, Code: cat.Code}
		if i, ok := pos[cat.Category]; ok {
			overlay.Categories[i].Subcategories = append(overlay.Categories[i].Subcategories, sub)
			continue
		}
		pos[cat.Category] = len(overlay.Categories)
		overlay.Categories = append(overlay.Categories, refdata.Category{
			Name:          cat.Category,
			Code:          cat.CategoryCode,
			Subcategories: []refdata.Subcategory{sub},
		})
	}
	if err := rows.Err(); err != nil {
		return refdata.Overlay{}, fmt.Errorf("list categories: %w", err)
	}
	return overlay, nil
}
