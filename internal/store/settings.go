package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/share"
)

const (
	pricingConfigKey = "pricing_config"
	CompanyKey       = "company_info"
)

// ErrInvalidConfig marks a saved pricing configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid pricing config")

type Settings struct {
	db *sql.DB
}

// LoadPricing merges the saved pricing overrides onto the built-in defaults.
// With nothing saved it returns the defaults. A blob that fails to decode or
// yields an invalid configuration is reported with ErrInvalidConfig.
func (s *Settings) LoadPricing(ctx context.Context) (pricing.Config, error) {
	blob, err := s.get(ctx, pricingConfigKey)
	if errors.Is(err, ErrNotFound) {
		return pricing.Defaults(), nil
	}
	if err != nil {
		return pricing.Config{}, err
	}

	cfg, err := pricing.MergeJSON([]byte(blob), pricing.Defaults())
	if err != nil {
		return pricing.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// SavePricing validates the merged result of partial before storing partial.
// Only the overrides are kept so later default changes still apply to
// fields the operator never touched.
func (s *Settings) SavePricing(ctx context.Context, partial pricing.PartialConfig) (pricing.Config, error) {
	cfg := pricing.MergeConfig(partial, pricing.Defaults())
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	blob, err := json.Marshal(partial)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("encode pricing config: %w", err)
	}

	if err := s.put(ctx, pricingConfigKey, string(blob)); err != nil {
		return pricing.Config{}, err
	}
	return cfg, nil
}

// ResetPricing drops saved overrides so LoadPricing returns the defaults.
func (s *Settings) ResetPricing(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, pricingConfigKey); err != nil {
		return fmt.Errorf("reset pricing config: %w", err)
	}
	return nil
}

// LoadCompany returns the stored contact block, or the default one.
func (s *Settings) LoadCompany(ctx context.Context) (share.Company, error) {
	blob, err := s.get(ctx, CompanyKey)
	if errors.Is(err, ErrNotFound) {
		return share.DefaultCompany(), nil
	}
	if err != nil {
		return share.Company{}, err
	}

	company := share.DefaultCompany()
	if err := json.Unmarshal([]byte(blob), &company); err != nil {
		return share.Company{}, fmt.Errorf("decode company info: %w", err)
	}
	return company, nil
}

func (s *Settings) SaveCompany(ctx context.Context, company share.Company) error {
	if company.Name == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	blob, err := json.Marshal(company)
	if err != nil {
		return fmt.Errorf("encode company info: %w", err)
	}
	return s.put(ctx, CompanyKey, string(blob))
}

func (s *Settings) put(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

func (s *Settings) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}
