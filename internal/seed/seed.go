package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Simplici0/printgenie/internal/share"
	"github.com/Simplici0/printgenie/internal/store"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	Company       share.Company
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureSequence(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCompany(tx, cfg.Company, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := store.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hash); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSequence(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM sku_sequence WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check sku sequence existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO sku_sequence (id, next_value) VALUES (1, 1)`); err != nil {
		return fmt.Errorf("insert sku sequence singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCompany(tx *sql.Tx, company share.Company, stats *Stats) error {
	if company.Name == "" {
		company = share.DefaultCompany()
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM settings WHERE key = ?)`, store.CompanyKey).Scan(&exists); err != nil {
		return fmt.Errorf("check company info existence: %w", err)
	}
	if exists {
		return nil
	}

	blob, err := json.Marshal(company)
	if err != nil {
		return fmt.Errorf("encode company info: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, store.CompanyKey, string(blob)); err != nil {
		return fmt.Errorf("insert company info: %w", err)
	}
	stats.Inserts++
	return nil
}
