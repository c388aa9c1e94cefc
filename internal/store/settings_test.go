package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/share"
)

func ptr[T any](v T) *T { return &v }

func TestLoadPricingDefaultsWhenNothingSaved(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Settings.LoadPricing(context.Background())
	if err != nil {
		t.Fatalf("LoadPricing: %v", err)
	}
	if !reflect.DeepEqual(cfg, pricing.Defaults()) {
		t.Fatalf("expected defaults when nothing is saved")
	}
}

func TestSavePricingRoundTripsOverrides(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	partial := pricing.PartialConfig{
		Materials: map[string]pricing.PartialMaterial{"PLA": {Cost: ptr(1500.0)}},
		Labor:     &pricing.PartialLabor{SetupCost: ptr(40.0)},
	}
	saved, err := s.Settings.SavePricing(ctx, partial)
	if err != nil {
		t.Fatalf("SavePricing: %v", err)
	}

	loaded, err := s.Settings.LoadPricing(ctx)
	if err != nil {
		t.Fatalf("LoadPricing: %v", err)
	}
	if !reflect.DeepEqual(saved, loaded) {
		t.Fatalf("loaded config differs from saved config")
	}
	if loaded.Materials["PLA"].Cost != 1500 {
		t.Fatalf("PLA cost=%v, want 1500", loaded.Materials["PLA"].Cost)
	}
	if loaded.Materials["PETG"] != pricing.Defaults().Materials["PETG"] {
		t.Fatalf("untouched material changed: %+v", loaded.Materials["PETG"])
	}
	if loaded.Labor.SetupCost != 40 || loaded.Labor.MonitoringPerHour != pricing.Defaults().Labor.MonitoringPerHour {
		t.Fatalf("unexpected labor after merge: %+v", loaded.Labor)
	}
}

func TestSavePricingRejectsInvalidConfig(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Settings.SavePricing(ctx, pricing.PartialConfig{
		Machine: &pricing.PartialMachine{FailureBuffer: ptr(1.5)},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("SavePricing error=%v, want ErrInvalidConfig", err)
	}

	cfg, err := s.Settings.LoadPricing(ctx)
	if err != nil {
		t.Fatalf("LoadPricing: %v", err)
	}
	if !reflect.DeepEqual(cfg, pricing.Defaults()) {
		t.Fatalf("invalid config was persisted")
	}
}

func TestLoadPricingReportsCorruptBlob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Settings.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, pricingConfigKey, `{"materials": [`); err != nil {
		t.Fatalf("insert corrupt blob: %v", err)
	}

	if _, err := s.Settings.LoadPricing(ctx); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("LoadPricing error=%v, want ErrInvalidConfig", err)
	}

	if err := s.Settings.ResetPricing(ctx); err != nil {
		t.Fatalf("ResetPricing: %v", err)
	}
	cfg, err := s.Settings.LoadPricing(ctx)
	if err != nil {
		t.Fatalf("LoadPricing after reset: %v", err)
	}
	if !reflect.DeepEqual(cfg, pricing.Defaults()) {
		t.Fatalf("expected defaults after reset")
	}
}

func TestCompanyInfoDefaultsAndOverrides(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	company, err := s.Settings.LoadCompany(ctx)
	if err != nil {
		t.Fatalf("LoadCompany: %v", err)
	}
	if company != share.DefaultCompany() {
		t.Fatalf("expected default company, got %+v", company)
	}

	company.Phone = "+91 98765 43210"
	if err := s.Settings.SaveCompany(ctx, company); err != nil {
		t.Fatalf("SaveCompany: %v", err)
	}
	got, err := s.Settings.LoadCompany(ctx)
	if err != nil {
		t.Fatalf("LoadCompany: %v", err)
	}
	if got.Phone != "+91 98765 43210" || got.Name != "Print Genie" {
		t.Fatalf("unexpected company: %+v", got)
	}

	if err := s.Settings.SaveCompany(ctx, share.Company{}); err == nil {
		t.Fatalf("expected error for empty company name")
	}
}
