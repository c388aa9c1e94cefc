package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/printgenie/internal/sku"
)

func keychain() ProductInput {
	return ProductInput{
		Name:            "Dragon Keychain",
		Category:        "Custom Prints",
		Subcategory:     "cp02",
		SubcategoryName: "Decorative Items",
		Material:        "pla",
		Color:           "gld",
		Size:            "xs",
		Price:           149,
		Stock:           12,
		Description:     "Articulated dragon",
		Tags:            []string{" gift ", "", "dragon"},
	}
}

func TestCreateProductMintsSequentialSKUs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Products.Create(ctx, keychain())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.SKU != "PG-CP02-PLA-GLD-XS-0001" {
		t.Fatalf("SKU=%q, want PG-CP02-PLA-GLD-XS-0001", first.SKU)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "gift" {
		t.Fatalf("tags not cleaned: %q", first.Tags)
	}

	in := keychain()
	in.Size = "G500"
	second, err := s.Products.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.SKU != "PG-CP02-PLA-GLD-G500-0002" {
		t.Fatalf("SKU=%q, want sequence 0002", second.SKU)
	}

	got, err := s.Products.GetBySKU(ctx, "pg-cp02-pla-gld-xs-0001")
	if err != nil {
		t.Fatalf("GetBySKU: %v", err)
	}
	if got.ID != first.ID || got.Name != first.Name || !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("GetBySKU=%+v, want %+v", got, first)
	}
}

func TestCreateProductConcurrentCallsGetDistinctSequences(t *testing.T) {
	s := New(newTestDB(t), WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	const workers = 8
	var (
		mu   sync.Mutex
		skus []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			p, err := s.Products.Create(gctx, keychain())
			if err != nil {
				return err
			}
			mu.Lock()
			skus = append(skus, p.SKU)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Create: %v", err)
	}

	sort.Strings(skus)
	for i, got := range skus {
		want := sku.Encode("cp02", "pla", "gld", "xs", i+1)
		if got != want {
			t.Fatalf("skus[%d]=%q, want %q (all: %q)", i, got, want, skus)
		}
	}
}

func TestCreateProductRejectsInvalidInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*ProductInput){
		"missing name":   func(in *ProductInput) { in.Name = "" },
		"negative price": func(in *ProductInput) { in.Price = -1 },
		"negative stock": func(in *ProductInput) { in.Stock = -3 },
		"dash in size":   func(in *ProductInput) { in.Size = "X-L" },
	} {
		in := keychain()
		mutate(&in)
		if _, err := s.Products.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	next, err := s.Sequences.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if next != 1 {
		t.Fatalf("rejected products consumed sequence numbers: next=%d", next)
	}
}

func TestListProductsFiltersByQueryAndCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate := func(name, category string, tags ...string) {
		t.Helper()
		in := keychain()
		in.Name, in.Category, in.Tags = name, category, tags
		if _, err := s.Products.Create(ctx, in); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	mustCreate("Dragon Keychain", "Custom Prints", "gift")
	mustCreate("Cable Organizer", "Pre-Designed: Office & Stationery", "desk")
	mustCreate("Desk Lamp Shade", "Pre-Designed: Home & Living", "lighting", "desk")

	all, err := s.Products.List(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Dragon Keychain" || all[2].Name != "Desk Lamp Shade" {
		t.Fatalf("unexpected order: %+v", all)
	}

	byTag, err := s.Products.List(ctx, ProductFilter{Query: "DESK"})
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if len(byTag) != 2 {
		t.Fatalf("expected 2 products tagged desk, got %d", len(byTag))
	}

	bySKU, err := s.Products.List(ctx, ProductFilter{Query: "0002"})
	if err != nil {
		t.Fatalf("List by sku: %v", err)
	}
	if len(bySKU) != 1 || bySKU[0].Name != "Cable Organizer" {
		t.Fatalf("unexpected sku match: %+v", bySKU)
	}

	byCategory, err := s.Products.List(ctx, ProductFilter{Query: "desk", Category: "Pre-Designed: Home & Living"})
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Name != "Desk Lamp Shade" {
		t.Fatalf("unexpected category match: %+v", byCategory)
	}
}

func TestDeleteProductKeepsSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Products.Create(ctx, keychain())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Products.Delete(ctx, p.SKU); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Products.Delete(ctx, p.SKU); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete error=%v, want ErrNotFound", err)
	}
	if _, err := s.Products.GetBySKU(ctx, p.SKU); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBySKU error=%v, want ErrNotFound", err)
	}

	again, err := s.Products.Create(ctx, keychain())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if again.SKU != "PG-CP02-PLA-GLD-XS-0002" {
		t.Fatalf("sequence was reused: %s", again.SKU)
	}
}

func TestCatalogStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []struct {
		category string
		price    float64
		stock    int
	}{
		{"Custom Prints", 100, 2},
		{"Custom Prints", 50, 10},
		{"Prototyping Services", 500, 0},
	} {
		in := keychain()
		in.Category, in.Price, in.Stock = p.category, p.price, p.stock
		if _, err := s.Products.Create(ctx, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := s.Products.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := CatalogStats{TotalProducts: 3, Categories: 2, TotalValue: 700, LowStock: 1}
	if stats != want {
		t.Fatalf("Stats=%+v, want %+v", stats, want)
	}
}
