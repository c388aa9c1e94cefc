package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Simplici0/printgenie/internal/sku"
)

// lowStockThreshold counts products with fewer units than this, but at
// least one, as running low.
const lowStockThreshold = 5

var validate = validator.New()

type Product struct {
	ID              string    `json:"id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory"`
	SubcategoryName string    `json:"subcategoryName"`
	Material        string    `json:"material"`
	Color           string    `json:"color"`
	Size            string    `json:"size"`
	Price           float64   `json:"price"`
	Stock           int       `json:"stock"`
	Description     string    `json:"description"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"dateAdded"`
}

// ProductInput is a new catalog entry before it has a SKU.
type ProductInput struct {
	Name            string   `json:"name" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	Subcategory     string   `json:"subcategory" validate:"required,alphanum"`
	SubcategoryName string   `json:"subcategoryName"`
	Material        string   `json:"material" validate:"required,alphanum"`
	Color           string   `json:"color" validate:"required,alphanum"`
	Size            string   `json:"size" validate:"required,alphanum"`
	Price           float64  `json:"price" validate:"gte=0"`
	Stock           int      `json:"stock" validate:"gte=0"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
}

// Validate reports the first missing or malformed field.
func (in ProductInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return fmt.Errorf("%w: %s is invalid (%s)", ErrInvalidInput, errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// ProductFilter narrows List. Query matches name, SKU or any tag; Category
// must match exactly.
type ProductFilter struct {
	Query    string
	Category string
}

// CatalogStats summarizes the whole catalog.
type CatalogStats struct {
	TotalProducts int     `json:"totalProducts"`
	Categories    int     `json:"categories"`
	TotalValue    float64 `json:"totalValue"`
	LowStock      int     `json:"lowStock"`
}

type Products struct {
	db  *sql.DB
	now func() time.Time
}

// Create mints the next sequence number, encodes the SKU and inserts the
// product in one transaction.
func (p *Products) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	product := Product{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Category:        in.Category,
		Subcategory:     strings.ToUpper(in.Subcategory),
		SubcategoryName: in.SubcategoryName,
		Material:        strings.ToUpper(in.Material),
		Color:           strings.ToUpper(in.Color),
		Size:            strings.ToUpper(in.Size),
		Price:           in.Price,
		Stock:           in.Stock,
		Description:     in.Description,
		Tags:            cleanTags(in.Tags),
		CreatedAt:       p.now().UTC().Truncate(time.Second),
	}

	tags, err := json.Marshal(product.Tags)
	if err != nil {
		return Product{}, fmt.Errorf("encode product tags: %w", err)
	}

	err = withTx(ctx, p.db, func(tx *sql.Tx) error {
		seq, err := nextSequence(ctx, tx)
		if err != nil {
			return err
		}
		product.SKU = sku.Encode(product.Subcategory, product.Material, product.Color, product.Size, seq)

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (
				id, sku, name, category, subcategory, subcategory_name,
				material, color, size, price, stock, description, tags_json, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			product.ID, product.SKU, product.Name, product.Category, product.Subcategory, product.SubcategoryName,
			product.Material, product.Color, product.Size, product.Price, product.Stock, product.Description,
			string(tags), formatTime(product.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

const productColumns = `
	id, sku, name, category, subcategory, subcategory_name,
	material, color, size, price, stock, description, tags_json, created_at`

// List returns products in the order they were added.
func (p *Products) List(ctx context.Context, f ProductFilter) ([]Product, error) {
	query := strings.TrimSpace(f.Query)
	search := "%" + query + "%"
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE (? = '' OR name LIKE ? OR sku LIKE ? OR tags_json LIKE ?)
		  AND (? = '' OR category = ?)
		ORDER BY datetime(created_at), sku
	`, query, search, search, search, f.Category, f.Category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (p *Products) GetBySKU(ctx context.Context, code string) (Product, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE sku = ?`, strings.ToUpper(code))
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return product, err
}

// Delete removes the product with the given SKU. Its sequence number is
// not reused.
func (p *Products) Delete(ctx context.Context, code string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM products WHERE sku = ?`, strings.ToUpper(code))
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Products) Stats(ctx context.Context) (CatalogStats, error) {
	var stats CatalogStats
	err := p.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT category),
			COALESCE(SUM(price * stock), 0),
			COALESCE(SUM(CASE WHEN stock > 0 AND stock < ? THEN 1 ELSE 0 END), 0)
		FROM products
	`, lowStockThreshold).Scan(&stats.TotalProducts, &stats.Categories, &stats.TotalValue, &stats.LowStock)
	if err != nil {
		return CatalogStats{}, fmt.Errorf("catalog stats: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (Product, error) {
	var (
		product Product
		tags    string
		created dbTime
	)
	if err := row.Scan(
		&product.ID, &product.SKU, &product.Name, &product.Category, &product.Subcategory, &product.SubcategoryName,
		&product.Material, &product.Color, &product.Size, &product.Price, &product.Stock, &product.Description,
		&tags, &created,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &product.Tags); err != nil {
		return Product{}, fmt.Errorf("decode tags of %s: %w", product.SKU, err)
	}
	product.CreatedAt = created.Time
	return product, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
