// Package export writes the catalog and single quotes as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/store"
)

var catalogHeader = []string{
	"SKU", "Product Name", "Category", "Subcategory", "Material", "Color", "Size",
	"Price", "Stock", "Description", "Tags", "Date Added",
}

// Catalog writes one row per product.
func Catalog(w io.Writer, products []store.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogHeader); err != nil {
		return fmt.Errorf("write catalog header: %w", err)
	}
	for _, p := range products {
		subcategory := p.SubcategoryName
		if subcategory == "" {
			subcategory = p.Subcategory
		}
		if err := cw.Write([]string{
			p.SKU,
			p.Name,
			p.Category,
			subcategory,
			p.Material,
			p.Color,
			p.Size,
			money(p.Price),
			strconv.Itoa(p.Stock),
			p.Description,
			strings.Join(p.Tags, ", "),
			p.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return fmt.Errorf("write product %s: %w", p.SKU, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CatalogFilename names a catalog export taken on day.
func CatalogFilename(day time.Time) string {
	return "print-genie-catalog-" + day.Format("2006-01-02") + ".csv"
}

// QuoteRow carries the descriptive fields of a quote export.
type QuoteRow struct {
	QuoteID  string
	Date     time.Time
	ItemName string
	Quote    pricing.Quote
}

var quoteHeader = []string{
	"Quote ID", "Date", "Customer Type", "Item Name", "Material", "Complexity",
	"Weight (g)", "Print Time (hrs)", "Unit Price", "Quantity", "Subtotal",
	"Discount %", "Discount Amount", "Final Total",
}

var costHeader = []string{
	"Material Cost", "Electricity Cost", "Depreciation Cost", "Maintenance Cost",
	"Labor Cost", "Total Cost", "Profit Margin %", "Profit Amount",
}

// Quote writes a header and a single row. Wholesale quotes carry the cost
// breakdown as extra columns.
func Quote(w io.Writer, row QuoteRow) error {
	q := row.Quote
	header := append([]string(nil), quoteHeader...)
	values := []string{
		row.QuoteID,
		row.Date.Format("2006-01-02"),
		q.Meta.PricingMode,
		row.ItemName,
		q.Params.MaterialName,
		q.Params.ComplexityLabel,
		number(q.Params.WeightGrams),
		number(q.Params.PrintTimeHours),
		money(q.Pricing.UnitPrice),
		strconv.Itoa(q.Params.Quantity),
		money(q.Pricing.Subtotal),
		number(q.Pricing.VolumeDiscount.Percent),
		money(q.Pricing.TotalDiscount),
		money(q.Pricing.FinalTotal),
	}

	if q.Params.Policy == pricing.PolicyWholesale {
		header = append(header, costHeader...)
		values = append(values,
			money(q.Costs.Material),
			money(q.Costs.Electricity),
			money(q.Costs.Depreciation),
			money(q.Costs.Maintenance),
			money(q.Costs.Labor),
			money(q.Costs.Total),
			number(q.Profit.Margin),
			money(q.Profit.Total),
		)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{header, values}); err != nil {
		return fmt.Errorf("write quote %s: %w", row.QuoteID, err)
	}
	return nil
}

// QuoteFilename names the export of quote id.
func QuoteFilename(id string) string {
	return "PrintGenie-Quote-" + id + ".csv"
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
