// Package share renders priced quotes as customer-facing messages: a
// WhatsApp text with a wa.me link, an email with a mailto link and plain
// text for copy and paste.
package share

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/printgenie/internal/pricing"
)

const (
	DefaultItemName     = "Custom 3D Print"
	DefaultCustomer     = "Valued Customer"
	DefaultValidityDays = 7

	quoteIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	quoteIDSuffix   = 4
	rule            = "━━━━━━━━━━━━━━━━"
)

// Company is the contact block printed under every message.
type Company struct {
	Name    string `json:"name" yaml:"name"`
	Tagline string `json:"tagline" yaml:"tagline"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Website string `json:"website" yaml:"website"`
	Address string `json:"address" yaml:"address"`
}

func DefaultCompany() Company {
	return Company{
		Name:    "Print Genie",
		Tagline: "Digital Craftsmanship & Automation",
		Phone:   "+91 XXXXX XXXXX",
		Email:   "orders@printgenie.in",
		Website: "printgenie.in",
		Address: "Your City, India",
	}
}

// Options describe who a quote is for. Zero values fall back to defaults.
type Options struct {
	QuoteID      string
	ItemName     string
	Customer     string
	Notes        string
	ValidityDays int
	Date         time.Time
	Company      Company
}

func (o Options) withDefaults() Options {
	if o.ItemName == "" {
		o.ItemName = DefaultItemName
	}
	if o.ValidityDays <= 0 {
		o.ValidityDays = DefaultValidityDays
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Company.Name == "" {
		o.Company = DefaultCompany()
	}
	if o.QuoteID == "" {
		o.QuoteID = NewQuoteID(o.Date)
	}
	return o
}

// NewQuoteID returns an identifier of the form PG-QYYYYMMDD-XXXX where the
// suffix is four random base-36 characters.
func NewQuoteID(at time.Time) string {
	var suffix strings.Builder
	max := big.NewInt(int64(len(quoteIDAlphabet)))
	for i := 0; i < quoteIDSuffix; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(fmt.Sprintf("read random quote id: %v", err))
		}
		suffix.WriteByte(quoteIDAlphabet[n.Int64()])
	}
	return fmt.Sprintf("PG-Q%s-%s", at.Format("20060102"), suffix.String())
}

// FormatINR renders amount in rupees with thousands separators and two
// decimals.
func FormatINR(amount float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", amount)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeComponent percent-encodes s for a URL query value, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Message is a rendered WhatsApp text and its share link.
type Message struct {
	QuoteID string `json:"quoteId"`
	Text    string `json:"message"`
	URL     string `json:"shareUrl"`
}

// WhatsApp renders q as a WhatsApp message with bold markers.
func WhatsApp(q pricing.Quote, opts Options) Message {
	o := opts.withDefaults()
	p := q.Params

	var b strings.Builder
	fmt.Fprintf(&b, "*%s Quote*\n", o.Company.Name)
	fmt.Fprintf(&b, "Quote ID: %s\n", o.QuoteID)
	b.WriteString(rule + "\n\n")
	if o.Customer != "" {
		fmt.Fprintf(&b, "Dear %s,\n\n", o.Customer)
	}
	fmt.Fprintf(&b, "*%s*\n\n", o.ItemName)
	fmt.Fprintf(&b, "📦 Material: %s\n", p.MaterialName)
	fmt.Fprintf(&b, "⚖️ Weight: %sg\n", formatNumber(p.WeightGrams))
	fmt.Fprintf(&b, "⏱️ Print Time: %s hrs\n", formatNumber(p.PrintTimeHours))
	fmt.Fprintf(&b, "🔧 Complexity: %s\n", p.ComplexityLabel)
	fmt.Fprintf(&b, "📊 Quantity: %s units\n", humanize.Comma(int64(p.Quantity)))
	fmt.Fprintf(&b, "🚚 Delivery: %s\n\n", p.RushLabel)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "*%s Pricing*\n\n", q.Meta.PricingMode)
	fmt.Fprintf(&b, "Unit Price: %s\n", FormatINR(q.Pricing.UnitPrice))
	if q.Pricing.VolumeDiscount.Percent > 0 {
		fmt.Fprintf(&b, "Volume Discount: %s%% off\n", formatNumber(q.Pricing.VolumeDiscount.Percent))
	}
	fmt.Fprintf(&b, "\n*TOTAL: %s*\n\n", FormatINR(q.Pricing.FinalTotal))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "✓ Quote valid for %d days\n", o.ValidityDays)
	b.WriteString("✓ 50% advance to confirm\n\n")
	b.WriteString("Contact us to place your order!\n")
	fmt.Fprintf(&b, "📞 %s\n", o.Company.Phone)
	fmt.Fprintf(&b, "🌐 %s", o.Company.Website)

	text := b.String()
	return Message{
		QuoteID: o.QuoteID,
		Text:    text,
		URL:     "https://wa.me/?text=" + escapeComponent(text),
	}
}

// Email is a rendered email and its mailto link.
type Email struct {
	QuoteID string `json:"quoteId"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Link    string `json:"mailtoLink"`
}

// EmailContent renders q as a plain email.
func EmailContent(q pricing.Quote, opts Options) Email {
	o := opts.withDefaults()
	if o.Customer == "" {
		o.Customer = DefaultCustomer
	}
	p := q.Params

	subject := fmt.Sprintf("%s Quote #%s - %s", o.Company.Name, o.QuoteID, o.ItemName)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - Price Quote\n\n", o.Company.Name)
	fmt.Fprintf(&b, "Quote ID: %s\n", o.QuoteID)
	fmt.Fprintf(&b, "Date: %s\n", formatDate(o.Date))
	fmt.Fprintf(&b, "Customer: %s\n\n", o.Customer)

	b.WriteString("=== Item Details ===\n")
	fmt.Fprintf(&b, "Item: %s\n", o.ItemName)
	fmt.Fprintf(&b, "Material: %s\n", p.MaterialName)
	fmt.Fprintf(&b, "Weight: %sg\n", formatNumber(p.WeightGrams))
	fmt.Fprintf(&b, "Print Time: %s hours\n", formatNumber(p.PrintTimeHours))
	fmt.Fprintf(&b, "Complexity: %s\n", p.ComplexityLabel)
	fmt.Fprintf(&b, "Quantity: %s units\n", humanize.Comma(int64(p.Quantity)))
	fmt.Fprintf(&b, "Delivery: %s\n\n", p.RushLabel)

	fmt.Fprintf(&b, "=== Pricing (%s) ===\n", q.Meta.PricingMode)
	fmt.Fprintf(&b, "Unit Price: %s\n", FormatINR(q.Pricing.UnitPrice))
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatINR(q.Pricing.Subtotal))
	if q.Pricing.VolumeDiscount.Percent > 0 {
		fmt.Fprintf(&b, "Volume Discount (%s%%): -%s\n", formatNumber(q.Pricing.VolumeDiscount.Percent), FormatINR(q.Pricing.TotalDiscount))
	}
	fmt.Fprintf(&b, "\nTOTAL: %s\n\n", FormatINR(q.Pricing.FinalTotal))

	b.WriteString("=== Terms ===\n")
	fmt.Fprintf(&b, "- Quote valid for %d days\n", o.ValidityDays)
	b.WriteString("- 50% advance payment required\n")
	b.WriteString("- Balance due before delivery\n\n")

	b.WriteString("Contact us to proceed:\n")
	fmt.Fprintf(&b, "Phone: %s\n", o.Company.Phone)
	fmt.Fprintf(&b, "Email: %s\n", o.Company.Email)
	fmt.Fprintf(&b, "Website: %s\n\n", o.Company.Website)
	fmt.Fprintf(&b, "Thank you for choosing %s!", o.Company.Name)

	body := b.String()
	return Email{
		QuoteID: o.QuoteID,
		Subject: subject,
		Body:    body,
		Link:    "mailto:?subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body),
	}
}

// PlainText renders q with its full cost breakdown for internal use.
func PlainText(q pricing.Quote, opts Options) string {
	o := opts.withDefaults()
	p := q.Params
	validUntil := o.Date.AddDate(0, 0, o.ValidityDays)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", o.Company.Name, o.Company.Tagline)
	fmt.Fprintf(&b, "Quote %s (%s)\n", o.QuoteID, formatDate(o.Date))
	if o.Customer != "" {
		fmt.Fprintf(&b, "Customer: %s\n", o.Customer)
	}
	fmt.Fprintf(&b, "Valid until: %s\n\n", formatDate(validUntil))

	fmt.Fprintf(&b, "Item: %s\n", o.ItemName)
	fmt.Fprintf(&b, "Material: %s\n", p.MaterialName)
	fmt.Fprintf(&b, "Weight: %sg, print time %s h\n", formatNumber(p.WeightGrams), formatNumber(p.PrintTimeHours))
	fmt.Fprintf(&b, "Complexity: %s\n", p.ComplexityLabel)
	fmt.Fprintf(&b, "Delivery: %s\n", p.RushLabel)
	if len(p.PostProcessing) > 0 {
		fmt.Fprintf(&b, "Post-processing: %s\n", strings.Join(p.PostProcessing, ", "))
	}
	fmt.Fprintf(&b, "Quantity: %s\n\n", humanize.Comma(int64(p.Quantity)))

	b.WriteString("Cost per unit:\n")
	for _, line := range []struct {
		label  string
		amount float64
	}{
		{"Material", q.Costs.Material},
		{"Electricity", q.Costs.Electricity},
		{"Depreciation", q.Costs.Depreciation},
		{"Maintenance", q.Costs.Maintenance},
		{"Labor", q.Costs.Labor},
		{"Post-processing", q.Costs.PostProcessing},
		{"Complexity adjustment", q.Costs.ComplexityAdjustment},
		{"Failure buffer", q.Costs.FailureBuffer},
	} {
		fmt.Fprintf(&b, "  %-22s %s\n", line.label+":", FormatINR(line.amount))
	}
	fmt.Fprintf(&b, "  %-22s %s\n\n", "Total cost:", FormatINR(q.Costs.Total))

	fmt.Fprintf(&b, "%s pricing:\n", q.Meta.PricingMode)
	fmt.Fprintf(&b, "  Markup: %s\n", FormatINR(q.Pricing.Markup))
	if q.Pricing.VolumeDiscount.Percent > 0 {
		fmt.Fprintf(&b, "  Volume discount %s: -%s\n", q.Pricing.VolumeDiscount.Label, FormatINR(q.Pricing.VolumeDiscount.Amount))
	}
	if q.Pricing.RushPremium.Percent > 0 {
		fmt.Fprintf(&b, "  Rush %s: +%s\n", q.Pricing.RushPremium.Label, FormatINR(q.Pricing.RushPremium.Amount))
	}
	fmt.Fprintf(&b, "  Unit price: %s\n", FormatINR(q.Pricing.UnitPrice))
	fmt.Fprintf(&b, "  Subtotal: %s\n", FormatINR(q.Pricing.Subtotal))
	fmt.Fprintf(&b, "  Total: %s\n\n", FormatINR(q.Pricing.FinalTotal))

	health := "healthy"
	if !q.Profit.Healthy {
		health = "below minimum"
	}
	fmt.Fprintf(&b, "Profit: %s per unit, %s total, margin %s%% (%s)\n",
		FormatINR(q.Profit.PerUnit), FormatINR(q.Profit.Total), formatNumber(q.Profit.Margin), health)
	if o.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", o.Notes)
	}
	return b.String()
}
