package pricing

import (
	"errors"
	"math"
	"testing"
	"time"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func baseRequest() Request {
	return Request{
		WeightGrams:    100,
		PrintTimeHours: 2,
		Material:       "PLA",
		Complexity:     "moderate",
		Quantity:       1,
		Policy:         PolicyRetail,
		Rush:           "standard",
	}
}

func TestQuote_RetailPLAModerate(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	engine := NewEngine(Defaults(), WithClock(func() time.Time { return fixed }))

	q, err := engine.Quote(baseRequest())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	// 80 + 12 + 10 + 10 + (30 + 2*5*0.5) = 147; *1.15 = 169.05; +3% = 174.1215
	nearlyEqual(t, "material", q.Costs.Material, 80)
	nearlyEqual(t, "electricity", q.Costs.Electricity, 12)
	nearlyEqual(t, "depreciation", q.Costs.Depreciation, 10)
	nearlyEqual(t, "maintenance", q.Costs.Maintenance, 10)
	nearlyEqual(t, "labor", q.Costs.Labor, 35)
	nearlyEqual(t, "postProcessing", q.Costs.PostProcessing, 0)
	nearlyEqual(t, "baseProduction", q.Costs.BaseProduction, 147)
	nearlyEqual(t, "complexityAdjustment", q.Costs.ComplexityAdjustment, 22.05)
	nearlyEqual(t, "failureBuffer", q.Costs.FailureBuffer, 5.07)
	nearlyEqual(t, "totalCost", q.Costs.Total, 174.12)

	// 174.1215 * 1.5 = 261.18225 -> 265
	nearlyEqual(t, "markup", q.Pricing.Markup, 87.06)
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 265)
	nearlyEqual(t, "subtotal", q.Pricing.Subtotal, 265)
	nearlyEqual(t, "finalTotal", q.Pricing.FinalTotal, 265)
	nearlyEqual(t, "discount", q.Pricing.VolumeDiscount.Percent, 0)
	nearlyEqual(t, "rush", q.Pricing.RushPremium.Amount, 0)

	nearlyEqual(t, "profitPerUnit", q.Profit.PerUnit, 90.88)
	nearlyEqual(t, "margin", q.Profit.Margin, 34.29)
	if q.Profit.Healthy {
		t.Fatalf("expected 34.29%% margin to be below the 35%% retail minimum")
	}

	if q.Meta.PricingMode != "Retail" || q.Meta.ConfigVersion != ConfigVersion {
		t.Fatalf("unexpected meta: %+v", q.Meta)
	}
	if !q.Meta.CalculatedAt.Equal(fixed) {
		t.Fatalf("CalculatedAt = %v, want %v", q.Meta.CalculatedAt, fixed)
	}
	if q.Params.MaterialName != "PLA" || q.Params.ComplexityLabel != "Moderate" || q.Params.RushLabel != "Standard (5-7 days)" {
		t.Fatalf("unexpected params: %+v", q.Params)
	}
}

func TestQuote_PostProcessingAppliedOncePerKey(t *testing.T) {
	req := baseRequest()
	req.Complexity = "simple"
	req.PostProcessing = []string{"sanding", "support-removal", "sanding", "glitter-bomb"}

	q, err := ComputeQuote(req, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	// flat 20 + 50; labor hours 2*0.25 + 2*0.5 = 1.5 at 50/h
	nearlyEqual(t, "postProcessing", q.Costs.PostProcessing, 70)
	nearlyEqual(t, "labor", q.Costs.Labor, 110)
	nearlyEqual(t, "baseProduction", q.Costs.BaseProduction, 292)
	nearlyEqual(t, "totalCost", q.Costs.Total, 300.76)
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 455)

	if len(q.Params.PostProcessing) != 2 || q.Params.PostProcessing[0] != "sanding" || q.Params.PostProcessing[1] != "support-removal" {
		t.Fatalf("unexpected applied options: %v", q.Params.PostProcessing)
	}
}

func TestQuote_RushPremiumAppliedAfterDiscount(t *testing.T) {
	req := baseRequest()
	req.Rush = "express"

	q, err := ComputeQuote(req, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	// 261.18225 * 1.2 = 313.4187 -> 315
	nearlyEqual(t, "rushPercent", q.Pricing.RushPremium.Percent, 20)
	nearlyEqual(t, "rushAmount", q.Pricing.RushPremium.Amount, 52.24)
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 315)
}

func TestQuote_WholesaleVolumeDiscount(t *testing.T) {
	req := baseRequest()
	req.Policy = PolicyWholesale
	req.Quantity = 10

	q, err := ComputeQuote(req, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	// 174.1215 * 1.3 = 226.35795; -10% = 203.722155 -> 205
	nearlyEqual(t, "markup", q.Pricing.Markup, 52.24)
	nearlyEqual(t, "discountPercent", q.Pricing.VolumeDiscount.Percent, 10)
	nearlyEqual(t, "discountAmount", q.Pricing.VolumeDiscount.Amount, 22.64)
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 205)
	nearlyEqual(t, "subtotal", q.Pricing.Subtotal, 2050)
	nearlyEqual(t, "totalDiscount", q.Pricing.TotalDiscount, 226.36)
	nearlyEqual(t, "finalTotal", q.Pricing.FinalTotal, 2050)
	if q.Meta.PricingMode != "Wholesale" {
		t.Fatalf("PricingMode = %q, want Wholesale", q.Meta.PricingMode)
	}
}

func TestQuote_WarnsBelowWholesaleMinimum(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		quantity int
		warned   bool
	}{
		{"wholesale below minimum", PolicyWholesale, WholesaleMinOrderQty - 1, true},
		{"wholesale at minimum", PolicyWholesale, WholesaleMinOrderQty, false},
		{"retail single unit", PolicyRetail, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Policy = tt.policy
			req.Quantity = tt.quantity

			q, err := ComputeQuote(req, Defaults())
			if err != nil {
				t.Fatalf("ComputeQuote: %v", err)
			}
			if got := len(q.Warnings) > 0; got != tt.warned {
				t.Fatalf("warned = %v, want %v (%v)", got, tt.warned, q.Warnings)
			}
			if q.Pricing.UnitPrice <= 0 {
				t.Fatalf("expected a priced quote, got unit price %v", q.Pricing.UnitPrice)
			}
		})
	}
}

func TestQuote_MarginHealthyFlipsUnderMaximumDiscount(t *testing.T) {
	small := Request{
		WeightGrams:    10,
		PrintTimeHours: 0.5,
		Material:       "PLA",
		Complexity:     "simple",
		Quantity:       1,
		Policy:         PolicyWholesale,
		Rush:           "standard",
	}

	// cost 48.6675; *1.3 = 63.26775 -> 65, margin 25.13%
	single, err := ComputeQuote(small, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	nearlyEqual(t, "single unitPrice", single.Pricing.UnitPrice, 65)
	if !single.Profit.Healthy {
		t.Fatalf("expected healthy margin at quantity 1, got %.2f%%", single.Profit.Margin)
	}

	// 30% off: 44.287425 -> 45, below cost
	small.Quantity = 101
	bulk, err := ComputeQuote(small, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	nearlyEqual(t, "bulk discountPercent", bulk.Pricing.VolumeDiscount.Percent, 30)
	nearlyEqual(t, "bulk unitPrice", bulk.Pricing.UnitPrice, 45)
	if bulk.Profit.Healthy {
		t.Fatalf("expected unhealthy margin at quantity 101, got %.2f%%", bulk.Profit.Margin)
	}
	if bulk.Profit.PerUnit >= 0 {
		t.Fatalf("expected a loss per unit, got %.2f", bulk.Profit.PerUnit)
	}
}

func TestQuote_RetailHealthyWhenRoundingLiftsMargin(t *testing.T) {
	req := Request{
		WeightGrams:    10,
		PrintTimeHours: 0.5,
		Material:       "PLA",
		Complexity:     "simple",
		Quantity:       1,
		Policy:         PolicyRetail,
		Rush:           "standard",
	}

	// 48.6675 * 1.5 = 73.00125 -> 75, margin 35.11%
	q, err := ComputeQuote(req, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 75)
	nearlyEqual(t, "margin", q.Profit.Margin, 35.11)
	if !q.Profit.Healthy {
		t.Fatalf("expected healthy margin")
	}
}

func TestQuote_UnitPriceIsMultipleOfFiveAndCoversCostWhenHealthy(t *testing.T) {
	cfg := Defaults()
	engine := NewEngine(cfg)

	for _, policy := range []Policy{PolicyRetail, PolicyWholesale} {
		for _, material := range cfg.MaterialKeys() {
			for _, complexity := range cfg.ComplexityKeys() {
				for _, qty := range []int{1, 3, 7, 20, 40, 75, 150} {
					for _, rush := range []string{"standard", "express", "same-day"} {
						q, err := engine.Quote(Request{
							WeightGrams:    37.5,
							PrintTimeHours: 1.75,
							Material:       material,
							Complexity:     complexity,
							Quantity:       qty,
							Policy:         policy,
							Rush:           rush,
							PostProcessing: []string{"support-removal"},
						})
						if err != nil {
							t.Fatalf("Quote: %v", err)
						}
						if q.Pricing.UnitPrice < 0 || math.Mod(q.Pricing.UnitPrice, 5) != 0 {
							t.Fatalf("unit price %v is not a non-negative multiple of 5", q.Pricing.UnitPrice)
						}
						if q.Profit.Healthy && q.Costs.Total > q.Pricing.UnitPrice {
							t.Fatalf("healthy quote priced below cost: %+v", q.Pricing)
						}
						nearlyEqual(t, "finalTotal", q.Pricing.FinalTotal, q.Pricing.UnitPrice*float64(qty))
					}
				}
			}
		}
	}
}

func TestQuote_UnknownKeysFallBackToDefaults(t *testing.T) {
	req := baseRequest()
	req.Material = "Unobtainium"
	req.Complexity = "impossible"
	req.Rush = "yesterday"

	q, err := ComputeQuote(req, Defaults())
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	if q.Params.Material != "PLA" || !q.Params.MaterialFallback {
		t.Fatalf("expected PLA fallback, got %+v", q.Params)
	}
	if q.Params.Complexity != "moderate" || !q.Params.ComplexityFallback {
		t.Fatalf("expected moderate fallback, got %+v", q.Params)
	}
	if q.Params.Rush != "standard" || !q.Params.RushFallback {
		t.Fatalf("expected standard fallback, got %+v", q.Params)
	}
	nearlyEqual(t, "unitPrice", q.Pricing.UnitPrice, 265)
}

func TestQuote_StrictModeRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Request)
		field string
	}{
		{"material", func(r *Request) { r.Material = "Unobtainium" }, "material"},
		{"complexity", func(r *Request) { r.Complexity = "impossible" }, "complexity"},
		{"rush", func(r *Request) { r.Rush = "yesterday" }, "rush"},
		{"post processing", func(r *Request) { r.PostProcessing = []string{"gilding"} }, "postProcessing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Strict = true
			tt.mod(&req)

			_, err := ComputeQuote(req, Defaults())
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Fatalf("Field = %q, want %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestQuote_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Request)
		field string
	}{
		{"zero weight", func(r *Request) { r.WeightGrams = 0 }, "weightGrams"},
		{"negative weight", func(r *Request) { r.WeightGrams = -5 }, "weightGrams"},
		{"nan weight", func(r *Request) { r.WeightGrams = math.NaN() }, "weightGrams"},
		{"zero time", func(r *Request) { r.PrintTimeHours = 0 }, "printTimeHours"},
		{"infinite time", func(r *Request) { r.PrintTimeHours = math.Inf(1) }, "printTimeHours"},
		{"zero quantity", func(r *Request) { r.Quantity = 0 }, "quantity"},
		{"negative quantity", func(r *Request) { r.Quantity = -3 }, "quantity"},
		{"unknown policy", func(r *Request) { r.Policy = "distributor" }, "policy"},
		{"empty policy", func(r *Request) { r.Policy = "" }, "policy"},
		{"overflowing weight", func(r *Request) { r.WeightGrams = math.MaxFloat64 }, "weightGrams|printTimeHours"},
		{"overflowing time", func(r *Request) { r.PrintTimeHours = math.MaxFloat64 }, "weightGrams|printTimeHours"},
		{"overflowing subtotal", func(r *Request) {
			r.WeightGrams = 1e307
			r.Quantity = 100
		}, "weightGrams|printTimeHours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mod(&req)

			_, err := ComputeQuote(req, Defaults())
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if inputErr.Field != tt.field {
				t.Fatalf("Field = %q, want %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestNewEngine_IsolatedFromCallerEdits(t *testing.T) {
	cfg := Defaults()
	engine := NewEngine(cfg)

	cfg.Materials["PLA"] = Material{Name: "PLA", Cost: 1}

	q, err := engine.Quote(baseRequest())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	nearlyEqual(t, "material", q.Costs.Material, 80)
}
