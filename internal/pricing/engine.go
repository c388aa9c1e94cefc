package pricing

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Request describes one print job to be priced.
type Request struct {
	WeightGrams    float64  `json:"weightGrams"`
	PrintTimeHours float64  `json:"printTimeHours"`
	Material       string   `json:"material"`
	Complexity     string   `json:"complexity"`
	Quantity       int      `json:"quantity"`
	Policy         Policy   `json:"policy"`
	Rush           string   `json:"rush"`
	PostProcessing []string `json:"postProcessing"`

	// Strict turns unknown material, complexity, rush and post-processing
	// keys into InvalidInputError instead of falling back to defaults.
	Strict bool `json:"strict,omitempty"`
}

// Params echoes the resolved inputs of a quote.
type Params struct {
	WeightGrams        float64  `json:"weightGrams"`
	PrintTimeHours     float64  `json:"printTimeHours"`
	Material           string   `json:"material"`
	MaterialName       string   `json:"materialName"`
	MaterialFallback   bool     `json:"materialFallback,omitempty"`
	Complexity         string   `json:"complexity"`
	ComplexityLabel    string   `json:"complexityLabel"`
	ComplexityFallback bool     `json:"complexityFallback,omitempty"`
	Quantity           int      `json:"quantity"`
	Policy             Policy   `json:"policy"`
	Rush               string   `json:"rush"`
	RushLabel          string   `json:"rushLabel"`
	RushFallback       bool     `json:"rushFallback,omitempty"`
	PostProcessing     []string `json:"postProcessing"`
}

// Costs is the per-unit production cost breakdown.
type Costs struct {
	Material             float64 `json:"material"`
	Electricity          float64 `json:"electricity"`
	Depreciation         float64 `json:"depreciation"`
	Maintenance          float64 `json:"maintenance"`
	Labor                float64 `json:"labor"`
	PostProcessing       float64 `json:"postProcessing"`
	BaseProduction       float64 `json:"baseProduction"`
	ComplexityAdjustment float64 `json:"complexityAdjustment"`
	FailureBuffer        float64 `json:"failureBuffer"`
	Total                float64 `json:"totalCost"`
}

// Adjustment is a percentage-based change applied to the unit price.
type Adjustment struct {
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
}

type Pricing struct {
	CostPerUnit      float64    `json:"costPerUnit"`
	Markup           float64    `json:"markup"`
	VolumeDiscount   Adjustment `json:"volumeDiscount"`
	RushPremium      Adjustment `json:"rushPremium"`
	UnitPrice        float64    `json:"unitPrice"`
	Quantity         int        `json:"quantity"`
	Subtotal         float64    `json:"subtotal"`
	TotalDiscount    float64    `json:"totalDiscount"`
	TotalRushPremium float64    `json:"totalRushPremium"`
	FinalTotal       float64    `json:"finalTotal"`
}

type Profit struct {
	PerUnit float64 `json:"perUnit"`
	Margin  float64 `json:"margin"`
	Total   float64 `json:"total"`
	// Healthy is a reporting flag; prices are never raised to meet it.
	Healthy bool `json:"isHealthy"`
}

type Meta struct {
	CalculatedAt  time.Time `json:"calculatedAt"`
	ConfigVersion string    `json:"configVersion"`
	PricingMode   string    `json:"pricingMode"`
}

// Quote is the full result of pricing one Request. Currency fields are
// rounded to two decimals; intermediate sums are not.
type Quote struct {
	Params  Params  `json:"params"`
	Costs   Costs   `json:"costs"`
	Pricing Pricing `json:"pricing"`
	Profit  Profit  `json:"profit"`
	Meta    Meta    `json:"meta"`

	// Warnings are advisory notes about the request. They never block a quote.
	Warnings []string `json:"warnings,omitempty"`
}

// Engine prices requests against a fixed configuration snapshot.
type Engine struct {
	cfg Config
	now func() time.Time
}

type Option func(*Engine)

// WithClock sets the time source used for Meta.CalculatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine returns an engine bound to a copy of cfg.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns a copy of the configuration the engine prices with.
func (e *Engine) Config() Config {
	return e.cfg.Clone()
}

// ComputeQuote prices req against cfg.
func ComputeQuote(req Request, cfg Config) (Quote, error) {
	return NewEngine(cfg).Quote(req)
}

// Quote computes the cost, price and profit breakdown for req.
func (e *Engine) Quote(req Request) (Quote, error) {
	if err := validateRequest(req); err != nil {
		return Quote{}, err
	}

	cfg := e.cfg

	material, ok := cfg.LookupMaterial(req.Material)
	if !ok {
		return Quote{}, invalid("material", "no materials configured")
	}
	complexity, ok := cfg.LookupComplexity(req.Complexity)
	if !ok {
		return Quote{}, invalid("complexity", "no complexity tiers configured")
	}
	rush, hasRush := cfg.LookupRush(req.Rush)
	postKeys, err := resolvePostProcessing(cfg, req.PostProcessing, req.Strict)
	if err != nil {
		return Quote{}, err
	}
	if req.Strict {
		switch {
		case material.Fallback:
			return Quote{}, invalid("material", "unknown key %q", req.Material)
		case complexity.Fallback:
			return Quote{}, invalid("complexity", "unknown key %q", req.Complexity)
		case rush.Fallback || !hasRush:
			return Quote{}, invalid("rush", "unknown key %q", req.Rush)
		}
	}

	hours := req.PrintTimeHours

	materialCost := (req.WeightGrams / 1000) * material.Value.Cost
	electricityCost := hours * cfg.Electricity.RatePerHour
	depreciationCost := hours * cfg.Machine.DepreciationPerHour
	maintenanceCost := hours * cfg.Machine.MaintenancePerHour

	monitoringCost := hours * cfg.Labor.MonitoringPerHour * cfg.Labor.AutomationFactor
	var postFlat, postHours float64
	for _, key := range postKeys {
		opt := cfg.PostProcessing[key]
		postFlat += opt.Cost
		postHours += hours * opt.TimeMultiplier
	}
	laborCost := cfg.Labor.SetupCost + monitoringCost + postHours*cfg.Labor.PostProcessingPerHour

	baseCost := materialCost + electricityCost + depreciationCost + maintenanceCost + laborCost + postFlat
	adjustedCost := baseCost * complexity.Value.Multiplier
	failureBuffer := adjustedCost * cfg.Machine.FailureBuffer
	unitCost := adjustedCost + failureBuffer
	if !finite(unitCost) {
		return Quote{}, outOfRange()
	}

	rule := cfg.Markup.Rule(req.Policy)
	markup := unitCost * rule.Base
	price := unitCost + markup

	tier := cfg.VolumeDiscountFor(req.Quantity, req.Policy)
	discountAmount := price * (tier.Discount / 100)
	price -= discountAmount

	var rushPremium float64
	if hasRush {
		rushPremium = price * rush.Value.Premium
	}
	price += rushPremium

	unitPrice := roundUpTo(price, priceRoundingIncrement)

	qty := float64(req.Quantity)
	subtotal := unitPrice * qty
	if !finite(unitPrice, subtotal) {
		return Quote{}, outOfRange()
	}

	profitPerUnit := unitPrice - unitCost
	var margin float64
	if unitPrice > 0 {
		margin = profitPerUnit / unitPrice * 100
	}

	var warnings []string
	if req.Policy == PolicyWholesale && req.Quantity < WholesaleMinOrderQty {
		warnings = append(warnings, fmt.Sprintf("wholesale orders start at %d units, got %d", WholesaleMinOrderQty, req.Quantity))
	}

	return Quote{
		Params: Params{
			WeightGrams:        req.WeightGrams,
			PrintTimeHours:     req.PrintTimeHours,
			Material:           material.Key,
			MaterialName:       material.Value.Name,
			MaterialFallback:   material.Fallback,
			Complexity:         complexity.Key,
			ComplexityLabel:    complexity.Value.Label,
			ComplexityFallback: complexity.Fallback,
			Quantity:           req.Quantity,
			Policy:             req.Policy,
			Rush:               rush.Key,
			RushLabel:          rush.Value.Label,
			RushFallback:       rush.Fallback,
			PostProcessing:     postKeys,
		},
		Costs: Costs{
			Material:             Round2(materialCost),
			Electricity:          Round2(electricityCost),
			Depreciation:         Round2(depreciationCost),
			Maintenance:          Round2(maintenanceCost),
			Labor:                Round2(laborCost),
			PostProcessing:       Round2(postFlat),
			BaseProduction:       Round2(baseCost),
			ComplexityAdjustment: Round2(adjustedCost - baseCost),
			FailureBuffer:        Round2(failureBuffer),
			Total:                Round2(unitCost),
		},
		Pricing: Pricing{
			CostPerUnit: Round2(unitCost),
			Markup:      Round2(markup),
			VolumeDiscount: Adjustment{
				Percent: tier.Discount,
				Label:   tier.Label,
				Amount:  Round2(discountAmount),
			},
			RushPremium: Adjustment{
				Percent: Round2(rush.Value.Premium * 100),
				Label:   rush.Value.Label,
				Amount:  Round2(rushPremium),
			},
			UnitPrice:        Round2(unitPrice),
			Quantity:         req.Quantity,
			Subtotal:         Round2(subtotal),
			TotalDiscount:    Round2(discountAmount * qty),
			TotalRushPremium: Round2(rushPremium * qty),
			FinalTotal:       Round2(subtotal),
		},
		Profit: Profit{
			PerUnit: Round2(profitPerUnit),
			Margin:  Round2(margin),
			Total:   Round2(profitPerUnit * qty),
			Healthy: margin >= rule.MinMargin*100,
		},
		Meta: Meta{
			CalculatedAt:  e.now().UTC(),
			ConfigVersion: cfg.Version,
			PricingMode:   req.Policy.Label(),
		},
		Warnings: warnings,
	}, nil
}

// finite reports whether none of vs is NaN or infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateRequest(req Request) error {
	if !(req.WeightGrams > 0) || math.IsInf(req.WeightGrams, 1) {
		return invalid("weightGrams", "must be greater than 0, got %v", req.WeightGrams)
	}
	if !(req.PrintTimeHours > 0) || math.IsInf(req.PrintTimeHours, 1) {
		return invalid("printTimeHours", "must be greater than 0, got %v", req.PrintTimeHours)
	}
	if req.Quantity < 1 {
		return invalid("quantity", "must be a positive integer, got %d", req.Quantity)
	}
	if !req.Policy.Valid() {
		return invalid("policy", "must be %q or %q, got %q", PolicyRetail, PolicyWholesale, req.Policy)
	}
	return nil
}

// resolvePostProcessing returns the distinct, known option keys in sorted
// order. Unknown keys are dropped unless strict is set.
func resolvePostProcessing(cfg Config, keys []string, strict bool) ([]string, error) {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := cfg.PostProcessing[key]; !ok {
			if strict {
				return nil, invalid("postProcessing", "unknown key %q", key)
			}
			continue
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

// roundUpTo rounds v up to the next multiple of step.
func roundUpTo(v, step float64) float64 {
	return math.Ceil(v/step) * step
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
