package pricing

const (
	ConfigVersion = "2.0"

	DefaultMaterial        = "PLA"
	DefaultComplexity      = "moderate"
	DefaultRush            = "standard"
	NoPostProcessing       = "none"
	priceRoundingIncrement = 5.0

	// WholesaleMinOrderQty is the smallest wholesale order quoted without a
	// warning. Smaller orders are still priced.
	WholesaleMinOrderQty = 10
)

// Defaults returns a fresh copy of the built-in pricing configuration.
// Amounts are in INR.
func Defaults() Config {
	return Config{
		Version: ConfigVersion,
		Materials: map[string]Material{
			"PLA":              {Name: "PLA", Cost: 800, Density: 1.24, Description: "Standard, easy to print"},
			"PLA+":             {Name: "PLA+", Cost: 1000, Density: 1.24, Description: "Enhanced strength PLA"},
			"PETG":             {Name: "PETG", Cost: 1000, Density: 1.27, Description: "Durable, chemical resistant"},
			"ABS":              {Name: "ABS", Cost: 900, Density: 1.04, Description: "Heat resistant, strong"},
			"TPU":              {Name: "TPU", Cost: 2000, Density: 1.21, Description: "Flexible, rubber-like"},
			"Nylon":            {Name: "Nylon", Cost: 2500, Density: 1.14, Description: "Very strong, wear resistant"},
			"ASA":              {Name: "ASA", Cost: 1500, Density: 1.07, Description: "UV resistant, outdoor use"},
			"Polycarbonate":    {Name: "Polycarbonate", Cost: 3000, Density: 1.20, Description: "Impact resistant, clear"},
			"Wood-Fill":        {Name: "Wood-Fill", Cost: 1800, Density: 1.15, Description: "Wood appearance"},
			"Metal-Fill":       {Name: "Metal-Fill", Cost: 3500, Density: 3.00, Description: "Metallic finish"},
			"Carbon Fiber":     {Name: "Carbon Fiber", Cost: 4000, Density: 1.30, Description: "Lightweight, very strong"},
			"Silk PLA":         {Name: "Silk PLA", Cost: 1200, Density: 1.24, Description: "Shiny, silk-like finish"},
			"Glow PLA":         {Name: "Glow PLA", Cost: 1500, Density: 1.24, Description: "Glows in the dark"},
			"Resin (Standard)": {Name: "Resin (Standard)", Cost: 2500, Density: 1.10, Description: "High detail resin"},
			"Resin (Tough)":    {Name: "Resin (Tough)", Cost: 3500, Density: 1.15, Description: "Durable resin"},
		},
		Electricity: Electricity{
			RatePerHour:    6.0,
			FDMConsumption: 0.2,
			SLAConsumption: 0.15,
		},
		Machine: Machine{
			// 25,000 printer over 5,000 hours; 500/month over 100 hours.
			DepreciationPerHour: 5.0,
			MaintenancePerHour:  5.0,
			FailureBuffer:       0.03,
		},
		Labor: Labor{
			SetupCost:             30,
			MonitoringPerHour:     5,
			PostProcessingPerHour: 50,
			AutomationFactor:      0.5,
		},
		Complexity: map[string]ComplexityTier{
			"simple":       {Multiplier: 1.0, Label: "Simple", Description: "Basic shapes, no supports"},
			"moderate":     {Multiplier: 1.15, Label: "Moderate", Description: "Some details, minimal supports"},
			"complex":      {Multiplier: 1.3, Label: "Complex", Description: "Detailed, supports needed"},
			"very-complex": {Multiplier: 1.5, Label: "Very Complex", Description: "Intricate, heavy supports"},
		},
		Markup: Markup{
			Retail:    MarkupRule{Base: 0.50, TargetMargin: 0.45, MinMargin: 0.35},
			Wholesale: MarkupRule{Base: 0.30, TargetMargin: 0.35, MinMargin: 0.25},
		},
		VolumeDiscounts: []VolumeTier{
			{MinQty: 1, MaxQty: 2, Discount: 0, Label: "1-2 units"},
			{MinQty: 3, MaxQty: 5, Discount: 5, Label: "3-5 units (5% off)"},
			{MinQty: 6, MaxQty: 10, Discount: 10, Label: "6-10 units (10% off)"},
			{MinQty: 11, MaxQty: 25, Discount: 15, Label: "11-25 units (15% off)"},
			{MinQty: 26, MaxQty: 50, Discount: 20, Label: "26-50 units (20% off)"},
			{MinQty: 51, MaxQty: 100, Discount: 25, Label: "51-100 units (25% off)"},
			{MinQty: 101, Discount: 30, Label: "100+ units (30% off)"},
		},
		RushPremiums: map[string]RushPremium{
			"standard": {Days: 7, Premium: 0, Label: "Standard (5-7 days)"},
			"express":  {Days: 3, Premium: 0.20, Label: "Express (2-3 days, +20%)"},
			"rush":     {Days: 1, Premium: 0.40, Label: "Rush (24 hours, +40%)"},
			"same-day": {Days: 0, Premium: 0.75, Label: "Same Day (+75%)"},
		},
		PostProcessing: map[string]PostProcessOption{
			"none":            {Cost: 0, TimeMultiplier: 0, Label: "None"},
			"support-removal": {Cost: 20, TimeMultiplier: 0.25, Label: "Support Removal"},
			"sanding":         {Cost: 50, TimeMultiplier: 0.5, Label: "Sanding & Smoothing"},
			"painting":        {Cost: 100, TimeMultiplier: 1.0, Label: "Painting"},
			"assembly":        {Cost: 75, TimeMultiplier: 0.75, Label: "Assembly"},
			"full-finish":     {Cost: 200, TimeMultiplier: 2.0, Label: "Full Finishing"},
		},
	}
}
