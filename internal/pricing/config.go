package pricing

// Policy selects the markup rules applied to a quote.
type Policy string

const (
	PolicyRetail    Policy = "retail"
	PolicyWholesale Policy = "wholesale"
)

// Valid reports whether p is one of the supported pricing policies.
func (p Policy) Valid() bool {
	return p == PolicyRetail || p == PolicyWholesale
}

// Label returns the display name used in quote metadata.
func (p Policy) Label() string {
	if p == PolicyWholesale {
		return "Wholesale"
	}
	return "Retail"
}

// Config holds every rate, tier and schedule used to price a print job.
type Config struct {
	Version         string                       `json:"version"`
	Materials       map[string]Material          `json:"materials" validate:"dive"`
	Electricity     Electricity                  `json:"electricity"`
	Machine         Machine                      `json:"machine"`
	Labor           Labor                        `json:"labor"`
	Complexity      map[string]ComplexityTier    `json:"complexity" validate:"dive"`
	Markup          Markup                       `json:"markup"`
	VolumeDiscounts []VolumeTier                 `json:"volumeDiscounts" validate:"dive"`
	RushPremiums    map[string]RushPremium       `json:"rushPremiums" validate:"dive"`
	PostProcessing  map[string]PostProcessOption `json:"postProcessing" validate:"dive"`
}

type Material struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Density     float64 `json:"density" validate:"gte=0"`
	Description string  `json:"description"`
}

type Electricity struct {
	RatePerHour    float64 `json:"ratePerHour" validate:"gte=0"`
	FDMConsumption float64 `json:"fdmConsumption" validate:"gte=0"`
	SLAConsumption float64 `json:"slaConsumption" validate:"gte=0"`
}

type Machine struct {
	DepreciationPerHour float64 `json:"depreciationPerHour" validate:"gte=0"`
	MaintenancePerHour  float64 `json:"maintenancePerHour" validate:"gte=0"`
	FailureBuffer       float64 `json:"failureBuffer" validate:"gte=0,lte=1"`
}

type Labor struct {
	SetupCost             float64 `json:"setupCost" validate:"gte=0"`
	MonitoringPerHour     float64 `json:"monitoringPerHour" validate:"gte=0"`
	PostProcessingPerHour float64 `json:"postProcessingPerHour" validate:"gte=0"`
	AutomationFactor      float64 `json:"automationFactor" validate:"gte=0,lte=1"`
}

type ComplexityTier struct {
	Multiplier  float64 `json:"multiplier" validate:"gte=1"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// MarkupRule is the markup and margin policy of one pricing mode.
type MarkupRule struct {
	Base         float64 `json:"base" validate:"gte=0"`
	TargetMargin float64 `json:"targetMargin" validate:"gte=0,lte=1"`
	MinMargin    float64 `json:"minMargin" validate:"gte=0,lte=1,ltefield=TargetMargin"`
}

type Markup struct {
	Retail    MarkupRule `json:"retail"`
	Wholesale MarkupRule `json:"wholesale"`
}

// Rule returns the markup rule for p. Unknown policies get the retail rule.
func (m Markup) Rule(p Policy) MarkupRule {
	if p == PolicyWholesale {
		return m.Wholesale
	}
	return m.Retail
}

// VolumeTier is one row of the wholesale discount schedule. MaxQty of zero
// means the tier has no upper bound.
type VolumeTier struct {
	MinQty   int     `json:"minQty" yaml:"minQty" validate:"gte=1"`
	MaxQty   int     `json:"maxQty,omitempty" yaml:"maxQty,omitempty" validate:"gte=0"`
	Discount float64 `json:"discount" yaml:"discount" validate:"gte=0,lte=100"`
	Label    string  `json:"label" yaml:"label"`
}

// Unbounded reports whether the tier extends to infinity.
func (t VolumeTier) Unbounded() bool {
	return t.MaxQty == 0
}

// Contains reports whether qty falls inside the tier, both ends inclusive.
func (t VolumeTier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.Unbounded() || qty <= t.MaxQty
}

type RushPremium struct {
	Days    int     `json:"days" validate:"gte=0"`
	Premium float64 `json:"premium" validate:"gte=0"`
	Label   string  `json:"label"`
}

type PostProcessOption struct {
	Cost           float64 `json:"cost" validate:"gte=0"`
	TimeMultiplier float64 `json:"timeMultiplier" validate:"gte=0"`
	Label          string  `json:"label"`
}

// Clone returns a deep copy of c so callers can edit it without touching
// the original maps and slices.
func (c Config) Clone() Config {
	out := c
	out.Materials = cloneMap(c.Materials)
	out.Complexity = cloneMap(c.Complexity)
	out.RushPremiums = cloneMap(c.RushPremiums)
	out.PostProcessing = cloneMap(c.PostProcessing)
	if c.VolumeDiscounts != nil {
		out.VolumeDiscounts = append([]VolumeTier(nil), c.VolumeDiscounts...)
	}
	return out
}

func cloneMap[V any](in map[string]V) map[string]V {
	if in == nil {
		return nil
	}
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
