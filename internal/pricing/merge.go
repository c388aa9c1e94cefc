package pricing

import (
	"encoding/json"
	"fmt"
)

// PartialConfig is a saved, possibly incomplete or outdated configuration.
// Absent fields are nil and inherit defaults during MergeConfig.
type PartialConfig struct {
	Version         *string                             `json:"version,omitempty" yaml:"version,omitempty"`
	Materials       map[string]PartialMaterial          `json:"materials,omitempty" yaml:"materials,omitempty"`
	Electricity     *PartialElectricity                 `json:"electricity,omitempty" yaml:"electricity,omitempty"`
	Machine         *PartialMachine                     `json:"machine,omitempty" yaml:"machine,omitempty"`
	Labor           *PartialLabor                       `json:"labor,omitempty" yaml:"labor,omitempty"`
	Complexity      map[string]PartialComplexityTier    `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	Markup          *PartialMarkup                      `json:"markup,omitempty" yaml:"markup,omitempty"`
	VolumeDiscounts *[]VolumeTier                       `json:"volumeDiscounts,omitempty" yaml:"volumeDiscounts,omitempty"`
	RushPremiums    map[string]PartialRushPremium       `json:"rushPremiums,omitempty" yaml:"rushPremiums,omitempty"`
	PostProcessing  map[string]PartialPostProcessOption `json:"postProcessing,omitempty" yaml:"postProcessing,omitempty"`
}

type PartialMaterial struct {
	Name        *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Cost        *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	Density     *float64 `json:"density,omitempty" yaml:"density,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
}

type PartialElectricity struct {
	RatePerHour    *float64 `json:"ratePerHour,omitempty" yaml:"ratePerHour,omitempty"`
	FDMConsumption *float64 `json:"fdmConsumption,omitempty" yaml:"fdmConsumption,omitempty"`
	SLAConsumption *float64 `json:"slaConsumption,omitempty" yaml:"slaConsumption,omitempty"`
}

type PartialMachine struct {
	DepreciationPerHour *float64 `json:"depreciationPerHour,omitempty" yaml:"depreciationPerHour,omitempty"`
	MaintenancePerHour  *float64 `json:"maintenancePerHour,omitempty" yaml:"maintenancePerHour,omitempty"`
	FailureBuffer       *float64 `json:"failureBuffer,omitempty" yaml:"failureBuffer,omitempty"`
}

type PartialLabor struct {
	SetupCost             *float64 `json:"setupCost,omitempty" yaml:"setupCost,omitempty"`
	MonitoringPerHour     *float64 `json:"monitoringPerHour,omitempty" yaml:"monitoringPerHour,omitempty"`
	PostProcessingPerHour *float64 `json:"postProcessingPerHour,omitempty" yaml:"postProcessingPerHour,omitempty"`
	AutomationFactor      *float64 `json:"automationFactor,omitempty" yaml:"automationFactor,omitempty"`
}

type PartialComplexityTier struct {
	Multiplier  *float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Label       *string  `json:"label,omitempty" yaml:"label,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
}

type PartialMarkupRule struct {
	Base         *float64 `json:"base,omitempty" yaml:"base,omitempty"`
	TargetMargin *float64 `json:"targetMargin,omitempty" yaml:"targetMargin,omitempty"`
	MinMargin    *float64 `json:"minMargin,omitempty" yaml:"minMargin,omitempty"`
}

type PartialMarkup struct {
	Retail    *PartialMarkupRule `json:"retail,omitempty" yaml:"retail,omitempty"`
	Wholesale *PartialMarkupRule `json:"wholesale,omitempty" yaml:"wholesale,omitempty"`
}

type PartialRushPremium struct {
	Days    *int     `json:"days,omitempty" yaml:"days,omitempty"`
	Premium *float64 `json:"premium,omitempty" yaml:"premium,omitempty"`
	Label   *string  `json:"label,omitempty" yaml:"label,omitempty"`
}

type PartialPostProcessOption struct {
	Cost           *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	TimeMultiplier *float64 `json:"timeMultiplier,omitempty" yaml:"timeMultiplier,omitempty"`
	Label          *string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// MergeConfig overlays saved onto defaults and returns a complete config.
// Nested objects merge field by field and map entries merge key by key;
// entries that only exist in saved are kept. The volume discount schedule is
// replaced as a whole when saved carries one. defaults is not modified.
func MergeConfig(saved PartialConfig, defaults Config) Config {
	out := defaults.Clone()

	set(&out.Version, saved.Version)

	out.Materials = mergeEntries(out.Materials, saved.Materials, func(dst *Material, src PartialMaterial) {
		set(&dst.Name, src.Name)
		set(&dst.Cost, src.Cost)
		set(&dst.Density, src.Density)
		set(&dst.Description, src.Description)
	})

	if e := saved.Electricity; e != nil {
		set(&out.Electricity.RatePerHour, e.RatePerHour)
		set(&out.Electricity.FDMConsumption, e.FDMConsumption)
		set(&out.Electricity.SLAConsumption, e.SLAConsumption)
	}
	if m := saved.Machine; m != nil {
		set(&out.Machine.DepreciationPerHour, m.DepreciationPerHour)
		set(&out.Machine.MaintenancePerHour, m.MaintenancePerHour)
		set(&out.Machine.FailureBuffer, m.FailureBuffer)
	}
	if l := saved.Labor; l != nil {
		set(&out.Labor.SetupCost, l.SetupCost)
		set(&out.Labor.MonitoringPerHour, l.MonitoringPerHour)
		set(&out.Labor.PostProcessingPerHour, l.PostProcessingPerHour)
		set(&out.Labor.AutomationFactor, l.AutomationFactor)
	}

	out.Complexity = mergeEntries(out.Complexity, saved.Complexity, func(dst *ComplexityTier, src PartialComplexityTier) {
		set(&dst.Multiplier, src.Multiplier)
		set(&dst.Label, src.Label)
		set(&dst.Description, src.Description)
	})

	if m := saved.Markup; m != nil {
		mergeMarkupRule(&out.Markup.Retail, m.Retail)
		mergeMarkupRule(&out.Markup.Wholesale, m.Wholesale)
	}

	if saved.VolumeDiscounts != nil {
		out.VolumeDiscounts = append([]VolumeTier{}, (*saved.VolumeDiscounts)...)
	}

	out.RushPremiums = mergeEntries(out.RushPremiums, saved.RushPremiums, func(dst *RushPremium, src PartialRushPremium) {
		set(&dst.Days, src.Days)
		set(&dst.Premium, src.Premium)
		set(&dst.Label, src.Label)
	})

	out.PostProcessing = mergeEntries(out.PostProcessing, saved.PostProcessing, func(dst *PostProcessOption, src PartialPostProcessOption) {
		set(&dst.Cost, src.Cost)
		set(&dst.TimeMultiplier, src.TimeMultiplier)
		set(&dst.Label, src.Label)
	})

	return out
}

// MergeJSON decodes a saved configuration blob and merges it onto defaults.
// Unknown keys in the blob are ignored.
func MergeJSON(blob []byte, defaults Config) (Config, error) {
	var saved PartialConfig
	if err := json.Unmarshal(blob, &saved); err != nil {
		return Config{}, fmt.Errorf("decode saved pricing config: %w", err)
	}
	return MergeConfig(saved, defaults), nil
}

func mergeMarkupRule(dst *MarkupRule, src *PartialMarkupRule) {
	if src == nil {
		return
	}
	set(&dst.Base, src.Base)
	set(&dst.TargetMargin, src.TargetMargin)
	set(&dst.MinMargin, src.MinMargin)
}

func mergeEntries[V, P any](dst map[string]V, src map[string]P, apply func(*V, P)) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for key, partial := range src {
		entry := dst[key]
		apply(&entry, partial)
		dst[key] = entry
	}
	return dst
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
