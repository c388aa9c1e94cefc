package pricing

import (
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestMergeConfig_EmptyReturnsDefaults(t *testing.T) {
	got := MergeConfig(PartialConfig{}, Defaults())
	if !reflect.DeepEqual(got, Defaults()) {
		t.Fatalf("merging an empty config changed the defaults")
	}
}

func TestMergeConfig_OverridesSingleMaterialCost(t *testing.T) {
	defaults := Defaults()
	saved := PartialConfig{
		Materials: map[string]PartialMaterial{"PLA": {Cost: ptr(999.0)}},
	}

	got := MergeConfig(saved, defaults)

	pla := got.Materials["PLA"]
	if pla.Cost != 999 {
		t.Fatalf("PLA cost = %v, want 999", pla.Cost)
	}
	if pla.Name != "PLA" || pla.Density != 1.24 || pla.Description != "Standard, easy to print" {
		t.Fatalf("PLA lost its other fields: %+v", pla)
	}
	for key, want := range defaults.Materials {
		if key == "PLA" {
			continue
		}
		if got.Materials[key] != want {
			t.Fatalf("material %q changed: got %+v, want %+v", key, got.Materials[key], want)
		}
	}
	if defaults.Materials["PLA"].Cost != 800 {
		t.Fatalf("MergeConfig modified its defaults argument")
	}
}

func TestMergeConfig_NestedFieldsAndNewEntries(t *testing.T) {
	saved := PartialConfig{
		Electricity: &PartialElectricity{RatePerHour: ptr(8.5)},
		Markup: &PartialMarkup{
			Wholesale: &PartialMarkupRule{MinMargin: ptr(0.2)},
		},
		Materials: map[string]PartialMaterial{
			"PEEK": {Name: ptr("PEEK"), Cost: ptr(12000.0)},
		},
		RushPremiums: map[string]PartialRushPremium{
			"express": {Premium: ptr(0.25)},
		},
	}

	got := MergeConfig(saved, Defaults())

	if got.Electricity.RatePerHour != 8.5 || got.Electricity.FDMConsumption != 0.2 {
		t.Fatalf("unexpected electricity: %+v", got.Electricity)
	}
	if got.Markup.Wholesale.MinMargin != 0.2 || got.Markup.Wholesale.Base != 0.30 {
		t.Fatalf("unexpected wholesale markup: %+v", got.Markup.Wholesale)
	}
	if got.Markup.Retail != Defaults().Markup.Retail {
		t.Fatalf("retail markup changed: %+v", got.Markup.Retail)
	}
	if peek := got.Materials["PEEK"]; peek.Name != "PEEK" || peek.Cost != 12000 {
		t.Fatalf("new material not kept: %+v", peek)
	}
	if express := got.RushPremiums["express"]; express.Premium != 0.25 || express.Days != 3 {
		t.Fatalf("unexpected express premium: %+v", express)
	}
}

func TestMergeConfig_ReplacesDiscountScheduleWholesale(t *testing.T) {
	schedule := []VolumeTier{
		{MinQty: 1, MaxQty: 9, Discount: 0, Label: "small"},
		{MinQty: 10, Discount: 12, Label: "bulk"},
	}

	got := MergeConfig(PartialConfig{VolumeDiscounts: &schedule}, Defaults())

	if !reflect.DeepEqual(got.VolumeDiscounts, schedule) {
		t.Fatalf("schedule = %+v, want %+v", got.VolumeDiscounts, schedule)
	}
	schedule[0].Discount = 99
	if got.VolumeDiscounts[0].Discount != 0 {
		t.Fatalf("merged schedule shares memory with the saved one")
	}
}

func TestMergeJSON_IgnoresUnknownKeysAndReadsOpenEndedTier(t *testing.T) {
	blob := []byte(`{
		"version": "1.0",
		"theme": "dark",
		"materials": {"PLA": {"cost": 999}},
		"labor": {"setupCost": 40, "coffeeBreaks": 3},
		"volumeDiscounts": [
			{"minQty": 1, "maxQty": 4, "discount": 0, "label": "1-4"},
			{"minQty": 5, "maxQty": null, "discount": 10, "label": "5+"}
		]
	}`)

	got, err := MergeJSON(blob, Defaults())
	if err != nil {
		t.Fatalf("MergeJSON: %v", err)
	}

	if got.Version != "1.0" {
		t.Fatalf("Version = %q", got.Version)
	}
	if got.Materials["PLA"].Cost != 999 || got.Materials["ABS"].Cost != 900 {
		t.Fatalf("unexpected materials: PLA=%+v ABS=%+v", got.Materials["PLA"], got.Materials["ABS"])
	}
	if got.Labor.SetupCost != 40 || got.Labor.AutomationFactor != 0.5 {
		t.Fatalf("unexpected labor: %+v", got.Labor)
	}
	if len(got.VolumeDiscounts) != 2 || !got.VolumeDiscounts[1].Unbounded() {
		t.Fatalf("unexpected schedule: %+v", got.VolumeDiscounts)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("merged config should validate: %v", err)
	}
}

func TestMergeJSON_RejectsMalformedBlob(t *testing.T) {
	if _, err := MergeJSON([]byte(`{"materials": [`), Defaults()); err == nil {
		t.Fatalf("expected decode error")
	}
}
