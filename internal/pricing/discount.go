package pricing

const retailDiscountLabel = "Retail (No volume discount)"

// VolumeDiscountFor returns the discount tier that applies to qty under
// policy. Retail never receives a volume discount and does not consult the
// schedule at all. A wholesale quantity outside every tier gets the last
// tier of the schedule.
func (c Config) VolumeDiscountFor(qty int, policy Policy) VolumeTier {
	if policy != PolicyWholesale {
		return VolumeTier{Label: retailDiscountLabel}
	}
	for _, tier := range c.VolumeDiscounts {
		if tier.Contains(qty) {
			return tier
		}
	}
	if n := len(c.VolumeDiscounts); n > 0 {
		return c.VolumeDiscounts[n-1]
	}
	return VolumeTier{Label: "No volume discount"}
}
