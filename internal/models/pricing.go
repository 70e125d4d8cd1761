package models

// PricingConfig is the static fare configuration served by
// GET /pricing/config. It mirrors the server's own fare rules so the
// client can compute a fallback total when the dynamic quote endpoint
// is unavailable.
type PricingConfig struct {
	BaseFare           float64                 `json:"baseFare"`
	ClassMultipliers   map[TravelClass]float64 `json:"classMultipliers"`
	ExtraLegroomCharge float64                 `json:"extraLegroomCharge"`
	TaxRate            float64                 `json:"taxRate"`
}

// Multiplier returns the configured multiplier for a travel class,
// defaulting to 1 when the class is missing from the config.
func (c PricingConfig) Multiplier(class TravelClass) float64 {
	if m, ok := c.ClassMultipliers[class]; ok {
		return m
	}
	return 1
}
