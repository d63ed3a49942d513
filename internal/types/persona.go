// Package types provides type definitions for structured data used throughout the concept-panel system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Attribute levels used by the four ordinal persona traits.
const (
	LevelLow      = "Low"
	LevelMedium   = "Medium"
	LevelHigh     = "High"
	LevelVeryHigh = "Very High"
)

// AttributeLevels lists the allowed values for the ordinal persona traits,
// in ascending order.
var AttributeLevels = []string{LevelLow, LevelMedium, LevelHigh, LevelVeryHigh}

// Persona represents a synthetic consumer profile. The JSON field names match
// the wire format the completion provider is prompted to produce, including
// the historical lowercase "pricesensitivity" key.
type Persona struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Age                    int      `json:"age"`
	Gender                 string   `json:"gender"`
	Location               string   `json:"location"`
	Income                 string   `json:"income"`
	Education              string   `json:"education"`
	Lifestyle              string   `json:"lifestyle"`
	Interests              []string `json:"interests"`
	ShoppingBehavior       string   `json:"shoppingBehavior"`
	TechSavviness          string   `json:"techSavviness"`
	EnvironmentalAwareness string   `json:"environmentalAwareness"`
	BrandLoyalty           string   `json:"brandLoyalty"`
	PriceSensitivity       string   `json:"pricesensitivity"`
}

// HasRequiredFields reports whether the persona carries the minimum set of
// fields a downstream analysis can rely on. Provider output that is missing
// any of these is dropped rather than repaired.
func (p Persona) HasRequiredFields() bool {
	return p.ID != "" && p.Name != "" && p.Age != 0 && p.Gender != ""
}
