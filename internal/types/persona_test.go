package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersona_WireFormat(t *testing.T) {
	p := Persona{
		ID:                     "persona_001",
		Name:                   "Elena Vasquez",
		Age:                    31,
		Gender:                 "Female",
		Location:               "Urban",
		Income:                 "$50,000-$75,000",
		Education:              "Bachelor's Degree",
		Lifestyle:              "Tech-savvy urban professional",
		Interests:              []string{"Technology and gadgets", "Travel and exploration"},
		ShoppingBehavior:       "Researches extensively before purchasing",
		TechSavviness:          LevelVeryHigh,
		EnvironmentalAwareness: LevelMedium,
		BrandLoyalty:           LevelLow,
		PriceSensitivity:       LevelHigh,
	}

	jsonBytes, err := json.Marshal(p)
	require.NoError(t, err)

	// The provider prompt and the review UI both rely on these exact keys,
	// including the historical lowercase price sensitivity key.
	assert.Contains(t, string(jsonBytes), `"techSavviness":"Very High"`)
	assert.Contains(t, string(jsonBytes), `"environmentalAwareness":"Medium"`)
	assert.Contains(t, string(jsonBytes), `"brandLoyalty":"Low"`)
	assert.Contains(t, string(jsonBytes), `"pricesensitivity":"High"`)
	assert.Contains(t, string(jsonBytes), `"shoppingBehavior":"Researches extensively before purchasing"`)

	var back Persona
	require.NoError(t, json.Unmarshal(jsonBytes, &back))
	assert.Equal(t, p, back)
}

func TestPersona_HasRequiredFields(t *testing.T) {
	base := Persona{ID: "p1", Name: "Maya Chen", Age: 42, Gender: "Female"}

	tests := []struct {
		name   string
		mutate func(*Persona)
		want   bool
	}{
		{"complete", func(*Persona) {}, true},
		{"missing id", func(p *Persona) { p.ID = "" }, false},
		{"missing name", func(p *Persona) { p.Name = "" }, false},
		{"zero age", func(p *Persona) { p.Age = 0 }, false},
		{"missing gender", func(p *Persona) { p.Gender = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			assert.Equal(t, tt.want, p.HasRequiredFields())
		})
	}
}
