package types

// UploadedFile is a research document attached to a generation request.
// Only an excerpt of Content is ever forwarded to the completion provider.
type UploadedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// DemographicInput describes the target population for persona generation.
// The five category lists are required; the numeric min/max pairs, when set,
// override the corresponding range lists.
type DemographicInput struct {
	AgeRanges       []string       `json:"ageRanges" validate:"required,min=1"`
	Genders         []string       `json:"genders" validate:"required,min=1"`
	Locations       []string       `json:"locations" validate:"required,min=1"`
	IncomeRanges    []string       `json:"incomeRanges" validate:"required,min=1"`
	EducationLevels []string       `json:"educationLevels" validate:"required,min=1"`
	ConsumerCount   int            `json:"consumerCount,omitempty"`
	AgeMin          int            `json:"ageMin,omitempty"`
	AgeMax          int            `json:"ageMax,omitempty"`
	IncomeMin       int            `json:"incomeMin,omitempty"`
	IncomeMax       int            `json:"incomeMax,omitempty"`
	AdditionalCtx   string         `json:"additionalContext,omitempty"`
	UploadedFiles   []UploadedFile `json:"uploadedFiles,omitempty"`
}
