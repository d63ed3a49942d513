package types

// PreferenceRecord captures one persona's reaction to one concept.
// Scores are on a 1-10 scale; reasoning is a short first-person explanation.
type PreferenceRecord struct {
	ProfileID       string `json:"profileId"`
	ConceptID       string `json:"conceptId"`
	Preference      int    `json:"preference"`
	Innovativeness  int    `json:"innovativeness"`
	Differentiation int    `json:"differentiation"`
	Reasoning       string `json:"reasoning"`
}

// AnalysisSummary is derived from a complete PreferenceRecord set and is
// never stored independently of it.
type AnalysisSummary struct {
	AveragePreference      float64  `json:"averagePreference"`
	AverageInnovativeness  float64  `json:"averageInnovativeness"`
	AverageDifferentiation float64  `json:"averageDifferentiation"`
	TopPerformingConcept   string   `json:"topPerformingConcept"`
	Insights               []string `json:"insights"`
}

// AnalysisResult is the terminal payload of an analysis job.
type AnalysisResult struct {
	Analyses      []PreferenceRecord `json:"analyses"`
	Summary       *AnalysisSummary   `json:"summary"`
	TotalAnalyses int                `json:"totalAnalyses"`
}

// ProfileSet is the terminal payload of a profile generation job.
type ProfileSet struct {
	Profiles []Persona `json:"profiles"`
	Count    int       `json:"count"`
}
