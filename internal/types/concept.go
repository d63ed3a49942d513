package types

// Concept represents a product concept submitted for evaluation.
// Concepts are immutable once submitted.
type Concept struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
