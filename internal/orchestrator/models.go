package orchestrator

// RotationPolicy selects which model serves each (profile batch, concept)
// analysis call. Rotating deterministically spreads load across models and
// keeps a single model's outage from sinking a whole run; the fallback gets
// one retry when the rotated model fails.
type RotationPolicy struct {
	Models   []string
	Fallback string
}

// Pick returns the model for the call identified by the batch's starting
// profile index and the concept's position.
func (p RotationPolicy) Pick(batchStart, conceptIndex int) string {
	if len(p.Models) == 0 {
		return p.Fallback
	}
	return p.Models[(batchStart+conceptIndex)%len(p.Models)]
}
