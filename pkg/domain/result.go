package domain

// EvaluationCategory is the final verdict on a submission.
type EvaluationCategory string

const (
	CategoryShortlisted EvaluationCategory = "shortlisted"
	CategoryRejected    EvaluationCategory = "rejected"
	CategoryRevisit     EvaluationCategory = "revisit"
)

// Valid returns true for the three verdicts the API is documented to send.
func (c EvaluationCategory) Valid() bool {
	switch c {
	case CategoryShortlisted, CategoryRejected, CategoryRevisit:
		return true
	}
	return false
}

// EvaluationResult is the published feedback for one submission.
type EvaluationResult struct {
	Category        EvaluationCategory `json:"evaluation_category"`
	OverallReason   string             `json:"overall_reason"`
	Strengths       []string           `json:"strengths"`
	Improvement     []string           `json:"improvement"`
	ActionableSteps []string           `json:"actionable_steps"`
	Summary         []string           `json:"summary"`
}
