package domain

import "time"

// Evaluation category ratings are on a 0-10 scale.
const (
	EvalRatingMin = 0
	EvalRatingMax = 10
)

// EvaluationCategory is one rated dimension of a manager evaluation.
// Comments is a single free-text blob; sub-category answers are embedded
// in it as "<name>: <text>" lines (see the evaluation package codec).
type EvaluationCategory struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"category_name"`
	Rating   float64 `json:"rating"`
	Comments string  `json:"comments,omitempty"`
}

// ManagerEvaluation is a periodic scored review of a branch manager.
type ManagerEvaluation struct {
	ID              int                  `json:"id"`
	BranchID        int                  `json:"branch_id"`
	BranchName      string               `json:"branch_name,omitempty"`
	ManagerName     string               `json:"manager_name"`
	EvaluationDate  string               `json:"evaluation_date"`
	OverallRating   float64              `json:"overall_rating"`
	GeneralComments string               `json:"general_comments,omitempty"`
	AISummary       string               `json:"ai_summary,omitempty"`
	Status          EvaluationStatus     `json:"status"`
	Categories      []EvaluationCategory `json:"categories"`
	CreatedBy       int                  `json:"created_by,omitempty"`
	CreatedByName   string               `json:"created_by_name,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ValidEvalRating reports whether r is an acceptable category rating.
func ValidEvalRating(r float64) bool {
	return r >= EvalRatingMin && r <= EvalRatingMax
}

// evaluationTransitions lists the status changes the client may request.
// Everything else is rendered read-only.
var evaluationTransitions = map[EvaluationStatus][]EvaluationStatus{
	EvaluationDraft:      {EvaluationInProgress},
	EvaluationInProgress: {EvaluationCompleted},
}

// CanTransition reports whether the client is allowed to move an
// evaluation from one status to another.
func CanTransition(from, to EvaluationStatus) bool {
	for _, next := range evaluationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
