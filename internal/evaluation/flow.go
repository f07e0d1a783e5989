package evaluation

import (
	"errors"
	"strings"
	"time"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// FlowState identifies where an evaluation form is in its lifecycle.
type FlowState string

const (
	// StateEditing: local form state only, nothing saved remotely.
	StateEditing FlowState = "editing"
	// StateAwaitingSummary: the evaluation exists remotely and the
	// server-generated summary plus overall score are on screen for review.
	StateAwaitingSummary FlowState = "saved-awaiting-summary"
	// StateFinalized: the evaluation was confirmed and marked completed.
	StateFinalized FlowState = "finalized"
)

var (
	// ErrNotEditing is returned when a submit-phase operation runs after
	// the evaluation has already been created remotely.
	ErrNotEditing = errors.New("evaluation already submitted")
	// ErrNotAwaitingSummary is returned when finalize runs out of order.
	ErrNotAwaitingSummary = errors.New("evaluation has no pending summary")
	// ErrNoRollback is returned on any attempt to cancel after the first
	// submit; the remote record exists and the flow cannot go backwards.
	ErrNoRollback = errors.New("cannot cancel after submit")
)

// CategoryDraft holds the editable state for one registered category.
type CategoryDraft struct {
	Template CategoryTemplate
	Rating   float64
	Comments string // blob carrying the encoded sub-category answers
}

// Draft holds the local form state for a new manager evaluation.
type Draft struct {
	BranchID        int
	BranchName      string
	ManagerName     string
	EvaluationDate  string
	Categories      []CategoryDraft
	GeneralComments string
}

// Flow drives the evaluation form lifecycle:
//
//	editing -> saved-awaiting-summary -> finalized
//
// There is no rollback transition. Cancel is only legal while editing and
// simply discards local state; after submit the remote record is the truth.
type Flow struct {
	state  FlowState
	draft  Draft
	result *domain.ManagerEvaluation
}

// NewFlow starts a fresh form seeded from the category registry.
func NewFlow() *Flow {
	d := Draft{
		EvaluationDate: time.Now().Format("2006-01-02"),
		Categories:     make([]CategoryDraft, 0, len(Categories)),
	}
	for _, t := range Categories {
		d.Categories = append(d.Categories, CategoryDraft{
			Template: t,
			Rating:   t.DefaultRating,
		})
	}
	return &Flow{state: StateEditing, draft: d}
}

func (f *Flow) State() FlowState { return f.state }

// Draft returns the mutable form state. Only meaningful while editing.
func (f *Flow) Draft() *Draft { return &f.draft }

// Result returns the remotely created evaluation, nil before submit.
func (f *Flow) Result() *domain.ManagerEvaluation { return f.result }

// ValidateForSubmit checks the submit preconditions: a branch is selected,
// the manager name is non-empty, and every registered category rating is
// within [0,10]. All violations are reported, not just the first.
func (f *Flow) ValidateForSubmit() []ValidationError {
	var errs []ValidationError
	if f.draft.BranchID == 0 {
		errs = append(errs, ValidationError{Field: "branch", Message: "יש לבחור סניף"})
	}
	if strings.TrimSpace(f.draft.ManagerName) == "" {
		errs = append(errs, ValidationError{Field: "manager", Message: "יש להזין שם מנהל"})
	}
	for _, c := range f.draft.Categories {
		if !domain.ValidEvalRating(c.Rating) {
			errs = append(errs, ValidationError{
				Field:   c.Template.Name,
				Message: "הדירוג חייב להיות בין 0 ל-10",
			})
		}
	}
	return errs
}

// CategoryPayload flattens the drafts into the wire representation.
func (d *Draft) CategoryPayload() []domain.EvaluationCategory {
	out := make([]domain.EvaluationCategory, 0, len(d.Categories))
	for _, c := range d.Categories {
		out = append(out, domain.EvaluationCategory{
			Name:     c.Template.Name,
			Rating:   c.Rating,
			Comments: c.Comments,
		})
	}
	return out
}

// MarkSubmitted records the remotely created evaluation (carrying the
// generated summary and overall score) and advances to awaiting-summary.
func (f *Flow) MarkSubmitted(ev *domain.ManagerEvaluation) error {
	if f.state != StateEditing {
		return ErrNotEditing
	}
	f.result = ev
	f.state = StateAwaitingSummary
	return nil
}

// Finalize confirms the reviewed summary and returns the text to store:
// the server summary, with the evaluator's extra notes appended when
// present. Advances to finalized.
func (f *Flow) Finalize(extraNotes string) (string, error) {
	if f.state != StateAwaitingSummary {
		return "", ErrNotAwaitingSummary
	}
	summary := f.result.AISummary
	if notes := strings.TrimSpace(extraNotes); notes != "" {
		if summary != "" {
			summary += "\n\n"
		}
		summary += notes
	}
	f.state = StateFinalized
	return summary, nil
}

// Cancel discards local state. Legal only before the first submit.
func (f *Flow) Cancel() error {
	if f.state != StateEditing {
		return ErrNoRollback
	}
	f.draft = Draft{}
	return nil
}
