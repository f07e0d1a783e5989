package evaluation

import (
	"time"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// TaskDraft holds the local form state for a new daily task. Branch
// targeting is either "all branches" or an explicit non-empty set; the two
// modes are mutually exclusive.
type TaskDraft struct {
	Description string
	Type        domain.TaskType
	DishID      *int
	DishName    string
	Frequency   domain.TaskFrequency
	StartDate   string
	EndDate     string

	AllBranches bool
	BranchIDs   []int
}

// NewTaskDraft returns a draft with the defaults the form opens with.
func NewTaskDraft() *TaskDraft {
	return &TaskDraft{
		Type:      domain.TaskDishCheck,
		Frequency: domain.FrequencyOnce,
		StartDate: time.Now().Format("2006-01-02"),
	}
}

// SelectAllBranches switches to all-branches mode and clears any
// specific-branch selection.
func (d *TaskDraft) SelectAllBranches() {
	d.AllBranches = true
	d.BranchIDs = nil
}

// SelectBranch adds one branch to the explicit set, leaving all-branches
// mode if it was active.
func (d *TaskDraft) SelectBranch(id int) {
	d.AllBranches = false
	for _, existing := range d.BranchIDs {
		if existing == id {
			return
		}
	}
	d.BranchIDs = append(d.BranchIDs, id)
}

// Title derives the human-readable task title from type and dish. The
// generation is deterministic: equal drafts always produce equal titles.
func (d *TaskDraft) Title() string {
	switch d.Type {
	case domain.TaskDishCheck:
		if d.DishName != "" {
			return "בדיקת מנה: " + d.DishName
		}
		return "בדיקת מנה"
	case domain.TaskRecipeReview:
		if d.DishName != "" {
			return "עבור על מתכון: " + d.DishName
		}
		return "עבור על מתכון"
	}
	return string(d.Type)
}

// Validate checks the submit preconditions: a dish is selected whenever the
// task type requires one, and at least one branch is targeted (all-branches
// mode counts regardless of any stale explicit selection).
func (d *TaskDraft) Validate() []ValidationError {
	var errs []ValidationError
	if !domain.ValidTaskTypes[string(d.Type)] {
		errs = append(errs, ValidationError{Field: "type", Message: "סוג משימה לא מוכר"})
	}
	if !domain.ValidTaskFrequencies[string(d.Frequency)] {
		errs = append(errs, ValidationError{Field: "frequency", Message: "תדירות לא מוכרת"})
	}
	if d.Type.RequiresDish() && d.DishID == nil {
		errs = append(errs, ValidationError{Field: "dish", Message: "יש לבחור מנה לבדיקה"})
	}
	if !d.AllBranches && len(d.BranchIDs) == 0 {
		errs = append(errs, ValidationError{Field: "branches", Message: "יש לבחור לפחות סניף אחד"})
	}
	if _, err := time.Parse("2006-01-02", d.StartDate); err != nil {
		errs = append(errs, ValidationError{Field: "start_date", Message: "תאריך התחלה לא תקין"})
	}
	if d.EndDate != "" {
		if _, err := time.Parse("2006-01-02", d.EndDate); err != nil {
			errs = append(errs, ValidationError{Field: "end_date", Message: "תאריך סיום לא תקין"})
		}
	}
	return errs
}

// TargetBranchIDs resolves the targeted branches at submit time. In
// all-branches mode this is every branch id currently known, so branches
// added since the form opened are included.
func (d *TaskDraft) TargetBranchIDs(branches []domain.Branch) []int {
	if !d.AllBranches {
		return d.BranchIDs
	}
	ids := make([]int, 0, len(branches))
	for _, b := range branches {
		ids = append(ids, b.ID)
	}
	return ids
}
