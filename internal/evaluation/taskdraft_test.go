package evaluation

import (
	"testing"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validDishCheckDraft() *TaskDraft {
	d := NewTaskDraft()
	d.DishID = intPtr(4)
	d.DishName = "שקשוקה"
	d.SelectBranch(1)
	return d
}

func TestTaskDraft_Valid(t *testing.T) {
	assert.Empty(t, validDishCheckDraft().Validate())
}

func TestTaskDraft_DishRequiredForDishCheck(t *testing.T) {
	d := validDishCheckDraft()
	d.DishID = nil
	errs := d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "dish", errs[0].Field)

	// Branch selection does not rescue a missing dish.
	d.SelectAllBranches()
	errs = d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "dish", errs[0].Field)
}

func TestTaskDraft_RecipeReviewWithoutDish(t *testing.T) {
	d := NewTaskDraft()
	d.Type = domain.TaskRecipeReview
	d.SelectBranch(2)
	assert.Empty(t, d.Validate())
}

func TestTaskDraft_RequiresBranchTarget(t *testing.T) {
	d := NewTaskDraft()
	d.DishID = intPtr(1)
	errs := d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "branches", errs[0].Field)
}

func TestTaskDraft_SelectAllClearsSpecificSelection(t *testing.T) {
	d := validDishCheckDraft()
	d.SelectBranch(2)
	require.Len(t, d.BranchIDs, 2)

	d.SelectAllBranches()
	assert.True(t, d.AllBranches)
	assert.Empty(t, d.BranchIDs)
	assert.Empty(t, d.Validate())
}

func TestTaskDraft_SelectBranchLeavesAllMode(t *testing.T) {
	d := validDishCheckDraft()
	d.SelectAllBranches()
	d.SelectBranch(5)
	assert.False(t, d.AllBranches)
	assert.Equal(t, []int{5}, d.BranchIDs)
}

func TestTaskDraft_SelectBranchDeduplicates(t *testing.T) {
	d := NewTaskDraft()
	d.SelectBranch(3)
	d.SelectBranch(3)
	assert.Equal(t, []int{3}, d.BranchIDs)
}

func TestTaskDraft_AllModeTargetsEveryBranchAtSubmit(t *testing.T) {
	d := validDishCheckDraft()
	d.SelectAllBranches()
	branches := []domain.Branch{{ID: 1}, {ID: 2}, {ID: 7}}
	assert.Equal(t, []int{1, 2, 7}, d.TargetBranchIDs(branches))
}

func TestTaskDraft_ExplicitModeIgnoresBranchList(t *testing.T) {
	d := validDishCheckDraft()
	branches := []domain.Branch{{ID: 1}, {ID: 2}, {ID: 7}}
	assert.Equal(t, []int{1}, d.TargetBranchIDs(branches))
}

func TestTaskDraft_TitleGeneration(t *testing.T) {
	cases := []struct {
		taskType domain.TaskType
		dishName string
		want     string
	}{
		{domain.TaskDishCheck, "שקשוקה", "בדיקת מנה: שקשוקה"},
		{domain.TaskDishCheck, "", "בדיקת מנה"},
		{domain.TaskRecipeReview, "פסטה", "עבור על מתכון: פסטה"},
		{domain.TaskRecipeReview, "", "עבור על מתכון"},
	}
	for _, tc := range cases {
		d := NewTaskDraft()
		d.Type = tc.taskType
		d.DishName = tc.dishName
		assert.Equal(t, tc.want, d.Title())
		// Deterministic: repeated generation is identical.
		assert.Equal(t, d.Title(), d.Title())
	}
}

func TestTaskDraft_InvalidDates(t *testing.T) {
	d := validDishCheckDraft()
	d.StartDate = "15/06/2025"
	d.EndDate = "bad"
	errs := d.Validate()
	assert.Len(t, errs, 2)
}
