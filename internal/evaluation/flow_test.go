package evaluation

import (
	"testing"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlow() *Flow {
	f := NewFlow()
	d := f.Draft()
	d.BranchID = 3
	d.BranchName = "רמת החייל"
	d.ManagerName = "דנה לוי"
	for i := range d.Categories {
		d.Categories[i].Rating = 8
	}
	return f
}

func submittedEvaluation() *domain.ManagerEvaluation {
	return &domain.ManagerEvaluation{
		ID:            17,
		BranchID:      3,
		ManagerName:   "דנה לוי",
		OverallRating: 8,
		AISummary:     "סיכום אוטומטי",
		Status:        domain.EvaluationInProgress,
	}
}

func TestNewFlow_SeedsRegistryDefaults(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, StateEditing, f.State())
	require.Len(t, f.Draft().Categories, len(Categories))
	for i, c := range f.Draft().Categories {
		assert.Equal(t, Categories[i].Name, c.Template.Name)
		assert.Equal(t, Categories[i].DefaultRating, c.Rating)
	}
}

func TestValidateForSubmit_Valid(t *testing.T) {
	assert.Empty(t, validFlow().ValidateForSubmit())
}

func TestValidateForSubmit_MissingBranch(t *testing.T) {
	f := validFlow()
	f.Draft().BranchID = 0
	errs := f.ValidateForSubmit()
	require.Len(t, errs, 1)
	assert.Equal(t, "branch", errs[0].Field)
}

func TestValidateForSubmit_BlankManagerName(t *testing.T) {
	f := validFlow()
	f.Draft().ManagerName = "   "
	errs := f.ValidateForSubmit()
	require.Len(t, errs, 1)
	assert.Equal(t, "manager", errs[0].Field)
}

func TestValidateForSubmit_RatingBounds(t *testing.T) {
	cases := []struct {
		rating float64
		ok     bool
	}{
		{-0.5, false},
		{0, true},
		{5.5, true},
		{10, true},
		{10.1, false},
		{11, false},
	}
	for _, tc := range cases {
		f := validFlow()
		f.Draft().Categories[0].Rating = tc.rating
		errs := f.ValidateForSubmit()
		if tc.ok {
			assert.Empty(t, errs, "rating=%v", tc.rating)
		} else {
			require.Len(t, errs, 1, "rating=%v", tc.rating)
			assert.Equal(t, Categories[0].Name, errs[0].Field)
		}
	}
}

func TestValidateForSubmit_ReportsEveryViolation(t *testing.T) {
	f := NewFlow()
	f.Draft().Categories[0].Rating = -1
	f.Draft().Categories[1].Rating = 12
	errs := f.ValidateForSubmit()
	// branch + manager + two ratings
	assert.Len(t, errs, 4)
}

func TestFlow_SubmitThenFinalize(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.MarkSubmitted(submittedEvaluation()))
	assert.Equal(t, StateAwaitingSummary, f.State())

	summary, err := f.Finalize("הערות נוספות")
	require.NoError(t, err)
	assert.Equal(t, "סיכום אוטומטי\n\nהערות נוספות", summary)
	assert.Equal(t, StateFinalized, f.State())
}

func TestFlow_FinalizeWithoutNotesKeepsSummary(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.MarkSubmitted(submittedEvaluation()))
	summary, err := f.Finalize("  ")
	require.NoError(t, err)
	assert.Equal(t, "סיכום אוטומטי", summary)
}

func TestFlow_DoubleSubmitRejected(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.MarkSubmitted(submittedEvaluation()))
	assert.ErrorIs(t, f.MarkSubmitted(submittedEvaluation()), ErrNotEditing)
}

func TestFlow_FinalizeBeforeSubmitRejected(t *testing.T) {
	f := validFlow()
	_, err := f.Finalize("")
	assert.ErrorIs(t, err, ErrNotAwaitingSummary)
}

func TestFlow_NoTransitionOutOfFinalized(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.MarkSubmitted(submittedEvaluation()))
	_, err := f.Finalize("")
	require.NoError(t, err)

	_, err = f.Finalize("שוב")
	assert.ErrorIs(t, err, ErrNotAwaitingSummary)
	assert.ErrorIs(t, f.Cancel(), ErrNoRollback)
}

func TestFlow_CancelWhileEditingDiscards(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.Cancel())
	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, "", f.Draft().ManagerName)
	assert.Empty(t, f.Draft().Categories)
}

func TestFlow_CancelAfterSubmitRejected(t *testing.T) {
	f := validFlow()
	require.NoError(t, f.MarkSubmitted(submittedEvaluation()))
	assert.ErrorIs(t, f.Cancel(), ErrNoRollback)
}

func TestDraft_CategoryPayload(t *testing.T) {
	f := validFlow()
	d := f.Draft()
	d.Categories[1].Comments = SetSubComment("", "מוטיבציה", "טוב")
	payload := d.CategoryPayload()
	require.Len(t, payload, len(Categories))
	assert.Equal(t, "ניהול אנשים", payload[1].Name)
	assert.Equal(t, 8.0, payload[1].Rating)
	assert.Equal(t, "מוטיבציה: טוב", payload[1].Comments)
}
