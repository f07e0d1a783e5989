package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

func TestHumanDate(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Today", HumanDate(now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1)))

	old := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Mar 9, 2025", HumanDate(old))
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "Today", ISODate(time.Now().Format("2006-01-02")))
	// Unparseable values pass through.
	assert.Equal(t, "not-a-date", ISODate("not-a-date"))
	assert.Equal(t, "", ISODate(""))
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "shalom", Truncate("shalom", 10))
	assert.Equal(t, "שלום", Truncate("שלום", 4))
	assert.Equal(t, "שלו…", Truncate("שלום רב", 4))
	assert.Equal(t, "…", Truncate("שלום", 1))
}

func TestRatingFormatting(t *testing.T) {
	assert.Contains(t, Rating(7), "7/10")
	assert.Contains(t, Rating(7.5), "7.5/10")
}

func TestStatusPillsCoverAllValues(t *testing.T) {
	for _, s := range []domain.AuditStatus{domain.AuditInProgress, domain.AuditCompleted, domain.AuditReviewed} {
		assert.NotEmpty(t, AuditStatusPill(s))
	}
	for _, s := range []domain.EvaluationStatus{
		domain.EvaluationDraft, domain.EvaluationInProgress, domain.EvaluationCompleted,
		domain.EvaluationReviewed, domain.EvaluationApproved,
	} {
		assert.NotEmpty(t, EvaluationStatusPill(s))
	}
}

func TestHeaderUppercasesAndUnderlines(t *testing.T) {
	out := Header("Recent Checks")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "RECENT CHECKS")
}
