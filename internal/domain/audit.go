package domain

import "time"

// AuditCategory is one checklist entry within a sanitation audit.
// Deductions are points taken off the branch's starting score.
type AuditCategory struct {
	ID             int      `json:"id,omitempty"`
	CategoryName   string   `json:"category_name"`
	CategoryKey    string   `json:"category_key"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes,omitempty"`
	ScoreDeduction float64  `json:"score_deduction"`
	CheckPerformed *bool    `json:"check_performed,omitempty"`
	CheckName      string   `json:"check_name,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty"`
}

// SanitationAudit is a checklist-based hygiene inspection of one branch.
type SanitationAudit struct {
	ID              int             `json:"id"`
	BranchID        int             `json:"branch_id"`
	BranchName      string          `json:"branch_name,omitempty"`
	AuditDate       time.Time       `json:"audit_date"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         *time.Time      `json:"end_time"`
	AuditorName     string          `json:"auditor_name"`
	AccompanistName string          `json:"accompanist_name,omitempty"`
	GeneralNotes    string          `json:"general_notes,omitempty"`
	EquipmentIssues string          `json:"equipment_issues,omitempty"`
	TotalScore      float64         `json:"total_score"`
	TotalDeductions float64         `json:"total_deductions"`
	Status          AuditStatus     `json:"status"`
	Categories      []AuditCategory `json:"categories,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DefaultAuditCategories returns the standard checklist a new audit opens
// with. Every category starts clean; the auditor records deductions as the
// walkthrough progresses.
func DefaultAuditCategories() []AuditCategory {
	names := []struct{ key, name string }{
		{"kitchen_cleanliness", "ניקיון מטבח"},
		{"storage_refrigeration", "אחסון וקירור"},
		{"staff_hygiene", "היגיינת עובדים"},
		{"pest_control", "הדברה"},
		{"equipment_maintenance", "תחזוקת ציוד"},
		{"food_safety", "בטיחות מזון"},
	}
	cats := make([]AuditCategory, 0, len(names))
	for _, n := range names {
		cats = append(cats, AuditCategory{
			CategoryKey:  n.key,
			CategoryName: n.name,
			Status:       "תקין",
		})
	}
	return cats
}

// AuditInsights is the server-generated summary for an audit or branch.
type AuditInsights struct {
	AuditID         *int      `json:"audit_id"`
	BranchID        int       `json:"branch_id"`
	Summary         string    `json:"summary"`
	CriticalIssues  []string  `json:"critical_issues"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}
