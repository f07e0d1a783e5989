package domain

type UserRole string

const (
	RoleHQ            UserRole = "hq"
	RoleBranchManager UserRole = "branch_manager"
)

type TaskType string

const (
	TaskDishCheck    TaskType = "DISH_CHECK"
	TaskRecipeReview TaskType = "RECIPE_REVIEW"
)

// RequiresDish reports whether a task of this type must reference a dish.
func (t TaskType) RequiresDish() bool {
	return t == TaskDishCheck
}

type TaskFrequency string

const (
	FrequencyOnce   TaskFrequency = "ONCE"
	FrequencyDaily  TaskFrequency = "DAILY"
	FrequencyWeekly TaskFrequency = "WEEKLY"
)

type AuditStatus string

const (
	AuditInProgress AuditStatus = "in_progress"
	AuditCompleted  AuditStatus = "completed"
	AuditReviewed   AuditStatus = "reviewed"
)

type EvaluationStatus string

const (
	EvaluationDraft      EvaluationStatus = "draft"
	EvaluationInProgress EvaluationStatus = "in_progress"
	EvaluationCompleted  EvaluationStatus = "completed"
	EvaluationReviewed   EvaluationStatus = "reviewed"
	EvaluationApproved   EvaluationStatus = "approved"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[string]bool{
	"DISH_CHECK": true, "RECIPE_REVIEW": true,
}

// ValidTaskFrequencies is the canonical set of accepted frequency strings.
var ValidTaskFrequencies = map[string]bool{
	"ONCE": true, "DAILY": true, "WEEKLY": true,
}
