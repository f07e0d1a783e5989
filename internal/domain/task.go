package domain

import "time"

// DailyTask is a task definition created at HQ. Depending on frequency it
// expands into one TaskAssignment per targeted branch per occurrence.
type DailyTask struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Type        TaskType      `json:"task_type"`
	DishID      *int          `json:"dish_id"`
	DishName    string        `json:"dish_name,omitempty"`
	Frequency   TaskFrequency `json:"frequency"`
	StartDate   string        `json:"start_date"`
	EndDate     *string       `json:"end_date"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TaskAssignment is a single branch-scoped occurrence of a task.
type TaskAssignment struct {
	ID              int        `json:"id"`
	TaskID          int        `json:"task_id"`
	TaskTitle       string     `json:"task_title"`
	TaskDescription string     `json:"task_description,omitempty"`
	TaskType        TaskType   `json:"task_type"`
	DishName        string     `json:"dish_name,omitempty"`
	BranchID        int        `json:"branch_id"`
	BranchName      string     `json:"branch_name"`
	TaskDate        string     `json:"task_date"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	Notes           string     `json:"notes,omitempty"`
}
