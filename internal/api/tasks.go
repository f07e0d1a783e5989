package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// TaskCreate is the payload for a new daily task. The backend expands it
// into one assignment per listed branch.
type TaskCreate struct {
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Type        domain.TaskType      `json:"task_type"`
	DishID      *int                 `json:"dish_id,omitempty"`
	Frequency   domain.TaskFrequency `json:"frequency"`
	StartDate   string               `json:"start_date"`
	EndDate     *string              `json:"end_date,omitempty"`
	BranchIDs   []int                `json:"branch_ids"`
}

// CreateTask creates a task definition and its initial assignments.
func (c *Client) CreateTask(ctx context.Context, req TaskCreate) (*domain.DailyTask, error) {
	if len(req.BranchIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one branch must be targeted", ErrValidation)
	}
	var task domain.DailyTask
	if err := c.post(ctx, "/tasks/", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns task definitions. Pass nil for active to list all.
func (c *Client) ListTasks(ctx context.Context, active *bool) ([]domain.DailyTask, error) {
	query := url.Values{}
	if active != nil {
		query.Set("is_active", strconv.FormatBool(*active))
	}
	var tasks []domain.DailyTask
	if err := c.get(ctx, "/tasks/", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	Date      string // YYYY-MM-DD
	BranchID  int
	Completed *bool
}

// ListAssignments returns task assignments matching the filter.
func (c *Client) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]domain.TaskAssignment, error) {
	query := url.Values{}
	if filter.Date != "" {
		query.Set("task_date", filter.Date)
	}
	if filter.BranchID > 0 {
		query.Set("branch_id", strconv.Itoa(filter.BranchID))
	}
	if filter.Completed != nil {
		query.Set("is_completed", strconv.FormatBool(*filter.Completed))
	}
	var assignments []domain.TaskAssignment
	if err := c.get(ctx, "/tasks/assignments", query, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// MyTasks returns the caller's branch assignments for one date
// (today when date is empty).
func (c *Client) MyTasks(ctx context.Context, date string) ([]domain.TaskAssignment, error) {
	query := url.Values{}
	if date != "" {
		query.Set("task_date", date)
	}
	var assignments []domain.TaskAssignment
	if err := c.get(ctx, "/tasks/my-tasks", query, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

type completeTaskRequest struct {
	Notes   string `json:"notes,omitempty"`
	CheckID *int   `json:"check_id,omitempty"`
}

// CompleteAssignment marks one assignment done, optionally attaching notes
// and the dish check that satisfied it.
func (c *Client) CompleteAssignment(ctx context.Context, assignmentID int, notes string, checkID *int) error {
	path := fmt.Sprintf("/tasks/assignments/%d/complete", assignmentID)
	return c.post(ctx, path, completeTaskRequest{Notes: notes, CheckID: checkID}, nil)
}

// UncompleteAssignment reverts a completion.
func (c *Client) UncompleteAssignment(ctx context.Context, assignmentID int) error {
	return c.delete(ctx, fmt.Sprintf("/tasks/assignments/%d/complete", assignmentID))
}
