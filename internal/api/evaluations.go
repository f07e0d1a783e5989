package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// Manager evaluations are restricted server-side to a handful of HQ
// evaluators. Earlier clients duplicated that allow-list locally; here the
// backend's 401/403 is the only authority and maps to ErrNotAuthorized.

// EvaluationFilter narrows evaluation listings.
type EvaluationFilter struct {
	BranchID  int
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// EvaluationCreate is the payload for a new manager evaluation.
type EvaluationCreate struct {
	BranchID        int                         `json:"branch_id"`
	ManagerName     string                      `json:"manager_name"`
	EvaluationDate  string                      `json:"evaluation_date"`
	OverallRating   *float64                    `json:"overall_rating,omitempty"`
	GeneralComments string                      `json:"general_comments,omitempty"`
	Categories      []domain.EvaluationCategory `json:"categories"`
}

// EvaluationUpdate is a partial update; nil fields are left unchanged.
type EvaluationUpdate struct {
	GeneralComments *string                  `json:"general_comments,omitempty"`
	AISummary       *string                  `json:"ai_summary,omitempty"`
	Status          *domain.EvaluationStatus `json:"status,omitempty"`
}

// ListEvaluations returns evaluation summaries, newest first.
func (c *Client) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]domain.ManagerEvaluation, error) {
	query := url.Values{}
	if filter.BranchID > 0 {
		query.Set("branch_id", strconv.Itoa(filter.BranchID))
	}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("end_date", filter.EndDate)
	}
	var evals []domain.ManagerEvaluation
	if err := c.get(ctx, "/manager-evaluations/", query, &evals); err != nil {
		return nil, err
	}
	return evals, nil
}

// GetEvaluation returns one evaluation with its categories.
func (c *Client) GetEvaluation(ctx context.Context, id int) (*domain.ManagerEvaluation, error) {
	var eval domain.ManagerEvaluation
	if err := c.get(ctx, fmt.Sprintf("/manager-evaluations/%d", id), nil, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// CreateEvaluation creates a new evaluation. Every category rating must be
// within bounds; the check mirrors the backend validation so the form can
// abort before the request leaves the machine.
func (c *Client) CreateEvaluation(ctx context.Context, req EvaluationCreate) (*domain.ManagerEvaluation, error) {
	for _, cat := range req.Categories {
		if !domain.ValidEvalRating(cat.Rating) {
			return nil, fmt.Errorf("%w: rating for %q must be between %d and %d",
				ErrValidation, cat.Name, domain.EvalRatingMin, domain.EvalRatingMax)
		}
	}
	var eval domain.ManagerEvaluation
	if err := c.post(ctx, "/manager-evaluations/", req, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// UpdateEvaluation applies a partial update.
func (c *Client) UpdateEvaluation(ctx context.Context, id int, req EvaluationUpdate) (*domain.ManagerEvaluation, error) {
	var eval domain.ManagerEvaluation
	if err := c.put(ctx, fmt.Sprintf("/manager-evaluations/%d", id), req, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// DeleteEvaluation removes an evaluation.
func (c *Client) DeleteEvaluation(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/manager-evaluations/%d", id))
}

// GenerateEvaluationSummary asks the backend to produce the AI summary and
// returns the refreshed evaluation carrying it.
func (c *Client) GenerateEvaluationSummary(ctx context.Context, id int) (*domain.ManagerEvaluation, error) {
	var eval domain.ManagerEvaluation
	path := fmt.Sprintf("/manager-evaluations/%d/generate-summary", id)
	if err := c.post(ctx, path, nil, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
