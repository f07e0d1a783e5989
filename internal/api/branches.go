package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// ListBranches returns every branch in the chain.
func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := c.get(ctx, "/branches/", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// CreateBranch registers a new branch.
func (c *Client) CreateBranch(ctx context.Context, name, location string) (*domain.Branch, error) {
	body := map[string]string{"name": name}
	if location != "" {
		body["location"] = location
	}
	var branch domain.Branch
	if err := c.post(ctx, "/branches/", body, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListDishes returns the menu items subject to inspection.
func (c *Client) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	var dishes []domain.Dish
	if err := c.get(ctx, "/dishes/", nil, &dishes); err != nil {
		return nil, err
	}
	return dishes, nil
}

// ListChefs returns chefs, optionally scoped to one branch.
func (c *Client) ListChefs(ctx context.Context, branchID int) ([]domain.Chef, error) {
	query := url.Values{}
	if branchID > 0 {
		query.Set("branch_id", strconv.Itoa(branchID))
	}
	var chefs []domain.Chef
	if err := c.get(ctx, "/chefs/", query, &chefs); err != nil {
		return nil, err
	}
	return chefs, nil
}

// CheckFilter narrows dish check listings.
type CheckFilter struct {
	BranchID int
	DishID   int
	Date     string // YYYY-MM-DD
}

// ListChecks returns dish checks matching the filter, newest first.
func (c *Client) ListChecks(ctx context.Context, filter CheckFilter) ([]domain.DishCheck, error) {
	query := url.Values{}
	if filter.BranchID > 0 {
		query.Set("branch_id", strconv.Itoa(filter.BranchID))
	}
	if filter.DishID > 0 {
		query.Set("dish_id", strconv.Itoa(filter.DishID))
	}
	if filter.Date != "" {
		query.Set("check_date", filter.Date)
	}
	var checks []domain.DishCheck
	if err := c.get(ctx, "/checks/", query, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// CheckCreate is the payload for a new dish check.
type CheckCreate struct {
	BranchID       int     `json:"branch_id"`
	DishID         int     `json:"dish_id"`
	ChefID         *int    `json:"chef_id,omitempty"`
	ChefNameManual string  `json:"chef_name_manual,omitempty"`
	Rating         float64 `json:"rating"`
	Comments       string  `json:"comments,omitempty"`
}

// CreateCheck records a new dish check.
func (c *Client) CreateCheck(ctx context.Context, req CheckCreate) (*domain.DishCheck, error) {
	if !domain.ValidCheckRating(req.Rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d",
			ErrValidation, domain.CheckRatingMin, domain.CheckRatingMax)
	}
	var check domain.DishCheck
	if err := c.post(ctx, "/checks/", req, &check); err != nil {
		return nil, err
	}
	return &check, nil
}
