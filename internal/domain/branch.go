package domain

import "time"

// Branch is a physical restaurant location.
type Branch struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Dish is a menu item subject to quality inspections.
type Dish struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Chef is a kitchen staff member attributable to a dish check.
type Chef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	BranchID int    `json:"branch_id"`
}
