package domain

import "time"

// Dish check ratings are bounded by the backend contract.
const (
	CheckRatingMin = 1
	CheckRatingMax = 10
)

// DishCheck is a quality inspection record for one prepared dish.
type DishCheck struct {
	ID             int       `json:"id"`
	BranchID       int       `json:"branch_id"`
	DishID         int       `json:"dish_id"`
	ChefID         *int      `json:"chef_id"`
	ChefNameManual string    `json:"chef_name_manual,omitempty"`
	Rating         float64   `json:"rating"`
	Comments       string    `json:"comments,omitempty"`
	CreatedBy      int       `json:"created_by"`
	CheckDate      time.Time `json:"check_date"`
	CreatedAt      time.Time `json:"created_at"`

	// Denormalized names present on detail listings.
	BranchName    string `json:"branch_name,omitempty"`
	DishName      string `json:"dish_name,omitempty"`
	ChefName      string `json:"chef_name,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
}

// ValidCheckRating reports whether r is an acceptable dish check rating.
func ValidCheckRating(r float64) bool {
	return r >= CheckRatingMin && r <= CheckRatingMax
}
