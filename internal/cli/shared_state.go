package cli

import (
	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Signed-in user, nil until login completes.
	User *domain.User

	// Terminal dimensions
	Width  int
	Height int

	// Reference data cached after first load. Branches and dishes
	// change rarely; forms reuse them instead of refetching.
	Branches []domain.Branch
	Dishes   []domain.Dish
}

// SetUser installs the signed-in user.
func (s *SharedState) SetUser(u domain.User) {
	s.User = &u
}

// ClearUser drops the signed-in user and all cached reference data.
func (s *SharedState) ClearUser() {
	s.User = nil
	s.Branches = nil
	s.Dishes = nil
}

// BranchName resolves a branch id against the cache, falling back to "".
func (s *SharedState) BranchName(id int) string {
	for _, b := range s.Branches {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
