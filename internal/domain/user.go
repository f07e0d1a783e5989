package domain

import "time"

// User is the backend's view of an account. The client never mutates users
// beyond login; the struct mirrors the /auth responses.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      UserRole  `json:"role"`
	BranchID  *int      `json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsHQ reports whether the user belongs to headquarters and may see
// chain-wide data.
func (u *User) IsHQ() bool {
	return u.Role == RoleHQ
}
