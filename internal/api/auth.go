package api

import (
	"context"
	"fmt"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginResult carries the bearer token plus the user profile embedded in
// its claims.
type LoginResult struct {
	Token string
	User  domain.User
}

// Login exchanges credentials for a bearer token and installs it on the
// client. The backend embeds the user profile in the token claims; they
// are read unverified; the token is display context only, every later
// call is re-checked server-side.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	user, err := userFromToken(resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("reading token claims: %w", err)
	}

	c.SetToken(resp.AccessToken)
	return &LoginResult{Token: resp.AccessToken, User: user}, nil
}

// ListUsers returns all accounts, used when attributing evaluations.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type tokenClaims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	BranchID *int   `json:"branch_id"`
	jwt.RegisteredClaims
}

func userFromToken(token string) (domain.User, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.User{}, err
	}

	var id int
	fmt.Sscanf(claims.Subject, "%d", &id)

	return domain.User{
		ID:       id,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     domain.UserRole(claims.Role),
		BranchID: claims.BranchID,
	}, nil
}
