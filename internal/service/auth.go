package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/helppsico/mockapi/internal/models"
)

// TokenIssuer signs claims into an access token.
type TokenIssuer interface {
	Issue(claims models.Claims) (string, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token string
	User  models.Profile
}

// AuthService validates credentials against the users collection.
type AuthService struct {
	users  Reader[models.User]
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users Reader[models.User], tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login looks up the user whose email and password both match exactly and
// issues a patient token for it. Passwords are compared as stored, in plain
// text.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != email || u.Password != password {
			continue
		}

		claims := models.Claims{
			ID:    u.ID,
			Email: u.Email,
			Name:  DisplayName(email),
			Role:  models.RolePatient,
		}
		token, err := s.tokens.Issue(claims)
		if err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}
		return &LoginResult{
			Token: token,
			User: models.Profile{
				ID:    claims.ID,
				Name:  claims.Name,
				Email: claims.Email,
				Role:  claims.Role,
			},
		}, nil
	}

	return nil, ErrUnauthorized
}

// DisplayName returns the local part of an email address, or the whole
// address when it has no "@".
func DisplayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
