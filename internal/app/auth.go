package app

import (
	"context"

	"uncharted_escape/internal/domain"
)

const (
	adminEmail    = "admin@uncharted.com"
	adminPassword = "admin"
)

// Login is a demo stub: credentials are fixed and compared in plaintext.
func (s *Service) Login(ctx context.Context, sid, email, password string) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		return Authenticate(st, email, password)
	})
}

func Authenticate(st domain.State, email, password string) (domain.State, error) {
	switch {
	case email == adminEmail && password == adminPassword:
		return SignIn(st, domain.User{ID: "admin1", Name: "Admin User", Email: email, Role: domain.RoleAdmin}), nil
	case email != "" && password != "":
		return SignIn(st, domain.User{ID: "user1", Name: "John Traveller", Email: email, Role: domain.RoleUser}), nil
	default:
		return LoginFailed(st, email, LoginErrorMessage), domain.ErrValidation
	}
}

func (s *Service) Logout(ctx context.Context, sid string) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		return SignOut(st), nil
	})
}
