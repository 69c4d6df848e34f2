// Package services contains the application services of the storefront
// client. Each service combines the backend client with the local stores;
// the CLI talks only to services.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// AuthService handles the demo login.
//
// Contract:
//   - Login: validate input, call the backend, store the returned user.
//   - Logout: forget the stored user.
//   - CurrentUser: the stored user or nil.
//   - Ping: backend liveness.
//   - Close: release the backend client.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Store
}

func NewAuthService(client client.Client, session *session.Store) AuthService {
	return &authService{client: client, session: session}
}

// Login fails with ErrValidation before any request when either value is
// blank. Backend rejections keep the backend's message reachable through
// client.Detail.
func (a *authService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if err := requireField("username", identifier); err != nil {
		return nil, err
	}
	if err := requireField("password", password); err != nil {
		return nil, err
	}

	u, err := a.client.Login(ctx, identifier, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	return a.session.Load(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
