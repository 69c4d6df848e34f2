// Package session keeps the logged-in user record in the durable store.
// A stored record means logged in; no record means anonymous.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type Store struct {
	mu     sync.Mutex
	repo   kv.Repository
	logger logging.Logger
}

func NewStore(repo kv.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{repo: repo, logger: logger}
}

// Load returns the stored user or nil. Unreadable records count as no
// session.
func (s *Store) Load(ctx context.Context) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.Get(ctx, common.SessionStorageKey)
	if err != nil {
		s.logger.Warn(ctx, "session read failed", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "stored session is malformed, ignoring it", "error", err)
		return nil
	}
	// a stored null or {} carries no identity
	if u == (models.User{}) {
		return nil
	}
	return &u
}

func (s *Store) Save(ctx context.Context, u *models.User) error {
	if u == nil {
		return common.ErrorInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, common.SessionStorageKey, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.SessionStorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Require returns the current user or common.ErrorNotLoggedIn.
func (s *Store) Require(ctx context.Context) (*models.User, error) {
	u := s.Load(ctx)
	if u == nil {
		return nil, common.ErrorNotLoggedIn
	}
	return u, nil
}

// RequireAdmin returns the current user when it has the admin role.
func (s *Store) RequireAdmin(ctx context.Context) (*models.User, error) {
	u, err := s.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, common.ErrorNotAnAdmin
	}
	if u.Identifier() == "" {
		return nil, common.ErrorInvalidSession
	}
	return u, nil
}
