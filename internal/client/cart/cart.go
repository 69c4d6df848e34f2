// Package cart implements the client-side shopping cart.
//
// The cart is an insertion-ordered list of line items kept under a single
// key of the durable store. Every mutation is a read-modify-write of the
// whole list, and the store keeps at most one line per product id: adding an
// id that is already present increments its quantity instead of appending.
//
// Reads fail soft. Missing or malformed stored data is an empty cart and is
// never reported to the caller. Write failures are returned.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

var ErrMissingID = errors.New("cart item has no id")

// Store is the cart over a kv.Repository. It is safe for concurrent use
// within one process.
type Store struct {
	mu     sync.Mutex
	repo   kv.Repository
	key    string
	logger logging.Logger
}

func NewStore(repo kv.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{repo: repo, key: common.CartStorageKey, logger: logger}
}

// Load returns the current line items, or an empty slice when nothing
// usable is stored.
func (s *Store) Load(ctx context.Context) []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn(ctx, "cart read failed, using empty cart", "error", err)
		return []models.LineItem{}
	}
	return s.decode(ctx, raw)
}

// Save replaces the stored cart with items. Duplicate ids are merged and
// quantities below 1 are raised to 1 before writing.
func (s *Store) Save(ctx context.Context, items []models.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(normalize(items))
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.repo.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Add puts qty units of item into the cart. A qty below 1 counts as 1. When
// a line with the same id exists its quantity grows and its name, price and
// image stay as they were.
func (s *Store) Add(ctx context.Context, item models.LineItem, qty int) error {
	if item.ID.IsZero() {
		return ErrMissingID
	}
	if qty < 1 {
		qty = 1
	}

	return s.update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ID == item.ID {
				items[i].Qty += qty
				return items, true
			}
		}
		item.Qty = qty
		return append(items, item), true
	})
}

// SetQuantity changes the quantity of id by delta, never going below 1.
// Unknown ids are ignored.
func (s *Store) SetQuantity(ctx context.Context, id models.ID, delta int) error {
	return s.update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].Qty = max(1, items[i].Qty+delta)
				return items, true
			}
		}
		return items, false
	})
}

// Remove deletes the line for id, if any.
func (s *Store) Remove(ctx context.Context, id models.ID) error {
	return s.update(ctx, func(items []models.LineItem) ([]models.LineItem, bool) {
		out := items[:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out, len(out) != len(items)
	})
}

// Clear deletes the stored cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Total is the sum of price*qty over all lines. Lines whose price is not a
// number contribute 0.
func (s *Store) Total(ctx context.Context) float64 {
	return Total(s.Load(ctx))
}

// Count is the sum of all quantities.
func (s *Store) Count(ctx context.Context) int {
	return Count(s.Load(ctx))
}

func Total(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func Count(items []models.LineItem) int {
	var n int
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// update applies fn to the stored items inside one atomic repository update.
// When fn reports no change the stored bytes are left alone.
func (s *Store) update(ctx context.Context, fn func([]models.LineItem) ([]models.LineItem, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Update(ctx, s.key, func(cur []byte) ([]byte, error) {
		items, changed := fn(s.decode(ctx, cur))
		if !changed {
			return cur, nil
		}
		return json.Marshal(normalize(items))
	})
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}

func (s *Store) decode(ctx context.Context, raw []byte) []models.LineItem {
	if len(raw) == 0 {
		return []models.LineItem{}
	}

	var items []models.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn(ctx, "stored cart is malformed, using empty cart", "error", err)
		return []models.LineItem{}
	}
	return normalize(items)
}

// normalize enforces the store invariants on data that may have been written
// by something else: one line per id, qty >= 1, no lines without an id.
func normalize(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	pos := make(map[models.ID]int, len(items))

	for _, it := range items {
		if it.ID.IsZero() {
			continue
		}
		if it.Qty < 1 {
			it.Qty = 1
		}
		if i, ok := pos[it.ID]; ok {
			out[i].Qty += it.Qty
			continue
		}
		pos[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
