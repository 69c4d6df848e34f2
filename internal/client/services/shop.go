package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// ShopService covers the cart flows that need the backend or the session.
type ShopService interface {
	// AddProduct fetches product id and adds qty units of it to the cart.
	AddProduct(ctx context.Context, id string, qty int) (*models.Product, error)
	// Checkout is the demo checkout: it requires a session and returns a
	// greeting. The cart is left as is.
	Checkout(ctx context.Context) (string, error)
}

type shopService struct {
	catalog CatalogService
	cart    *cart.Store
	session *session.Store
}

func NewShopService(catalog CatalogService, cart *cart.Store, session *session.Store) ShopService {
	return &shopService{catalog: catalog, cart: cart, session: session}
}

func (s *shopService) AddProduct(ctx context.Context, id string, qty int) (*models.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ID.IsZero() {
		return nil, ErrNoProductID
	}

	if err := s.cart.Add(ctx, p.LineItem(qty), qty); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return p, nil
}

func (s *shopService) Checkout(ctx context.Context) (string, error) {
	u := s.session.Load(ctx)
	if u == nil {
		return "", common.ErrorLoginRequired
	}
	return fmt.Sprintf("Proceeding to payment (demo). Thank you, %s!", u.DisplayName()), nil
}
