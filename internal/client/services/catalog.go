package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// CatalogService is read-only access to categories and products.
type CatalogService interface {
	Index(ctx context.Context) (*models.IndexPage, error)
	Categories(ctx context.Context) ([]models.Category, error)
	// Category resolves key as a slug first and as an id second.
	Category(ctx context.Context, key string) (*models.Category, error)
	// CategoryProducts resolves the category and lists its products.
	CategoryProducts(ctx context.Context, key string) (*models.Category, []models.Product, error)
	Products(ctx context.Context, category string) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(client client.Client) CatalogService {
	return &catalogService{client: client}
}

func (c *catalogService) Index(ctx context.Context) (*models.IndexPage, error) {
	return c.client.Index(ctx)
}

func (c *catalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return c.client.ListCategories(ctx)
}

func (c *catalogService) Category(ctx context.Context, key string) (*models.Category, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: category", ErrValidation)
	}

	cat, err := c.client.GetCategoryBySlug(ctx, key)
	if err == nil {
		return cat, nil
	}

	cat, err = c.client.GetCategory(ctx, key)
	if err == nil {
		return cat, nil
	}
	if errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("category %q: %w", key, common.ErrorNotFound)
	}
	return nil, err
}

func (c *catalogService) CategoryProducts(ctx context.Context, key string) (*models.Category, []models.Product, error) {
	cat, err := c.Category(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	filter := cat.Slug
	if filter == "" {
		filter = cat.Name
	}
	if filter == "" {
		filter = key
	}

	products, err := c.client.ListProducts(ctx, filter)
	if err != nil {
		return cat, nil, err
	}
	return cat, products, nil
}

func (c *catalogService) Products(ctx context.Context, category string) ([]models.Product, error) {
	return c.client.ListProducts(ctx, strings.TrimSpace(category))
}

func (c *catalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id", ErrValidation)
	}

	p, err := c.client.GetProduct(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("product %q: %w", id, common.ErrorNotFound)
	}
	return p, err
}
