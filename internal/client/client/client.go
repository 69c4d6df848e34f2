package client

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Client is the storefront backend API.
//
// Mutating calls take userID, the value of the x-user-id header.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Index(ctx context.Context) (*models.IndexPage, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, userID string, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error

	// ListProducts returns all products, or only those of category (slug or
	// name) when it is non-empty.
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, userID string, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, userID, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, userID, id string) error

	Login(ctx context.Context, username, password string) (*models.User, error)
}
