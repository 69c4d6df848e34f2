package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// ProductForm is the raw admin input for a product. Price is free text and
// is coerced to a number, unparsable text becoming 0.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
	Category    string
}

func (f ProductForm) input() (models.ProductInput, error) {
	if err := requireField("name", f.Name); err != nil {
		return models.ProductInput{}, err
	}

	in := models.ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       models.ParsePrice(f.Price).Float(),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		in.Category = &c
	}
	return in, nil
}

type CategoryForm struct {
	Name        string
	Slug        string
	Description string
}

func (f CategoryForm) input() (models.CategoryInput, error) {
	if err := requireField("name", f.Name); err != nil {
		return models.CategoryInput{}, err
	}
	if err := requireField("slug", f.Slug); err != nil {
		return models.CategoryInput{}, err
	}
	return models.CategoryInput{
		Name:        strings.TrimSpace(f.Name),
		Slug:        strings.TrimSpace(f.Slug),
		Description: strings.TrimSpace(f.Description),
	}, nil
}

// AdminService is product and category management. Every call requires a
// session with the admin role; the session identifier is sent as x-user-id.
type AdminService interface {
	CreateProduct(ctx context.Context, f ProductForm) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, f ProductForm) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, f CategoryForm) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, f CategoryForm) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type adminService struct {
	client  client.Client
	session *session.Store
}

func NewAdminService(client client.Client, session *session.Store) AdminService {
	return &adminService{client: client, session: session}
}

func (a *adminService) userID(ctx context.Context) (string, error) {
	u, err := a.session.RequireAdmin(ctx)
	if err != nil {
		return "", err
	}
	return u.Identifier(), nil
}

func (a *adminService) CreateProduct(ctx context.Context, f ProductForm) (*models.Product, error) {
	in, err := f.input()
	if err != nil {
		return nil, err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.CreateProduct(ctx, uid, in)
}

func (a *adminService) UpdateProduct(ctx context.Context, id string, f ProductForm) (*models.Product, error) {
	if err := requireField("id", id); err != nil {
		return nil, err
	}
	in, err := f.input()
	if err != nil {
		return nil, err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.UpdateProduct(ctx, uid, strings.TrimSpace(id), in)
}

func (a *adminService) DeleteProduct(ctx context.Context, id string) error {
	if err := requireField("id", id); err != nil {
		return err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return err
	}
	if err := a.client.DeleteProduct(ctx, uid, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (a *adminService) CreateCategory(ctx context.Context, f CategoryForm) (*models.Category, error) {
	in, err := f.input()
	if err != nil {
		return nil, err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.CreateCategory(ctx, uid, in)
}

func (a *adminService) UpdateCategory(ctx context.Context, id string, f CategoryForm) (*models.Category, error) {
	if err := requireField("id", id); err != nil {
		return nil, err
	}
	in, err := f.input()
	if err != nil {
		return nil, err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.UpdateCategory(ctx, uid, strings.TrimSpace(id), in)
}

func (a *adminService) DeleteCategory(ctx context.Context, id string) error {
	if err := requireField("id", id); err != nil {
		return err
	}
	uid, err := a.userID(ctx)
	if err != nil {
		return err
	}
	if err := a.client.DeleteCategory(ctx, uid, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
