package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// fakeClient is an in-memory client.Client. Unset maps answer ErrNotFound.
type fakeClient struct {
	Categories   map[string]models.Category // by id
	SlugToID     map[string]string
	Products     map[string]models.Product
	ProductsErr  error
	Users        map[string]string // username -> password
	UserRecord   map[string]models.User
	LoginErr     error
	PingErr      error
	MutationErr  error
	ProductCalls []string // category filters passed to ListProducts
	LastUserID   string
	LastProduct  models.ProductInput
	LastCategory models.CategoryInput
	Closed       bool
	LoginCalls   int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { f.Closed = true; return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Index(ctx context.Context) (*models.IndexPage, error) {
	page := &models.IndexPage{}
	for _, c := range f.Categories {
		page.Categories = append(page.Categories, c)
	}
	for _, p := range f.Products {
		page.Featured = append(page.Featured, p)
	}
	return page, nil
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.Categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c, ok := f.Categories[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &c, nil
}

func (f *fakeClient) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	id, ok := f.SlugToID[slug]
	if !ok {
		return nil, client.ErrNotFound
	}
	return f.GetCategory(ctx, id)
}

func (f *fakeClient) CreateCategory(ctx context.Context, userID string, in models.CategoryInput) (*models.Category, error) {
	f.LastUserID, f.LastCategory = userID, in
	if f.MutationErr != nil {
		return nil, f.MutationErr
	}
	return &models.Category{ID: "new", Name: in.Name, Slug: in.Slug}, nil
}

func (f *fakeClient) UpdateCategory(ctx context.Context, userID, id string, in models.CategoryInput) (*models.Category, error) {
	f.LastUserID, f.LastCategory = userID, in
	if f.MutationErr != nil {
		return nil, f.MutationErr
	}
	return &models.Category{ID: models.ID(id), Name: in.Name, Slug: in.Slug}, nil
}

func (f *fakeClient) DeleteCategory(ctx context.Context, userID, id string) error {
	f.LastUserID = userID
	return f.MutationErr
}

func (f *fakeClient) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	f.ProductCalls = append(f.ProductCalls, category)
	if f.ProductsErr != nil {
		return nil, f.ProductsErr
	}
	out := []models.Product{}
	for _, p := range f.Products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.Products[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &p, nil
}

func (f *fakeClient) CreateProduct(ctx context.Context, userID string, in models.ProductInput) (*models.Product, error) {
	f.LastUserID, f.LastProduct = userID, in
	if f.MutationErr != nil {
		return nil, f.MutationErr
	}
	return &models.Product{ID: "new", Name: in.Name, Price: models.NewPrice(in.Price)}, nil
}

func (f *fakeClient) UpdateProduct(ctx context.Context, userID, id string, in models.ProductInput) (*models.Product, error) {
	f.LastUserID, f.LastProduct = userID, in
	if f.MutationErr != nil {
		return nil, f.MutationErr
	}
	return &models.Product{ID: models.ID(id), Name: in.Name, Price: models.NewPrice(in.Price)}, nil
}

func (f *fakeClient) DeleteProduct(ctx context.Context, userID, id string) error {
	f.LastUserID = userID
	return f.MutationErr
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if pass, ok := f.Users[username]; !ok || pass != password {
		return nil, client.ErrUnauthorized
	}
	u := f.UserRecord[username]
	return &u, nil
}

type fixture struct {
	client  *fakeClient
	cart    *cart.Store
	session *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := kv.NewMemoryRepository()
	return &fixture{
		client: &fakeClient{
			Categories: map[string]models.Category{
				"1": {ID: "1", Name: "Marvel", Slug: "marvel"},
				"2": {ID: "2", Name: "Indie"},
			},
			SlugToID: map[string]string{"marvel": "1"},
			Products: map[string]models.Product{
				"10": {ID: "10", Name: "Hulk", Price: models.NewPrice(12), Category: "marvel"},
				"11": {ID: "11", Name: "Saga", Price: models.ParsePrice("15"), Category: "Indie"},
				"12": {Name: "Ghost"},
			},
			Users: map[string]string{"admin": "123456", "user": "123456"},
			UserRecord: map[string]models.User{
				"admin": {ID: "admin", Username: "admin", Role: "admin"},
				"user":  {ID: "user", Username: "user", Role: "user", Name: "Ana"},
			},
		},
		cart:    cart.NewStore(repo, nil),
		session: session.NewStore(repo, nil),
	}
}

func (f *fixture) login(t *testing.T, username string) {
	t.Helper()
	u := f.client.UserRecord[username]
	if err := f.session.Save(context.Background(), &u); err != nil {
		t.Fatalf("save session: %v", err)
	}
}
