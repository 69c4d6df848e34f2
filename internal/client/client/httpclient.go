package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

type HTTPClient struct {
	r *netx.Requester
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	r, err := netx.NewRequester(baseURL, timeout, netx.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &HTTPClient{r: r}, nil
}

func (c *HTTPClient) Close() error {
	c.r.Close()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.r.Do(ctx, netx.Request{Path: "/"})
	return mapError(err)
}

func (c *HTTPClient) Index(ctx context.Context) (*models.IndexPage, error) {
	var out models.IndexPage
	if err := c.get(ctx, "/index", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var out models.Category
	if err := c.get(ctx, "/categories/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, userID string, in models.CategoryInput) (*models.Category, error) {
	var out models.Category
	if err := c.send(ctx, http.MethodPost, "/categories", userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, userID, id string, in models.CategoryInput) (*models.Category, error) {
	var out models.Category
	if err := c.send(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, userID, id string) error {
	return c.send(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), userID, nil, nil)
}

func (c *HTTPClient) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}

	out := []models.Product{}
	if err := c.get(ctx, "/products", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, userID string, in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.send(ctx, http.MethodPost, "/products", userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, userID, id string, in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.send(ctx, http.MethodPut, "/products/"+url.PathEscape(id), userID, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, userID, id string) error {
	return c.send(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), userID, nil, nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"pass"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out models.User
	_, err := c.r.DoJSON(ctx, netx.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	_, err := c.r.DoJSON(ctx, netx.Request{Path: path, Query: q}, out)
	return mapError(err)
}

func (c *HTTPClient) send(ctx context.Context, method, path, userID string, body, out any) error {
	req := netx.Request{
		Method: method,
		Path:   path,
		Header: http.Header{},
		Body:   body,
	}
	req.Header.Set(common.UserIDHeaderName, userID)

	_, err := c.r.DoJSON(ctx, req, out)
	return mapError(err)
}
