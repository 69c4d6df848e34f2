package models

// Category as served by /categories.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// Key is what category links use: the slug when set, the id otherwise.
func (c Category) Key() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.ID.String()
}

// Product as served by /products. Category holds the category slug.
type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       Price  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Category    string `json:"category,omitempty"`
}

// LineItem turns the product into a cart line with the given quantity.
func (p Product) LineItem(qty int) LineItem {
	return LineItem{ID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL, Qty: qty}
}

// IndexPage is the /index payload.
type IndexPage struct {
	Categories []Category `json:"categories"`
	Featured   []Product  `json:"featured"`
}

// ProductInput is the body of product create/update calls.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    *string `json:"category"`
}

// CategoryInput is the body of category create/update calls.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}
