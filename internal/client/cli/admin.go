package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

type adminSubcommand struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

func (a *App) adminCommands() map[string]adminSubcommand {
	return map[string]adminSubcommand{
		"products":        {usage: "admin products", run: a.products},
		"categories":      {usage: "admin categories", run: a.categories},
		"add-product":     {usage: "admin add-product", run: a.adminAddProduct},
		"edit-product":    {usage: "admin edit-product <id>", run: a.adminEditProduct},
		"delete-product":  {usage: "admin delete-product <id>", run: a.adminDeleteProduct},
		"add-category":    {usage: "admin add-category", run: a.adminAddCategory},
		"edit-category":   {usage: "admin edit-category <id>", run: a.adminEditCategory},
		"delete-category": {usage: "admin delete-category <id>", run: a.adminDeleteCategory},
	}
}

func (a *App) adminUsage() string {
	subs := a.adminCommands()
	lines := make([]string, 0, len(subs))
	for _, s := range subs {
		lines = append(lines, s.usage)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n       ")
}

func (a *App) adminCmd(ctx context.Context, args []string) error {
	// checked up front so nobody fills in a form only to be refused
	u := a.auth.CurrentUser(ctx)
	if u == nil {
		return common.ErrorNotLoggedIn
	}
	if !u.IsAdmin() {
		return common.ErrorNotAnAdmin
	}

	if len(args) == 0 {
		return usage(a.adminUsage())
	}
	sub, ok := a.adminCommands()[args[0]]
	if !ok {
		return usage(a.adminUsage())
	}
	return sub.run(ctx, args[1:])
}

func (a *App) readProductForm(current *models.Product) (services.ProductForm, error) {
	var cur services.ProductForm
	if current != nil {
		cur = services.ProductForm{
			Name:        current.Name,
			Description: current.Description,
			Price:       current.Price.Raw(),
			ImageURL:    current.ImageURL,
			Category:    current.Category,
		}
	}

	var f services.ProductForm
	fields := []struct {
		label string
		cur   string
		dst   *string
	}{
		{"Name", cur.Name, &f.Name},
		{"Description", cur.Description, &f.Description},
		{"Price", cur.Price, &f.Price},
		{"Image URL", cur.ImageURL, &f.ImageURL},
		{"Category (slug, empty for none)", cur.Category, &f.Category},
	}
	for _, fld := range fields {
		v, err := getWithDefault(a.reader, fld.label, fld.cur, a.out)
		if err != nil {
			return services.ProductForm{}, err
		}
		*fld.dst = v
	}
	return f, nil
}

func (a *App) readCategoryForm(current *models.Category) (services.CategoryForm, error) {
	var cur services.CategoryForm
	if current != nil {
		cur = services.CategoryForm{Name: current.Name, Slug: current.Slug, Description: current.Description}
	}

	var f services.CategoryForm
	fields := []struct {
		label string
		cur   string
		dst   *string
	}{
		{"Name", cur.Name, &f.Name},
		{"Slug", cur.Slug, &f.Slug},
		{"Description", cur.Description, &f.Description},
	}
	for _, fld := range fields {
		v, err := getWithDefault(a.reader, fld.label, fld.cur, a.out)
		if err != nil {
			return services.CategoryForm{}, err
		}
		*fld.dst = v
	}
	return f, nil
}

func (a *App) adminAddProduct(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usage("admin add-product")
	}
	f, err := a.readProductForm(nil)
	if err != nil {
		return err
	}
	p, err := a.admin.CreateProduct(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product %s created (#%s).\n", p.Name, p.ID)
	return nil
}

func (a *App) adminEditProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("admin edit-product <id>")
	}
	current, err := a.catalog.Product(ctx, args[0])
	if err != nil {
		return err
	}
	f, err := a.readProductForm(current)
	if err != nil {
		return err
	}
	if _, err := a.admin.UpdateProduct(ctx, args[0], f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product #%s updated.\n", args[0])
	return nil
}

func (a *App) adminDeleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("admin delete-product <id>")
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete product #%s?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.admin.DeleteProduct(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Product #%s deleted.\n", args[0])
	return nil
}

func (a *App) adminAddCategory(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usage("admin add-category")
	}
	f, err := a.readCategoryForm(nil)
	if err != nil {
		return err
	}
	c, err := a.admin.CreateCategory(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category %s created (#%s).\n", c.Name, c.ID)
	return nil
}

func (a *App) adminEditCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("admin edit-category <id>")
	}
	current, err := a.catalog.Category(ctx, args[0])
	if err != nil {
		return err
	}
	f, err := a.readCategoryForm(current)
	if err != nil {
		return err
	}
	if _, err := a.admin.UpdateCategory(ctx, args[0], f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category #%s updated.\n", args[0])
	return nil
}

func (a *App) adminDeleteCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("admin delete-category <id>")
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete category #%s?", args[0]), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.admin.DeleteCategory(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category #%s deleted.\n", args[0])
	return nil
}
