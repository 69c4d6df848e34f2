package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

var errUnknownCommand = errors.New("unknown command")

type command struct {
	usage     string
	summary   string
	adminOnly bool
	run       func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	a.cmdOnce.Do(func() {
		a.cmds = map[string]command{
			"home":       {usage: "home", summary: "categories and featured products", run: a.home},
			"categories": {usage: "categories", summary: "list categories", run: a.categories},
			"category":   {usage: "category <slug|id>", summary: "show a category and its products", run: a.category},
			"products":   {usage: "products [category]", summary: "list products", run: a.products},
			"product":    {usage: "product <id>", summary: "show product details", run: a.product},
			"add":        {usage: "add <product-id> [qty]", summary: "add a product to the cart", run: a.add},
			"cart":       {usage: "cart", summary: "show the cart", run: a.showCart},
			"inc":        {usage: "inc <id>", summary: "one more of a cart item", run: a.inc},
			"dec":        {usage: "dec <id>", summary: "one less of a cart item (never below 1)", run: a.dec},
			"remove":     {usage: "remove <id>", summary: "remove an item from the cart", run: a.remove},
			"clear":      {usage: "clear", summary: "empty the cart", run: a.clearCart},
			"checkout":   {usage: "checkout", summary: "demo checkout (requires login)", run: a.checkout},
			"login":      {usage: "login [username]", summary: "log in", run: a.login},
			"logout":     {usage: "logout", summary: "log out", run: a.logout},
			"whoami":     {usage: "whoami", summary: "show the current user", run: a.whoami},
			"admin":      {usage: "admin <subcommand>", summary: "manage products and categories", adminOnly: true, run: a.adminCmd},
		}
	})
	return a.cmds
}

// exec runs one command by name.
func (a *App) exec(ctx context.Context, name string, args []string) error {
	c, ok := a.commands()[name]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
	return c.run(ctx, args)
}

// report shows err to the user once.
func (a *App) report(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)
	fmt.Fprintln(a.out, describeError(err))
}

func (a *App) helpText(ctx context.Context) string {
	admin := false
	if u := a.auth.CurrentUser(ctx); u != nil {
		admin = u.IsAdmin()
	}

	names := make([]string, 0, len(a.commands()))
	for name, c := range a.commands() {
		if c.adminOnly && !admin {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		c := a.commands()[name]
		fmt.Fprintf(&b, "  %-24s %s\n", c.usage, c.summary)
	}
	fmt.Fprintf(&b, "  %-24s %s", "exit | quit", "leave the program")
	return b.String()
}

func (a *App) home(ctx context.Context, _ []string) error {
	page, err := a.catalog.Index(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Categories")
	printCategories(a.out, page.Categories)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Featured")
	printProducts(a.out, page.Featured)
	return nil
}

func (a *App) categories(ctx context.Context, _ []string) error {
	cats, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	printCategories(a.out, cats)
	return nil
}

func (a *App) category(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("category <slug|id>")
	}

	cat, products, err := a.catalog.CategoryProducts(ctx, args[0])
	if err != nil {
		return err
	}

	title := cat.Name
	if title == "" {
		title = "Category"
	}
	fmt.Fprintln(a.out, title)
	if cat.Description != "" {
		fmt.Fprintln(a.out, cat.Description)
	}
	fmt.Fprintln(a.out)
	printProducts(a.out, products)
	return nil
}

func (a *App) products(ctx context.Context, args []string) error {
	products, err := a.catalog.Products(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printProducts(a.out, products)
	return nil
}

func (a *App) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("product <id>")
	}
	p, err := a.catalog.Product(ctx, args[0])
	if err != nil {
		return err
	}
	printProduct(a.out, p)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("add <product-id> [qty]")
	}

	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return common.ErrorIncorrectAmount
		}
		qty = n
	}

	p, err := a.shop.AddProduct(ctx, args[0], qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to the cart.\n", p.Name)
	return nil
}

func (a *App) showCart(ctx context.Context, _ []string) error {
	printCart(a.out, a.cart.Load(ctx))
	return nil
}

func (a *App) inc(ctx context.Context, args []string) error {
	return a.changeQty(ctx, args, 1, "inc <id>")
}

func (a *App) dec(ctx context.Context, args []string) error {
	return a.changeQty(ctx, args, -1, "dec <id>")
}

func (a *App) changeQty(ctx context.Context, args []string, delta int, u string) error {
	if len(args) != 1 {
		return usage(u)
	}
	if err := a.cart.SetQuantity(ctx, models.NormalizeID(args[0]), delta); err != nil {
		return err
	}
	return a.showCart(ctx, nil)
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <id>")
	}
	if err := a.cart.Remove(ctx, models.NormalizeID(args[0])); err != nil {
		return err
	}
	return a.showCart(ctx, nil)
}

func (a *App) clearCart(ctx context.Context, _ []string) error {
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}
