package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printCategories(w io.Writer, cats []models.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "KEY\tNAME\tDESCRIPTION")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Key(), c.Name, c.Description)
	}
	_ = tw.Flush()
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, models.FormatPrice(p.Price), orDash(p.Category))
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "%s  (#%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "Price:    %s\n", models.FormatPrice(p.Price))
	fmt.Fprintf(w, "Category: %s\n", orDash(p.Category))
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(w, "Image:    %s\n", p.ImageURL)
	}
}

func printCart(w io.Writer, items []models.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t$ %s\n",
			it.ID, it.Name, models.FormatPrice(it.Price), it.Qty, models.FormatAmount(it.Subtotal()))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Total: $ %s\n", models.FormatAmount(cart.Total(items)))
	if b, ok := cart.BadgeFor(cart.Count(items)); ok {
		fmt.Fprintln(w, b.Label)
	}
}

func orDash(s string) string {
	if s == "" {
		return models.PriceMissing
	}
	return s
}

// usageError is returned when a command is called with wrong arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string { return "usage: " + e.usage }

func usage(u string) error { return &usageError{usage: u} }

// describeError turns a command failure into the single line shown to the
// user.
func describeError(err error) string {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return ue.Error()
	case errors.Is(err, services.ErrValidation), errors.Is(err, common.ErrorIncorrectAmount):
		return "Invalid input: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, common.ErrorLoginRequired), errors.Is(err, common.ErrorNotLoggedIn):
		return "Please log in first (type 'login')."
	case errors.Is(err, common.ErrorNotAnAdmin):
		return "This command is only available to administrators."
	}

	if d := client.Detail(err); d != "" {
		return "Error: " + d
	}
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, client.ErrNotFound) {
		return "Not found."
	}
	return "Error: " + strings.TrimSpace(err.Error())
}
