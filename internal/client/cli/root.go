package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/spf13/cobra"
)

func (a *App) getStatus(ctx context.Context) string {
	parts := make([]string, 0, 3)
	if u := a.auth.CurrentUser(ctx); u != nil {
		parts = append(parts, u.DisplayName())
	}
	if m := a.Mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	// the marker only; the exact count is in the cart view's label
	if b, ok := cart.BadgeFor(cart.Count(a.cart.Load(ctx))); ok {
		parts = append(parts, "cart "+b.Marker)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Run starts the connectivity watcher and the REPL, and blocks until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the storefront (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()
	defer func() {
		cancel()
		<-done
	}()

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader, a.out)
}

// ErrReported marks a command failure that was already shown to the user.
var ErrReported = errors.New("command failed")

// AppFactory builds the App a command runs against.
type AppFactory func(ctx context.Context) (*App, error)

// NewRootCommand returns the command tree. Without a subcommand the
// interactive shell is started; every subcommand runs the matching shell
// command once and exits.
func NewRootCommand(newApp AppFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Terminal storefront: browse the catalog, keep a cart, check out",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, newApp)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())
			a.Run(cmd.Context())
			return nil
		},
	}

	once := func(use, short, name string, args cobra.PositionalArgs) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOnce(cmd, newApp, name, args)
			},
		}
	}

	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, newApp, "cart", args)
		},
	}
	cartCmd.AddCommand(
		once("show", "Show the cart", "cart", cobra.NoArgs),
		once("add <product-id> [qty]", "Add a product to the cart", "add", cobra.RangeArgs(1, 2)),
		once("remove <id>", "Remove an item", "remove", cobra.ExactArgs(1)),
		once("inc <id>", "One more of an item", "inc", cobra.ExactArgs(1)),
		once("dec <id>", "One less of an item", "dec", cobra.ExactArgs(1)),
		once("clear", "Empty the cart", "clear", cobra.NoArgs),
	)

	adminCmd := once("admin <subcommand> [args]", "Manage products and categories", "admin", cobra.ArbitraryArgs)
	adminCmd.DisableFlagParsing = true

	root.AddCommand(
		once("home", "Categories and featured products", "home", cobra.NoArgs),
		once("categories", "List categories", "categories", cobra.NoArgs),
		once("category <slug|id>", "Show a category and its products", "category", cobra.ExactArgs(1)),
		once("products [category]", "List products", "products", cobra.MaximumNArgs(1)),
		once("product <id>", "Show product details", "product", cobra.ExactArgs(1)),
		once("login [username]", "Log in", "login", cobra.MaximumNArgs(1)),
		once("logout", "Log out", "logout", cobra.NoArgs),
		once("whoami", "Show the current user", "whoami", cobra.NoArgs),
		once("checkout", "Demo checkout", "checkout", cobra.NoArgs),
		cartCmd,
		adminCmd,
	)
	return root
}

func openApp(cmd *cobra.Command, newApp AppFactory) (*App, error) {
	a, err := newApp(cmd.Context())
	if err != nil {
		return nil, err
	}
	a.out = cmd.OutOrStdout()
	return a, nil
}

func runOnce(cmd *cobra.Command, newApp AppFactory, name string, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(cmd, newApp)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	if err := a.exec(ctx, name, args); err != nil {
		a.report(ctx, err)
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	return nil
}
