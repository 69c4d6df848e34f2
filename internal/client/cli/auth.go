package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
)

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("login [username]")
	}

	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		v, err := getSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return err
		}
		username = v
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, username, string(pw))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", u.DisplayName())
	if u.IsAdmin() {
		fmt.Fprintln(a.out, "Admin commands are available (type 'admin').")
	}
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	u := a.auth.CurrentUser(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	role := u.Role
	if role == "" {
		role = "customer"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.DisplayName(), role)
	return nil
}

// checkout starts the login prompt when nobody is logged in and retries once
// after a successful login.
func (a *App) checkout(ctx context.Context, _ []string) error {
	msg, err := a.shop.Checkout(ctx)
	if errors.Is(err, common.ErrorLoginRequired) {
		fmt.Fprintln(a.out, "Please log in to continue.")
		if err := a.login(ctx, nil); err != nil {
			return err
		}
		msg, err = a.shop.Checkout(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
