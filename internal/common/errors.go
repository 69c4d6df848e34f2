// Package common defines shared constants and sentinel errors used across
// client layers of storefront. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrorNotLoggedIn     = errors.New("user not authenticated")
	ErrorInvalidSession  = errors.New("invalid user in session")
	ErrorNotAnAdmin      = errors.New("operation allowed only for administrators")
	ErrorLoginRequired   = errors.New("login required")
	ErrorIncorrectAmount = errors.New("quantity must be a whole number")
)
