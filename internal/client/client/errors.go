package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/netx"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// mapError classifies netx errors. The netx error stays in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, netx.ErrTransport) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var reqErr *netx.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	return err
}

// Detail returns the backend's human readable message for err, if any.
func Detail(err error) string {
	var reqErr *netx.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Detail()
	}
	return ""
}
