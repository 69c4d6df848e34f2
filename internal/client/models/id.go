// Package models defines the storefront's client-side data model: catalog
// records returned by the backend, cart line items and the session user.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID is a product, category or user identifier in canonical string form.
// The backend sends integers for some tables and strings (uuids, usernames)
// for others; both decode to the same ID so that 7 and "7" never become two
// distinct cart lines.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is missing.
func (id ID) IsZero() bool { return id == "" }

// NormalizeID trims surrounding whitespace.
func NormalizeID(s string) ID {
	return ID(strings.TrimSpace(s))
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NormalizeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(canonicalNumber(n))
	return nil
}

// canonicalNumber renders numbers in plain decimal notation without an
// exponent or trailing zeros, so 7, 7.0 and 7e0 all map to "7" and 1e20 maps
// to "100000000000000000000".
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}
