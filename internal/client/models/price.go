package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price keeps whatever the backend sent for a price, together with its
// numeric interpretation. Products may arrive with numbers, numeric strings,
// empty strings or null; arithmetic treats anything non-numeric as 0 while
// display keeps the raw text.
type Price struct {
	raw     string
	value   float64
	numeric bool
	present bool
}

// NewPrice returns a numeric price.
func NewPrice(v float64) Price {
	return Price{raw: strconv.FormatFloat(v, 'f', -1, 64), value: v, numeric: true, present: true}
}

// ParsePrice interprets free-form text. Blank text is an absent price.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{raw: s, present: true}
	}
	return Price{raw: s, value: v, numeric: true, present: true}
}

// Float returns the numeric value, or 0 when the price is absent or not a number.
func (p Price) Float() float64 {
	if !p.numeric {
		return 0
	}
	return p.value
}

// IsNumeric reports whether the price has a numeric interpretation.
func (p Price) IsNumeric() bool { return p.numeric }

// IsPresent reports whether any price was given at all.
func (p Price) IsPresent() bool { return p.present }

// Raw returns the text the price was built from.
func (p Price) Raw() string { return p.raw }

func (p Price) String() string { return p.raw }

func (p Price) MarshalJSON() ([]byte, error) {
	switch {
	case !p.present:
		return []byte("null"), nil
	case p.numeric:
		return []byte(strconv.FormatFloat(p.value, 'f', -1, 64)), nil
	default:
		return json.Marshal(p.raw)
	}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*p = Price{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a number or a string: %w", err)
	}
	*p = ParsePrice(n.String())
	return nil
}
