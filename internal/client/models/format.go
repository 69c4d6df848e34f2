package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceMissing is shown for products without a price.
const PriceMissing = "—"

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price for display: "—" when absent, "$ 1,234.5" for
// numeric values and "$ <raw>" for anything else.
func FormatPrice(p Price) string {
	switch {
	case !p.IsPresent():
		return PriceMissing
	case p.IsNumeric():
		return "$ " + FormatAmount(p.Float())
	default:
		return "$ " + p.Raw()
	}
}

// FormatAmount groups thousands and keeps at most three fraction digits.
func FormatAmount(v float64) string {
	return pricePrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
