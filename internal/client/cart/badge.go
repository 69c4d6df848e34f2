package cart

import "fmt"

// BadgeMarker is the visible cart indicator. The count itself is only in the
// accessible label.
const BadgeMarker = "●"

type Badge struct {
	Marker string
	Label  string
}

// BadgeFor returns the badge for a cart holding count units, and false when
// no badge should be shown.
func BadgeFor(count int) (Badge, bool) {
	if count <= 0 {
		return Badge{}, false
	}

	label := fmt.Sprintf("%d items in cart", count)
	if count == 1 {
		label = "1 item in cart"
	}
	return Badge{Marker: BadgeMarker, Label: label}, true
}
