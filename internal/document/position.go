package document

import "fmt"

// Position is a column/row coordinate.
// In document space Y is the row index and X the character offset within
// that row. Neither coordinate is ever negative.
type Position struct {
	X int
	Y int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Sub returns p - other, saturating each coordinate at zero.
func (p Position) Sub(other Position) Position {
	return Position{X: SaturatingSub(p.X, other.X), Y: SaturatingSub(p.Y, other.Y)}
}

// IsZero returns true for the document origin.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// SaturatingSub returns a-b, or 0 when b > a.
func SaturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
