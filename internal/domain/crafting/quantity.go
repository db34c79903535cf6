package crafting

import "math"

// MaxBatch is the largest batch multiplier the query handlers and adapters accept
const MaxBatch = 1_000_000

// scaled multiplies a per-batch quantity by the batch, reporting false when the
// product does not fit in an int. An overflowing quantity can never be held.
func scaled(count, batch int) (int, bool) {
	if count == 0 || batch == 0 {
		return 0, true
	}
	if count > math.MaxInt/batch {
		return 0, false
	}
	return count * batch, true
}

// sum adds two non-negative quantities, reporting false on overflow
func sum(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
