package cart

// quantityChange is the outcome of applying a signed delta to a cart line.
// The computation is pure: callers decide what a confirmation request
// means, this only reports that the line would drop below one unit.
type quantityChange struct {
	NewQuantity          int
	RequiresConfirmation bool
}

func computeQuantityChange(current, delta int) quantityChange {
	next := current + delta
	if next < 1 {
		return quantityChange{NewQuantity: current, RequiresConfirmation: true}
	}
	return quantityChange{NewQuantity: next}
}
