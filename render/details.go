package render

// Details tracks which cards have their description expanded. Cards start
// collapsed and each card's state is independent of every other card.
type Details struct {
	expanded map[int]bool
}

// Toggle flips the card at index and returns its new state.
func (d *Details) Toggle(index int) bool {
	if d.expanded == nil {
		d.expanded = make(map[int]bool)
	}
	d.expanded[index] = !d.expanded[index]
	return d.expanded[index]
}

// Expanded reports whether the card at index is expanded.
func (d Details) Expanded(index int) bool {
	return d.expanded[index]
}

// Reset collapses every card; call it whenever the card set is redrawn.
func (d *Details) Reset() {
	d.expanded = nil
}
