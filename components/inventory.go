package components

import "hades-rogue/ecs"

// Inventory is a fixed-size grid of carried game objects
type Inventory struct {
	Width  int
	Height int
	Items  []ecs.GameObjectID
}

// NewInventory creates an empty inventory
func NewInventory(width, height int) *Inventory {
	return &Inventory{Width: width, Height: height}
}

// Capacity returns how many items fit
func (i *Inventory) Capacity() int {
	return i.Width * i.Height
}

// Full reports whether no more items fit
func (i *Inventory) Full() bool {
	return len(i.Items) >= i.Capacity()
}
