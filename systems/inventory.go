package systems

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/ecs"
)

var (
	ErrInventoryFull   = errors.New("the inventory is full")
	ErrInventoryEmpty  = errors.New("the inventory is empty")
	ErrIndexOutOfRange = errors.New("the index is out of range")
)

// InventorySystem manages the items held in Inventory components
type InventorySystem struct {
	registry *ecs.Registry
	// holder maps a held item to the game object carrying it
	holder map[ecs.GameObjectID]ecs.GameObjectID
}

// NewInventorySystem creates a new inventory system
func NewInventorySystem(r *ecs.Registry) *InventorySystem {
	return &InventorySystem{registry: r, holder: make(map[ecs.GameObjectID]ecs.GameObjectID)}
}

// Update implements ecs.System
func (s *InventorySystem) Update(float64) {}

// AddItem puts item into owner's inventory
func (s *InventorySystem) AddItem(owner, item ecs.GameObjectID) error {
	inventory, err := ecs.GetComponent[*components.Inventory](s.registry, owner)
	if err != nil {
		return err
	}
	if !s.registry.Exists(item) {
		return fmt.Errorf("add item %d: %w", item, ecs.ErrNotRegistered)
	}
	if inventory.Full() {
		return fmt.Errorf("add item %d to %d: %w", item, owner, ErrInventoryFull)
	}

	inventory.Items = append(inventory.Items, item)
	s.holder[item] = owner
	s.registry.Events().Emit(ItemPickupEvent{Owner: owner, Item: item})
	return nil
}

// RemoveItem takes the item at index out of owner's inventory
func (s *InventorySystem) RemoveItem(owner ecs.GameObjectID, index int) (ecs.GameObjectID, error) {
	inventory, err := ecs.GetComponent[*components.Inventory](s.registry, owner)
	if err != nil {
		return 0, err
	}
	if len(inventory.Items) == 0 {
		return 0, fmt.Errorf("remove item from %d: %w", owner, ErrInventoryEmpty)
	}
	if index < 0 || index >= len(inventory.Items) {
		return 0, fmt.Errorf("remove item %d from %d: %w", index, owner, ErrIndexOutOfRange)
	}

	item := inventory.Items[index]
	inventory.Items = append(inventory.Items[:index], inventory.Items[index+1:]...)
	delete(s.holder, item)
	return item, nil
}

// IsHeld reports whether an item is in any inventory
func (s *InventorySystem) IsHeld(item ecs.GameObjectID) bool {
	_, ok := s.holder[item]
	return ok
}

// UseItem consumes the item at index, applying its potion effect to owner.
// An item whose effect cannot be applied is left in the inventory.
func (s *InventorySystem) UseItem(owner ecs.GameObjectID, index int) (bool, error) {
	inventory, err := ecs.GetComponent[*components.Inventory](s.registry, owner)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(inventory.Items) {
		return false, fmt.Errorf("use item %d of %d: %w", index, owner, ErrIndexOutOfRange)
	}
	item := inventory.Items[index]
	potion, err := ecs.GetComponent[*components.PotionComponent](s.registry, item)
	if err != nil {
		return false, err
	}
	effects, err := ecs.GetSystem[*EffectSystem](s.registry)
	if err != nil {
		return false, err
	}

	var applied bool
	if potion.Duration > 0 {
		applied, err = effects.ApplyStatusEffect(owner, potion.Stat, potion.Amount, potion.Duration)
	} else {
		applied, err = effects.ApplyInstantEffect(owner, potion.Stat, potion.Amount)
	}
	if err != nil || !applied {
		return false, err
	}

	if _, err := s.RemoveItem(owner, index); err != nil {
		return false, err
	}
	s.registry.Logger().Debug("used item", zap.Int("owner", int(owner)), zap.Int("item", int(item)))
	return true, s.registry.DeleteGameObject(item)
}
