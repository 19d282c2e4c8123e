package systems

import (
	"hades-rogue/components"
	"hades-rogue/ecs"
)

// Event type constants
const (
	EventDamage     ecs.EventType = "damage_dealt"
	EventDeath      ecs.EventType = "death"
	EventUpgrade    ecs.EventType = "component_upgraded"
	EventEffects    ecs.EventType = "effects"
	EventItemPickup ecs.EventType = "item_pickup"
)

// DamageEvent is emitted after damage has been dealt to a game object
type DamageEvent struct {
	Target ecs.GameObjectID
	Damage float64
	Health float64
	Armour float64
}

// Type returns the event type
func (e DamageEvent) Type() ecs.EventType {
	return EventDamage
}

// DeathEvent is emitted when a game object's health reaches zero
type DeathEvent struct {
	ID     ecs.GameObjectID
	Player bool
}

// Type returns the event type
func (e DeathEvent) Type() ecs.EventType {
	return EventDeath
}

// UpgradeEvent is emitted after a stat is levelled up
type UpgradeEvent struct {
	ID    ecs.GameObjectID
	Stat  components.StatKind
	Level int
}

// Type returns the event type
func (e UpgradeEvent) Type() ecs.EventType {
	return EventUpgrade
}

// EffectsEvent is emitted when an effect is applied to a game object
type EffectsEvent struct {
	ID       ecs.GameObjectID
	Stat     components.StatKind
	Value    float64
	Duration float64 // zero for instant effects
}

// Type returns the event type
func (e EffectsEvent) Type() ecs.EventType {
	return EventEffects
}

// ItemPickupEvent is emitted when an item is added to an inventory
type ItemPickupEvent struct {
	Owner ecs.GameObjectID
	Item  ecs.GameObjectID
}

// Type returns the event type
func (e ItemPickupEvent) Type() ecs.EventType {
	return EventItemPickup
}
