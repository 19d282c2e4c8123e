package systems

import (
	"hades-rogue/components"
	"hades-rogue/ecs"
)

// ArmourRegenSystem regenerates one armour point each time the cooldown elapses
type ArmourRegenSystem struct {
	registry *ecs.Registry
}

// NewArmourRegenSystem creates a new armour regen system
func NewArmourRegenSystem(r *ecs.Registry) *ArmourRegenSystem {
	return &ArmourRegenSystem{registry: r}
}

// Update advances every regen timer by dt
func (s *ArmourRegenSystem) Update(dt float64) {
	ecs.Each2(s.registry, func(_ ecs.GameObjectID, armour *components.Armour, regen *components.ArmourRegen) {
		regen.TimeSinceRegen += dt
		if regen.TimeSinceRegen >= regen.Value() {
			armour.SetValue(armour.Value() + 1)
			regen.TimeSinceRegen = 0
		}
	})
}
