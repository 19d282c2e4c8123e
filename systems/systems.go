package systems

import (
	"fmt"

	"hades-rogue/ecs"
)

// RegisterAll adds every gameplay system to the registry in update order
func RegisterAll(r *ecs.Registry) error {
	steps := []func() error{
		func() error { _, err := ecs.AddSystem(r, NewMovementSystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewArmourRegenSystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewEffectSystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewAttackSystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewDamageSystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewInventorySystem); return err },
		func() error { _, err := ecs.AddSystem(r, NewUpgradeSystem); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("register systems: %w", err)
		}
	}
	return nil
}
