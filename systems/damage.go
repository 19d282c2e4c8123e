package systems

import (
	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/ecs"
)

// DamageSystem applies damage to health and armour and removes the dead
type DamageSystem struct {
	registry *ecs.Registry
	// players already reported dead
	mourned map[ecs.GameObjectID]bool
}

// NewDamageSystem creates a new damage system
func NewDamageSystem(r *ecs.Registry) *DamageSystem {
	return &DamageSystem{registry: r, mourned: make(map[ecs.GameObjectID]bool)}
}

// DealDamage damages the armour and carries the excess over to the health
func (s *DamageSystem) DealDamage(id ecs.GameObjectID, damage float64) error {
	health, err := ecs.GetComponent[*components.Health](s.registry, id)
	if err != nil {
		return err
	}

	absorbed := 0.0
	armour, err := ecs.GetComponent[*components.Armour](s.registry, id)
	if err == nil {
		absorbed = armour.Value()
		armour.SetValue(armour.Value() - damage)
	}
	health.SetValue(health.Value() - max(damage-absorbed, 0))

	event := DamageEvent{Target: id, Damage: damage, Health: health.Value()}
	if armour != nil {
		event.Armour = armour.Value()
	}
	s.registry.Logger().Debug("dealt damage",
		zap.Int("target", int(id)),
		zap.Float64("damage", damage),
		zap.Float64("health", event.Health),
	)
	s.registry.Events().Emit(event)
	return nil
}

// Update deletes every non-player game object whose health has run out
func (s *DamageSystem) Update(float64) {
	var dead []ecs.GameObjectID
	for id, health := range ecs.Find[*components.Health](s.registry) {
		if health.Value() <= 0 {
			dead = append(dead, id)
		}
	}

	for _, id := range dead {
		player := ecs.HasComponent[*components.PlayerComponent](s.registry, id)
		if player {
			if s.mourned[id] {
				continue
			}
			s.mourned[id] = true
		} else if err := s.registry.DeleteGameObject(id); err != nil {
			continue
		}
		s.registry.Events().Emit(DeathEvent{ID: id, Player: player})
	}
}
