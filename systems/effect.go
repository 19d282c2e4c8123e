package systems

import (
	"fmt"

	"hades-rogue/components"
	"hades-rogue/ecs"
)

// EffectSystem applies instant and timed changes to stats
type EffectSystem struct {
	registry *ecs.Registry
}

// NewEffectSystem creates a new effect system
func NewEffectSystem(r *ecs.Registry) *EffectSystem {
	return &EffectSystem{registry: r}
}

// stat returns the stat of a kind owned by a game object
func stat(r *ecs.Registry, id ecs.GameObjectID, kind components.StatKind) (*components.Stat, error) {
	typ, ok := components.StatType(kind)
	if !ok {
		return nil, fmt.Errorf("unknown stat %q", kind)
	}
	c, err := r.Component(id, typ)
	if err != nil {
		return nil, err
	}
	return c.(components.StatComponent).Base(), nil
}

// ApplyInstantEffect adds value to a stat. It reports false without changing
// anything when the stat is already full.
func (s *EffectSystem) ApplyInstantEffect(id ecs.GameObjectID, kind components.StatKind, value float64) (bool, error) {
	st, err := stat(s.registry, id, kind)
	if err != nil {
		return false, err
	}
	if st.Value() >= st.MaxValue() {
		return false, nil
	}
	st.SetValue(st.Value() + value)
	s.registry.Events().Emit(EffectsEvent{ID: id, Stat: kind, Value: value})
	return true, nil
}

// ApplyStatusEffect raises a stat's max and value for duration seconds. It
// reports false when the stat already has an effect running.
func (s *EffectSystem) ApplyStatusEffect(id ecs.GameObjectID, kind components.StatKind, value, duration float64) (bool, error) {
	st, err := stat(s.registry, id, kind)
	if err != nil {
		return false, err
	}
	if !st.ApplyEffect(value, duration) {
		return false, nil
	}
	s.registry.Events().Emit(EffectsEvent{ID: id, Stat: kind, Value: value, Duration: duration})
	return true, nil
}

// Update ticks every running status effect, reverting those that expired
func (s *EffectSystem) Update(dt float64) {
	for _, kind := range []components.StatKind{
		components.StatHealth,
		components.StatArmour,
		components.StatArmourRegen,
		components.StatMovementForce,
	} {
		typ, _ := components.StatType(kind)
		for _, found := range s.registry.FindComponents(typ) {
			found[0].(components.StatComponent).Base().TickEffect(dt)
		}
	}
}
