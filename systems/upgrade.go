package systems

import (
	"hades-rogue/components"
	"hades-rogue/ecs"
)

// UpgradeSystem levels up stats using each game object's upgrade formulas
type UpgradeSystem struct {
	registry *ecs.Registry
}

// NewUpgradeSystem creates a new upgrade system
func NewUpgradeSystem(r *ecs.Registry) *UpgradeSystem {
	return &UpgradeSystem{registry: r}
}

// Update implements ecs.System
func (s *UpgradeSystem) Update(float64) {}

// UpgradeComponent levels up a stat. It reports false when the game object
// has no formula for the stat or the stat is already at its max level.
func (s *UpgradeSystem) UpgradeComponent(id ecs.GameObjectID, kind components.StatKind) (bool, error) {
	st, err := stat(s.registry, id, kind)
	if err != nil {
		return false, err
	}
	upgrades, err := ecs.GetComponent[*components.Upgrades](s.registry, id)
	if err != nil {
		return false, nil
	}
	formula, ok := upgrades.Formulas[kind]
	if !ok || !st.Upgradable() {
		return false, nil
	}

	st.Upgrade(formula(st.CurrentLevel()))
	s.registry.Events().Emit(UpgradeEvent{ID: id, Stat: kind, Level: st.CurrentLevel()})
	return true, nil
}
