package components

// Formula computes the increase an upgrade gives at a level
type Formula func(level int) float64

// Upgrades holds the upgrade formula for each stat a game object may level
type Upgrades struct {
	Formulas map[StatKind]Formula
}

// NewUpgrades creates an upgrades component
func NewUpgrades(formulas map[StatKind]Formula) *Upgrades {
	if formulas == nil {
		formulas = make(map[StatKind]Formula)
	}
	return &Upgrades{Formulas: formulas}
}
