package components

// Stat is a bounded value that can be levelled up and temporarily boosted
type Stat struct {
	value        float64
	maxValue     float64
	currentLevel int
	maxLevel     int
	effect       *StatusEffect
}

// StatusEffect records a temporary boost so it can be reverted
type StatusEffect struct {
	Value         float64
	Duration      float64
	Elapsed       float64
	OriginalValue float64
	OriginalMax   float64
}

// StatComponent is implemented by every component built on Stat
type StatComponent interface {
	Base() *Stat
}

// NewStat creates a stat that starts full
func NewStat(value float64, maxLevel int) Stat {
	return Stat{value: value, maxValue: value, maxLevel: maxLevel}
}

// Base returns the stat itself
func (s *Stat) Base() *Stat { return s }

// Value returns the current value
func (s *Stat) Value() float64 { return s.value }

// MaxValue returns the upper bound of the value
func (s *Stat) MaxValue() float64 { return s.maxValue }

// CurrentLevel returns how many upgrades have been applied
func (s *Stat) CurrentLevel() int { return s.currentLevel }

// MaxLevel returns the upgrade limit
func (s *Stat) MaxLevel() int { return s.maxLevel }

// SetValue sets the value clamped to [0, max]
func (s *Stat) SetValue(v float64) {
	s.value = max(0, min(v, s.maxValue))
}

// SetMaxValue changes the upper bound, clamping the value to it
func (s *Stat) SetMaxValue(v float64) {
	s.maxValue = v
	s.SetValue(s.value)
}

// Upgradable reports whether another level may be applied
func (s *Stat) Upgradable() bool {
	return s.currentLevel < s.maxLevel
}

// Upgrade raises the max and the value by diff and advances the level
func (s *Stat) Upgrade(diff float64) {
	s.maxValue += diff
	s.currentLevel++
	s.SetValue(s.value + diff)
}

// Effect returns the active status effect, if any
func (s *Stat) Effect() *StatusEffect { return s.effect }

// ApplyEffect boosts the max and the value by value for duration seconds.
// It fails when an effect is already active.
func (s *Stat) ApplyEffect(value, duration float64) bool {
	if s.effect != nil {
		return false
	}
	s.effect = &StatusEffect{
		Value:         value,
		Duration:      duration,
		OriginalValue: s.value,
		OriginalMax:   s.maxValue,
	}
	s.maxValue += value
	s.SetValue(s.value + value)
	return true
}

// TickEffect advances the active effect and reverts it once it expires
func (s *Stat) TickEffect(dt float64) (expired bool) {
	if s.effect == nil {
		return false
	}
	s.effect.Elapsed += dt
	if s.effect.Elapsed < s.effect.Duration {
		return false
	}
	s.maxValue = s.effect.OriginalMax
	s.SetValue(min(s.value, s.effect.OriginalValue))
	s.effect = nil
	return true
}

// Health is how much damage a game object can take
type Health struct{ Stat }

// NewHealth creates a health stat
func NewHealth(value float64, maxLevel int) *Health {
	return &Health{NewStat(value, maxLevel)}
}

// HasIndicatorBar implements ecs.IndicatorBar
func (*Health) HasIndicatorBar() bool { return true }

// Armour absorbs damage before health
type Armour struct{ Stat }

// NewArmour creates an armour stat
func NewArmour(value float64, maxLevel int) *Armour {
	return &Armour{NewStat(value, maxLevel)}
}

// HasIndicatorBar implements ecs.IndicatorBar
func (*Armour) HasIndicatorBar() bool { return true }

// ArmourRegen is the cooldown in seconds between armour points regenerating
type ArmourRegen struct {
	Stat
	TimeSinceRegen float64
}

// NewArmourRegen creates an armour regen stat
func NewArmourRegen(value float64, maxLevel int) *ArmourRegen {
	return &ArmourRegen{Stat: NewStat(value, maxLevel)}
}

// MovementForce is the force applied when a game object moves
type MovementForce struct{ Stat }

// NewMovementForce creates a movement force stat
func NewMovementForce(value float64, maxLevel int) *MovementForce {
	return &MovementForce{NewStat(value, maxLevel)}
}

// Money is the currency a game object carries
type Money struct {
	Amount int
}
