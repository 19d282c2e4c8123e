package components

import (
	"reflect"
	"strings"
)

// StatKind names a stat component in templates, upgrades and effects
type StatKind string

const (
	StatHealth        StatKind = "health"
	StatArmour        StatKind = "armour"
	StatArmourRegen   StatKind = "armour_regen"
	StatMovementForce StatKind = "movement_force"
)

// statTypes maps each stat kind to the component type it is stored under
var statTypes = map[StatKind]reflect.Type{
	StatHealth:        reflect.TypeFor[*Health](),
	StatArmour:        reflect.TypeFor[*Armour](),
	StatArmourRegen:   reflect.TypeFor[*ArmourRegen](),
	StatMovementForce: reflect.TypeFor[*MovementForce](),
}

// StatType returns the component type for a stat kind
func StatType(kind StatKind) (reflect.Type, bool) {
	typ, ok := statTypes[kind]
	return typ, ok
}

// StatKindByName returns the StatKind for a given name. The lookup is case-insensitive.
func StatKindByName(name string) (StatKind, bool) {
	kind := StatKind(strings.ToLower(strings.TrimSpace(name)))
	_, ok := statTypes[kind]
	return kind, ok
}

// NewStatComponent creates the stat component for a kind
func NewStatComponent(kind StatKind, value float64, maxLevel int) (StatComponent, bool) {
	switch kind {
	case StatHealth:
		return NewHealth(value, maxLevel), true
	case StatArmour:
		return NewArmour(value, maxLevel), true
	case StatArmourRegen:
		return NewArmourRegen(value, maxLevel), true
	case StatMovementForce:
		return NewMovementForce(value, maxLevel), true
	}
	return nil, false
}
