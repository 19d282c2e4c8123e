package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hades-rogue/ecs"
)

func TestStat_SetValueClamps(t *testing.T) {
	s := NewStat(100, 3)
	s.SetValue(150)
	assert.Equal(t, 100.0, s.Value())
	s.SetValue(-5)
	assert.Equal(t, 0.0, s.Value())
	s.SetValue(42)
	assert.Equal(t, 42.0, s.Value())
}

func TestStat_Upgrade(t *testing.T) {
	s := NewStat(100, 2)
	s.SetValue(80)
	assert.True(t, s.Upgradable())

	s.Upgrade(20)
	assert.Equal(t, 120.0, s.MaxValue())
	assert.Equal(t, 100.0, s.Value())
	assert.Equal(t, 1, s.CurrentLevel())

	s.Upgrade(10)
	assert.False(t, s.Upgradable())
}

func TestStat_NoUpgradesWhenLimitIsNegative(t *testing.T) {
	s := NewStat(50, -1)
	assert.False(t, s.Upgradable())
}

func TestStat_StatusEffect(t *testing.T) {
	s := NewStat(100, 1)
	s.SetValue(60)
	assert.True(t, s.ApplyEffect(50, 10))
	assert.Equal(t, 150.0, s.MaxValue())
	assert.Equal(t, 110.0, s.Value())
	assert.False(t, s.ApplyEffect(5, 1), "only one effect at a time")

	assert.False(t, s.TickEffect(4))
	assert.NotNil(t, s.Effect())
	assert.True(t, s.TickEffect(6))
	assert.Nil(t, s.Effect())
	assert.Equal(t, 100.0, s.MaxValue())
	assert.Equal(t, 60.0, s.Value())
}

func TestStat_StatusEffectKeepsLowerValue(t *testing.T) {
	s := NewStat(100, 1)
	s.ApplyEffect(50, 1)
	s.SetValue(30)
	s.TickEffect(2)
	assert.Equal(t, 30.0, s.Value())
}

func TestStatKinds(t *testing.T) {
	for _, kind := range []StatKind{StatHealth, StatArmour, StatArmourRegen, StatMovementForce} {
		c, ok := NewStatComponent(kind, 10, 1)
		assert.True(t, ok, kind)
		typ, ok := StatType(kind)
		assert.True(t, ok, kind)
		assert.Equal(t, typ.String(), typeName(c))
	}

	kind, ok := StatKindByName(" Armour_Regen ")
	assert.True(t, ok)
	assert.Equal(t, StatArmourRegen, kind)
	_, ok = StatKindByName("mana")
	assert.False(t, ok)
}

func typeName(v any) string {
	switch v.(type) {
	case *Health:
		return "*components.Health"
	case *Armour:
		return "*components.Armour"
	case *ArmourRegen:
		return "*components.ArmourRegen"
	case *MovementForce:
		return "*components.MovementForce"
	}
	return ""
}

func TestAttacks_Current(t *testing.T) {
	a := NewAttacks(AttackMelee, AttackRanged)
	got, ok := a.Current()
	assert.True(t, ok)
	assert.Equal(t, AttackMelee, got)

	_, ok = NewAttacks().Current()
	assert.False(t, ok)

	parsed, ok := AttackAlgorithmByName("area_of_effect")
	assert.True(t, ok)
	assert.Equal(t, AttackAreaOfEffect, parsed)
}

func TestInventory_Capacity(t *testing.T) {
	inv := NewInventory(2, 3)
	assert.Equal(t, 6, inv.Capacity())
	assert.False(t, inv.Full())
	inv.Items = make([]ecs.GameObjectID, 6)
	assert.True(t, inv.Full())
}
