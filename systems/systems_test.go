package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/ecs"
)

func newTestRegistry(t *testing.T) *ecs.Registry {
	t.Helper()
	r := ecs.NewRegistry(nil, zap.NewNop())
	require.NoError(t, RegisterAll(r))
	return r
}

func TestRegisterAll_Twice(t *testing.T) {
	r := newTestRegistry(t)
	assert.ErrorIs(t, RegisterAll(r), ecs.ErrAlreadyRegistered)
}

func TestDamageSystem_ArmourAbsorbsFirst(t *testing.T) {
	r := newTestRegistry(t)
	id := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(200, -1), components.NewArmour(100, -1))
	damage, err := ecs.GetSystem[*DamageSystem](r)
	require.NoError(t, err)

	var events []DamageEvent
	r.Events().Subscribe(EventDamage, func(e ecs.Event) { events = append(events, e.(DamageEvent)) })

	require.NoError(t, damage.DealDamage(id, 50))
	health, _ := ecs.GetComponent[*components.Health](r, id)
	armour, _ := ecs.GetComponent[*components.Armour](r, id)
	assert.Equal(t, 200.0, health.Value())
	assert.Equal(t, 50.0, armour.Value())

	require.NoError(t, damage.DealDamage(id, 80))
	assert.Equal(t, 170.0, health.Value())
	assert.Equal(t, 0.0, armour.Value())

	require.Len(t, events, 2)
	assert.Equal(t, 170.0, events[1].Health)
}

func TestDamageSystem_WithoutArmour(t *testing.T) {
	r := newTestRegistry(t)
	id := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(30, -1))
	damage, _ := ecs.GetSystem[*DamageSystem](r)

	require.NoError(t, damage.DealDamage(id, 50))
	health, _ := ecs.GetComponent[*components.Health](r, id)
	assert.Equal(t, 0.0, health.Value())
}

func TestDamageSystem_MissingHealth(t *testing.T) {
	r := newTestRegistry(t)
	id := r.CreateGameObject(ecs.Vec2{})
	damage, _ := ecs.GetSystem[*DamageSystem](r)
	assert.ErrorIs(t, damage.DealDamage(id, 10), ecs.ErrNotRegistered)
}

func TestDamageSystem_UpdateRemovesTheDead(t *testing.T) {
	r := newTestRegistry(t)
	enemy := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(10, -1), &components.EnemyComponent{})
	player := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(10, -1), &components.PlayerComponent{})
	damage, _ := ecs.GetSystem[*DamageSystem](r)

	var deaths []DeathEvent
	r.Events().Subscribe(EventDeath, func(e ecs.Event) { deaths = append(deaths, e.(DeathEvent)) })

	require.NoError(t, damage.DealDamage(enemy, 10))
	require.NoError(t, damage.DealDamage(player, 10))
	r.Update(0.1)
	r.Update(0.1)

	assert.False(t, r.Exists(enemy))
	assert.True(t, r.Exists(player))
	assert.Equal(t, []DeathEvent{{ID: enemy}, {ID: player, Player: true}}, deaths)
}

func TestArmourRegenSystem(t *testing.T) {
	r := newTestRegistry(t)
	armour := components.NewArmour(10, -1)
	armour.SetValue(5)
	r.CreateGameObject(ecs.Vec2{}, armour, components.NewArmourRegen(2, -1))

	r.Update(1.5)
	assert.Equal(t, 5.0, armour.Value())
	r.Update(0.5)
	assert.Equal(t, 6.0, armour.Value())
	r.Update(2)
	assert.Equal(t, 7.0, armour.Value())
}

func TestEffectSystem_InstantEffect(t *testing.T) {
	r := newTestRegistry(t)
	health := components.NewHealth(100, -1)
	id := r.CreateGameObject(ecs.Vec2{}, health)
	effects, _ := ecs.GetSystem[*EffectSystem](r)

	ok, err := effects.ApplyInstantEffect(id, components.StatHealth, 20)
	require.NoError(t, err)
	assert.False(t, ok, "full stats are left alone")

	health.SetValue(90)
	ok, err = effects.ApplyInstantEffect(id, components.StatHealth, 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 100.0, health.Value())

	_, err = effects.ApplyInstantEffect(id, components.StatArmour, 20)
	assert.ErrorIs(t, err, ecs.ErrNotRegistered)
}

func TestEffectSystem_StatusEffectExpires(t *testing.T) {
	r := newTestRegistry(t)
	force := components.NewMovementForce(1000, -1)
	id := r.CreateGameObject(ecs.Vec2{}, force)
	effects, _ := ecs.GetSystem[*EffectSystem](r)

	ok, err := effects.ApplyStatusEffect(id, components.StatMovementForce, 500, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1500.0, force.Value())

	ok, _ = effects.ApplyStatusEffect(id, components.StatMovementForce, 500, 2)
	assert.False(t, ok)

	r.Update(1)
	assert.Equal(t, 1500.0, force.Value())
	r.Update(1)
	assert.Equal(t, 1000.0, force.Value())
	assert.Equal(t, 1000.0, force.MaxValue())
	assert.Nil(t, force.Effect())
}

func TestUpgradeSystem(t *testing.T) {
	r := newTestRegistry(t)
	health := components.NewHealth(100, 2)
	id := r.CreateGameObject(ecs.Vec2{}, health, components.NewUpgrades(map[components.StatKind]components.Formula{
		components.StatHealth: func(level int) float64 { return float64(10 * (level + 1)) },
	}))
	upgrades, _ := ecs.GetSystem[*UpgradeSystem](r)

	var levels []int
	r.Events().Subscribe(EventUpgrade, func(e ecs.Event) { levels = append(levels, e.(UpgradeEvent).Level) })

	for range 3 {
		_, err := upgrades.UpgradeComponent(id, components.StatHealth)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2}, levels)
	assert.Equal(t, 130.0, health.MaxValue())
	assert.Equal(t, 130.0, health.Value())
}

func TestUpgradeSystem_NoFormula(t *testing.T) {
	r := newTestRegistry(t)
	id := r.CreateGameObject(ecs.Vec2{}, components.NewArmour(10, 5))
	upgrades, _ := ecs.GetSystem[*UpgradeSystem](r)

	ok, err := upgrades.UpgradeComponent(id, components.StatArmour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInventorySystem(t *testing.T) {
	r := newTestRegistry(t)
	health := components.NewHealth(100, -1)
	health.SetValue(40)
	owner := r.CreateGameObject(ecs.Vec2{}, health, components.NewInventory(2, 1))
	inventory, _ := ecs.GetSystem[*InventorySystem](r)

	potions := make([]ecs.GameObjectID, 3)
	for i := range potions {
		potions[i] = r.CreateGameObject(ecs.Vec2{}, &components.PotionComponent{Stat: components.StatHealth, Amount: 25})
	}

	require.NoError(t, inventory.AddItem(owner, potions[0]))
	require.NoError(t, inventory.AddItem(owner, potions[1]))
	assert.ErrorIs(t, inventory.AddItem(owner, potions[2]), ErrInventoryFull)
	assert.True(t, inventory.IsHeld(potions[0]))
	assert.False(t, inventory.IsHeld(potions[2]))

	used, err := inventory.UseItem(owner, 0)
	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, 65.0, health.Value())
	assert.False(t, r.Exists(potions[0]))

	_, err = inventory.RemoveItem(owner, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	item, err := inventory.RemoveItem(owner, 0)
	require.NoError(t, err)
	assert.Equal(t, potions[1], item)
	assert.False(t, inventory.IsHeld(item))

	_, err = inventory.RemoveItem(owner, 0)
	assert.ErrorIs(t, err, ErrInventoryEmpty)
}

func TestInventorySystem_UseAtFullHealthKeepsItem(t *testing.T) {
	r := newTestRegistry(t)
	owner := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(100, -1), components.NewInventory(1, 1))
	potion := r.CreateGameObject(ecs.Vec2{}, &components.PotionComponent{Stat: components.StatHealth, Amount: 25})
	inventory, _ := ecs.GetSystem[*InventorySystem](r)
	require.NoError(t, inventory.AddItem(owner, potion))

	used, err := inventory.UseItem(owner, 0)
	require.NoError(t, err)
	assert.False(t, used)
	assert.True(t, inventory.IsHeld(potion))
}

func TestMovementSystem_WithoutSpace(t *testing.T) {
	r := newTestRegistry(t)
	body := components.NewKinematicComponent(10, 10)
	body.Direction = ecs.Vec2{X: 0, Y: 2}
	id := r.CreateGameObject(ecs.Vec2{X: 5, Y: 5}, body, components.NewMovementForce(1000, -1))

	r.Update(0.5)
	pos, err := r.Position(id)
	require.NoError(t, err)
	assert.InDelta(t, 5, pos.X, 1e-9)
	assert.InDelta(t, 10, pos.Y, 1e-9)
	assert.InDelta(t, 90, body.Facing, 1e-9)

	body.Direction = ecs.Vec2{}
	r.Update(0.5)
	pos, _ = r.Position(id)
	assert.InDelta(t, 10, pos.Y, 1e-9)
	assert.Equal(t, ecs.Vec2{}, body.Velocity)
}

func TestAttackSystem(t *testing.T) {
	r := newTestRegistry(t)
	body := components.NewKinematicComponent(10, 10)
	attacker := r.CreateGameObject(ecs.Vec2{}, body,
		components.NewAttacks(components.AttackAreaOfEffect, components.AttackMelee, components.AttackRanged))
	behind := r.CreateGameObject(ecs.Vec2{X: -20}, components.NewHealth(100, -1))
	ahead := r.CreateGameObject(ecs.Vec2{X: 20}, components.NewHealth(100, -1))
	far := r.CreateGameObject(ecs.Vec2{X: 1000}, components.NewHealth(100, -1))
	attacks, _ := ecs.GetSystem[*AttackSystem](r)
	targets := []ecs.GameObjectID{behind, ahead, far}

	hp := func(id ecs.GameObjectID) float64 {
		h, _ := ecs.GetComponent[*components.Health](r, id)
		return h.Value()
	}

	bullet, err := attacks.DoAttack(attacker, targets)
	require.NoError(t, err)
	assert.Nil(t, bullet)
	assert.Equal(t, []float64{90, 90, 100}, []float64{hp(behind), hp(ahead), hp(far)})

	require.NoError(t, attacks.NextAttack(attacker))
	_, err = attacks.DoAttack(attacker, targets)
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 80, 100}, []float64{hp(behind), hp(ahead), hp(far)})

	require.NoError(t, attacks.NextAttack(attacker))
	require.NoError(t, attacks.NextAttack(attacker))
	bullet, err = attacks.DoAttack(attacker, targets)
	require.NoError(t, err)
	require.NotNil(t, bullet)
	assert.InDelta(t, BulletSpeed, bullet.Velocity.X, 1e-9)

	require.NoError(t, attacks.PreviousAttack(attacker))
	a, _ := ecs.GetComponent[*components.Attacks](r, attacker)
	assert.Equal(t, 1, a.State)
}

func TestAngleDiff(t *testing.T) {
	assert.InDelta(t, -20, angleDiff(350, 10), 1e-9)
	assert.InDelta(t, 180, angleDiff(180, 0), 1e-9)
	assert.InDelta(t, 90, angleDiff(45, -45), 1e-9)
}

func TestMessageLog(t *testing.T) {
	r := newTestRegistry(t)
	log := NewMessageLog(2)
	log.Attach(r.Events())

	id := r.CreateGameObject(ecs.Vec2{}, components.NewHealth(10, -1))
	damage, _ := ecs.GetSystem[*DamageSystem](r)
	require.NoError(t, damage.DealDamage(id, 4))
	r.Update(0)
	require.NoError(t, damage.DealDamage(id, 6))
	r.Update(0)

	recent := log.RecentMessages(5)
	require.Len(t, recent, 2)
	assert.Equal(t, "#0 dies", recent[0].Text)
	assert.Equal(t, MessageTypeCombat, recent[0].Type)

	log.Detach()
	log.Clear()
	r.Events().Emit(DeathEvent{ID: 9})
	assert.Empty(t, log.Messages)
}
