package systems

import (
	"fmt"
	"math"

	"hades-rogue/components"
	"hades-rogue/config"
	"hades-rogue/ecs"
)

const (
	// AttackRange is how far area of effect and melee attacks reach
	AttackRange = 3 * config.TileSize
	// AttackDamage is dealt by every successful hit
	AttackDamage = 10
	// BulletSpeed is the speed of a ranged attack's projectile
	BulletSpeed = 300
	// MeleeArc is the half-angle in degrees either side of the facing that melee hits
	MeleeArc = 45
)

// Bullet is the projectile produced by a ranged attack
type Bullet struct {
	Position ecs.Vec2
	Velocity ecs.Vec2
}

// AttackSystem performs the attacks selected in a game object's Attacks component
type AttackSystem struct {
	registry *ecs.Registry
}

// NewAttackSystem creates a new attack system
func NewAttackSystem(r *ecs.Registry) *AttackSystem {
	return &AttackSystem{registry: r}
}

// Update implements ecs.System
func (s *AttackSystem) Update(float64) {}

// NextAttack selects the next attack, stopping at the last one
func (s *AttackSystem) NextAttack(id ecs.GameObjectID) error {
	attacks, err := ecs.GetComponent[*components.Attacks](s.registry, id)
	if err != nil {
		return err
	}
	attacks.State = max(min(attacks.State+1, len(attacks.Algorithms)-1), 0)
	return nil
}

// PreviousAttack selects the previous attack, stopping at the first one
func (s *AttackSystem) PreviousAttack(id ecs.GameObjectID) error {
	attacks, err := ecs.GetComponent[*components.Attacks](s.registry, id)
	if err != nil {
		return err
	}
	attacks.State = max(attacks.State-1, 0)
	return nil
}

// DoAttack performs the selected attack against targets. Ranged attacks
// return the bullet to spawn instead of damaging anything.
func (s *AttackSystem) DoAttack(id ecs.GameObjectID, targets []ecs.GameObjectID) (*Bullet, error) {
	attacks, err := ecs.GetComponent[*components.Attacks](s.registry, id)
	if err != nil {
		return nil, err
	}
	algorithm, ok := attacks.Current()
	if !ok {
		return nil, fmt.Errorf("game object %d has no attack selected", id)
	}
	origin, err := s.registry.Position(id)
	if err != nil {
		return nil, err
	}
	facing := 0.0
	if kinematic, err := ecs.GetComponent[*components.KinematicComponent](s.registry, id); err == nil {
		facing = kinematic.Facing
	}

	switch algorithm {
	case components.AttackAreaOfEffect:
		return nil, s.damageWhere(origin, targets, func(ecs.Vec2) bool { return true })
	case components.AttackMelee:
		return nil, s.damageWhere(origin, targets, func(offset ecs.Vec2) bool {
			return math.Abs(angleDiff(degrees(offset), facing)) <= MeleeArc
		})
	case components.AttackRanged:
		rad := facing * math.Pi / 180
		return &Bullet{
			Position: origin,
			Velocity: ecs.Vec2{X: BulletSpeed * math.Cos(rad), Y: BulletSpeed * math.Sin(rad)},
		}, nil
	}
	return nil, fmt.Errorf("unknown attack algorithm %v", algorithm)
}

// damageWhere damages every target in range whose offset from origin passes the filter
func (s *AttackSystem) damageWhere(origin ecs.Vec2, targets []ecs.GameObjectID, accept func(ecs.Vec2) bool) error {
	damage, err := ecs.GetSystem[*DamageSystem](s.registry)
	if err != nil {
		return err
	}
	for _, target := range targets {
		pos, err := s.registry.Position(target)
		if err != nil {
			return err
		}
		offset := pos.Sub(origin)
		if math.Hypot(offset.X, offset.Y) > AttackRange || !accept(offset) {
			continue
		}
		if err := damage.DealDamage(target, AttackDamage); err != nil {
			return err
		}
	}
	return nil
}

func degrees(v ecs.Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// angleDiff returns a-b wrapped into (-180, 180]
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}
