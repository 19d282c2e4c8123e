package systems

import (
	"math"

	"hades-rogue/components"
	"hades-rogue/ecs"
)

// mover is implemented by physics spaces that resolve collisions while moving
type mover interface {
	Move(id ecs.GameObjectID, delta ecs.Vec2) (ecs.Vec2, bool)
}

// MovementSystem moves kinematic game objects along their desired direction
type MovementSystem struct {
	registry *ecs.Registry
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(r *ecs.Registry) *MovementSystem {
	return &MovementSystem{registry: r}
}

// Update moves every kinematic object with a movement force by force/mass
// units per second, sliding along walls when the space supports it
func (s *MovementSystem) Update(dt float64) {
	space, _ := s.registry.Space().(mover)
	ecs.Each2(s.registry, func(id ecs.GameObjectID, body *components.KinematicComponent, force *components.MovementForce) {
		length := math.Hypot(body.Direction.X, body.Direction.Y)
		if length == 0 || body.Mass <= 0 {
			body.Velocity = ecs.Vec2{}
			return
		}

		speed := force.Value() / body.Mass
		body.Velocity = body.Direction.Scale(speed / length)
		body.Facing = math.Atan2(body.Direction.Y, body.Direction.X) * 180 / math.Pi
		delta := body.Velocity.Scale(dt)

		var pos ecs.Vec2
		if space != nil {
			pos, _ = space.Move(id, delta)
		} else {
			current, err := s.registry.Position(id)
			if err != nil {
				return
			}
			pos = current.Add(delta)
		}
		_ = s.registry.SetPosition(id, pos)
	})
}
