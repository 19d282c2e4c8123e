// Package physics implements the registry's physics collaborator on top of a
// resolv spatial hash.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"hades-rogue/ecs"
)

const (
	TagWall = "wall"
	TagBody = "body"
)

// Space tracks moving bodies and static walls in world coordinates. Body
// positions are the centre of the body.
type Space struct {
	space    *resolv.Space
	cellSize float64
	bodies   map[ecs.GameObjectID]*resolv.Object
}

// NewSpace creates a space covering a grid of width x height tiles
func NewSpace(width, height, cellSize int) *Space {
	return &Space{
		space:    resolv.NewSpace(width*cellSize, height*cellSize, cellSize, cellSize),
		cellSize: float64(cellSize),
		bodies:   make(map[ecs.GameObjectID]*resolv.Object),
	}
}

// CellToWorld returns the world position of a tile's centre
func (s *Space) CellToWorld(cell ecs.Cell) ecs.Vec2 {
	return ecs.Vec2{
		X: (float64(cell.X) + 0.5) * s.cellSize,
		Y: (float64(cell.Y) + 0.5) * s.cellSize,
	}
}

// WorldToCell returns the tile containing a world position
func (s *Space) WorldToCell(pos ecs.Vec2) ecs.Cell {
	return ecs.Cell{X: int(math.Floor(pos.X / s.cellSize)), Y: int(math.Floor(pos.Y / s.cellSize))}
}

// AddBody implements ecs.Space
func (s *Space) AddBody(id ecs.GameObjectID, pos ecs.Vec2, width, height float64) {
	if old, ok := s.bodies[id]; ok {
		s.space.Remove(old)
	}
	obj := resolv.NewObject(pos.X-width/2, pos.Y-height/2, width, height, TagBody)
	obj.Data = id
	s.space.Add(obj)
	s.bodies[id] = obj
}

// RemoveBody implements ecs.Space
func (s *Space) RemoveBody(id ecs.GameObjectID) {
	obj, ok := s.bodies[id]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.bodies, id)
}

// AddWall implements ecs.Space
func (s *Space) AddWall(cell ecs.Cell) {
	obj := resolv.NewObject(float64(cell.X)*s.cellSize, float64(cell.Y)*s.cellSize, s.cellSize, s.cellSize, TagWall)
	s.space.Add(obj)
}

// BodyCount returns the number of moving bodies
func (s *Space) BodyCount() int {
	return len(s.bodies)
}

// Position returns the centre of a body
func (s *Space) Position(id ecs.GameObjectID) (ecs.Vec2, bool) {
	obj, ok := s.bodies[id]
	if !ok {
		return ecs.Vec2{}, false
	}
	return ecs.Vec2{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}, true
}

// Move slides a body by delta one axis at a time, stopping it flush against
// any wall in the way. It returns the new centre and whether a wall was hit.
func (s *Space) Move(id ecs.GameObjectID, delta ecs.Vec2) (ecs.Vec2, bool) {
	obj, ok := s.bodies[id]
	if !ok {
		return ecs.Vec2{}, false
	}

	hit := false
	dx, dy := delta.X, delta.Y
	if dx != 0 {
		if c := obj.Check(dx, 0, TagWall); c != nil {
			dx = c.ContactWithObject(c.Objects[0]).X()
			hit = true
		}
		obj.X += dx
	}
	if dy != 0 {
		if c := obj.Check(0, dy, TagWall); c != nil {
			dy = c.ContactWithObject(c.Objects[0]).Y()
			hit = true
		}
		obj.Y += dy
	}
	obj.Update()

	pos, _ := s.Position(id)
	return pos, hit
}
