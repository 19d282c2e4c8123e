package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hades-rogue/ecs"
)

func TestSpace_CellConversion(t *testing.T) {
	s := NewSpace(10, 10, 16)
	assert.Equal(t, ecs.Vec2{X: 40, Y: 8}, s.CellToWorld(ecs.Cell{X: 2, Y: 0}))
	assert.Equal(t, ecs.Cell{X: 2, Y: 0}, s.WorldToCell(ecs.Vec2{X: 40, Y: 8}))
	assert.Equal(t, ecs.Cell{X: -1, Y: -1}, s.WorldToCell(ecs.Vec2{X: -0.5, Y: -8}))
}

func TestSpace_Bodies(t *testing.T) {
	s := NewSpace(10, 10, 16)
	s.AddBody(1, ecs.Vec2{X: 8, Y: 8}, 12, 12)
	s.AddBody(2, ecs.Vec2{X: 40, Y: 40}, 12, 12)
	assert.Equal(t, 2, s.BodyCount())

	pos, ok := s.Position(1)
	require.True(t, ok)
	assert.Equal(t, ecs.Vec2{X: 8, Y: 8}, pos)

	s.RemoveBody(1)
	s.RemoveBody(1)
	_, ok = s.Position(1)
	assert.False(t, ok)
	assert.Equal(t, 1, s.BodyCount())
}

func TestSpace_MoveFreely(t *testing.T) {
	s := NewSpace(10, 10, 16)
	s.AddBody(1, ecs.Vec2{X: 40, Y: 40}, 12, 12)

	pos, hit := s.Move(1, ecs.Vec2{X: 5, Y: -3})
	assert.False(t, hit)
	assert.InDelta(t, 45, pos.X, 1e-9)
	assert.InDelta(t, 37, pos.Y, 1e-9)
}

func TestSpace_MoveStopsAtWall(t *testing.T) {
	s := NewSpace(10, 10, 16)
	s.AddWall(ecs.Cell{X: 2, Y: 0})
	s.AddBody(1, ecs.Vec2{X: 8, Y: 8}, 12, 12)

	pos, hit := s.Move(1, ecs.Vec2{X: 30})
	assert.True(t, hit)
	// The body's right edge ends flush with the wall's left edge at x=32
	assert.InDelta(t, 26, pos.X, 1e-9)
	assert.InDelta(t, 8, pos.Y, 1e-9)
}

func TestSpace_MoveUnknownBody(t *testing.T) {
	s := NewSpace(4, 4, 16)
	_, hit := s.Move(9, ecs.Vec2{X: 1})
	assert.False(t, hit)
}
