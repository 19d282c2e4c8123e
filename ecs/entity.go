package ecs

import "fmt"

// GameObjectID identifies a game object within a registry. IDs start at 0
// and are never reused while the registry is alive.
type GameObjectID int

// Vec2 is a position or direction in world space
type Vec2 struct {
	X, Y float64
}

// Add returns v+o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) String() string { return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y) }

// Cell is an integer tile coordinate
type Cell struct {
	X, Y int
}
