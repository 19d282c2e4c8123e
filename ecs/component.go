package ecs

import "reflect"

// Component is the base interface for all components
type Component interface{}

// ComponentMap stores a game object's components by their concrete type
type ComponentMap map[reflect.Type]Component

// BodyComponent is implemented by components that give their game object a
// body in the physics space
type BodyComponent interface {
	BodySize() (width, height float64)
}

// IndicatorBar is implemented by components that are drawn as a bar above
// their game object
type IndicatorBar interface {
	HasIndicatorBar() bool
}

// TypeOf returns the key a component of type T is stored under
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
