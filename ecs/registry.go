package ecs

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
)

// Registry owns every game object's components, the registered systems and
// the set of wall cells
type Registry struct {
	nextID     GameObjectID
	components map[GameObjectID]ComponentMap
	positions  map[GameObjectID]Vec2
	bodies     mapset.Set[GameObjectID]
	// Systems keyed by concrete type, updated in registration order
	systems     map[reflect.Type]System
	systemOrder []reflect.Type
	walls       mapset.Set[Cell]
	space       Space
	events      *EventManager
	log         *zap.Logger
}

// NewRegistry creates an empty registry. space and log may be nil.
func NewRegistry(space Space, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		components: make(map[GameObjectID]ComponentMap),
		positions:  make(map[GameObjectID]Vec2),
		bodies:     mapset.New[GameObjectID](),
		systems:    make(map[reflect.Type]System),
		walls:      mapset.New[Cell](),
		space:      space,
		events:     NewEventManager(),
		log:        log,
	}
}

// CreateGameObject stores the components under a new ID. When two components
// share a type the later one wins. Objects carrying a BodyComponent are added
// to the physics space at pos.
func (r *Registry) CreateGameObject(pos Vec2, components ...Component) GameObjectID {
	id := r.nextID
	r.nextID++

	componentMap := make(ComponentMap, len(components))
	var body BodyComponent
	for _, c := range components {
		if c == nil {
			continue
		}
		componentMap[reflect.TypeOf(c)] = c
		if b, ok := c.(BodyComponent); ok {
			body = b
		}
	}
	r.components[id] = componentMap
	r.positions[id] = pos

	if body != nil && r.space != nil {
		w, h := body.BodySize()
		r.space.AddBody(id, pos, w, h)
		r.bodies.Put(id)
	}

	r.log.Debug("created game object",
		zap.Int("id", int(id)),
		zap.Int("components", len(componentMap)),
		zap.Stringer("position", pos),
	)
	r.events.Emit(GameObjectCreatedEvent{ID: id, Position: pos})
	return id
}

// DeleteGameObject removes a game object, its components and its physics body
func (r *Registry) DeleteGameObject(id GameObjectID) error {
	if _, ok := r.components[id]; !ok {
		return fmt.Errorf("delete game object %d: %w", id, ErrNotRegistered)
	}

	delete(r.components, id)
	delete(r.positions, id)
	if r.bodies.Has(id) {
		r.space.RemoveBody(id)
		r.bodies.Remove(id)
	}

	r.log.Debug("deleted game object", zap.Int("id", int(id)))
	r.events.Emit(GameObjectDeletedEvent{ID: id})
	return nil
}

// Exists reports whether the game object is registered
func (r *Registry) Exists(id GameObjectID) bool {
	_, ok := r.components[id]
	return ok
}

// GameObjectCount returns the number of live game objects
func (r *Registry) GameObjectCount() int {
	return len(r.components)
}

// GameObjects returns the live IDs in ascending order
func (r *Registry) GameObjects() []GameObjectID {
	return slices.Sorted(maps.Keys(r.components))
}

// Position returns where a game object currently is
func (r *Registry) Position(id GameObjectID) (Vec2, error) {
	pos, ok := r.positions[id]
	if !ok {
		return Vec2{}, fmt.Errorf("position of game object %d: %w", id, ErrNotRegistered)
	}
	return pos, nil
}

// SetPosition records a game object's new position
func (r *Registry) SetPosition(id GameObjectID, pos Vec2) error {
	if _, ok := r.positions[id]; !ok {
		return fmt.Errorf("set position of game object %d: %w", id, ErrNotRegistered)
	}
	r.positions[id] = pos
	return nil
}

// Component looks up a game object's component by its type
func (r *Registry) Component(id GameObjectID, typ reflect.Type) (Component, error) {
	c, ok := r.components[id][typ]
	if !ok {
		return nil, fmt.Errorf("game object %d with component %s: %w", id, typ, ErrNotRegistered)
	}
	return c, nil
}

// GetComponent returns the game object's component of type T
func GetComponent[T Component](r *Registry, id GameObjectID) (T, error) {
	c, err := r.Component(id, reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return c.(T), nil
}

// HasComponent reports whether the game object has a component of type T
func HasComponent[T Component](r *Registry, id GameObjectID) bool {
	_, ok := r.components[id][reflect.TypeFor[T]()]
	return ok
}

// FindComponents yields every game object that owns all of the given types,
// paired with those components in the order the types were given. Objects
// are visited in ascending ID order.
func (r *Registry) FindComponents(types ...reflect.Type) iter.Seq2[GameObjectID, []Component] {
	return func(yield func(GameObjectID, []Component) bool) {
		for _, id := range r.GameObjects() {
			componentMap, ok := r.components[id]
			if !ok {
				continue
			}
			found := make([]Component, 0, len(types))
			for _, typ := range types {
				c, ok := componentMap[typ]
				if !ok {
					break
				}
				found = append(found, c)
			}
			if len(found) != len(types) {
				continue
			}
			if !yield(id, found) {
				return
			}
		}
	}
}

// Find yields every game object with a component of type A
func Find[A Component](r *Registry) iter.Seq2[GameObjectID, A] {
	return func(yield func(GameObjectID, A) bool) {
		for id, found := range r.FindComponents(reflect.TypeFor[A]()) {
			if !yield(id, found[0].(A)) {
				return
			}
		}
	}
}

// Each2 calls fn for every game object with components of both type A and B
func Each2[A, B Component](r *Registry, fn func(GameObjectID, A, B)) {
	for id, found := range r.FindComponents(reflect.TypeFor[A](), reflect.TypeFor[B]()) {
		fn(id, found[0].(A), found[1].(B))
	}
}

// AddSystem constructs a system bound to this registry and stores it. Only one
// system of each type may be registered.
func AddSystem[T System](r *Registry, ctor func(*Registry) T) (T, error) {
	typ := reflect.TypeFor[T]()
	if _, ok := r.systems[typ]; ok {
		var zero T
		return zero, fmt.Errorf("add system %s: %w", typ, ErrAlreadyRegistered)
	}

	sys := ctor(r)
	r.systems[typ] = sys
	r.systemOrder = append(r.systemOrder, typ)
	r.log.Debug("added system", zap.Stringer("system", typ))
	return sys, nil
}

// GetSystem returns the registered system of type T
func GetSystem[T System](r *Registry) (T, error) {
	typ := reflect.TypeFor[T]()
	sys, ok := r.systems[typ]
	if !ok {
		var zero T
		return zero, fmt.Errorf("get system %s: %w", typ, ErrNotRegistered)
	}
	return sys.(T), nil
}

// Update runs every system once in registration order
func (r *Registry) Update(dt float64) {
	for _, typ := range r.systemOrder {
		r.systems[typ].Update(dt)
	}
}

// AddWall records a wall cell and adds it to the physics space as a static body
func (r *Registry) AddWall(cell Cell) {
	if r.walls.Has(cell) {
		return
	}
	r.walls.Put(cell)
	if r.space != nil {
		r.space.AddWall(cell)
	}
}

// IsWall reports whether a wall was registered at cell
func (r *Registry) IsWall(cell Cell) bool {
	return r.walls.Has(cell)
}

// WallCount returns the number of registered walls
func (r *Registry) WallCount() int {
	return r.walls.Size()
}

// Space returns the physics collaborator, which may be nil
func (r *Registry) Space() Space {
	return r.space
}

// Events returns the registry's event manager
func (r *Registry) Events() *EventManager {
	return r.events
}

// Logger returns the logger systems should log through
func (r *Registry) Logger() *zap.Logger {
	return r.log
}
