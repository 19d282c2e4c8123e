package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ value int }

type armour struct{ value int }

type body struct{ w, h float64 }

func (b *body) BodySize() (float64, float64) { return b.w, b.h }

// recordingSpace remembers every call the registry makes
type recordingSpace struct {
	bodies map[GameObjectID]Vec2
	walls  []Cell
}

func newRecordingSpace() *recordingSpace {
	return &recordingSpace{bodies: make(map[GameObjectID]Vec2)}
}

func (s *recordingSpace) AddBody(id GameObjectID, pos Vec2, _, _ float64) { s.bodies[id] = pos }
func (s *recordingSpace) RemoveBody(id GameObjectID) { delete(s.bodies, id) }
func (s *recordingSpace) AddWall(cell Cell) { s.walls = append(s.walls, cell) }

type counterSystem struct {
	registry *Registry
	ticks    []float64
	log      *[]string
}

func (s *counterSystem) Update(dt float64) {
	s.ticks = append(s.ticks, dt)
	if s.log != nil {
		*s.log = append(*s.log, "counter")
	}
}

type otherSystem struct{ log *[]string }

func (s *otherSystem) Update(float64) { *s.log = append(*s.log, "other") }

func TestRegistry_CreateAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry(nil, nil)
	assert.Equal(t, GameObjectID(0), r.CreateGameObject(Vec2{}))
	assert.Equal(t, GameObjectID(1), r.CreateGameObject(Vec2{}, &health{}))
	require.NoError(t, r.DeleteGameObject(1))
	assert.Equal(t, GameObjectID(2), r.CreateGameObject(Vec2{}))
	assert.Equal(t, 2, r.GameObjectCount())
}

func TestRegistry_GetComponent(t *testing.T) {
	r := NewRegistry(nil, nil)
	h := &health{value: 100}
	id := r.CreateGameObject(Vec2{}, h)

	got, err := GetComponent[*health](r, id)
	require.NoError(t, err)
	assert.Same(t, h, got)

	assert.True(t, HasComponent[*health](r, id))
	assert.False(t, HasComponent[*armour](r, id))
	_, err = GetComponent[*armour](r, id)
	assert.ErrorIs(t, err, ErrNotRegistered)

	assert.False(t, HasComponent[*health](r, 99))
	_, err = GetComponent[*health](r, 99)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegistry_DuplicateComponentLastWins(t *testing.T) {
	r := NewRegistry(nil, nil)
	id := r.CreateGameObject(Vec2{}, &health{value: 1}, &health{value: 2})
	got, err := GetComponent[*health](r, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.value)
}

func TestRegistry_DeleteGameObject(t *testing.T) {
	space := newRecordingSpace()
	r := NewRegistry(space, nil)
	id := r.CreateGameObject(Vec2{X: 3, Y: 4}, &health{}, &body{w: 1, h: 1})
	require.Contains(t, space.bodies, id)

	require.NoError(t, r.DeleteGameObject(id))
	assert.False(t, r.Exists(id))
	assert.False(t, HasComponent[*health](r, id))
	assert.NotContains(t, space.bodies, id)
	_, err := r.Position(id)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegistry_DeleteUnknownLeavesRegistryUnchanged(t *testing.T) {
	r := NewRegistry(nil, nil)
	id := r.CreateGameObject(Vec2{}, &health{})

	assert.ErrorIs(t, r.DeleteGameObject(42), ErrNotRegistered)
	assert.Equal(t, 1, r.GameObjectCount())
	assert.True(t, HasComponent[*health](r, id))

	require.NoError(t, r.DeleteGameObject(id))
	assert.ErrorIs(t, r.DeleteGameObject(id), ErrNotRegistered)
}

func TestRegistry_OnlyBodiesReachTheSpace(t *testing.T) {
	space := newRecordingSpace()
	r := NewRegistry(space, nil)
	plain := r.CreateGameObject(Vec2{X: 1}, &health{})
	kinematic := r.CreateGameObject(Vec2{X: 2, Y: 5}, &body{w: 1, h: 1})

	assert.NotContains(t, space.bodies, plain)
	assert.Equal(t, Vec2{X: 2, Y: 5}, space.bodies[kinematic])
	require.NoError(t, r.DeleteGameObject(plain))
	assert.Len(t, space.bodies, 1)
}

func TestRegistry_Positions(t *testing.T) {
	r := NewRegistry(nil, nil)
	id := r.CreateGameObject(Vec2{X: 1, Y: 2})

	pos, err := r.Position(id)
	require.NoError(t, err)
	assert.Equal(t, Vec2{X: 1, Y: 2}, pos)

	require.NoError(t, r.SetPosition(id, Vec2{X: 5, Y: 6}))
	pos, _ = r.Position(id)
	assert.Equal(t, Vec2{X: 5, Y: 6}, pos)
	assert.ErrorIs(t, r.SetPosition(7, Vec2{}), ErrNotRegistered)
}

func TestRegistry_FindComponents(t *testing.T) {
	r := NewRegistry(nil, nil)
	both := r.CreateGameObject(Vec2{}, &health{value: 1}, &armour{value: 2})
	r.CreateGameObject(Vec2{}, &health{value: 3})
	r.CreateGameObject(Vec2{}, &armour{value: 4})
	alsoBoth := r.CreateGameObject(Vec2{}, &armour{value: 6}, &health{value: 5})

	var ids []GameObjectID
	for id, found := range r.FindComponents(TypeOf[*health](), TypeOf[*armour]()) {
		ids = append(ids, id)
		require.Len(t, found, 2)
		assert.IsType(t, &health{}, found[0])
		assert.IsType(t, &armour{}, found[1])
	}
	assert.Equal(t, []GameObjectID{both, alsoBoth}, ids)

	var sum int
	Each2(r, func(_ GameObjectID, h *health, a *armour) { sum += h.value + a.value })
	assert.Equal(t, 1+2+5+6, sum)

	var healths []int
	for _, h := range Find[*health](r) {
		healths = append(healths, h.value)
	}
	assert.Equal(t, []int{1, 3, 5}, healths)
}

func TestRegistry_FindComponentsEmpty(t *testing.T) {
	r := NewRegistry(nil, nil)
	for range r.FindComponents(TypeOf[*health]()) {
		t.Fatal("unexpected result from empty registry")
	}

	r.CreateGameObject(Vec2{}, &health{})
	for range r.FindComponents(TypeOf[*health](), TypeOf[*armour]()) {
		t.Fatal("no game object owns both components")
	}
}

func TestRegistry_FindComponentsStopsEarly(t *testing.T) {
	r := NewRegistry(nil, nil)
	for range 5 {
		r.CreateGameObject(Vec2{}, &health{})
	}
	n := 0
	for range Find[*health](r) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestRegistry_FindComponentsToleratesDeletion(t *testing.T) {
	r := NewRegistry(nil, nil)
	for range 4 {
		r.CreateGameObject(Vec2{}, &health{})
	}
	var seen []GameObjectID
	for id := range Find[*health](r) {
		seen = append(seen, id)
		if id == 0 {
			require.NoError(t, r.DeleteGameObject(1))
		}
	}
	assert.Equal(t, []GameObjectID{0, 2, 3}, seen)
}

func TestRegistry_Systems(t *testing.T) {
	r := NewRegistry(nil, nil)
	_, err := GetSystem[*counterSystem](r)
	assert.ErrorIs(t, err, ErrNotRegistered)

	sys, err := AddSystem(r, func(r *Registry) *counterSystem { return &counterSystem{registry: r} })
	require.NoError(t, err)
	assert.Same(t, r, sys.registry)

	_, err = AddSystem(r, func(r *Registry) *counterSystem { return &counterSystem{registry: r} })
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	got, err := GetSystem[*counterSystem](r)
	require.NoError(t, err)
	assert.Same(t, sys, got)

	r.Update(0.5)
	r.Update(0.25)
	assert.Equal(t, []float64{0.5, 0.25}, sys.ticks)
}

func TestRegistry_UpdateRunsInRegistrationOrder(t *testing.T) {
	var order []string
	r := NewRegistry(nil, nil)
	_, err := AddSystem(r, func(*Registry) *otherSystem { return &otherSystem{log: &order} })
	require.NoError(t, err)
	_, err = AddSystem(r, func(*Registry) *counterSystem { return &counterSystem{log: &order} })
	require.NoError(t, err)

	r.Update(1)
	r.Update(1)
	assert.Equal(t, []string{"other", "counter", "other", "counter"}, order)
}

func TestRegistry_Walls(t *testing.T) {
	space := newRecordingSpace()
	r := NewRegistry(space, nil)
	r.AddWall(Cell{1, 2})
	r.AddWall(Cell{3, 4})
	r.AddWall(Cell{1, 2})

	assert.True(t, r.IsWall(Cell{1, 2}))
	assert.False(t, r.IsWall(Cell{2, 2}))
	assert.Equal(t, 2, r.WallCount())
	assert.Equal(t, []Cell{{1, 2}, {3, 4}}, space.walls)
}

func TestRegistry_Events(t *testing.T) {
	r := NewRegistry(nil, nil)
	var created, deleted []GameObjectID
	r.Events().Subscribe(EventGameObjectCreated, func(e Event) {
		created = append(created, e.(GameObjectCreatedEvent).ID)
	})
	r.Events().Subscribe(EventGameObjectDeleted, func(e Event) {
		deleted = append(deleted, e.(GameObjectDeletedEvent).ID)
	})

	a := r.CreateGameObject(Vec2{})
	b := r.CreateGameObject(Vec2{})
	require.NoError(t, r.DeleteGameObject(a))
	assert.Equal(t, []GameObjectID{a, b}, created)
	assert.Equal(t, []GameObjectID{a}, deleted)
}
