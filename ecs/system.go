package ecs

// System is singleton update logic bound to one registry
type System interface {
	// Update is called once per tick with the seconds since the last tick
	Update(dt float64)
}
