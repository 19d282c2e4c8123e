package ecs

// Space is the physics collaborator told about bodies and static walls
type Space interface {
	AddBody(id GameObjectID, pos Vec2, width, height float64)
	RemoveBody(id GameObjectID)
	AddWall(cell Cell)
}
