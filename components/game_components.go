package components

import "hades-rogue/ecs"

// NameComponent stores the display name for game objects
type NameComponent struct {
	Name string
}

// NewNameComponent creates a new name component
func NewNameComponent(name string) *NameComponent {
	return &NameComponent{
		Name: name,
	}
}

// PlayerComponent marks the game object controlled by the player
type PlayerComponent struct{}

// EnemyComponent marks hostile game objects
type EnemyComponent struct{}

// PotionComponent is a consumable that changes a stat when used
type PotionComponent struct {
	Stat   StatKind
	Amount float64
	// Duration in seconds; zero applies the amount instantly
	Duration float64
}

// KinematicComponent gives a game object a moving body in the physics space
type KinematicComponent struct {
	Width, Height float64
	Mass          float64
	// Direction is where the object wants to move; zero means stand still
	Direction ecs.Vec2
	// Facing is the angle in degrees the object last moved towards
	Facing   float64
	Velocity ecs.Vec2
}

// DefaultMass is used for bodies created without an explicit mass
const DefaultMass = 100

// NewKinematicComponent creates a body of the given size with the default mass
func NewKinematicComponent(width, height float64) *KinematicComponent {
	return &KinematicComponent{Width: width, Height: height, Mass: DefaultMass}
}

// BodySize implements ecs.BodyComponent
func (k *KinematicComponent) BodySize() (float64, float64) {
	return k.Width, k.Height
}
