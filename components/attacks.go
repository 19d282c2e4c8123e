package components

// AttackAlgorithm is one way a game object can attack
type AttackAlgorithm int

const (
	AttackAreaOfEffect AttackAlgorithm = iota
	AttackMelee
	AttackRanged
)

func (a AttackAlgorithm) String() string {
	switch a {
	case AttackAreaOfEffect:
		return "area_of_effect"
	case AttackMelee:
		return "melee"
	case AttackRanged:
		return "ranged"
	}
	return "unknown"
}

// AttackAlgorithmByName parses the template name of an attack
func AttackAlgorithmByName(name string) (AttackAlgorithm, bool) {
	for _, a := range []AttackAlgorithm{AttackAreaOfEffect, AttackMelee, AttackRanged} {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// Attacks lists the attacks a game object can cycle through
type Attacks struct {
	Algorithms []AttackAlgorithm
	State      int
}

// NewAttacks creates an attacks component selecting the first algorithm
func NewAttacks(algorithms ...AttackAlgorithm) *Attacks {
	return &Attacks{Algorithms: algorithms}
}

// Current returns the selected algorithm
func (a *Attacks) Current() (AttackAlgorithm, bool) {
	if a.State < 0 || a.State >= len(a.Algorithms) {
		return 0, false
	}
	return a.Algorithms[a.State], true
}
