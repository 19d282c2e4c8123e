package screens

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/config"
	"hades-rogue/data"
	"hades-rogue/ecs"
	"hades-rogue/generation"
	"hades-rogue/physics"
	"hades-rogue/spawners"
	"hades-rogue/systems"
)

const (
	// EnemyGenerateInterval is how often in seconds a new enemy is attempted
	EnemyGenerateInterval = 1.0
	// EnemySightRange is how close in tiles the player must be for enemies to pursue
	EnemySightRange = 8
	// EnemyAttackCooldown is the delay in seconds between an enemy's hits
	EnemyAttackCooldown = 1.0
	// MessageLogSize is how many messages a session keeps
	MessageLogSize = 100
)

// Session owns the level being played and the registry driving it. Both the
// graphical and the terminal viewers render a session.
type Session struct {
	cfg       *config.Config
	log       *zap.Logger
	templates *data.TemplateManager
	generator *generation.MapGenerator
	rng       *rand.Rand

	Level    *spawners.Level
	Space    *physics.Space
	Messages *systems.MessageLog

	enemyTimer float64
	cooldowns  map[ecs.GameObjectID]float64
}

// NewSession creates a session; call Load to generate the first level
func NewSession(cfg *config.Config, templates *data.TemplateManager, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	seed := time.Now().UnixNano()
	if cfg.Generation.Seed != nil {
		seed = *cfg.Generation.Seed
	}
	return &Session{
		cfg:       cfg,
		log:       log,
		templates: templates,
		generator: generation.NewMapGenerator(
			generation.WithSeed(seed),
			generation.WithConstants(cfg.Generation.Constants),
			generation.WithBSPOptions(cfg.Generation.BSPOptions()),
			generation.WithLogger(log),
		),
		rng:      rand.New(rand.NewSource(seed)),
		Messages: systems.NewMessageLog(MessageLogSize),
	}
}

// Load generates a level and populates a fresh registry with it
func (s *Session) Load(level int) error {
	grid, constants, err := s.generator.CreateMap(level)
	if err != nil {
		return fmt.Errorf("load level %d: %w", level, err)
	}

	space := physics.NewSpace(constants.Width, constants.Height, s.cfg.Window.TileSize)
	registry := ecs.NewRegistry(space, s.log)
	if err := systems.RegisterAll(registry); err != nil {
		return err
	}
	s.Messages.Attach(registry.Events())
	registry.Events().Subscribe(ecs.EventGameObjectDeleted, func(e ecs.Event) {
		delete(s.cooldowns, e.(ecs.GameObjectDeletedEvent).ID)
	})

	l, err := spawners.LoadLevel(registry, grid, constants, s.templates, s.rng, spawners.Options{
		TileSize:               s.cfg.Window.TileSize,
		EnemyRetryCount:        s.cfg.Game.EnemyRetryCount,
		EnemyMinPlayerDistance: s.cfg.Game.EnemyMinPlayerDistance,
	})
	if err != nil {
		s.Messages.Detach()
		return fmt.Errorf("load level %d: %w", level, err)
	}

	s.Level, s.Space = l, space
	s.enemyTimer = 0
	s.cooldowns = make(map[ecs.GameObjectID]float64)
	s.Messages.Add(fmt.Sprintf("Entered level %d", level), systems.MessageTypeNormal)
	return nil
}

// Regenerate loads a new map for the current level
func (s *Session) Regenerate() error {
	return s.Load(s.Level.Constants.Level)
}

// NextLevel loads the level after the current one
func (s *Session) NextLevel() error {
	return s.Load(s.Level.Constants.Level + 1)
}

// Registry returns the current level's registry
func (s *Session) Registry() *ecs.Registry {
	return s.Level.Registry
}

// Tick advances the game by dt seconds
func (s *Session) Tick(dt float64) error {
	if s.PlayerDead() {
		return nil
	}
	r := s.Registry()

	s.pursue()
	r.Update(dt)
	s.pickUpPotions()
	if err := s.enemyContact(dt); err != nil {
		return err
	}

	s.enemyTimer += dt
	if s.enemyTimer >= EnemyGenerateInterval {
		s.enemyTimer = 0
		if _, _, err := s.Level.GenerateEnemy(); err != nil {
			return err
		}
	}
	return nil
}

// SetPlayerDirection sets where the player wants to move; zero stops it
func (s *Session) SetPlayerDirection(dir ecs.Vec2) {
	if body, err := ecs.GetComponent[*components.KinematicComponent](s.Registry(), s.Level.Player); err == nil {
		body.Direction = dir
	}
}

// PlayerAttack performs the player's selected attack against every enemy
func (s *Session) PlayerAttack() error {
	attacks, err := ecs.GetSystem[*systems.AttackSystem](s.Registry())
	if err != nil {
		return err
	}
	var targets []ecs.GameObjectID
	for id := range ecs.Find[*components.EnemyComponent](s.Registry()) {
		targets = append(targets, id)
	}
	bullet, err := attacks.DoAttack(s.Level.Player, targets)
	if err != nil {
		return err
	}
	if bullet != nil {
		s.fireBullet(bullet, targets)
	}
	return nil
}

// fireBullet traces a ranged attack through the grid, damaging the first enemy hit
func (s *Session) fireBullet(b *systems.Bullet, targets []ecs.GameObjectID) {
	damage, err := ecs.GetSystem[*systems.DamageSystem](s.Registry())
	if err != nil {
		return
	}
	const step = 1.0 / 60
	half := float64(s.cfg.Window.TileSize) / 2
	pos := b.Position
	for range 120 {
		pos = pos.Add(b.Velocity.Scale(step))
		cell := s.Level.WorldToCell(pos)
		if s.Registry().IsWall(ecs.Cell{X: cell.X, Y: cell.Y}) || !s.Level.Grid.InBounds(cell) {
			return
		}
		for _, id := range targets {
			target, err := s.Registry().Position(id)
			if err != nil {
				continue
			}
			if math.Abs(target.X-pos.X) <= half && math.Abs(target.Y-pos.Y) <= half {
				if err := damage.DealDamage(id, systems.AttackDamage); err != nil {
					s.log.Warn("bullet damage failed", zap.Error(err))
				}
				return
			}
		}
	}
}

// CycleAttack selects the next (forward) or previous attack
func (s *Session) CycleAttack(forward bool) error {
	attacks, err := ecs.GetSystem[*systems.AttackSystem](s.Registry())
	if err != nil {
		return err
	}
	if forward {
		return attacks.NextAttack(s.Level.Player)
	}
	return attacks.PreviousAttack(s.Level.Player)
}

// UseItem uses the player's inventory item at index
func (s *Session) UseItem(index int) error {
	inventory, err := ecs.GetSystem[*systems.InventorySystem](s.Registry())
	if err != nil {
		return err
	}
	used, err := inventory.UseItem(s.Level.Player, index)
	if err != nil {
		return err
	}
	if !used {
		s.Messages.Add("Nothing happens", systems.MessageTypeNormal)
	}
	return nil
}

// Upgrade levels up one of the player's stats
func (s *Session) Upgrade(kind components.StatKind) error {
	upgrades, err := ecs.GetSystem[*systems.UpgradeSystem](s.Registry())
	if err != nil {
		return err
	}
	ok, err := upgrades.UpgradeComponent(s.Level.Player, kind)
	if err != nil {
		return err
	}
	if !ok {
		s.Messages.Add(fmt.Sprintf("%s cannot be upgraded", kind), systems.MessageTypeNormal)
	}
	return nil
}

// PlayerDead reports whether the player's health has run out
func (s *Session) PlayerDead() bool {
	health, err := ecs.GetComponent[*components.Health](s.Registry(), s.Level.Player)
	return err == nil && health.Value() <= 0
}

// pursue points every enemy that can see the player towards it
func (s *Session) pursue() {
	r := s.Registry()
	player, err := r.Position(s.Level.Player)
	if err != nil {
		return
	}
	sight := float64(EnemySightRange * s.cfg.Window.TileSize)
	ecs.Each2(r, func(id ecs.GameObjectID, _ *components.EnemyComponent, body *components.KinematicComponent) {
		pos, err := r.Position(id)
		if err != nil {
			return
		}
		offset := player.Sub(pos)
		if math.Hypot(offset.X, offset.Y) > sight {
			body.Direction = ecs.Vec2{}
			return
		}
		body.Direction = offset
	})
}

// enemyContact lets enemies touching the player hit it once per cooldown
func (s *Session) enemyContact(dt float64) error {
	r := s.Registry()
	damage, err := ecs.GetSystem[*systems.DamageSystem](r)
	if err != nil {
		return err
	}
	player, err := r.Position(s.Level.Player)
	if err != nil {
		return nil
	}
	reach := float64(s.cfg.Window.TileSize)
	for id := range ecs.Find[*components.EnemyComponent](r) {
		s.cooldowns[id] = max(s.cooldowns[id]-dt, 0)
		pos, err := r.Position(id)
		if err != nil || s.cooldowns[id] > 0 {
			continue
		}
		offset := player.Sub(pos)
		if math.Hypot(offset.X, offset.Y) > reach {
			continue
		}
		s.cooldowns[id] = EnemyAttackCooldown
		if err := damage.DealDamage(s.Level.Player, systems.AttackDamage); err != nil {
			return err
		}
	}
	return nil
}

// pickUpPotions moves potions on the player's tile into its inventory
func (s *Session) pickUpPotions() {
	r := s.Registry()
	inventory, err := ecs.GetSystem[*systems.InventorySystem](r)
	if err != nil {
		return
	}
	player, err := r.Position(s.Level.Player)
	if err != nil {
		return
	}
	cell := s.Level.WorldToCell(player)
	for _, id := range s.Level.Potions {
		pos, err := r.Position(id)
		if err != nil || inventory.IsHeld(id) || s.Level.WorldToCell(pos) != cell {
			continue
		}
		if err := inventory.AddItem(s.Level.Player, id); err != nil {
			if !errors.Is(err, systems.ErrInventoryFull) {
				s.log.Warn("pick up failed", zap.Error(err))
			}
			return
		}
	}
}

// Visible reports whether a game object should be drawn on the map
func (s *Session) Visible(id ecs.GameObjectID) bool {
	inventory, err := ecs.GetSystem[*systems.InventorySystem](s.Registry())
	return s.Registry().Exists(id) && (err != nil || !inventory.IsHeld(id))
}

// Color returns the display color of a game object from its template
func (s *Session) Color(id ecs.GameObjectID) color.RGBA {
	if name, err := ecs.GetComponent[*components.NameComponent](s.Registry(), id); err == nil {
		if t, ok := s.templates.FindByName(name.Name); ok {
			return t.DisplayColor()
		}
	}
	return color.RGBA{255, 255, 255, 255}
}

// Status summarises the player's stats on one line
func (s *Session) Status() string {
	r := s.Registry()
	id := s.Level.Player
	line := fmt.Sprintf("Level %d", s.Level.Constants.Level)
	if h, err := ecs.GetComponent[*components.Health](r, id); err == nil {
		line += fmt.Sprintf("  HP %.0f/%.0f", h.Value(), h.MaxValue())
	}
	if a, err := ecs.GetComponent[*components.Armour](r, id); err == nil {
		line += fmt.Sprintf("  AR %.0f/%.0f", a.Value(), a.MaxValue())
	}
	if attacks, err := ecs.GetComponent[*components.Attacks](r, id); err == nil {
		if current, ok := attacks.Current(); ok {
			line += "  " + current.String()
		}
	}
	if inv, err := ecs.GetComponent[*components.Inventory](r, id); err == nil {
		line += fmt.Sprintf("  items %d/%d", len(inv.Items), inv.Capacity())
	}
	return line + fmt.Sprintf("  enemies %d", s.Level.EnemyCount())
}
