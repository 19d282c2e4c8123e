package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/config"
	"hades-rogue/ecs"
	"hades-rogue/generation"
)

// tileColors maps each tile type to its fill color
var tileColors = map[generation.TileType]color.RGBA{
	generation.TileEmpty:     {0, 0, 0, 255},
	generation.TileFloor:     {40, 40, 48, 255},
	generation.TileWall:      {110, 100, 90, 255},
	generation.TileObstacle:  {70, 60, 50, 255},
	generation.TilePlayer:    {40, 40, 48, 255},
	generation.TilePotion:    {40, 40, 48, 255},
	generation.TileDebugWall: {200, 0, 200, 255},
}

var itemKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

var upgradeKeys = map[ebiten.Key]components.StatKind{
	ebiten.KeyU: components.StatHealth,
	ebiten.KeyI: components.StatArmour,
	ebiten.KeyO: components.StatMovementForce,
}

// GameScreen plays a session, drawing the level as colored cells
type GameScreen struct {
	session     *Session
	tileSize    int
	screenStack *ScreenStack
	log         *zap.Logger
}

// NewGameScreen creates a new game screen
func NewGameScreen(session *Session, tileSize int, log *zap.Logger) *GameScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameScreen{
		session:     session,
		tileSize:    tileSize,
		screenStack: NewScreenStack(),
		log:         log,
	}
}

// Update handles input and advances the session one frame
func (s *GameScreen) Update() error {
	// Modals take the input while open
	if s.screenStack.Len() > 0 {
		return s.screenStack.Update()
	}

	if s.session.PlayerDead() {
		s.screenStack.Push(NewGameOverScreen(s.session))
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		s.screenStack.Push(NewMessageLogScreen(s.session.Messages))
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.screenStack.Push(NewModalScreen("CONTROLS", HelpText, 320, 180))
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return s.session.Regenerate()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		return s.session.NextLevel()
	}

	s.session.SetPlayerDirection(s.direction())
	if err := s.handleActions(); err != nil {
		s.log.Warn("action failed", zap.Error(err))
	}
	return s.session.Tick(1.0 / float64(ebiten.TPS()))
}

func (s *GameScreen) direction() ecs.Vec2 {
	var dir ecs.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	return dir
}

func (s *GameScreen) handleActions() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := s.session.PlayerAttack(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if err := s.session.CycleAttack(false); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if err := s.session.CycleAttack(true); err != nil {
			return err
		}
	}
	for i, key := range itemKeys {
		if inpututil.IsKeyJustPressed(key) {
			return s.session.UseItem(i)
		}
	}
	for key, kind := range upgradeKeys {
		if inpututil.IsKeyJustPressed(key) {
			return s.session.Upgrade(kind)
		}
	}
	return nil
}

// Draw draws the level, its game objects and the status lines
func (s *GameScreen) Draw(screen *ebiten.Image) {
	size := float32(s.tileSize)
	grid := s.session.Level.Grid
	for y, row := range grid.Rows() {
		for x, tile := range row {
			vector.DrawFilledRect(screen, float32(x)*size, float32(y)*size, size, size, tileColors[tile], false)
		}
	}

	r := s.session.Registry()
	for _, id := range r.GameObjects() {
		if !s.session.Visible(id) {
			continue
		}
		pos, err := r.Position(id)
		if err != nil {
			continue
		}
		w, h := size/2, size/2
		if body, err := ecs.GetComponent[*components.KinematicComponent](r, id); err == nil {
			w, h = float32(body.Width), float32(body.Height)
		}
		vector.DrawFilledRect(screen, float32(pos.X)-w/2, float32(pos.Y)-h/2, w, h, s.session.Color(id), false)
		s.drawIndicatorBar(screen, id, float32(pos.X)-size/2, float32(pos.Y)-size/2-3)
	}

	statusY := grid.Height() * s.tileSize
	ebitenutil.DebugPrintAt(screen, s.session.Status(), 4, statusY+2)
	for i, msg := range s.session.Messages.RecentMessages(config.StatusRows - 1) {
		drawColoredText(screen, msg.Text, 4, statusY+18+i*14, msg.Color())
	}

	s.screenStack.Draw(screen)
}

var indicatorColors = map[components.StatKind][2]color.RGBA{
	components.StatHealth: {{80, 0, 0, 255}, {220, 30, 30, 255}},
	components.StatArmour: {{50, 50, 50, 255}, {192, 192, 192, 255}},
}

// drawIndicatorBar draws a bar for each damaged stat that has one above a game object
func (s *GameScreen) drawIndicatorBar(screen *ebiten.Image, id ecs.GameObjectID, x, y float32) {
	width := float32(s.tileSize)
	for i, kind := range []components.StatKind{components.StatHealth, components.StatArmour} {
		typ, _ := components.StatType(kind)
		c, err := s.session.Registry().Component(id, typ)
		if err != nil {
			continue
		}
		if bar, ok := c.(ecs.IndicatorBar); !ok || !bar.HasIndicatorBar() {
			continue
		}
		st := c.(components.StatComponent).Base()
		if st.Value() >= st.MaxValue() {
			continue
		}
		colors := indicatorColors[kind]
		barY := y - float32(i)*3
		vector.DrawFilledRect(screen, x, barY, width, 2, colors[0], false)
		vector.DrawFilledRect(screen, x, barY, width*float32(st.Value()/st.MaxValue()), 2, colors[1], false)
	}
}

// Layout sizes the logical screen to the level plus the status rows
func (s *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := s.session.Level.Grid
	return grid.Width() * s.tileSize, (grid.Height() + config.StatusRows) * s.tileSize
}
