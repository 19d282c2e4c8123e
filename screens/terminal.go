package screens

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/ecs"
	"hades-rogue/generation"
)

const terminalFrame = 16 * time.Millisecond // ~60 FPS

var tileStyles = map[generation.TileType]tcell.Style{
	generation.TileWall:      tcell.StyleDefault.Foreground(tcell.NewRGBColor(170, 160, 150)),
	generation.TileFloor:     tcell.StyleDefault.Foreground(tcell.NewRGBColor(80, 80, 96)),
	generation.TileObstacle:  tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 110, 80)),
	generation.TileDebugWall: tcell.StyleDefault.Foreground(tcell.ColorPurple),
}

// TerminalViewer plays a session in a terminal, one glyph per tile
type TerminalViewer struct {
	screen  tcell.Screen
	session *Session
	log     *zap.Logger
	// held direction, decays when no key repeats arrive
	direction ecs.Vec2
	heldFor   time.Duration
}

// NewTerminalViewer creates a viewer drawing to an initialised screen
func NewTerminalViewer(screen tcell.Screen, session *Session, log *zap.Logger) *TerminalViewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &TerminalViewer{screen: screen, session: session, log: log}
}

// Run draws and ticks the session until the context is cancelled or the
// player quits
func (v *TerminalViewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(terminalFrame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			keepGoing, err := v.HandleEvent(ev)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		case <-ticker.C:
			if err := v.Step(terminalFrame); err != nil {
				return err
			}
			v.Draw()
		}
	}
}

// Step advances the session by one frame
func (v *TerminalViewer) Step(dt time.Duration) error {
	v.heldFor -= dt
	if v.heldFor <= 0 {
		v.direction = ecs.Vec2{}
	}
	v.session.SetPlayerDirection(v.direction)
	return v.session.Tick(dt.Seconds())
}

// HandleEvent applies a key press. It reports false when the viewer should exit.
func (v *TerminalViewer) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false, nil
		case tcell.KeyUp:
			v.hold(ecs.Vec2{Y: -1})
		case tcell.KeyDown:
			v.hold(ecs.Vec2{Y: 1})
		case tcell.KeyLeft:
			v.hold(ecs.Vec2{X: -1})
		case tcell.KeyRight:
			v.hold(ecs.Vec2{X: 1})
		case tcell.KeyRune:
			return true, v.handleRune(ev.Rune())
		}
	}
	return true, nil
}

func (v *TerminalViewer) handleRune(r rune) error {
	if v.session.PlayerDead() && r != 'r' {
		return nil
	}
	switch r {
	case 'w':
		v.hold(ecs.Vec2{Y: -1})
	case 's':
		v.hold(ecs.Vec2{Y: 1})
	case 'a':
		v.hold(ecs.Vec2{X: -1})
	case 'd':
		v.hold(ecs.Vec2{X: 1})
	case ' ':
		v.act(v.session.PlayerAttack())
	case 'q':
		v.act(v.session.CycleAttack(false))
	case 'e':
		v.act(v.session.CycleAttack(true))
	case 'u':
		v.act(v.session.Upgrade(components.StatHealth))
	case 'i':
		v.act(v.session.Upgrade(components.StatArmour))
	case 'o':
		v.act(v.session.Upgrade(components.StatMovementForce))
	case 'r':
		return v.session.Regenerate()
	case 'n':
		return v.session.NextLevel()
	default:
		if r >= '1' && r <= '9' {
			if err := v.session.UseItem(int(r - '1')); err != nil {
				v.log.Debug("use item failed", zap.Error(err))
			}
		}
	}
	return nil
}

// act logs a failed player action; the viewer keeps running
func (v *TerminalViewer) act(err error) {
	if err != nil {
		v.log.Warn("action failed", zap.Error(err))
	}
}

// hold keeps moving in dir until key repeats stop arriving
func (v *TerminalViewer) hold(dir ecs.Vec2) {
	v.direction = dir
	v.heldFor = 150 * time.Millisecond
}

// Draw renders the level, its game objects and the status lines
func (v *TerminalViewer) Draw() {
	v.screen.Clear()
	grid := v.session.Level.Grid
	for y, row := range grid.Rows() {
		for x, tile := range row {
			glyph := tile.Glyph()
			if tile == generation.TilePlayer || tile == generation.TilePotion {
				glyph = generation.TileFloor.Glyph()
				tile = generation.TileFloor
			}
			v.screen.SetContent(x, y, glyph, nil, tileStyles[tile])
		}
	}

	r := v.session.Registry()
	for _, id := range r.GameObjects() {
		if !v.session.Visible(id) {
			continue
		}
		pos, err := r.Position(id)
		if err != nil {
			continue
		}
		cell := v.session.Level.WorldToCell(pos)
		c := v.session.Color(id)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		v.screen.SetContent(cell.X, cell.Y, v.glyph(id), nil, style)
	}

	statusY := grid.Height()
	v.print(0, statusY, v.session.Status(), tcell.StyleDefault)
	if v.session.PlayerDead() {
		v.print(0, statusY+1, "You died. r: try again  Esc: quit", tcell.StyleDefault.Foreground(tcell.ColorRed))
	} else {
		for i, msg := range v.session.Messages.RecentMessages(3) {
			c := msg.Color()
			v.print(0, statusY+1+i, msg.Text, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
		}
	}
	v.screen.Show()
}

func (v *TerminalViewer) glyph(id ecs.GameObjectID) rune {
	r := v.session.Registry()
	switch {
	case ecs.HasComponent[*components.PlayerComponent](r, id):
		return generation.TilePlayer.Glyph()
	case ecs.HasComponent[*components.EnemyComponent](r, id):
		return 'e'
	}
	return generation.TilePotion.Glyph()
}

func (v *TerminalViewer) print(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		v.screen.SetContent(x+i, y, ch, nil, style)
	}
}
