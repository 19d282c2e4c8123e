package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverScreen is shown over the level once the player dies
type GameOverScreen struct {
	session *Session
	level   int
}

// NewGameOverScreen creates a new game over screen
func NewGameOverScreen(session *Session) *GameOverScreen {
	return &GameOverScreen{session: session, level: session.Level.Constants.Level}
}

// Update restarts the level on R
func (s *GameOverScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.session.Load(s.level); err != nil {
			return err
		}
		return ErrCloseScreen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw draws the game over message
func (s *GameOverScreen) Draw(screen *ebiten.Image) {
	x, y := drawFrame(screen, 260, 70, color.RGBA{60, 0, 0, 220})
	text := fmt.Sprintf("You died on level %d\n\nR: try again  Esc: quit", s.level)
	ebitenutil.DebugPrintAt(screen, text, x+12, y+12)
}

// Layout implements the Screen interface
func (s *GameOverScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
