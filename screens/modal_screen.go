package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HelpText lists the viewer controls
const HelpText = `WASD / arrows  move
Space          attack
Q / E          previous / next attack
1-9            use inventory item
U / I / O      upgrade health / armour / speed
R              regenerate level
N              next level
F1             message log
H              this help
Esc            close / quit`

// ModalScreen represents a popup window that appears on top of other screens
type ModalScreen struct {
	title      string
	content    string
	width      int
	height     int
	background color.Color
}

// NewModalScreen creates a new modal screen
func NewModalScreen(title, content string, width, height int) *ModalScreen {
	return &ModalScreen{
		title:      title,
		content:    content,
		width:      width,
		height:     height,
		background: color.RGBA{0, 0, 0, 200},
	}
}

// Update closes the modal on Escape or Enter
func (s *ModalScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return ErrCloseScreen
	}
	return nil
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	x, y := drawFrame(screen, s.width, s.height, s.background)
	titleX := x + (s.width-len(s.title)*6)/2 // debug font glyphs are 6px wide
	ebitenutil.DebugPrintAt(screen, s.title, titleX, y+10)
	ebitenutil.DebugPrintAt(screen, s.content, x+10, y+30)
}

// Layout implements the Screen interface
func (s *ModalScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// drawFrame fills a bordered box centred on screen and returns its top left corner
func drawFrame(screen *ebiten.Image, width, height int, background color.Color) (int, int) {
	bounds := screen.Bounds()
	x := (bounds.Dx() - width) / 2
	y := (bounds.Dy() - height) / 2
	fx, fy, fw, fh := float32(x), float32(y), float32(width), float32(height)
	vector.DrawFilledRect(screen, fx, fy, fw, fh, background, false)
	vector.StrokeRect(screen, fx, fy, fw, fh, 2, color.White, false)
	return x, y
}
