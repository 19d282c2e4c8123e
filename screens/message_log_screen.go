package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hades-rogue/systems"
)

// MessageLogScreen shows the session's message log in a scrollable modal
type MessageLogScreen struct {
	log          *systems.MessageLog
	scrollOffset int
	width        int
	height       int
}

// NewMessageLogScreen creates a new message log screen
func NewMessageLogScreen(log *systems.MessageLog) *MessageLogScreen {
	return &MessageLogScreen{log: log, width: 480, height: 320}
}

// Update handles scrolling and closing
func (s *MessageLogScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < len(s.log.Messages)-1 {
		s.scrollOffset++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		return ErrCloseScreen
	}
	return nil
}

// Draw renders the visible part of the log, each line in its message color
func (s *MessageLogScreen) Draw(screen *ebiten.Image) {
	x, y := drawFrame(screen, s.width, s.height, color.RGBA{0, 0, 0, 255})
	ebitenutil.DebugPrintAt(screen, "MESSAGE LOG", x+(s.width-11*6)/2, y+6)

	const startY, lineHeight = 30, 16
	maxLines := (s.height - startY - 20) / lineHeight
	messages := s.log.Messages
	start := max(min(s.scrollOffset, len(messages)-maxLines), 0)

	for i := 0; i < maxLines && start+i < len(messages); i++ {
		drawColoredText(screen, messages[start+i].Text, x+10, y+startY+i*lineHeight, messages[start+i].Color())
	}

	if len(messages) > maxLines {
		track := float32(s.height - startY - 20)
		barHeight := float32(maxLines) / float32(len(messages)) * track
		barY := float32(y+startY) + float32(start)/float32(len(messages))*track
		vector.DrawFilledRect(screen, float32(x+s.width-10), barY, 5, barHeight, color.White, false)
	}
	ebitenutil.DebugPrintAt(screen, "Up/Down: Scroll  Esc: Close", x+10, y+s.height-18)
}

// Layout implements the Screen interface
func (s *MessageLogScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// drawColoredText prints debug text tinted with c
func drawColoredText(screen *ebiten.Image, text string, x, y int, c color.Color) {
	line := ebiten.NewImage(len(text)*6+1, 16)
	defer line.Deallocate()
	ebitenutil.DebugPrint(line, text)
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(c)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(line, op)
}
