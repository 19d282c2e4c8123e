package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"hades-rogue/screens"
)

// Game implements ebiten.Game by delegating to a screen stack
type Game struct {
	stack     *screens.ScreenStack
	showStats bool
}

// NewGame creates a game showing the given screen
func NewGame(first screens.Screen, showStats bool) *Game {
	stack := screens.NewScreenStack()
	stack.Push(first)
	return &Game{stack: stack, showStats: showStats}
}

// Update updates the game state.
func (g *Game) Update() error {
	return g.stack.Update()
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.stack.Draw(screen)
	if g.showStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
	}
}

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.stack.Layout(outsideWidth, outsideHeight)
}
