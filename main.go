package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"hades-rogue/config"
	"hades-rogue/data"
	"hades-rogue/generation"
	"hades-rogue/screens"
	"hades-rogue/scripting"
)

func main() {
	cfgPath := flag.String("config", "config/hades.toml", "path to the TOML config")
	level := flag.Int("level", -1, "level to generate (overrides the config)")
	seed := flag.Int64("seed", 0, "generation seed (overrides the config)")
	term := flag.Bool("term", false, "play in the terminal")
	dump := flag.Bool("dump", false, "print the generated level and exit")
	templates := flag.String("templates", "", "extra YAML game object templates")
	flag.Parse()

	if err := run(*cfgPath, *level, *seed, *term, *dump, *templates); err != nil {
		fmt.Fprintf(os.Stderr, "hades-rogue: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, level int, seed int64, term, dump bool, templatePath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Generation.Seed = &seed
		}
	})
	if level >= 0 {
		cfg.Game.Level = level
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if dump {
		return dumpLevel(cfg, log)
	}

	scripts := scripting.NewEngine(log)
	defer scripts.Close()
	manager := data.NewTemplateManager(scripts)
	if err := manager.LoadBuiltin(); err != nil {
		return err
	}
	if templatePath != "" {
		if err := manager.LoadFile(templatePath); err != nil {
			return err
		}
	}

	session := screens.NewSession(cfg, manager, log)
	if err := session.Load(cfg.Game.Level); err != nil {
		return err
	}
	log.Info("starting viewer",
		zap.Bool("terminal", term),
		zap.Int("level", cfg.Game.Level),
	)

	if term {
		return runTerminal(session, log)
	}

	width, height := cfg.Window.WindowSize(session.Level.Grid.Width(), session.Level.Grid.Height())
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Hades")
	game := NewGame(screens.NewGameScreen(session, cfg.Window.TileSize, log), cfg.Generation.Debug)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(session *screens.Session, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return screens.NewTerminalViewer(screen, session, log).Run(ctx)
}

// dumpLevel prints a generated level as glyphs with its constants
func dumpLevel(cfg *config.Config, log *zap.Logger) error {
	opts := []generation.Option{
		generation.WithConstants(cfg.Generation.Constants),
		generation.WithBSPOptions(cfg.Generation.BSPOptions()),
		generation.WithLogger(log),
	}
	if cfg.Generation.Seed != nil {
		opts = append(opts, generation.WithSeed(*cfg.Generation.Seed))
	}
	grid, constants, err := generation.NewMapGenerator(opts...).CreateMap(cfg.Game.Level)
	if err != nil {
		return err
	}
	fmt.Printf("level=%d width=%d height=%d splits=%d obstacles=%d potions=%d enemies=%d\n",
		constants.Level, constants.Width, constants.Height, constants.SplitIteration,
		constants.ObstacleCount, constants.PotionCount, constants.EnemyCount)
	fmt.Print(grid)
	return nil
}
