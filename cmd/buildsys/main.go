package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/buildsys/server/internal/build"
	"github.com/buildsys/server/internal/character"
	"github.com/buildsys/server/internal/config"
	"github.com/buildsys/server/internal/core/ecs"
	"github.com/buildsys/server/internal/core/event"
	coresys "github.com/buildsys/server/internal/core/system"
	"github.com/buildsys/server/internal/data"
	"github.com/buildsys/server/internal/handler"
	"github.com/buildsys/server/internal/hud"
	"github.com/buildsys/server/internal/input"
	"github.com/buildsys/server/internal/scripting"
	"github.com/buildsys/server/internal/system"
	"github.com/buildsys/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              buildsys  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       headless build-placement sandbox    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("BUILDSYS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Load data tables and scripts
	printSection("data")

	catalog, err := data.LoadStructureCatalog(cfg.Build.CatalogPath)
	if err != nil {
		return fmt.Errorf("structure catalog: %w", err)
	}
	printStat("structure kinds", catalog.Count())

	if cfg.Build.DefaultKind != "" {
		if _, ok := catalog.Get(cfg.Build.DefaultKind); !ok {
			return fmt.Errorf("build.default_kind %q not in catalog (have: %s)",
				cfg.Build.DefaultKind, strings.Join(catalog.Names(), ", "))
		}
	}

	luaEngine, err := scripting.NewEngine(cfg.Build.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer luaEngine.Close()
	if luaEngine.HasFunc("snap_preview") {
		printOK("preview snapping script loaded")
	} else {
		printOK("no preview snapping script, free placement")
	}
	fmt.Println()

	// 4. Build the world
	printSection("world")

	ecsWorld := ecs.NewWorld()
	bus := event.NewBus()
	terrain := world.NewTerrain(cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ)
	terrain.FillGround(cfg.World.GroundHeight)
	worldState := world.NewState(ecsWorld, terrain, catalog, bus, cfg.Build.TraceDistance, log)
	printOK(fmt.Sprintf("terrain %dx%dx%d, ground at z=%d",
		cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ, cfg.World.GroundHeight))

	player := character.New(ecsWorld.CreateEntity(), character.Config{
		Spawn:           mgl64.Vec3{cfg.Character.SpawnX, cfg.Character.SpawnY, float64(cfg.World.GroundHeight)},
		WalkSpeed:       cfg.Character.WalkSpeed,
		EyeHeight:       cfg.Character.EyeHeight,
		LookSensitivity: cfg.Character.LookSensitivity,
		MaxPitch:        cfg.Character.MaxPitch,
	}, worldState)
	printOK(fmt.Sprintf("character spawned at %.1f, %.1f, %.1f",
		player.Location().X(), player.Location().Y(), player.Location().Z()))

	messages := hud.NewMessages(16)
	builder := build.NewController(build.Collaborators{
		Owner:     player,
		Spawner:   worldState,
		Tracer:    worldState,
		Viewpoint: player.Camera(),
		Diag:      build.NewLogDiagnostics(log, messages, cfg.Build.NoticeTTL),
		Snapper:   scripting.CatalogSnapper{Engine: luaEngine, Catalog: catalog},
		Bus:       bus,
	}, cfg.Build.RotationScale)
	builder.SetSelectedKind(cfg.Build.DefaultKind)
	subscribeEventLog(bus, log)
	fmt.Println()

	// 5. Input registry and console feed
	quitCh := make(chan struct{})
	var quitOnce sync.Once

	inputReg := input.NewRegistry(log)
	deps := &handler.Deps{
		Config:    cfg,
		Log:       log,
		Character: player,
		Builder:   builder,
		World:     worldState,
		Catalog:   catalog,
		HUD:       messages,
		Quit:      func() { quitOnce.Do(func() { close(quitCh) }) },
	}
	handler.RegisterAll(inputReg, deps)

	events := make(chan input.Event, cfg.Server.InputQueueSize)
	console := newConsole(os.Stdin, os.Stdout, events, log)
	go console.readLoop()

	// 6. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(events, inputReg, cfg.Server.MaxEventsPerTick, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewLocomotionSystem(player))
	runner.Register(system.NewPreviewSystem(builder))
	runner.Register(system.NewHUDSystem(messages, console.showHUD))
	runner.Register(system.NewCleanupSystem(ecsWorld, log))

	// 7. Start tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Server.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Server.TickRate))
	printReady("commands: start_build, stop_build, toggle_build, place, rotate <n>,")
	printReady("          move <x> <y>, look <x> <y>, select <kind>, list, quit")
	fmt.Println()
	console.prompt()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Server.TickRate)
		case <-quitCh:
			return shutdown(cfg, builder, worldState, runner, log, "quit")
		case sig := <-shutdownCh:
			return shutdown(cfg, builder, worldState, runner, log, sig.String())
		}
	}
}

// shutdown leaves build mode so no preview outlives the session, then
// flushes one last tick of cleanup.
func shutdown(cfg *config.Config, builder *build.Controller, ws *world.State, runner *coresys.Runner, log *zap.Logger, reason string) error {
	log.Info("shutting down", zap.String("reason", reason))
	builder.StopBuild()
	runner.TickPhase(coresys.PhaseCleanup, 0)
	log.Info("stopped",
		zap.Int("placed", ws.PlacedCount()),
		zap.Uint64("ticks", runner.Ticks()),
		zap.Duration("uptime", cfg.Server.Uptime(time.Now())),
	)
	return nil
}

// subscribeEventLog records build activity from the event bus.
func subscribeEventLog(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.BuildModeStarted) {
		log.Debug("build mode started",
			zap.Uint32("owner", e.Owner.Index()),
			zap.Uint32("preview", e.Preview.Index()),
			zap.String("kind", e.Kind),
		)
	})
	event.Subscribe(bus, func(e event.BuildModeStopped) {
		log.Debug("build mode stopped", zap.Uint32("owner", e.Owner.Index()))
	})
	event.Subscribe(bus, func(e event.StructurePlaced) {
		log.Info("structure placed",
			zap.Uint32("owner", e.Owner.Index()),
			zap.Uint32("entity", e.Entity.Index()),
			zap.String("kind", e.Kind),
			zap.Float64s("position", e.Position[:]),
			zap.Float64("yaw", e.Yaw),
		)
	})
	event.Subscribe(bus, func(e event.StructureDestroyed) {
		log.Debug("structure removed",
			zap.Uint32("entity", e.Entity.Index()),
			zap.String("kind", e.Kind),
			zap.Bool("placed", e.Placed),
		)
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
