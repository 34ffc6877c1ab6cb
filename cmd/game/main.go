package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/spacewar/internal/application/game"
	"github.com/younwookim/spacewar/internal/application/scene/spacewar"
	"github.com/younwookim/spacewar/internal/application/system"
	"github.com/younwookim/spacewar/internal/domain/input"
	"github.com/younwookim/spacewar/internal/infrastructure/assetwatch"
	"github.com/younwookim/spacewar/internal/infrastructure/config"
	"github.com/younwookim/spacewar/internal/infrastructure/graphics"
)

type options struct {
	configDir  string
	assetsDir  string
	record     string
	replay     string
	logLevel   string
	fullscreen bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fset := flag.NewFlagSet("spacewar", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.StringVar(&opts.configDir, "config", "", "Read settings.toml and sprites.json from this directory instead of the embedded copies")
	fset.StringVar(&opts.assetsDir, "assets", "", "Read textures from this directory instead of the embedded copies")
	fset.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	fset.StringVar(&opts.replay, "replay", "", "Replay input from a recorded file")
	fset.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fset.BoolVar(&opts.fullscreen, "fullscreen", false, "Start in fullscreen mode")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if opts.record != "" && opts.replay != "" {
		return options{}, errors.New("-record and -replay cannot be combined")
	}
	return opts, nil
}

func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "spacewar",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return logger, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

func loadConfig(opts options) (*config.GameConfig, error) {
	loader := config.NewLoader(opts.configDir)
	if opts.configDir == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if opts.fullscreen {
		cfg.Settings.Display.Fullscreen = true
	}
	return cfg, nil
}

// assetSource returns the texture filesystem and, when it is on disk, its
// directory.
func assetSource(opts options, cfg config.AssetsConfig) (fs.FS, string, error) {
	dir := opts.assetsDir
	if dir == "" && cfg.Watch {
		dir = cfg.Dir
	}
	if dir != "" {
		return os.DirFS(dir), dir, nil
	}
	fsys, err := fs.Sub(assetFS, "assets")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get assets subfs: %w", err)
	}
	return fsys, "", nil
}

// hostTPS is the ebiten tick rate. By default the host ticks once per
// displayed frame and the driver throttles within that.
func hostTPS(t config.TimingConfig) int {
	if t.HostTPS <= 0 {
		return ebiten.SyncWithFPS
	}
	return t.HostTPS
}

func run(opts options, logger *log.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return &game.FatalError{Msg: "error loading configuration", Err: err}
	}
	settings := cfg.Settings

	assets, assetsDir, err := assetSource(opts, settings.Assets)
	if err != nil {
		return &game.FatalError{Msg: "error opening assets", Err: err}
	}

	backend := graphics.NewEbiten(assets)
	surface := graphics.NewSurface(backend, settings.Display, logger)
	defer surface.Release()

	in := input.NewCollector()
	sw := spacewar.New(surface, in, cfg, logger)
	driver := game.NewDriver(sw, surface, in, settings.Timing, settings.Keys, game.WithLogger(logger))

	session, err := newSession(opts, driver, system.NewInputSystem(), settings.Timing.FrameRate, logger)
	if err != nil {
		return &game.FatalError{Msg: "error loading replay", Err: err}
	}

	if err := driver.Initialize(); err != nil {
		return err
	}
	defer driver.Release()

	if settings.Assets.Watch && assetsDir != "" {
		w, err := assetwatch.New(assetsDir, logger)
		if err != nil {
			logger.Warn("asset watching disabled", "dir", assetsDir, "err", err)
		} else {
			defer func() { _ = w.Close() }()
			sw.WatchAssets(w)
			logger.Info("watching assets", "dir", assetsDir)
		}
	}

	host := game.NewHost(driver, session.source, backend,
		settings.Display.Width, settings.Display.Height,
		settings.Display.ShowFPS, input.KeyCode(settings.Keys.FPS))

	ebiten.SetTPS(hostTPS(settings.Timing))
	err = ebiten.RunGame(host)
	session.finish()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	logger, logErr := newLogger(opts.logLevel)
	if err != nil {
		logger.Fatal("invalid arguments", "err", err)
	}
	if logErr != nil {
		logger.Fatal("invalid arguments", "err", logErr)
	}

	if err := run(opts, logger); err != nil {
		var fatal *game.FatalError
		if errors.As(err, &fatal) {
			logger.Fatal(fatal.Msg, "err", fatal.Err)
		}
		logger.Fatal("game stopped", "err", err)
	}
}
