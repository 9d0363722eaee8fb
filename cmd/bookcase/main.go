package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/bookcase"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/config"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/controls"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/logging"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/orbit"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/path"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/storage"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/tween"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/window"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("bookcase", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "bookcase.json", "path to the JSON config file")
	flags.String("logLevel", "info", "trace, debug, info, warn or error")
	flags.String("storage.driver", string(storage.DriverSqlite), "sqlite or memory")
	flags.String("storage.path", "bookcase.db", "sqlite database file")
	flags.Bool("profiler.enabled", false, "log frame statistics")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, config.WithFlags(flags))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bookcase: %v\n", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stderr}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bookcase: error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		writers = append(writers, f)
	}
	logger := logging.New(cfg.LogLevel, writers...)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("bookcase stopped")
		os.Exit(1)
	}
}

// viewer is everything the viewer builds from a Config before a window exists.
type viewer struct {
	storage  storage.KV
	scene    scene.Scene
	camera   camera.Camera
	bookcase bookcase.Bookcase
	controls controls.Controls
}

// background is the clear color; far lines fog towards it.
var background = common.Color{1, 1, 1, 1}

// newViewer builds storage, the scene with the floor and the bookcase, the camera and the controls.
func newViewer(cfg config.Config, logger zerolog.Logger) (*viewer, error) {
	kv, err := storage.Open(
		storage.Driver(cfg.Storage.Driver),
		cfg.Storage.Path,
		storage.WithLogger(logger.With().Str("component", "storage").Logger()),
		storage.WithWorkers(cfg.Storage.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("error opening storage: %w", err)
	}

	bc, err := bookcase.New(
		cfg.Bookcase.Width, cfg.Bookcase.Depth, cfg.Bookcase.Height,
		cfg.Bookcase.Rows, cfg.Bookcase.Cols,
		bookcase.WithThickness(cfg.Bookcase.Thickness),
	)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("error building bookcase: %w", err)
	}

	sc := scene.NewScene("bookcase", scene.WithNodes(scene.Node{
		Name:     "floor",
		Kind:     scene.KindGrid,
		Color:    common.ColorFloor,
		Visible:  true,
		Center:   common.P3(0, 0, -5),
		Size:     common.P3(10000, 10000, 0),
		Segments: 10,
	}))
	group := sc.Add(scene.Node{Name: "Bookcase", Kind: scene.KindGroup, Visible: true})
	for _, n := range bc.Nodes(group) {
		sc.Add(n)
	}

	ctrl := camera.NewCameraController(
		camera.WithPosition(cfg.Camera.PositionPoint()),
		camera.WithTarget(cfg.Camera.TargetPoint()),
	)
	cam := camera.NewCamera(
		camera.WithFovDegrees(cfg.Camera.FovDegrees),
		camera.WithClipRange(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithFog(cfg.Camera.Far/2, cfg.Camera.Far, background),
		camera.WithController(ctrl),
	)

	ob := orbit.NewOrbit(
		cfg.Orbit.Radius,
		orbit.WithStepAngle(cfg.Orbit.StepDegrees*common.DegToRad),
		orbit.WithInnerFactor(cfg.Orbit.InnerFactor),
	)

	ctl := controls.New(controls.SceneContext{
		Camera:     cam,
		Scene:      sc,
		Storage:    kv,
		Orbit:      ob,
		Grid:       bc,
		GridOffset: cfg.Grid.OffsetPoint(),
		Logger:     logger.With().Str("component", "controls").Logger(),
	},
		controls.WithSeedViewpoints(cfg.Viewpoints.SeedDefaults),
		controls.WithStoreOptions(viewpoint.WithModes(cfg.Viewpoints.ModeList()...)),
		controls.WithAnimatorOptions(
			camera.WithDuration(cfg.Animation.Duration()),
			camera.WithEasing(tween.EasingByName(cfg.Animation.Easing)),
			camera.WithPathOptions(
				path.WithCurveType(path.CurveType(cfg.Path.CurveType)),
				path.WithTension(cfg.Path.Tension),
				path.WithPrecision(cfg.Path.Precision),
			),
		),
	)

	applyLimits(ctl, cfg.Limits)

	logger.Info().
		Int("viewpoints", ctl.Store().Len()).
		Int("nodes", sc.Count()).
		Str("storage", cfg.Storage.Driver).
		Msg("viewer ready")

	return &viewer{
		storage:  kv,
		scene:    sc,
		camera:   cam,
		bookcase: bc,
		controls: ctl,
	}, nil
}

// applyLimits sets the angle limits and pan lock from the configuration.
func applyLimits(c controls.Controls, limits config.LimitsConfig) {
	c.SetPolarAngles(limits.PolarDegrees[0], limits.PolarDegrees[1])
	c.SetAzimuthAngles(limits.AzimuthDegrees)
	if limits.PanEnabled {
		c.EnablePan()
	} else {
		c.DisablePan()
	}
}

func (v *viewer) close() error {
	return v.storage.Close()
}

func run(cfg config.Config, logger zerolog.Logger) error {
	v, err := newViewer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := v.close(); err != nil {
			logger.Error().Err(err).Msg("error closing storage")
		}
	}()

	win := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Window.Title, "Bookcase")),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithPadding(cfg.Window.Padding),
	)
	defer win.Close()

	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithClearColor(background),
		renderer.WithLogger(logger.With().Str("component", "renderer").Logger()),
	)
	if err != nil {
		return fmt.Errorf("error creating renderer: %w", err)
	}
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Profiler.Enabled, time.Duration(cfg.Profiler.IntervalSeconds)*time.Second),
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(v.scene),
		engine.WithCamera(v.camera),
	)
	eng.SetTickCallback(func(dt time.Duration) {
		v.controls.Frame(dt)
	})

	newBindings(v.controls, v.camera.Controller(), v.bookcase.Cols(), v.bookcase.Rows(), cfg.Limits, logger).attach(win)

	eng.Run()
	return nil
}
