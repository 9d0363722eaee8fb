// package config loads the viewer settings from defaults, an optional JSON file and BOOKCASE_ environment variables,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/path"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/storage"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/viewpoint"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BOOKCASE_ORBIT_RADIUS.
const EnvPrefix = "BOOKCASE"

type Config struct {
	LogLevel   string           `json:"logLevel" mapstructure:"logLevel"`
	LogFile    string           `json:"logFile" mapstructure:"logFile"`
	Window     WindowConfig     `json:"window" mapstructure:"window"`
	Orbit      OrbitConfig      `json:"orbit" mapstructure:"orbit"`
	Animation  AnimationConfig  `json:"animation" mapstructure:"animation"`
	Path       PathConfig       `json:"path" mapstructure:"path"`
	Camera     CameraConfig     `json:"camera" mapstructure:"camera"`
	Bookcase   BookcaseConfig   `json:"bookcase" mapstructure:"bookcase"`
	Grid       GridConfig       `json:"grid" mapstructure:"grid"`
	Storage    StorageConfig    `json:"storage" mapstructure:"storage"`
	Viewpoints ViewpointsConfig `json:"viewpoints" mapstructure:"viewpoints"`
	Profiler   ProfilerConfig   `json:"profiler" mapstructure:"profiler"`
	Limits     LimitsConfig     `json:"limits" mapstructure:"limits"`
}

type WindowConfig struct {
	Title   string `json:"title" mapstructure:"title"`
	Width   int    `json:"width" mapstructure:"width"`
	Height  int    `json:"height" mapstructure:"height"`
	Padding int    `json:"padding" mapstructure:"padding"`
}

type OrbitConfig struct {
	Radius      float32 `json:"radius" mapstructure:"radius"`
	StepDegrees float32 `json:"stepDegrees" mapstructure:"stepDegrees"`
	InnerFactor float32 `json:"innerFactor" mapstructure:"innerFactor"`
}

type AnimationConfig struct {
	DurationMs int    `json:"durationMs" mapstructure:"durationMs"`
	Easing     string `json:"easing" mapstructure:"easing"`
}

// Duration returns the transition length.
func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

type PathConfig struct {
	Precision int     `json:"precision" mapstructure:"precision"`
	CurveType string  `json:"curveType" mapstructure:"curveType"`
	Tension   float32 `json:"tension" mapstructure:"tension"`
}

type CameraConfig struct {
	Position   []float32 `json:"position" mapstructure:"position"`
	Target     []float32 `json:"target" mapstructure:"target"`
	FovDegrees float32   `json:"fovDegrees" mapstructure:"fovDegrees"`
	Near       float32   `json:"near" mapstructure:"near"`
	Far        float32   `json:"far" mapstructure:"far"`
}

// PositionPoint returns the configured start position. Call only on a validated Config.
func (c CameraConfig) PositionPoint() common.Point3 {
	return toPoint(c.Position)
}

// TargetPoint returns the configured start target. Call only on a validated Config.
func (c CameraConfig) TargetPoint() common.Point3 {
	return toPoint(c.Target)
}

type BookcaseConfig struct {
	Width     float32 `json:"width" mapstructure:"width"`
	Depth     float32 `json:"depth" mapstructure:"depth"`
	Height    float32 `json:"height" mapstructure:"height"`
	Rows      int     `json:"rows" mapstructure:"rows"`
	Cols      int     `json:"cols" mapstructure:"cols"`
	Thickness float32 `json:"thickness" mapstructure:"thickness"`
}

type GridConfig struct {
	Offset []float32 `json:"offset" mapstructure:"offset"`
}

// OffsetPoint returns the camera offset used for grid slot moves. Call only on a validated Config.
func (g GridConfig) OffsetPoint() common.Point3 {
	return toPoint(g.Offset)
}

type StorageConfig struct {
	Driver  string `json:"driver" mapstructure:"driver"`
	Path    string `json:"path" mapstructure:"path"`
	Workers int    `json:"workers" mapstructure:"workers"`
}

type ViewpointsConfig struct {
	SeedDefaults bool     `json:"seedDefaults" mapstructure:"seedDefaults"`
	Modes        []string `json:"modes" mapstructure:"modes"`
}

// ModeList converts the configured names to modes.
func (v ViewpointsConfig) ModeList() []viewpoint.Mode {
	out := make([]viewpoint.Mode, 0, len(v.Modes))
	for _, m := range v.Modes {
		out = append(out, viewpoint.Mode(m))
	}
	return out
}

type ProfilerConfig struct {
	Enabled         bool `json:"enabled" mapstructure:"enabled"`
	IntervalSeconds int  `json:"intervalSeconds" mapstructure:"intervalSeconds"`
}

// LimitsConfig holds the camera constraints the viewer applies at startup and the bounds its save keys persist.
type LimitsConfig struct {
	// Distance is [min, max]. Empty means the distance save key has nothing to save.
	Distance []float32 `json:"distance" mapstructure:"distance"`
	// PanBounds is [minX, maxX, minY, maxY, minZ, maxZ]. Empty means the pan bounds save key has nothing to save.
	PanBounds      []float32 `json:"panBounds" mapstructure:"panBounds"`
	PolarDegrees   []float32 `json:"polarDegrees" mapstructure:"polarDegrees"`
	AzimuthDegrees float32   `json:"azimuthDegrees" mapstructure:"azimuthDegrees"`
	PanEnabled     bool      `json:"panEnabled" mapstructure:"panEnabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("window.title", "Bookcase")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.padding", 25)

	v.SetDefault("orbit.radius", 2500)
	v.SetDefault("orbit.stepDegrees", 30)
	v.SetDefault("orbit.innerFactor", 0.9)

	v.SetDefault("animation.durationMs", 2000)
	v.SetDefault("animation.easing", "quadraticInOut")

	v.SetDefault("path.precision", path.DefaultPrecision)
	v.SetDefault("path.curveType", string(path.CurveCatmullRom))
	v.SetDefault("path.tension", path.DefaultTension)

	v.SetDefault("camera.position", []float32{3200, 1700, 2400})
	v.SetDefault("camera.target", []float32{0, 0, 1000})
	v.SetDefault("camera.fovDegrees", 45)
	v.SetDefault("camera.near", 0.1)
	v.SetDefault("camera.far", 40000)

	v.SetDefault("bookcase.width", 600)
	v.SetDefault("bookcase.depth", 1000)
	v.SetDefault("bookcase.height", 2000)
	v.SetDefault("bookcase.rows", 8)
	v.SetDefault("bookcase.cols", 5)
	v.SetDefault("bookcase.thickness", 18)

	v.SetDefault("grid.offset", []float32{1200, 0, 0})

	v.SetDefault("storage.driver", string(storage.DriverSqlite))
	v.SetDefault("storage.path", "bookcase.db")
	v.SetDefault("storage.workers", 1)

	v.SetDefault("viewpoints.seedDefaults", true)
	v.SetDefault("viewpoints.modes", []string{string(viewpoint.ModePositions), string(viewpoint.ModeEditor)})

	v.SetDefault("profiler.enabled", false)
	v.SetDefault("profiler.intervalSeconds", 5)

	v.SetDefault("limits.distance", []float32{})
	v.SetDefault("limits.panBounds", []float32{})
	v.SetDefault("limits.polarDegrees", []float32{0, 180})
	v.SetDefault("limits.azimuthDegrees", 360)
	v.SetDefault("limits.panEnabled", true)
}

// LoadOption adjusts how Load resolves values.
type LoadOption func(v *viper.Viper) error

// WithFlags binds command line flags whose names are config keys, e.g. --storage.driver. Flags the user set take
// precedence over every other source.
func WithFlags(flags *pflag.FlagSet) LoadOption {
	return func(v *viper.Viper) error {
		var err error
		flags.VisitAll(func(f *pflag.Flag) {
			if bindErr := v.BindPFlag(f.Name, f); bindErr != nil {
				err = errors.Join(err, bindErr)
			}
		})
		return err
	}
}

// Load reads the configuration. An empty path or a missing file yields the defaults plus environment overrides.
//
// Parameters:
//   - configPath: path to a JSON config file, may be empty
//   - options: extra value sources
//
// Returns:
//   - Config: the validated configuration
//   - error: error if the file cannot be parsed or a value is invalid
func Load(configPath string, options ...LoadOption) (Config, error) {
	v := viper.New()
	setDefaults(v)
	for _, opt := range options {
		if err := opt(v); err != nil {
			return Config{}, fmt.Errorf("error binding config source: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid value at once.
//
// Returns:
//   - error: the joined validation errors, nil when the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Padding < 0 || 2*c.Window.Padding >= c.Window.Width || c.Window.Padding >= c.Window.Height {
		errs = append(errs, fmt.Errorf("window padding %d does not fit the window", c.Window.Padding))
	}
	if c.Orbit.Radius <= 0 {
		errs = append(errs, fmt.Errorf("orbit radius must be positive, got %v", c.Orbit.Radius))
	}
	if c.Orbit.StepDegrees <= 0 || c.Orbit.StepDegrees > 180 {
		errs = append(errs, fmt.Errorf("orbit step must be in (0, 180] degrees, got %v", c.Orbit.StepDegrees))
	}
	if c.Orbit.InnerFactor <= 0 || c.Orbit.InnerFactor > 1 {
		errs = append(errs, fmt.Errorf("orbit inner factor must be in (0, 1], got %v", c.Orbit.InnerFactor))
	}
	if c.Animation.DurationMs <= 0 {
		errs = append(errs, fmt.Errorf("animation duration must be positive, got %dms", c.Animation.DurationMs))
	}
	if c.Path.Precision < 1 {
		errs = append(errs, fmt.Errorf("path precision must be at least 1, got %d", c.Path.Precision))
	}
	if !path.CurveType(c.Path.CurveType).Valid() {
		errs = append(errs, fmt.Errorf("unknown path curve type %q", c.Path.CurveType))
	}
	if len(c.Camera.Position) != 3 {
		errs = append(errs, fmt.Errorf("camera position needs 3 values, got %d", len(c.Camera.Position)))
	}
	if len(c.Camera.Target) != 3 {
		errs = append(errs, fmt.Errorf("camera target needs 3 values, got %d", len(c.Camera.Target)))
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180) degrees, got %v", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %v, %v", c.Camera.Near, c.Camera.Far))
	}
	if c.Bookcase.Width <= 0 || c.Bookcase.Depth <= 0 || c.Bookcase.Height <= 0 {
		errs = append(errs, fmt.Errorf("bookcase dimensions must be positive"))
	}
	if c.Bookcase.Rows <= 0 || c.Bookcase.Cols <= 0 {
		errs = append(errs, fmt.Errorf("bookcase needs at least one row and column, got %dx%d", c.Bookcase.Rows, c.Bookcase.Cols))
	}
	if len(c.Grid.Offset) != 3 {
		errs = append(errs, fmt.Errorf("grid offset needs 3 values, got %d", len(c.Grid.Offset)))
	}
	if !storage.Driver(c.Storage.Driver).Valid() {
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Storage.Workers <= 0 {
		errs = append(errs, fmt.Errorf("storage workers must be positive, got %d", c.Storage.Workers))
	}
	for _, m := range c.Viewpoints.ModeList() {
		if !m.Valid() {
			errs = append(errs, fmt.Errorf("unknown viewpoint mode %q", m))
		}
	}
	if n := len(c.Limits.Distance); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("limits distance needs 0 or 2 values, got %d", n))
	}
	if n := len(c.Limits.PanBounds); n != 0 && n != 6 {
		errs = append(errs, fmt.Errorf("limits pan bounds need 0 or 6 values, got %d", n))
	}
	if p := c.Limits.PolarDegrees; len(p) != 2 || p[0] < 0 || p[0] > p[1] || p[1] > 180 {
		errs = append(errs, fmt.Errorf("limits polar angles must satisfy 0 <= min <= max <= 180, got %v", p))
	}
	if c.Limits.AzimuthDegrees <= 0 {
		errs = append(errs, fmt.Errorf("limits azimuth width must be positive, got %v", c.Limits.AzimuthDegrees))
	}
	if c.Profiler.Enabled && c.Profiler.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("profiler interval must be positive, got %ds", c.Profiler.IntervalSeconds))
	}
	return errors.Join(errs...)
}

func toPoint(v []float32) common.Point3 {
	if len(v) < 3 {
		return common.Point3{}
	}
	return common.Point3{X: v[0], Y: v[1], Z: v[2]}
}
