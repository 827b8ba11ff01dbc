// Package config provides configuration loading and access for the scene and game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Scene     SceneConfig     `yaml:"scene"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Render    RenderConfig    `yaml:"render"`
	Assets    AssetsConfig    `yaml:"assets"`
	Persist   PersistConfig   `yaml:"persist"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// CameraConfig holds the fly camera's origin pose and handling.
type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Zoom        float32    `yaml:"zoom"`     // Vertical field of view in degrees
	MinZoom     float32    `yaml:"min_zoom"` // Scroll clamp
	MaxZoom     float32    `yaml:"max_zoom"`
	Speed       float32    `yaml:"speed"`       // World units per second
	Sensitivity float32    `yaml:"sensitivity"` // Degrees per pixel of pointer movement
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// SceneConfig holds actor anchors and authored placements.
type SceneConfig struct {
	AvatarOffset   mgl32.Vec3   `yaml:"avatar_offset"` // Avatar anchor relative to the camera
	AvatarProbe    mgl32.Vec3   `yaml:"avatar_probe"`  // Offset from the avatar's model origin to its proximity probe
	AvatarScale    float32      `yaml:"avatar_scale"`
	PredatorAnchor mgl32.Vec3   `yaml:"predator_anchor"`
	BalloonAnchor  mgl32.Vec3   `yaml:"balloon_anchor"`
	Targets        []mgl32.Vec3 `yaml:"targets"`
	CloudScale     float32      `yaml:"cloud_scale"` // Quad size, also multiplies every cloud position
	Clouds         []mgl32.Vec3 `yaml:"clouds"`
}

// LightingConfig holds the static light parameters.
type LightingConfig struct {
	Point       PointLightConfig `yaml:"point"`
	Directional DirLightConfig   `yaml:"directional"`
	Shininess   float32          `yaml:"shininess"`
}

// PointLightConfig describes the orbiting point light.
type PointLightConfig struct {
	Center       mgl32.Vec3 `yaml:"center"`
	Radius       float32    `yaml:"radius"`
	AngularSpeed float32    `yaml:"angular_speed"` // Radians per second
	Ambient      mgl32.Vec3 `yaml:"ambient"`
	Diffuse      mgl32.Vec3 `yaml:"diffuse"`
	Specular     mgl32.Vec3 `yaml:"specular"`
	Constant     float32    `yaml:"constant"`
	Linear       float32    `yaml:"linear"`
	Quadratic    float32    `yaml:"quadratic"`
}

// DirLightConfig describes the directional light.
type DirLightConfig struct {
	Direction mgl32.Vec3 `yaml:"direction"`
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
}

// RenderConfig holds post-processing parameters.
type RenderConfig struct {
	Bloom           bool    `yaml:"bloom"`
	HDR             bool    `yaml:"hdr"`
	Exposure        float32 `yaml:"exposure"`
	ExposureRate    float32 `yaml:"exposure_rate"`    // Exposure change per second while the key is held
	BrightThreshold float32 `yaml:"bright_threshold"` // Luminance cut-off for the bright-pass
	BlurIterations  int     `yaml:"blur_iterations"`
	BlurTaps        int     `yaml:"blur_taps"` // One-sided kernel size, centre included
	BlurSigma       float64 `yaml:"blur_sigma"`
	Gamma           float32 `yaml:"gamma"`
}

// AssetsConfig holds asset paths relative to Root.
type AssetsConfig struct {
	Root    string   `yaml:"root"`
	Balloon string   `yaml:"balloon"`
	Falcon  string   `yaml:"falcon"`
	Bird    string   `yaml:"bird"`
	Insect  string   `yaml:"insect"`
	Cloud   string   `yaml:"cloud"`
	Skybox  []string `yaml:"skybox"` // +X, -X, +Y, -Y, +Z, -Z
}

// PersistConfig holds the session record location and its compiled-in defaults.
type PersistConfig struct {
	Path       string     `yaml:"path"`
	Background mgl32.Vec3 `yaml:"background"`
}

// HeadlessConfig holds parameters for running without a window.
type HeadlessConfig struct {
	DT        float64 `yaml:"dt"`
	Autopilot bool    `yaml:"autopilot"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Aspect      float32 // Screen.Width / Screen.Height
	BalloonPath string  // Asset paths joined with Assets.Root
	FalconPath  string
	BirdPath    string
	InsectPath  string
	CloudPath   string
	SkyboxPaths []string
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the frame loop cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Render.BlurIterations < 0 {
		return fmt.Errorf("render.blur_iterations must not be negative, got %d", c.Render.BlurIterations)
	}
	if c.Render.BlurTaps < 1 || c.Render.BlurTaps > MaxBlurTaps {
		return fmt.Errorf("render.blur_taps must be in [1, %d], got %d", MaxBlurTaps, c.Render.BlurTaps)
	}
	if len(c.Assets.Skybox) != 6 {
		return fmt.Errorf("assets.skybox needs 6 faces, got %d", len(c.Assets.Skybox))
	}
	return nil
}

// MaxBlurTaps is the kernel size the blur shader is compiled for.
const MaxBlurTaps = 16

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)

	// Exposure has no upper bound but never goes negative
	if c.Render.Exposure < 0 {
		c.Render.Exposure = 0
	}
	if c.Headless.DT <= 0 {
		c.Headless.DT = 1.0 / 60.0
	}

	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(c.Assets.Root, p)
	}
	c.Derived.BalloonPath = join(c.Assets.Balloon)
	c.Derived.FalconPath = join(c.Assets.Falcon)
	c.Derived.BirdPath = join(c.Assets.Bird)
	c.Derived.InsectPath = join(c.Assets.Insect)
	c.Derived.CloudPath = join(c.Assets.Cloud)
	c.Derived.SkyboxPaths = make([]string, len(c.Assets.Skybox))
	for i, face := range c.Assets.Skybox {
		c.Derived.SkyboxPaths[i] = join(face)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
