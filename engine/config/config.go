package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables overriding the
// configuration file, e.g. GLKIT_LOG_LEVEL or GLKIT_CAMERA_FOVY.
const EnvPrefix = "GLKIT"

const DefaultConfigFile = "glkit.toml"

type SceneConfig struct {
	ClearColor [3]float32 `fig:"clear_color" toml:"clear_color"`
	PlaneSize  int        `fig:"plane_size" toml:"plane_size" default:"100"`
	ShowPlane  bool       `fig:"show_plane" toml:"show_plane"`
	ShowCamera bool       `fig:"show_camera" toml:"show_camera"`
	ShowLight  bool       `fig:"show_light" toml:"show_light"`
	ShowCube   bool       `fig:"show_cube" toml:"show_cube"`
	ShowSphere bool       `fig:"show_sphere" toml:"show_sphere"`
	ShowSquare bool       `fig:"show_square" toml:"show_square"`
	ShowMonkey bool       `fig:"show_monkey" toml:"show_monkey"`
}

type CameraConfig struct {
	Position [3]float32 `fig:"position" toml:"position"`
	// Angles in degrees.
	Pitch float32 `fig:"pitch" toml:"pitch"`
	Yaw   float32 `fig:"yaw" toml:"yaw"`
	Fovy  float32 `fig:"fovy" toml:"fovy" default:"45"`
	Near  float32 `fig:"near" toml:"near" default:"0.1"`
	Far   float32 `fig:"far" toml:"far" default:"100"`
}

type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `fig:"name" toml:"name" default:"GLKit"`
	// Window starting width.
	StartWidth uint32 `fig:"width" toml:"width" default:"1280"`
	// Window starting height.
	StartHeight   uint32       `fig:"height" toml:"height" default:"720"`
	VSync         bool         `fig:"vsync" toml:"vsync"`
	LogLevel      string       `fig:"log_level" toml:"log_level" default:"info"`
	AssetsDir     string       `fig:"assets_dir" toml:"assets_dir" default:"assets"`
	ScreenshotDir string       `fig:"screenshot_dir" toml:"screenshot_dir" default:"screenshots"`
	WatchAssets   bool         `fig:"watch_assets" toml:"watch_assets"`
	Scene         SceneConfig  `fig:"scene" toml:"scene"`
	Camera        CameraConfig `fig:"camera" toml:"camera"`
}

// Default returns the settings used when no file is found.
// Fields whose zero value is meaningful (booleans, angles, arrays) get their
// defaults here rather than from tags.
func Default() *ApplicationConfig {
	return &ApplicationConfig{
		Name:          "GLKit",
		StartWidth:    1280,
		StartHeight:   720,
		VSync:         true,
		LogLevel:      "info",
		AssetsDir:     "assets",
		ScreenshotDir: "screenshots",
		WatchAssets:   true,
		Scene: SceneConfig{
			ClearColor: [3]float32{0.23, 0.23, 0.23},
			PlaneSize:  100,
			ShowPlane:  true,
			ShowCamera: true,
			ShowLight:  true,
			ShowCube:   true,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 1},
			Pitch:    0,
			Yaw:      -90,
			Fovy:     45,
			Near:     0.1,
			Far:      100,
		},
	}
}

// Load reads path over the defaults. A missing file is
// not an error, the defaults plus GLKIT_ environment variables are used.
func Load(path string) (*ApplicationConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	config := Default()
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	err := fig.Load(config, fig.File(file), fig.Dirs(dir), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		config = Default()
		err = fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if c.Scene.PlaneSize <= 0 {
		return fmt.Errorf("scene.plane_size must be positive, got %d", c.Scene.PlaneSize)
	}
	camera := map[string]float32{
		"position[0]": c.Camera.Position[0],
		"position[1]": c.Camera.Position[1],
		"position[2]": c.Camera.Position[2],
		"pitch":       c.Camera.Pitch,
		"yaw":         c.Camera.Yaw,
		"fovy":        c.Camera.Fovy,
		"near":        c.Camera.Near,
		"far":         c.Camera.Far,
	}
	for name, v := range camera {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("camera.%s must be finite, got %v", name, v)
		}
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// Save writes the configuration as TOML so that Load reads it back
// unchanged.
func Save(path string, c *ApplicationConfig) error {
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}
