// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/wardrobe"
)

// Config holds all viewer settings.
type Config struct {
	Viewer   ViewerConfig    `yaml:"viewer"`
	Camera   CameraConfig    `yaml:"camera"`
	Controls ControlsConfig  `yaml:"controls"`
	Lighting LightingConfig  `yaml:"lighting"`
	Assets   AssetsConfig    `yaml:"assets"`
	Platform ModelConfig     `yaml:"platform"`
	Human    ModelConfig     `yaml:"human"`
	Garments []GarmentConfig `yaml:"garments"`
	Remote   RemoteConfig    `yaml:"remote"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// ViewerConfig holds frame pacing and display settings.
type ViewerConfig struct {
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // Hex color, e.g. "#000000"
	ShowHUD    bool   `yaml:"show_hud"`
	// Framebuffer size used when no terminal is attached (snapshots)
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds the perspective camera setup.
type CameraConfig struct {
	FOV      float64    `yaml:"fov"` // Vertical, degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position mgl64.Vec3 `yaml:"position"`
	Target   mgl64.Vec3 `yaml:"target"`
}

// ControlsConfig holds orbit controller settings. Angles are in radians.
type ControlsConfig struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	EnableRotate  bool    `yaml:"enable_rotate"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	MinPolarAngle float64 `yaml:"min_polar_angle"`
	MaxPolarAngle float64 `yaml:"max_polar_angle"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	ZoomScale     float64 `yaml:"zoom_scale"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
}

// LightingConfig holds the ambient and directional light.
type LightingConfig struct {
	AmbientColor         string     `yaml:"ambient_color"`
	AmbientIntensity     float64    `yaml:"ambient_intensity"`
	DirectionalColor     string     `yaml:"directional_color"`
	DirectionalIntensity float64    `yaml:"directional_intensity"`
	DirectionalPosition  mgl64.Vec3 `yaml:"directional_position"`
}

// AssetsConfig holds where models and textures are read from.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	Workers int    `yaml:"workers"`
}

// ModelConfig places a static model.
type ModelConfig struct {
	Mesh     string     `yaml:"mesh"`
	Position mgl64.Vec3 `yaml:"position"`
	Scale    mgl64.Vec3 `yaml:"scale"`
	Rotation mgl64.Vec3 `yaml:"rotation"`
}

// GarmentConfig describes one toggleable garment.
type GarmentConfig struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Mesh     string     `yaml:"mesh"`
	Texture  string     `yaml:"texture"`
	Position mgl64.Vec3 `yaml:"position"`
	Scale    mgl64.Vec3 `yaml:"scale"`
	Rotation mgl64.Vec3 `yaml:"rotation"`
	Keys     []string   `yaml:"keys"`
}

// RemoteConfig holds the browser remote settings. An empty Listen address
// disables the remote.
type RemoteConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with the fitting-room defaults.
func Default() *Config {
	cfg := &Config{
		Viewer: ViewerConfig{
			FPS:        60,
			Background: "#000000",
			ShowHUD:    true,
			Width:      160,
			Height:     96,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: mgl64.Vec3{1.5, 35, 30},
		},
		Controls: ControlsConfig{
			EnableDamping: true,
			DampingFactor: 0.05,
			EnableRotate:  true,
			RotateSpeed:   1,
			MinPolarAngle: math.Pi / 2,
			MaxPolarAngle: math.Pi / 2,
			EnableZoom:    true,
			ZoomScale:     0.95,
			MinDistance:   1,
			MaxDistance:   500,
		},
		Lighting: LightingConfig{
			AmbientColor:         "#404040",
			AmbientIntensity:     2,
			DirectionalColor:     "#ffffff",
			DirectionalIntensity: 1,
			DirectionalPosition:  mgl64.Vec3{1, 1, 1},
		},
		Assets: AssetsConfig{
			Dir:     ".",
			Workers: 4,
		},
		Platform: ModelConfig{
			Mesh:     "stageobj.obj",
			Position: mgl64.Vec3{1.8, -4, 2},
			Scale:    mgl64.Vec3{3, 2, 3},
		},
		Human: ModelConfig{
			Mesh:  "human.obj",
			Scale: mgl64.Vec3{1, 1, 1},
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "fitroom.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
	for _, g := range wardrobe.Defaults() {
		cfg.Garments = append(cfg.Garments, GarmentConfig{
			ID:       g.ID,
			Name:     g.Name,
			Mesh:     g.Mesh,
			Texture:  g.Texture,
			Position: g.Position,
			Scale:    g.Scale,
			Rotation: g.Rotation,
			Keys:     g.Keys,
		})
	}
	return cfg
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Viewer.FPS <= 0:
		return fmt.Errorf("viewer.fps must be positive, got %d", c.Viewer.FPS)
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes invalid: near %v, far %v", c.Camera.Near, c.Camera.Far)
	case c.Controls.MinPolarAngle > c.Controls.MaxPolarAngle:
		return fmt.Errorf("controls polar range invalid: %v > %v", c.Controls.MinPolarAngle, c.Controls.MaxPolarAngle)
	case c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1:
		return fmt.Errorf("controls.damping_factor must be in (0, 1], got %v", c.Controls.DampingFactor)
	case c.Assets.Workers <= 0:
		return fmt.Errorf("assets.workers must be positive, got %d", c.Assets.Workers)
	case c.Platform.Mesh == "" || c.Human.Mesh == "":
		return fmt.Errorf("platform and human meshes are required")
	}

	for _, s := range []string{c.Viewer.Background, c.Lighting.AmbientColor, c.Lighting.DirectionalColor} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.Garments))
	for _, g := range c.Garments {
		if !slices.Contains(wardrobe.IDs(), g.ID) {
			return fmt.Errorf("garments: %w: %q", wardrobe.ErrUnknownGarment, g.ID)
		}
		if seen[g.ID] {
			return fmt.Errorf("garments: %q listed twice", g.ID)
		}
		seen[g.ID] = true
		if g.Mesh == "" || g.Texture == "" {
			return fmt.Errorf("garments: %q needs a mesh and a texture", g.ID)
		}
	}
	if len(seen) != 4 {
		return fmt.Errorf("garments: expected 4 garments, got %d", len(seen))
	}
	return nil
}

// WardrobeGarments converts the garment table for wardrobe.New.
func (c *Config) WardrobeGarments() []wardrobe.Garment {
	out := make([]wardrobe.Garment, 0, len(c.Garments))
	for _, g := range c.Garments {
		out = append(out, wardrobe.Garment{
			ID:       g.ID,
			Name:     g.Name,
			Mesh:     g.Mesh,
			Texture:  g.Texture,
			Position: g.Position,
			Scale:    g.Scale,
			Rotation: g.Rotation,
			Keys:     g.Keys,
		})
	}
	return out
}

// ParseColor parses "#rrggbb" or "0xrrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
