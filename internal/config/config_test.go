package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/pflag"
	"github.com/taigrr/fitroom/pkg/wardrobe"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewer.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Viewer.FPS)
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Camera.Position != (mgl64.Vec3{1.5, 35, 30}) {
		t.Errorf("expected camera at (1.5, 35, 30), got %v", cfg.Camera.Position)
	}
	if cfg.Platform.Mesh != "stageobj.obj" || cfg.Platform.Scale != (mgl64.Vec3{3, 2, 3}) {
		t.Errorf("unexpected platform %+v", cfg.Platform)
	}
	if cfg.Platform.Position != (mgl64.Vec3{1.8, -4, 2}) {
		t.Errorf("expected platform at (1.8, -4, 2), got %v", cfg.Platform.Position)
	}
	if cfg.Human.Mesh != "human.obj" {
		t.Errorf("expected human.obj, got %s", cfg.Human.Mesh)
	}
	if cfg.Lighting.AmbientColor != "#404040" || cfg.Lighting.AmbientIntensity != 2 {
		t.Errorf("unexpected ambient light %s x %v", cfg.Lighting.AmbientColor, cfg.Lighting.AmbientIntensity)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	ids := wardrobe.IDs()
	if len(cfg.Garments) != len(ids) {
		t.Fatalf("expected %d garments, got %d", len(ids), len(cfg.Garments))
	}
	for i, g := range cfg.Garments {
		if g.ID != ids[i] {
			t.Errorf("garment %d: expected %s, got %s", i, ids[i], g.ID)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFileMerges(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "fitroom.yaml")
	yamlContent := `
viewer:
  fps: 30
  background: "#202020"
camera:
  position: [0, 10, 20]
garments:
  - id: shoes-btn
    mesh: boots.obj
    texture: boots.png
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Viewer.FPS)
	}
	if cfg.Viewer.Background != "#202020" {
		t.Errorf("expected background #202020, got %s", cfg.Viewer.Background)
	}
	if cfg.Camera.Position != (mgl64.Vec3{0, 10, 20}) {
		t.Errorf("expected camera position (0, 10, 20), got %v", cfg.Camera.Position)
	}
	// Values absent from the file keep their defaults
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov to stay 75, got %v", cfg.Camera.FOV)
	}
	if cfg.Human.Mesh != "human.obj" {
		t.Errorf("expected human mesh to stay human.obj, got %s", cfg.Human.Mesh)
	}
	if len(cfg.Garments) != 1 || cfg.Garments[0].Mesh != "boots.obj" {
		t.Errorf("expected garment list to be replaced, got %+v", cfg.Garments)
	}
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "fitroom.yaml")
	yamlContent := `
viewer:
  fps: 30
assets:
  dir: /srv/fitroom
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{ConfigPath: configPath, FPS: 120, Debug: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Viewer.FPS != 120 {
		t.Errorf("flag should override file fps: got %d", cfg.Viewer.FPS)
	}
	if cfg.Assets.Dir != "/srv/fitroom" {
		t.Errorf("file should override default dir: got %s", cfg.Assets.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("--debug should set level debug: got %s", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("viewer:\n  fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	malformed := filepath.Join(dir, "malformed.yaml")
	if err := os.WriteFile(malformed, []byte("viewer: [fps\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"invalid value", invalid},
		{"malformed yaml", malformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(&Flags{ConfigPath: tt.path}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadWithoutFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load(nil) failed: %v", err)
	}
	if cfg.Viewer.FPS != 60 {
		t.Errorf("expected default fps, got %d", cfg.Viewer.FPS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Viewer.FPS = 0 }},
		{"zero width", func(c *Config) { c.Viewer.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"polar range inverted", func(c *Config) { c.Controls.MinPolarAngle = 3 }},
		{"no workers", func(c *Config) { c.Assets.Workers = 0 }},
		{"bad background", func(c *Config) { c.Viewer.Background = "black" }},
		{"no human", func(c *Config) { c.Human.Mesh = "" }},
		{"unknown garment", func(c *Config) { c.Garments[0].ID = "cape-btn" }},
		{"duplicate garment", func(c *Config) { c.Garments[1].ID = c.Garments[0].ID }},
		{"missing garment", func(c *Config) { c.Garments = c.Garments[:3] }},
		{"garment without texture", func(c *Config) { c.Garments[2].Texture = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.FPS = 24
	cfg.Garments[3].Mesh = "boots.obj"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Viewer.FPS != 24 {
		t.Errorf("expected fps 24, got %d", loaded.Viewer.FPS)
	}
	if loaded.Garments[3].Mesh != "boots.obj" {
		t.Errorf("expected boots.obj, got %s", loaded.Garments[3].Mesh)
	}
	if loaded.Platform.Position != cfg.Platform.Position {
		t.Errorf("platform position %v, want %v", loaded.Platform.Position, cfg.Platform.Position)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("saved config should validate: %v", err)
	}
}

func TestFlagsRegister(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("fitroom", pflag.ContinueOnError)
	f.Register(fs)

	args := []string{"--fps", "30", "-d", "models", "--listen", ":8080", "--bg", "#112233"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := Default()
	f.apply(cfg)

	if cfg.Viewer.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Viewer.FPS)
	}
	if cfg.Assets.Dir != "models" {
		t.Errorf("expected assets dir models, got %s", cfg.Assets.Dir)
	}
	if cfg.Remote.Listen != ":8080" {
		t.Errorf("expected listen :8080, got %s", cfg.Remote.Listen)
	}
	if cfg.Viewer.Background != "#112233" {
		t.Errorf("expected background #112233, got %s", cfg.Viewer.Background)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level should be untouched without --debug, got %s", cfg.Logging.Level)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#404040", color.RGBA{0x40, 0x40, 0x40, 255}, false},
		{"0xFFFFFF", color.RGBA{255, 255, 255, 255}, false},
		{"#12ab9F", color.RGBA{0x12, 0xab, 0x9f, 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
