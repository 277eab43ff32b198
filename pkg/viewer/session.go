// Package viewer wires the fitting room together: scene, camera, orbit
// controls, renderer, asset loaders and wardrobe.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/taigrr/fitroom/internal/config"
	"github.com/taigrr/fitroom/internal/logger"
	"github.com/taigrr/fitroom/pkg/assets"
	"github.com/taigrr/fitroom/pkg/controls"
	"github.com/taigrr/fitroom/pkg/render"
	"github.com/taigrr/fitroom/pkg/scene"
	"github.com/taigrr/fitroom/pkg/wardrobe"
	"go.uber.org/zap"
)

// ErrInvalidSize is returned for a non-positive framebuffer size.
var ErrInvalidSize = errors.New("invalid framebuffer size")

// Session owns everything one fitting room needs. Apart from Post, its
// methods must be called from a single goroutine.
type Session struct {
	Config   *config.Config
	Scene    *scene.Scene
	Camera   *render.Camera
	Controls *controls.OrbitControls
	Renderer *render.Renderer
	Wardrobe *wardrobe.Wardrobe

	Platform *Model
	Human    *Model

	dispatcher *assets.Dispatcher
	pool       *assets.Pool
	meshes     *assets.MeshLoader
	textures   *assets.TextureLoader

	log     *zap.Logger
	started bool
}

// Option configures a Session.
type Option func(*Session) error

// WithSize sets the initial framebuffer size in pixels.
func WithSize(width, height int) Option {
	return func(s *Session) error {
		return s.SetSize(width, height)
	}
}

// WithLogger replaces the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) error {
		s.log = log
		return nil
	}
}

// New builds a session from cfg. A nil cfg uses config.Default. Nothing is
// loaded until Start.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	width, height := cfg.Viewer.Width, cfg.Viewer.Height

	bg, _ := config.ParseColor(cfg.Viewer.Background)
	ambient, _ := config.ParseColor(cfg.Lighting.AmbientColor)
	directional, _ := config.ParseColor(cfg.Lighting.DirectionalColor)

	s := &Session{
		Config: cfg,
		Scene:  scene.New(bg),
		log:    logger.Named("viewer"),
	}
	s.Scene.AddLight(scene.NewAmbientLight(ambient, cfg.Lighting.AmbientIntensity))
	s.Scene.AddLight(scene.NewDirectionalLight(directional, cfg.Lighting.DirectionalIntensity, cfg.Lighting.DirectionalPosition))

	s.Camera = render.NewCamera(cfg.Camera.FOV, float64(width)/float64(height), cfg.Camera.Near, cfg.Camera.Far)
	s.Camera.SetPosition(cfg.Camera.Position)
	s.Camera.LookAt(cfg.Camera.Target)
	s.Controls = controls.New(s.Camera, controlOptions(cfg))
	s.Renderer = render.NewRenderer(width, height)

	s.dispatcher = assets.NewDispatcher()
	s.pool = assets.NewPool(cfg.Assets.Workers, s.dispatcher)
	s.meshes = assets.NewMeshLoader(s.pool, cfg.Assets.Dir)
	s.textures = assets.NewTextureLoader(s.pool, cfg.Assets.Dir)

	w, err := wardrobe.New(s.Scene, s.meshes, s.textures, cfg.WardrobeGarments())
	if err != nil {
		s.pool.Close()
		return nil, err
	}
	s.Wardrobe = w

	s.Platform = &Model{Name: "platform", Config: cfg.Platform}
	s.Human = &Model{Name: "human", Config: cfg.Human}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Close()
			return nil, err
		}
	}
	return s, nil
}

func controlOptions(cfg *config.Config) controls.Options {
	c := cfg.Controls
	return controls.Options{
		EnableDamping: c.EnableDamping,
		DampingFactor: c.DampingFactor,
		EnableRotate:  c.EnableRotate,
		RotateSpeed:   c.RotateSpeed,
		MinPolarAngle: c.MinPolarAngle,
		MaxPolarAngle: c.MaxPolarAngle,
		EnableZoom:    c.EnableZoom,
		ZoomScale:     c.ZoomScale,
		MinDistance:   c.MinDistance,
		MaxDistance:   c.MaxDistance,
		FPS:           cfg.Viewer.FPS,
	}
}

// Start requests the platform and human models. Later calls do nothing.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.loadModel(s.Platform)
	s.loadModel(s.Human)
}

// Frame runs queued load callbacks, advances the orbit controls and renders
// the scene into the framebuffer.
func (s *Session) Frame() render.Stats {
	s.dispatcher.Drain()
	s.Controls.Update()
	s.Renderer.Render(s.Scene, s.Camera)
	return s.Renderer.Stats
}

// Resize fits the framebuffer to a terminal of cols x rows cells. Each cell
// shows two pixel rows.
func (s *Session) Resize(cols, rows int) error {
	return s.SetSize(cols, rows*2)
}

// SetSize sets the framebuffer size in pixels and matches the camera aspect
// ratio to it.
func (s *Session) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.Renderer.Resize(width, height)
	s.Camera.SetAspectRatio(float64(width) / float64(height))
	return nil
}

// Activate presses a garment button.
func (s *Session) Activate(id string) error {
	return s.Wardrobe.Activate(id)
}

// Post queues fn to run on the session goroutine during the next Frame. It
// is safe to call from any goroutine.
func (s *Session) Post(fn func()) {
	s.dispatcher.Post(fn)
}

// Ready is signalled when work has been posted for the session goroutine.
func (s *Session) Ready() <-chan struct{} {
	return s.dispatcher.Ready()
}

// Settle blocks until every requested load, including loads started by
// callbacks, has completed and been applied.
func (s *Session) Settle(ctx context.Context) error {
	for {
		done := make(chan struct{})
		go func() {
			s.pool.Wait()
			close(done)
		}()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}
		if s.dispatcher.Drain() == 0 {
			return nil
		}
	}
}

// Snapshot writes the current framebuffer to a PNG file.
func (s *Session) Snapshot(path string) error {
	return s.Renderer.Framebuffer().SavePNG(path)
}

// Close stops the loader pool after in-flight loads finish.
func (s *Session) Close() {
	s.pool.Close()
}
