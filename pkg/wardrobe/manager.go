package wardrobe

import (
	"fmt"

	"github.com/taigrr/fitroom/pkg/assets"
	"github.com/taigrr/fitroom/pkg/scene"
	"go.uber.org/zap"
)

// MeshLoader starts an asynchronous model load.
type MeshLoader interface {
	Load(path string, cb assets.Callbacks[*scene.Group])
}

// TextureLoader starts an asynchronous texture load.
type TextureLoader interface {
	Load(path string, cb assets.Callbacks[*scene.Texture])
}

// State is the lifecycle of a garment.
type State int

const (
	Absent  State = iota // Never requested
	Loading              // Mesh or texture in flight
	Visible
	Hidden
	Failed // Mesh load failed; terminal
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Loading:
		return "loading"
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Manager toggles one garment. The first activation loads its mesh and
// texture; later ones flip its visibility. Callbacks and Activate must run
// on the same goroutine.
type Manager struct {
	Garment Garment

	state   State
	visible bool
	object  *scene.Object
	err     error

	scene    *scene.Scene
	meshes   MeshLoader
	textures TextureLoader
	log      *zap.Logger
	changed  func(*Manager)
}

func newManager(g Garment, s *scene.Scene, meshes MeshLoader, textures TextureLoader, log *zap.Logger, changed func(*Manager)) *Manager {
	return &Manager{
		Garment:  g,
		scene:    s,
		meshes:   meshes,
		textures: textures,
		log:      log.With(zap.String("garment", g.ID)),
		changed:  changed,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// Visible reports the stored display flag.
func (m *Manager) Visible() bool { return m.visible }

// Object returns the loaded garment, or nil before the mesh arrives.
func (m *Manager) Object() *scene.Object { return m.object }

// Err returns the mesh load failure, if any.
func (m *Manager) Err() error { return m.err }

// Activate advances the garment's state machine by one button press.
func (m *Manager) Activate() {
	switch m.state {
	case Absent:
		m.setState(Loading)
		m.meshes.Load(m.Garment.Mesh, assets.Callbacks[*scene.Group]{
			OnLoad:     m.meshLoaded,
			OnProgress: m.progress,
			OnError:    m.meshFailed,
		})
	case Loading:
		m.log.Debug("activation ignored while loading")
	case Failed:
		m.log.Debug("activation ignored after failed load")
	case Visible:
		m.setVisible(false)
	case Hidden:
		m.setVisible(true)
	}
}

func (m *Manager) meshLoaded(root *scene.Group) {
	obj := scene.NewObject(m.Garment.ID, root)
	obj.Position = m.Garment.Position
	obj.Scale = m.Garment.Scale
	obj.Rotation = m.Garment.Rotation
	obj.Visible = false
	m.object = obj

	m.textures.Load(m.Garment.Texture, assets.Callbacks[*scene.Texture]{
		OnLoad: func(tex *scene.Texture) {
			n := scene.BindTexture(root, tex)
			m.log.Debug("texture bound", zap.String("path", m.Garment.Texture), zap.Int("meshes", n))
			m.show()
		},
		OnProgress: m.progress,
		OnError: func(err error) {
			m.log.Error("texture load failed", zap.String("path", m.Garment.Texture), zap.Error(err))
			m.show()
		},
	})
}

func (m *Manager) meshFailed(err error) {
	m.err = err
	m.log.Error("mesh load failed", zap.String("path", m.Garment.Mesh), zap.Error(err))
	m.setState(Failed)
}

func (m *Manager) progress(loaded, total int64) {
	m.log.Debug("loading", zap.Int64("loaded", loaded), zap.Int64("total", total))
}

// show adds the fully textured garment to the scene.
func (m *Manager) show() {
	m.scene.Add(m.object)
	m.setVisible(true)
}

func (m *Manager) setVisible(v bool) {
	m.visible = v
	m.object.Visible = v
	if v {
		m.setState(Visible)
	} else {
		m.setState(Hidden)
	}
}

func (m *Manager) setState(s State) {
	m.state = s
	m.log.Info("garment state", zap.Stringer("state", s))
	if m.changed != nil {
		m.changed(m)
	}
}
