package viewer

import (
	"github.com/taigrr/fitroom/internal/config"
	"github.com/taigrr/fitroom/pkg/assets"
	"github.com/taigrr/fitroom/pkg/scene"
	"go.uber.org/zap"
)

// Model is a static part of the room that is loaded once and always shown.
type Model struct {
	Name   string
	Config config.ModelConfig
	Object *scene.Object // Nil until loaded
	Err    error
}

// loadModel issues the single load of a static model. A failure leaves the
// scene without it.
func (s *Session) loadModel(m *Model) {
	log := s.log.With(zap.String("model", m.Name), zap.String("path", m.Config.Mesh))
	s.meshes.Load(m.Config.Mesh, assets.Callbacks[*scene.Group]{
		OnLoad: func(root *scene.Group) {
			obj := scene.NewObject(m.Name, root)
			obj.Position = m.Config.Position
			obj.Scale = m.Config.Scale
			obj.Rotation = m.Config.Rotation
			m.Object = obj
			s.Scene.Add(obj)
			log.Info("model loaded", zap.Int("triangles", obj.TriangleCount()))
		},
		OnProgress: func(loaded, total int64) {
			log.Debug("loading", zap.Int64("loaded", loaded), zap.Int64("total", total))
		},
		OnError: func(err error) {
			m.Err = err
			log.Error("model load failed", zap.Error(err))
		},
	})
}
