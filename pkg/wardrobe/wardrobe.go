// Package wardrobe manages the four toggleable garments worn by the figure.
package wardrobe

import (
	"errors"
	"fmt"
	"slices"

	"github.com/taigrr/fitroom/internal/logger"
	"github.com/taigrr/fitroom/pkg/scene"
)

// ErrUnknownGarment is returned for an id that names no garment.
var ErrUnknownGarment = errors.New("unknown garment")

// Event reports a garment state change.
type Event struct {
	ID      string `json:"id"`
	State   string `json:"state"`
	Visible bool   `json:"visible"`
}

// Wardrobe holds one Manager per garment.
type Wardrobe struct {
	UpperClothes *Manager
	LowerClothes *Manager
	Accessories  *Manager
	Shoes        *Manager

	subscribers []func(Event)
}

// New builds the wardrobe from a garment table, which must describe each of
// the four garments exactly once.
func New(s *scene.Scene, meshes MeshLoader, textures TextureLoader, garments []Garment) (*Wardrobe, error) {
	w := &Wardrobe{}
	log := logger.Named("wardrobe")

	for _, g := range garments {
		slot, err := w.slot(g.ID)
		if err != nil {
			return nil, err
		}
		if *slot != nil {
			return nil, fmt.Errorf("garment %q listed twice", g.ID)
		}
		*slot = newManager(g, s, meshes, textures, log, w.publish)
	}

	for _, m := range w.Managers() {
		if m == nil {
			return nil, fmt.Errorf("garment table must list %s, %s, %s and %s",
				UpperClothesID, LowerClothesID, AccessoriesID, ShoesID)
		}
	}
	return w, nil
}

func (w *Wardrobe) slot(id string) (**Manager, error) {
	switch id {
	case UpperClothesID:
		return &w.UpperClothes, nil
	case LowerClothesID:
		return &w.LowerClothes, nil
	case AccessoriesID:
		return &w.Accessories, nil
	case ShoesID:
		return &w.Shoes, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGarment, id)
	}
}

// Managers returns the garments in button order.
func (w *Wardrobe) Managers() []*Manager {
	return []*Manager{w.UpperClothes, w.LowerClothes, w.Accessories, w.Shoes}
}

// Get returns the manager for a button id.
func (w *Wardrobe) Get(id string) (*Manager, error) {
	slot, err := w.slot(id)
	if err != nil {
		return nil, err
	}
	return *slot, nil
}

// Activate presses the button with the given id.
func (w *Wardrobe) Activate(id string) error {
	m, err := w.Get(id)
	if err != nil {
		return err
	}
	m.Activate()
	return nil
}

// ForKey returns the garment bound to a key, if any.
func (w *Wardrobe) ForKey(key string) (*Manager, bool) {
	for _, m := range w.Managers() {
		if slices.Contains(m.Garment.Keys, key) {
			return m, true
		}
	}
	return nil, false
}

// OnChange registers fn to be called after every state change.
func (w *Wardrobe) OnChange(fn func(Event)) {
	w.subscribers = append(w.subscribers, fn)
}

// Snapshot returns the current state of every garment in button order.
func (w *Wardrobe) Snapshot() []Event {
	out := make([]Event, 0, 4)
	for _, m := range w.Managers() {
		out = append(out, eventFor(m))
	}
	return out
}

func (w *Wardrobe) publish(m *Manager) {
	ev := eventFor(m)
	for _, fn := range w.subscribers {
		fn(ev)
	}
}

func eventFor(m *Manager) Event {
	return Event{ID: m.Garment.ID, State: m.state.String(), Visible: m.visible}
}
