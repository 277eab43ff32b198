package scene

import "image/color"

// Material describes how a mesh surface is shaded.
type Material struct {
	Name  string
	Color color.RGBA // Base color, multiplied with the map when one is bound
	Map   *Texture   // Optional color map

	// Version increases every time the material changes so renderers can
	// refresh anything derived from it.
	Version int
}

// NewMaterial creates a white, untextured material.
func NewMaterial(name string) *Material {
	return &Material{
		Name:  name,
		Color: color.RGBA{255, 255, 255, 255},
	}
}

// SetMap binds tex as the color map and marks the material as changed.
func (m *Material) SetMap(tex *Texture) {
	m.Map = tex
	m.Version++
}

// Hex converts a 0xRRGGBB value into an opaque color.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 255}
}
