package wardrobe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Button ids of the four garments.
const (
	UpperClothesID = "upper-clothes-btn"
	LowerClothesID = "lower-clothes-btn"
	AccessoriesID  = "accessories-btn"
	ShoesID        = "shoes-btn"
)

// IDs returns the garment button ids in button order.
func IDs() []string {
	return []string{UpperClothesID, LowerClothesID, AccessoriesID, ShoesID}
}

// Garment describes one toggleable piece of clothing and where it sits on
// the figure.
type Garment struct {
	ID       string
	Name     string
	Mesh     string
	Texture  string
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3 // Euler XYZ, radians
	Keys     []string
}

// Defaults returns the built-in garment table in button order.
func Defaults() []Garment {
	return []Garment{
		{
			ID:       UpperClothesID,
			Name:     "Upper clothes",
			Mesh:     "top2.obj",
			Texture:  "top_texture.jpeg",
			Position: mgl64.Vec3{0, -0.5, 1},
			Scale:    mgl64.Vec3{0.15, 0.12, 0.25},
			Keys:     []string{"1", "u"},
		},
		{
			ID:       LowerClothesID,
			Name:     "Lower clothes",
			Mesh:     "bottom.obj",
			Texture:  "top_texture2.jpeg",
			Position: mgl64.Vec3{0, 0, -0.8},
			Scale:    mgl64.Vec3{0.29, 0.37, 0.26},
			Rotation: mgl64.Vec3{3 * math.Pi / 2, 0, 0},
			Keys:     []string{"2", "l"},
		},
		{
			ID:       AccessoriesID,
			Name:     "Accessories",
			Mesh:     "hat.obj",
			Texture:  "hat_texture.jpeg",
			Position: mgl64.Vec3{-0.8, 18.9, -1.9},
			Scale:    mgl64.Vec3{0.2, 0.2, 0.2},
			Keys:     []string{"3", "a"},
		},
		{
			ID:       ShoesID,
			Name:     "Shoes",
			Mesh:     "shoes.obj",
			Texture:  "cropped-image.jpeg",
			Position: mgl64.Vec3{0.3, 0, 0.25},
			Scale:    mgl64.Vec3{0.25, 0.25, 0.25},
			Keys:     []string{"4", "s"},
		},
	}
}
