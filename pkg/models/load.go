package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/scene"
)

// Format identifies a supported model file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatGLTF
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatGLTF:
		return "gltf"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".glb", ".gltf":
		return FormatGLTF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load loads any supported model file.
func Load(path string) (*scene.Group, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatGLTF:
		return LoadGLTF(path)
	default:
		return LoadOBJ(path)
	}
}

// Stats summarizes a loaded hierarchy.
type Stats struct {
	Meshes    int
	Vertices  int
	Triangles int
	Min, Max  mgl64.Vec3
}

// Size returns the extent of the bounding box.
func (s Stats) Size() mgl64.Vec3 {
	return s.Max.Sub(s.Min)
}

// Center returns the middle of the bounding box.
func (s Stats) Center() mgl64.Vec3 {
	return s.Min.Add(s.Max).Mul(0.5)
}

// Inspect counts the meshes, vertices and triangles under root and merges
// their bounds.
func Inspect(root scene.Node) Stats {
	var st Stats
	first := true
	for _, m := range scene.Meshes(root) {
		st.Meshes++
		if m.Geometry == nil {
			continue
		}
		g := m.Geometry
		st.Vertices += g.VertexCount()
		st.Triangles += g.TriangleCount()
		if g.VertexCount() == 0 {
			continue
		}
		if first {
			st.Min, st.Max = g.BoundsMin, g.BoundsMax
			first = false
			continue
		}
		for i := range 3 {
			st.Min[i] = min(st.Min[i], g.BoundsMin[i])
			st.Max[i] = max(st.Max[i], g.BoundsMax[i])
		}
	}
	return st
}
