package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/fitroom/pkg/scene"
)

// GLTFLoader loads glTF/GLB files into scene hierarchies.
type GLTFLoader struct {
	// CalculateNormals generates smooth normals for primitives that ship
	// without them.
	CalculateNormals bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{CalculateNormals: true}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*scene.Group, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens a glTF document and converts every triangle primitive into a
// Mesh. Each glTF mesh becomes a Group of its primitives.
func (l *GLTFLoader) Load(path string) (*scene.Group, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Convert(doc, filepath.Base(path))
}

// Convert builds a scene hierarchy from an already decoded document.
func (l *GLTFLoader) Convert(doc *gltf.Document, name string) (*scene.Group, error) {
	root := scene.NewGroup(name)

	for mi, m := range doc.Meshes {
		meshName := m.Name
		if meshName == "" {
			meshName = fmt.Sprintf("%s#%d", name, mi)
		}
		group := scene.NewGroup(meshName)

		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Lines and points have no surface to shade
				continue
			}
			geom, err := l.readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", meshName, pi, err)
			}
			if geom == nil {
				continue
			}
			group.Add(scene.NewMesh(fmt.Sprintf("%s.%d", meshName, pi), geom, nil))
		}

		if len(group.Children) > 0 {
			root.Add(group)
		}
	}

	if len(scene.Meshes(root)) == 0 {
		return nil, ErrNoGeometry
	}
	return root, nil
}

func (l *GLTFLoader) readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*scene.Geometry, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
	}

	geom := scene.NewGeometry()
	geom.Vertices = make([]scene.Vertex, len(positions))
	for i, p := range positions {
		v := scene.Vertex{Position: mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}}
		if i < len(normals) {
			n := normals[i]
			v.Normal = mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])}
		}
		if i < len(uvs) {
			// glTF puts V=0 at the top of the image
			v.UV = mgl64.Vec2{float64(uvs[i][0]), 1 - float64(uvs[i][1])}
		}
		geom.Vertices[i] = v
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			f := scene.Face{int(indices[i]), int(indices[i+1]), int(indices[i+2])}
			if f[0] >= len(positions) || f[1] >= len(positions) || f[2] >= len(positions) {
				return nil, fmt.Errorf("index out of range in face %d", i/3)
			}
			geom.Faces = append(geom.Faces, f)
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			geom.Faces = append(geom.Faces, scene.Face{i, i + 1, i + 2})
		}
	}

	if len(geom.Faces) == 0 {
		return nil, nil
	}
	if l.CalculateNormals && !geom.HasNormals() {
		geom.CalculateSmoothNormals()
	}
	geom.CalculateBounds()
	return geom, nil
}

// EmbeddedTexture returns the first decodable image referenced by a glTF
// document, either packed in a buffer view or stored next to the file.
// It returns nil without error when the document carries no images.
func EmbeddedTexture(path string) (image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil:
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data == nil {
				continue
			}
			data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		case img.URI != "" && !strings.HasPrefix(img.URI, "data:"):
			data, err = os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
			if err != nil {
				continue
			}
		default:
			continue
		}

		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return decoded, nil
		}
	}
	return nil, nil
}
