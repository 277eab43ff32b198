package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered for image.Decode
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/taigrr/fitroom/pkg/models"
	"github.com/taigrr/fitroom/pkg/scene"
)

// MeshLoader loads OBJ and glTF models relative to Dir.
type MeshLoader struct {
	Dir  string
	pool *Pool
	gltf *models.GLTFLoader
}

// NewMeshLoader creates a mesh loader running on pool.
func NewMeshLoader(pool *Pool, dir string) *MeshLoader {
	return &MeshLoader{Dir: dir, pool: pool, gltf: models.NewGLTFLoader()}
}

// Load starts loading path and returns immediately.
func (l *MeshLoader) Load(path string, cb Callbacks[*scene.Group]) {
	full := resolve(l.Dir, path)
	run(l.pool, path, KindMesh, cb, func(progress func(int64, int64)) (*scene.Group, error) {
		format, err := models.DetectFormat(full)
		if err != nil {
			return nil, err
		}
		if format == models.FormatGLTF {
			return l.loadGLTF(full, progress)
		}
		return loadOBJ(full, progress)
	})
}

func loadOBJ(path string, progress func(int64, int64)) (*scene.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return models.DecodeOBJ(newProgressReader(f, info.Size(), progress), baseName(path))
}

// loadGLTF reads the document in one call, so progress is only reported at
// the start and end.
func (l *MeshLoader) loadGLTF(path string, progress func(int64, int64)) (*scene.Group, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	progress(0, info.Size())
	root, err := l.gltf.Load(path)
	if err != nil {
		return nil, err
	}
	progress(info.Size(), info.Size())
	return root, nil
}

// TextureLoader decodes JPEG, PNG, BMP and WebP images relative to Dir.
// A .glb or .gltf path yields the first image embedded in the document.
type TextureLoader struct {
	Dir  string
	pool *Pool
}

// NewTextureLoader creates a texture loader running on pool.
func NewTextureLoader(pool *Pool, dir string) *TextureLoader {
	return &TextureLoader{Dir: dir, pool: pool}
}

// Load starts loading path and returns immediately.
func (l *TextureLoader) Load(path string, cb Callbacks[*scene.Texture]) {
	full := resolve(l.Dir, path)
	run(l.pool, path, KindTexture, cb, func(progress func(int64, int64)) (*scene.Texture, error) {
		img, err := decodeImage(full, progress)
		if err != nil {
			return nil, err
		}
		return scene.TextureFromImage(baseName(full), img), nil
	})
}

func decodeImage(path string, progress func(int64, int64)) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return models.EmbeddedTexture(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(newProgressReader(f, info.Size(), progress))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
