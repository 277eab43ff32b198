// Package models decodes 3D model files into scene hierarchies for fitroom.
package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/scene"
)

// ErrNoGeometry is returned when a model file decodes without any faces.
var ErrNoGeometry = errors.New("model contains no faces")

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*scene.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return DecodeOBJ(f, filepath.Base(path))
}

// DecodeOBJ parses OBJ data. Every "o" or "g" section becomes its own Mesh
// under the returned Group.
func DecodeOBJ(r io.Reader, name string) (*scene.Group, error) {
	p := &objParser{root: scene.NewGroup(name)}
	p.begin(name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	p.flush()
	if len(p.root.Children) == 0 {
		return nil, ErrNoGeometry
	}
	return p.root, nil
}

// objCorner identifies a unique position/uv/normal combination.
// Missing attributes are -1.
type objCorner struct {
	v, vt, vn int
}

type objBuilder struct {
	name     string
	material string
	geom     *scene.Geometry
	index    map[objCorner]int
}

type objParser struct {
	positions []mgl64.Vec3
	uvs       []mgl64.Vec2
	normals   []mgl64.Vec3

	root *scene.Group
	cur  *objBuilder
}

func (p *objParser) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}

	fields := strings.Fields(line)
	keyword, args := fields[0], fields[1:]

	switch keyword {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, mgl64.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, mgl64.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		p.uvs = append(p.uvs, mgl64.Vec2{v[0], v[1]})
	case "f":
		return p.parseFace(args)
	case "o", "g":
		name := strings.Join(args, " ")
		if name == "" {
			name = p.root.Name
		}
		p.begin(name)
	case "usemtl":
		mtl := strings.Join(args, " ")
		if len(p.cur.geom.Faces) > 0 && p.cur.material != mtl {
			p.begin(p.cur.name)
		}
		p.cur.material = mtl
	default:
		// mtllib, s, l, p and vendor extensions carry nothing we render
	}
	return nil
}

// begin closes the current builder and starts a new mesh.
func (p *objParser) begin(name string) {
	p.flush()
	p.cur = &objBuilder{
		name:  name,
		geom:  scene.NewGeometry(),
		index: make(map[objCorner]int),
	}
}

// flush finishes the current builder, dropping it when it has no faces.
func (p *objParser) flush() {
	b := p.cur
	if b == nil || len(b.geom.Faces) == 0 {
		return
	}
	if !b.geom.HasNormals() {
		b.geom.CalculateSmoothNormals()
	}
	b.geom.CalculateBounds()

	mat := scene.NewMaterial(b.material)
	p.root.Add(scene.NewMesh(b.name, b.geom, mat))
	p.cur = nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}

	idx := make([]int, len(args))
	for i, a := range args {
		c, err := p.parseCorner(a)
		if err != nil {
			return fmt.Errorf("face vertex %q: %w", a, err)
		}
		idx[i] = p.cur.vertex(c, p)
	}

	// Triangulate polygons as a fan around the first vertex
	for i := 1; i+1 < len(idx); i++ {
		p.cur.geom.Faces = append(p.cur.geom.Faces, scene.Face{idx[0], idx[i], idx[i+1]})
	}
	return nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) parseCorner(s string) (objCorner, error) {
	parts := strings.Split(s, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}

	var err error
	if c.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

// vertex returns the geometry index for a corner, creating it on first use.
func (b *objBuilder) vertex(c objCorner, p *objParser) int {
	if i, ok := b.index[c]; ok {
		return i
	}

	v := scene.Vertex{Position: p.positions[c.v]}
	if c.vt >= 0 {
		v.UV = p.uvs[c.vt]
	}
	if c.vn >= 0 {
		v.Normal = p.normals[c.vn]
	}

	i := len(b.geom.Vertices)
	b.geom.Vertices = append(b.geom.Vertices, v)
	b.index[c] = i
	return i
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based slice index.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index: %w", err)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return n, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
