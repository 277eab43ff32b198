// Package scene provides the in-memory scene graph for fitroom: loaded objects,
// their node hierarchies, materials, textures and lights.
package scene

// Node is a node in a loaded object's hierarchy. The set of node kinds is
// closed: every Node is either a *Group or a *Mesh.
type Node interface {
	NodeName() string
	node()
}

// Group is an interior node holding child nodes.
type Group struct {
	Name     string
	Children []Node
}

// Mesh is a leaf node carrying drawable geometry and its material.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *Material
}

// NewGroup creates a group with the given children.
func NewGroup(name string, children ...Node) *Group {
	return &Group{Name: name, Children: children}
}

// NewMesh creates a mesh node. A nil material is replaced with a default one.
func NewMesh(name string, geom *Geometry, mat *Material) *Mesh {
	if mat == nil {
		mat = NewMaterial(name)
	}
	return &Mesh{Name: name, Geometry: geom, Material: mat}
}

func (g *Group) NodeName() string { return g.Name }
func (m *Mesh) NodeName() string  { return m.Name }

func (*Group) node() {}
func (*Mesh) node()  {}

// Add appends children to the group.
func (g *Group) Add(children ...Node) {
	g.Children = append(g.Children, children...)
}

// Walk visits n and all of its descendants depth-first, parents before children.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			Walk(child, fn)
		}
	}
}

// Meshes returns every Mesh in the hierarchy rooted at n, in walk order.
func Meshes(n Node) []*Mesh {
	var out []*Mesh
	Walk(n, func(node Node) {
		if m, ok := node.(*Mesh); ok {
			out = append(out, m)
		}
	})
	return out
}

// BindTexture sets tex as the color map of every mesh material under n and
// returns how many meshes were bound.
func BindTexture(n Node, tex *Texture) int {
	count := 0
	for _, m := range Meshes(n) {
		m.Material.SetMap(tex)
		count++
	}
	return count
}
