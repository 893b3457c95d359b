package scene

import (
	"slices"

	"github.com/oliverbestmann/vitrine/glm"
)

// Node is one element of the scene graph, with a local transform
// relative to its parent.
type Node struct {
	Name string

	Translation glm.Vec3f
	Rotation    glm.Quaternionf
	Scale       glm.Vec3f

	// optional mesh rendered with this nodes world transform
	Mesh *Mesh

	children []*Node
	parent   *Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: glm.IdentityQuaternion[float32](),
		Scale:    glm.Vec3f{1, 1, 1},
	}
}

// Add attaches child to n, detaching it from its previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}

	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Remove(child *Node) {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}

	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) LocalMatrix() glm.Mat4f {
	return glm.ComposeMat4(n.Translation, n.Rotation, n.Scale)
}

// Walk visits n and all its descendants depth first, passing
// the world transform of every node.
func (n *Node) Walk(fn func(node *Node, world glm.Mat4f)) {
	n.walk(glm.IdentityMat4[float32](), fn)
}

func (n *Node) walk(parent glm.Mat4f, fn func(node *Node, world glm.Mat4f)) {
	world := parent.Mul(n.LocalMatrix())
	fn(n, world)

	for _, child := range n.children {
		child.walk(world, fn)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}

	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}

	return nil
}
