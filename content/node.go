package content

import (
	"strings"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// Placement is the position, rotation, and scale of a node relative to its
// parent.
type Placement struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// Identity returns the placement that leaves a node exactly where its parent
// is.
func Identity() Placement {
	return Placement{
		Rotation: Quat{W: 1},
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

// At returns an identity placement moved to the given position.
func At(position Vec3) Placement {
	p := Identity()
	p.Position = position

	return p
}

// IsIdentity tells if the placement is the identity placement.
func (p Placement) IsIdentity() bool {
	return p == Identity()
}

// A Node is an attachment point in the content tree. Content objects are
// attached to the root node of a slot, and slot roots are attached to the root
// node of their manager.
type Node struct {
	name      string
	parent    *Node
	children  []*Node
	destroyed bool

	// Local is the placement relative to the parent.
	Local Placement
}

// NewNode creates a detached node with an identity placement.
func NewNode(name string) *Node {
	return &Node{
		name:  name,
		Local: Identity(),
	}
}

// Name returns the name of the node.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent of the node, nil if the node is detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the nodes attached to this node.
func (n *Node) Children() []*Node {
	return n.children
}

// Destroyed tells if the node has been destroyed.
func (n *Node) Destroyed() bool {
	return n.destroyed
}

// Attach moves the node under a new parent with the given local placement. A
// nil parent detaches the node.
func (n *Node) Attach(parent *Node, placement Placement) {
	if n.destroyed {
		panic("content: cannot attach a destroyed node")
	}

	for p := parent; p != nil; p = p.parent {
		if p == n {
			panic("content: cannot attach a node under itself")
		}
	}

	n.detach()

	n.parent = parent
	n.Local = placement

	if parent != nil {
		parent.children = append(parent.children, n)
	}
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}

	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}

	n.parent = nil
}

// Destroy detaches the node and destroys it together with all its children.
// Destroying a node twice has no effect.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}

	n.detach()
	n.destroyChildren()
}

func (n *Node) destroyChildren() {
	n.destroyed = true

	for _, c := range n.children {
		c.parent = nil
		c.destroyChildren()
	}

	n.children = nil
}

// Path returns the names from the root to this node joined by "/".
func (n *Node) Path() string {
	names := []string{}
	for p := n; p != nil; p = p.parent {
		names = append(names, p.name)
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return strings.Join(names, "/")
}
