// Package dom models the snapshot tree compared by the diff engine.
//
// A snapshot is one complete, immutable tree captured at a point in time:
// element nodes carry tag, attributes, flags, and optional viewport geometry;
// text leaves carry raw content and are invisible to matching. Each snapshot
// owns its tree outright: nodes are never shared or mutated across
// snapshots, and xpaths are recomputed per snapshot.
package dom

// NodeType distinguishes element nodes from non-element leaves.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Box is an element's viewport bounding box at capture time.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the box's center point.
func (b Box) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Node is one node of a snapshot tree.
type Node struct {
	Type NodeType

	// Element fields.
	Tag      string
	Attrs    map[string]string
	Children []*Node

	// XPath locates the node within its own snapshot. It is assigned by
	// ComputePaths and is not stable across snapshots when structure shifts.
	XPath string

	// Presentation state at capture time.
	Visible     bool
	Interactive bool

	// Viewport geometry. Nil when the snapshot source has no layout
	// information (static HTML).
	Box *Box

	// Text leaf content.
	Text string
}

// NewElement constructs an element node. Snapshot providers that build
// synthetic trees (and tests) use this together with ComputePaths.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{
		Type:     ElementNode,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
		Visible:  true,
	}
}

// NewText constructs a text leaf.
func NewText(s string) *Node {
	return &Node{Type: TextNode, Text: s}
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// ElementChildren returns the element-node children in document order.
// Text leaves are excluded from matching entirely.
func (n *Node) ElementChildren() []*Node {
	var kids []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			kids = append(kids, c)
		}
	}
	return kids
}

// WalkElements visits every element node of the subtree rooted at n in
// pre-order, n included.
func (n *Node) WalkElements(visit func(*Node)) {
	if n == nil || n.Type != ElementNode {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.WalkElements(visit)
	}
}
