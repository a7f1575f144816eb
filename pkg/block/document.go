package block

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NodeID is a stable handle to a node stored in a Document.
type NodeID int

// NoNode is returned where no node exists (the parent of the root).
const NoNode NodeID = -1

// RootIdx is the editor path of the root node.
const RootIdx = "content"

type slot struct {
	node     Node // Children is always nil; see children
	parent   NodeID
	children []NodeID
}

// Document stores a block tree as an arena of nodes addressed by NodeID.
// Handles stay valid for the lifetime of the document; detached nodes are
// kept in the arena but are no longer reachable from the root.
//
// A Document is owned by one caller at a time and is not safe for concurrent
// mutation.
type Document struct {
	slots []slot
	root  NodeID
}

// NewDocument copies root and its subtree into a new arena.
func NewDocument(root Node) *Document {
	doc := &Document{}
	doc.root = doc.add(Clone(root), NoNode)
	return doc
}

func (d *Document) add(n Node, parent NodeID) NodeID {
	id := NodeID(len(d.slots))
	children := n.Children
	n.Children = nil
	d.slots = append(d.slots, slot{node: n, parent: parent})
	ids := make([]NodeID, 0, len(children))
	for _, child := range children {
		ids = append(ids, d.add(child, id))
	}
	d.slots[id].children = ids
	return id
}

func (d *Document) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.slots)
}

// Root returns the root handle.
func (d *Document) Root() NodeID {
	return d.root
}

// Len returns the number of nodes stored in the arena, detached ones included.
func (d *Document) Len() int {
	return len(d.slots)
}

// Node returns a copy of the node without its children.
func (d *Document) Node(id NodeID) (Node, bool) {
	if !d.valid(id) {
		return Node{}, false
	}
	return Clone(d.slots[id].node), true
}

// Type returns the block type of id.
func (d *Document) Type(id NodeID) (Type, bool) {
	if !d.valid(id) {
		return "", false
	}
	return d.slots[id].node.Type, true
}

// Children returns a copy of the child handles of id.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.valid(id) {
		return nil
	}
	return append([]NodeID(nil), d.slots[id].children...)
}

// Parent returns the parent handle of id, or NoNode.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.slots[id].parent
}

// Add stores n (with its subtree) as a detached node and returns its handle.
// Attach it with SetChildren.
func (d *Document) Add(n Node) NodeID {
	return d.add(Clone(n), NoNode)
}

// SetChildren replaces the children of id. Every child must exist, must not be
// the root or an ancestor of id, and may appear only once. Previous children
// that are not part of the new list become detached.
func (d *Document) SetChildren(id NodeID, children []NodeID) error {
	if !d.valid(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	seen := make(map[NodeID]struct{}, len(children))
	for _, child := range children {
		if !d.valid(child) {
			return fmt.Errorf("%w: %d", ErrNodeNotFound, child)
		}
		if _, dup := seen[child]; dup {
			return fmt.Errorf("block: node %d listed twice under %d", child, id)
		}
		seen[child] = struct{}{}
		if child == d.root || d.isAncestor(child, id) {
			return fmt.Errorf("block: node %d cannot be a child of %d", child, id)
		}
	}

	for _, previous := range d.slots[id].children {
		if _, kept := seen[previous]; !kept && d.slots[previous].parent == id {
			d.slots[previous].parent = NoNode
		}
	}
	for _, child := range children {
		if old := d.slots[child].parent; old != NoNode && old != id {
			d.slots[old].children = without(d.slots[old].children, child)
		}
		d.slots[child].parent = id
	}
	d.slots[id].children = append([]NodeID(nil), children...)
	return nil
}

// isAncestor reports whether candidate is id or one of its ancestors.
func (d *Document) isAncestor(candidate, id NodeID) bool {
	for cur := id; cur != NoNode; cur = d.slots[cur].parent {
		if cur == candidate {
			return true
		}
	}
	return false
}

func without(ids []NodeID, drop NodeID) []NodeID {
	out := ids[:0:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// Update applies fn to the node stored under id. Children set by fn are
// ignored; use SetChildren to restructure.
func (d *Document) Update(id NodeID, fn func(*Node)) error {
	if !d.valid(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	node := Clone(d.slots[id].node)
	fn(&node)
	node.Children = nil
	d.slots[id].node = node
	return nil
}

// Tree rebuilds the subtree rooted at id as a standalone Node.
func (d *Document) Tree(id NodeID) Node {
	if !d.valid(id) {
		return Node{}
	}
	node := Clone(d.slots[id].node)
	if ids := d.slots[id].children; len(ids) > 0 {
		node.Children = make([]Node, 0, len(ids))
		for _, child := range ids {
			node.Children = append(node.Children, d.Tree(child))
		}
	}
	return node
}

// Idx returns the editor path of id, e.g. "content.children.[2].children.[0]".
// Detached nodes have an empty path.
func (d *Document) Idx(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	var positions []int
	cur := id
	for cur != d.root {
		parent := d.slots[cur].parent
		if parent == NoNode {
			return ""
		}
		positions = append(positions, indexOf(d.slots[parent].children, cur))
		cur = parent
	}
	idx := RootIdx
	for i := len(positions) - 1; i >= 0; i-- {
		idx = ChildIdx(idx, positions[i])
	}
	return idx
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

var idxSegment = regexp.MustCompile(`^\[(\d+)\]$`)

// Find resolves an editor path produced by Idx.
func (d *Document) Find(idx string) (NodeID, error) {
	parts := strings.Split(idx, ".")
	if len(parts) == 0 || parts[0] != RootIdx {
		return NoNode, fmt.Errorf("block: invalid idx %q", idx)
	}
	cur := d.root
	rest := parts[1:]
	if len(rest)%2 != 0 {
		return NoNode, fmt.Errorf("block: invalid idx %q", idx)
	}
	for i := 0; i < len(rest); i += 2 {
		match := idxSegment.FindStringSubmatch(rest[i+1])
		if rest[i] != "children" || match == nil {
			return NoNode, fmt.Errorf("block: invalid idx %q", idx)
		}
		position, _ := strconv.Atoi(match[1])
		children := d.slots[cur].children
		if position >= len(children) {
			return NoNode, fmt.Errorf("%w: %s", ErrNodeNotFound, idx)
		}
		cur = children[position]
	}
	return cur, nil
}

// Walk visits the tree depth-first from the root in document order. Returning
// false from fn skips the children of the visited node.
func (d *Document) Walk(fn func(id NodeID, depth int) bool) {
	if !d.valid(d.root) {
		return
	}
	d.walk(d.root, 0, fn)
}

func (d *Document) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range d.slots[id].children {
		d.walk(child, depth+1, fn)
	}
}
