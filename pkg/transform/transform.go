// Package transform implements structural rewrites of a block document. The
// no-wrap toggle of section blocks collapses all section children into one
// synthetic group, and expands that group back when the toggle is cleared.
//
// Operations are rebuild-and-swap steps over child handles: the new child
// list is computed first and then installed with Document.SetChildren.
package transform

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blockgen/pkg/block"
)

// ErrNotSectionLike is returned when the no-wrap toggle targets a node that
// is not a section.
var ErrNotSectionLike = errors.New("transform: node is not section-like")

// Creator instantiates nodes; *block.Registry satisfies it.
type Creator interface {
	Create(t block.Type, payload block.Node) (block.Node, error)
}

// SetNoWrap stores the toggle on the section id and restructures its
// children:
//
//   - enabling flattens group children, nested ones included, into the
//     section and wraps the resulting list in one new group node
//   - disabling replaces a single group child with that group's children, and
//     leaves any other child list untouched
//
// It returns the rebuilt section subtree for the host to persist.
func SetNoWrap(doc *block.Document, creator Creator, id block.NodeID, enabled bool) (block.Node, error) {
	if doc == nil {
		return block.Node{}, errors.New("transform: document is required")
	}
	t, ok := doc.Type(id)
	if !ok {
		return block.Node{}, fmt.Errorf("%w: %d", block.ErrNodeNotFound, id)
	}
	if !t.SectionLike() {
		return block.Node{}, fmt.Errorf("%w: %s", ErrNotSectionLike, t)
	}

	var group block.Node
	if enabled {
		if creator == nil {
			return block.Node{}, errors.New("transform: creator is required to wrap children")
		}
		var err error
		if group, err = creator.Create(block.TypeGroup, block.Node{}); err != nil {
			return block.Node{}, err
		}
	}

	err := doc.Update(id, func(n *block.Node) {
		value, _ := n.Data.Value.(block.SectionValue)
		value.NoWrap = block.Bool(enabled)
		n.Data.Value = value
	})
	if err != nil {
		return block.Node{}, err
	}

	if enabled {
		if err := Flatten(doc, id); err != nil {
			return block.Node{}, err
		}
		if _, err := Wrap(doc, id, group); err != nil {
			return block.Node{}, err
		}
	} else if _, err := Unwrap(doc, id); err != nil {
		return block.Node{}, err
	}

	return doc.Tree(id), nil
}

// Flattened returns the children of id with every group child replaced by
// that group's own children, in order. Children spliced in from a group are
// scanned again, so nested groups collapse as well. It does not modify doc.
func Flattened(doc *block.Document, id block.NodeID) []block.NodeID {
	return appendFlattened(doc, nil, doc.Children(id))
}

func appendFlattened(doc *block.Document, out, children []block.NodeID) []block.NodeID {
	for _, child := range children {
		if t, _ := doc.Type(child); t.GroupLike() {
			out = appendFlattened(doc, out, doc.Children(child))
			continue
		}
		out = append(out, child)
	}
	return out
}

// Flatten splices the contents of group children into id. The emptied groups
// are detached from the tree.
func Flatten(doc *block.Document, id block.NodeID) error {
	return doc.SetChildren(id, Flattened(doc, id))
}

// Wrap adds group to doc, moves every child of id into it and makes it the
// only child of id. Children already present on group are discarded.
func Wrap(doc *block.Document, id block.NodeID, group block.Node) (block.NodeID, error) {
	if !group.Type.GroupLike() {
		return block.NoNode, fmt.Errorf("transform: wrap requires a group node, got %q", group.Type)
	}
	children := doc.Children(id)
	group.Children = nil
	gid := doc.Add(group)
	if err := doc.SetChildren(gid, children); err != nil {
		return block.NoNode, err
	}
	if err := doc.SetChildren(id, []block.NodeID{gid}); err != nil {
		return block.NoNode, err
	}
	return gid, nil
}

// Unwrap replaces a sole group child of id with the group's children. It
// reports whether anything changed; any other shape is left as-is.
func Unwrap(doc *block.Document, id block.NodeID) (bool, error) {
	children := doc.Children(id)
	if len(children) != 1 {
		return false, nil
	}
	if t, _ := doc.Type(children[0]); !t.GroupLike() {
		return false, nil
	}
	if err := doc.SetChildren(id, doc.Children(children[0])); err != nil {
		return false, err
	}
	return true, nil
}
