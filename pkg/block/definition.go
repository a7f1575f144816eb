package block

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// RenderFunc turns the node addressed by params into fragments.
type RenderFunc func(params RenderParams) (render.Result, error)

// Definition describes one block type: its defaults, structural constraints
// and renderer. Definitions are plain values; the Registry keeps its own copy.
type Definition struct {
	Name             string
	Type             Type
	ValidParentTypes []Type
	// Defaults returns a fresh default node. Create merges payloads over it.
	Defaults func() Node
	// Attributes optionally constrains node attributes; Registry.Validate
	// checks it.
	Attributes *openapi3.Schema
	Render     RenderFunc
}

// Create returns the default node with Type stamped and payload merged over
// it (see Merge for the rules).
func (d Definition) Create(payload Node) Node {
	var base Node
	if d.Defaults != nil {
		base = d.Defaults()
	}
	base.Type = d.Type
	if base.Data.Value == nil {
		base.Data.Value = ZeroValue(d.Type)
	}
	return Merge(base, payload)
}

// AcceptsParent reports whether a node of this type may sit under parent.
// An empty ValidParentTypes list accepts any parent.
func (d Definition) AcceptsParent(parent Type) bool {
	if len(d.ValidParentTypes) == 0 {
		return true
	}
	for _, candidate := range d.ValidParentTypes {
		if candidate == parent {
			return true
		}
	}
	return false
}

func (d Definition) validate() error {
	if strings.TrimSpace(string(d.Type)) == "" {
		return errors.New("block: definition type is required")
	}
	if d.Render == nil {
		return fmt.Errorf("block: definition %q has no renderer", d.Type)
	}
	return nil
}

// NodeRenderer renders any node of a document. The Registry is the default
// implementation; hosts may wrap it to add logging or caching.
type NodeRenderer interface {
	RenderNode(params RenderParams) (render.Result, error)
}

// RenderParams is the per-call input of a block renderer. It is passed by
// value; renderers derive child params with Child and never share state
// between calls.
type RenderParams struct {
	Document *Document
	Node     NodeID
	// Idx is the editor path of the node, e.g. "content.children.[0]".
	Idx string
	// Index is the repetition index within an advanced block expansion.
	Index int
	Mode  render.Mode
	Data  datactx.Context
	// Theme carries design tokens (font-family, text-color, ...) for the page.
	Theme    map[string]string
	Renderer NodeRenderer
}

// RenderData is the per-call input shared by every node of a render.
type RenderData struct {
	Context datactx.Context
	Theme   map[string]string
}

// Block returns the node addressed by the params, without children.
func (p RenderParams) Block() Node {
	if p.Document == nil {
		return Node{}
	}
	node, _ := p.Document.Node(p.Node)
	return node
}

// Child derives params for the position-th child node id.
func (p RenderParams) Child(id NodeID, position int) RenderParams {
	child := p
	child.Node = id
	child.Idx = ChildIdx(p.Idx, position)
	child.Index = 0
	return child
}

// RenderChildren renders every child in order through p.Renderer.
func (p RenderParams) RenderChildren() (render.Result, error) {
	if p.Document == nil {
		return nil, nil
	}
	if p.Renderer == nil {
		return nil, errors.New("block: render params have no renderer")
	}
	children := p.Document.Children(p.Node)
	out := make(render.Result, 0, len(children))
	for position, id := range children {
		result, err := p.Renderer.RenderNode(p.Child(id, position))
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			continue
		}
		out = append(out, result)
	}
	return out, nil
}

// ChildIdx appends a child position to an editor path.
func ChildIdx(parent string, position int) string {
	if parent == "" {
		parent = RootIdx
	}
	return fmt.Sprintf("%s.children.[%d]", parent, position)
}
