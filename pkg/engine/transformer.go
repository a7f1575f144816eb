package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockgen/pkg/block"
)

// Transformer rewrites a document before it is validated and rendered.
type Transformer interface {
	Transform(ctx context.Context, doc *block.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *block.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *block.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// AttributePresets fills block attributes per type. Attributes already set on
// a node win over the preset. The document shape is:
//
//	{
//	  "text":   {"font-size": "14px", "line-height": "1.5"},
//	  "button": {"background-color": "#414141"}
//	}
//
// Presets for a base type also apply to its advanced variant.
type AttributePresets map[block.Type]map[string]string

var _ Transformer = AttributePresets(nil)

// LoadAttributePresets reads presets from a JSON or YAML file in fsys.
func LoadAttributePresets(fsys fs.FS, path string) (AttributePresets, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("engine: read presets %s: %w", path, err)
	}
	return ParseAttributePresets(raw, path)
}

// ParseAttributePresets decodes presets from JSON, falling back to YAML.
func ParseAttributePresets(raw []byte, source string) (AttributePresets, error) {
	var presets AttributePresets
	trimmed := bytes.TrimSpace(raw)
	if json.Valid(trimmed) {
		if err := json.Unmarshal(trimmed, &presets); err != nil {
			return nil, fmt.Errorf("engine: parse presets %s: %w", source, err)
		}
		return presets, nil
	}
	if err := yaml.Unmarshal(trimmed, &presets); err != nil {
		return nil, fmt.Errorf("engine: parse presets %s: %w", source, err)
	}
	return presets, nil
}

// Transform applies the presets to every node of doc.
func (p AttributePresets) Transform(ctx context.Context, doc *block.Document) error {
	if len(p) == 0 {
		return nil
	}
	var err error
	doc.Walk(func(id block.NodeID, _ int) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		t, _ := doc.Type(id)
		preset, ok := p[t]
		if !ok && t.Advanced() {
			preset, ok = p[t.Base()]
		}
		if !ok {
			return true
		}
		err = doc.Update(id, func(n *block.Node) {
			attrs := make(map[string]string, len(preset)+len(n.Attributes))
			for key, value := range preset {
				attrs[key] = value
			}
			for key, value := range n.Attributes {
				attrs[key] = value
			}
			n.Attributes = attrs
		})
		return err == nil
	})
	return err
}
