package block

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/iteration"
)

// Node is a block in the document tree. Children are owned by their parent.
//
// The JSON form matches the editor format:
//
//	{"type": "advanced_text", "data": {"value": {"content": "Hi", "condition": {...}}},
//	 "attributes": {"padding": "10px"}, "children": []}
//
// Directives are written inside data.value next to the type-specific fields.
type Node struct {
	Type       Type
	Data       Data
	Attributes map[string]string
	Children   []Node
}

// Data holds the typed value plus editor flags.
type Data struct {
	Value      Value
	Hidden     *bool
	Directives Directives
}

// Directives are the advanced block modifiers. Base blocks ignore them.
type Directives struct {
	Condition *condition.Expr `json:"condition,omitempty"`
	Iteration *iteration.Spec `json:"iteration,omitempty"`
	I18n      *I18n           `json:"i18n,omitempty"`
}

// Empty reports whether no directive is set.
func (d Directives) Empty() bool {
	return d.Condition == nil && d.Iteration == nil && d.I18n == nil
}

// I18nType selects the localisation helper a downstream template would use.
type I18nType string

const (
	I18nPlain         I18nType = "i18n"
	I18nContext       I18nType = "ci18n"
	I18nPlural        I18nType = "ni18n"
	I18nContextPlural I18nType = "cni18n"
)

// I18n is the localisation directive. It is carried through the model and
// serialisation but not applied during render.
type I18n struct {
	Type       I18nType `json:"type"`
	Enabled    bool     `json:"enabled"`
	Context    string   `json:"context,omitempty"`
	PluralText string   `json:"pluralText,omitempty"`
}

// IsHidden reports whether the editor hid the block.
func (d Data) IsHidden() bool {
	return d.Hidden != nil && *d.Hidden
}

type wireNode struct {
	Type       Type              `json:"type"`
	Data       wireData          `json:"data"`
	Attributes map[string]string `json:"attributes"`
	Children   []Node            `json:"children"`
}

type wireData struct {
	Value  json.RawMessage `json:"value,omitempty"`
	Hidden *bool           `json:"hidden,omitempty"`
}

// UnmarshalJSON decodes data.value into the concrete Value for the node type.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := Node{
		Type:       wire.Type,
		Attributes: wire.Attributes,
		Children:   wire.Children,
		Data:       Data{Hidden: wire.Data.Hidden},
	}

	value, err := decodeValue(wire.Type, wire.Data.Value)
	if err != nil {
		return err
	}
	out.Data.Value = value

	if len(wire.Data.Value) > 0 {
		if err := json.Unmarshal(wire.Data.Value, &out.Data.Directives); err != nil {
			return fmt.Errorf("block: decode %s directives: %w", wire.Type, err)
		}
	}

	*n = out
	return nil
}

// MarshalJSON writes the editor format.
func (n Node) MarshalJSON() ([]byte, error) {
	value, err := encodeValue(n.Data.Value, n.Data.Directives)
	if err != nil {
		return nil, err
	}
	children := n.Children
	if children == nil {
		children = []Node{}
	}
	attrs := n.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return json.Marshal(wireNode{
		Type:       n.Type,
		Data:       wireData{Value: value, Hidden: n.Data.Hidden},
		Attributes: attrs,
		Children:   children,
	})
}

func decodeValue(t Type, raw json.RawMessage) (Value, error) {
	zero := ZeroValue(t)
	if len(raw) == 0 || string(raw) == "null" {
		return zero, nil
	}
	ptr := reflect.New(reflect.TypeOf(zero))
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("block: decode %s value: %w", t, err)
	}
	value := ptr.Elem().Interface().(Value)
	if opaque, ok := value.(OpaqueValue); ok {
		// Directives are decoded separately; keep them out of the opaque fields.
		delete(opaque, "condition")
		delete(opaque, "iteration")
		delete(opaque, "i18n")
	}
	return value, nil
}

func encodeValue(value Value, directives Directives) (json.RawMessage, error) {
	fields := map[string]any{}
	if value != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("block: encode value: %w", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("block: encode value: %w", err)
		}
	}
	if directives.Condition != nil {
		fields["condition"] = directives.Condition
	}
	if directives.Iteration != nil {
		fields["iteration"] = directives.Iteration
	}
	if directives.I18n != nil {
		fields["i18n"] = directives.I18n
	}
	return json.Marshal(fields)
}
