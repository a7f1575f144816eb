// Package standard provides the base block definitions: the page root,
// layout containers and content blocks. Blocks render MJML elements
// (mj-section, mj-text, ...) as render.Element fragments.
package standard

import (
	"sort"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Definitions returns the definitions of every base block type.
func Definitions() []block.Definition {
	return []block.Definition{
		Page(),
		Wrapper(),
		Section(),
		Group(),
		Column(),
		Text(),
		Image(),
		Button(),
		Divider(),
		Spacer(),
		Hero(),
		Navbar(),
		Social(),
		Raw(),
	}
}

// Register adds every standard definition to builder.
func Register(builder *block.Builder) error {
	for _, def := range Definitions() {
		if err := builder.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// parents lists the accepted parent types plus their advanced variants.
func parents(types ...block.Type) []block.Type {
	out := make([]block.Type, 0, len(types)*2)
	out = append(out, types...)
	for _, t := range types {
		if t != block.TypePage && t != block.TypeRaw {
			out = append(out, block.AdvancedOf(t))
		}
	}
	return out
}

// container renders an element holding the rendered children.
func container(name string) block.RenderFunc {
	return func(params block.RenderParams) (render.Result, error) {
		children, err := params.RenderChildren()
		if err != nil {
			return nil, err
		}
		return render.Of(render.Element{
			Name:       name,
			Attributes: attributes(params),
			Children:   children,
		}), nil
	}
}

// leaf renders an element without children.
func leaf(name string) block.RenderFunc {
	return func(params block.RenderParams) (render.Result, error) {
		return render.Of(render.Element{Name: name, Attributes: attributes(params)}), nil
	}
}

// attributes copies the node attributes. Testing renders also carry a
// css-class naming the node path and type so previews can map output back to
// the editor tree.
func attributes(params block.RenderParams) map[string]string {
	node := params.Block()
	out := make(map[string]string, len(node.Attributes)+1)
	for key, value := range node.Attributes {
		out[key] = value
	}
	if params.Mode.Testing() {
		classes := []string{"email-block", "node-idx-" + params.Idx, "node-type-" + string(node.Type)}
		if existing := strings.TrimSpace(out["css-class"]); existing != "" {
			classes = append(classes, existing)
		}
		out["css-class"] = strings.Join(classes, " ")
	}
	return out
}

func defaults(attrs map[string]string, value block.Value, children ...block.Node) func() block.Node {
	return func() block.Node {
		copied := make(map[string]string, len(attrs))
		for key, v := range attrs {
			copied[key] = v
		}
		node := block.Node{
			Data:       block.Data{Value: value},
			Attributes: copied,
		}
		if len(children) > 0 {
			node.Children = make([]block.Node, len(children))
			for i, child := range children {
				node.Children[i] = block.Clone(child)
			}
		}
		return node
	}
}

func sortedTokens(tokens map[string]string) []string {
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
