package standard

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/render"
)

var contentParents = parents(block.TypeColumn, block.TypeHero)

// Text renders sanitised rich text.
func Text() block.Definition {
	return block.Definition{
		Name:             "Text",
		Type:             block.TypeText,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{
			"padding":     "10px 25px 10px 25px",
			"align":       "left",
			"line-height": "1",
		}, block.ContentValue{Content: block.String("Make it easy for everyone to compose emails!")}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"align":     enumSchema("left", "center", "right", "justify"),
			"color":     colorSchema(),
			"font-size": lengthSchema(),
		}),
		Render: contentElement("mj-text", sanitizeContent),
	}
}

// Button renders a link styled as a button.
func Button() block.Definition {
	return block.Definition{
		Name:             "Button",
		Type:             block.TypeButton,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{
			"align":            "center",
			"background-color": "#414141",
			"color":            "#ffffff",
			"font-size":        "13px",
			"font-weight":      "normal",
			"border-radius":    "3px",
			"padding":          "10px 25px 10px 25px",
			"inner-padding":    "10px 25px 10px 25px",
			"line-height":      "120%",
			"target":           "_blank",
			"vertical-align":   "middle",
			"border":           "none",
			"text-align":       "center",
			"href":             "#",
		}, block.ContentValue{Content: block.String("Button")}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"align":         alignSchema(),
			"color":         colorSchema(),
			"font-size":     lengthSchema(),
			"inner-padding": paddingSchema(),
			"target":        enumSchema("_blank", "_self"),
		}),
		Render: contentElement("mj-button", sanitizeContent),
	}
}

// Raw emits its content untouched. It is the escape hatch for markup the
// block set does not model.
func Raw() block.Definition {
	return block.Definition{
		Name: "Raw",
		Type: block.TypeRaw,
		ValidParentTypes: parents(
			block.TypePage, block.TypeWrapper, block.TypeSection,
			block.TypeGroup, block.TypeColumn, block.TypeHero,
		),
		Defaults: defaults(nil, block.ContentValue{}),
		Render:   contentElement("mj-raw", func(content string) string { return content }),
	}
}

func contentElement(name string, clean func(string) string) block.RenderFunc {
	return func(params block.RenderParams) (render.Result, error) {
		value, _ := params.Block().Data.Value.(block.ContentValue)
		var children render.Result
		if content := clean(value.Text()); content != "" {
			children = render.Of(render.Raw(content))
		}
		return render.Of(render.Element{
			Name:       name,
			Attributes: attributes(params),
			Children:   children,
		}), nil
	}
}

// Image renders mj-image.
func Image() block.Definition {
	return block.Definition{
		Name:             "Image",
		Type:             block.TypeImage,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{
			"align":   "center",
			"height":  "auto",
			"padding": "10px 25px 10px 25px",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"align":  alignSchema(),
			"width":  lengthSchema(),
			"height": lengthSchema(),
		}),
		Render: leaf("mj-image"),
	}
}

// Divider renders a horizontal rule.
func Divider() block.Definition {
	return block.Definition{
		Name:             "Divider",
		Type:             block.TypeDivider,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{
			"align":        "center",
			"border-width": "1px",
			"border-style": "solid",
			"border-color": "#C9CCCF",
			"padding":      "10px 0px 10px 0px",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"align":        alignSchema(),
			"border-width": lengthSchema(),
			"border-style": enumSchema("solid", "dashed", "dotted"),
			"border-color": colorSchema(),
		}),
		Render: leaf("mj-divider"),
	}
}

// Spacer adds vertical space.
func Spacer() block.Definition {
	return block.Definition{
		Name:             "Spacer",
		Type:             block.TypeSpacer,
		ValidParentTypes: contentParents,
		Defaults:         defaults(map[string]string{"height": "20px"}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"height": lengthSchema(),
		}),
		Render: leaf("mj-spacer"),
	}
}
