package standard

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/block"
)

// Wrapper groups sections that share a background.
func Wrapper() block.Definition {
	return block.Definition{
		Name:             "Wrapper",
		Type:             block.TypeWrapper,
		ValidParentTypes: parents(block.TypePage),
		Defaults: defaults(map[string]string{
			"padding":    "20px 0px 20px 0px",
			"border":     "none",
			"direction":  "ltr",
			"text-align": "center",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"text-align": alignSchema(),
			"direction":  enumSchema("ltr", "rtl"),
		}),
		Render: container("mj-wrapper"),
	}
}

// Section is a row of columns. It carries the no-wrap toggle handled by the
// transform package.
func Section() block.Definition {
	return block.Definition{
		Name:             "Section",
		Type:             block.TypeSection,
		ValidParentTypes: parents(block.TypePage, block.TypeWrapper),
		Defaults: defaults(map[string]string{
			"padding":             "20px 0px 20px 0px",
			"background-repeat":   "repeat",
			"background-size":     "auto",
			"background-position": "top center",
			"border":              "none",
			"direction":           "ltr",
			"text-align":          "center",
		}, block.SectionValue{NoWrap: block.Bool(false)}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"text-align":        alignSchema(),
			"direction":         enumSchema("ltr", "rtl"),
			"background-repeat": enumSchema("repeat", "no-repeat"),
		}),
		Render: container("mj-section"),
	}
}

// Group keeps columns side by side on mobile.
func Group() block.Definition {
	return block.Definition{
		Name:             "Group",
		Type:             block.TypeGroup,
		ValidParentTypes: parents(block.TypeSection),
		Defaults: defaults(map[string]string{
			"width":          "100%",
			"direction":      "ltr",
			"vertical-align": "top",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"width":          lengthSchema(),
			"vertical-align": enumSchema("top", "middle", "bottom"),
		}),
		Render: container("mj-group"),
	}
}

// Column holds content blocks.
func Column() block.Definition {
	return block.Definition{
		Name:             "Column",
		Type:             block.TypeColumn,
		ValidParentTypes: parents(block.TypeSection, block.TypeGroup),
		Defaults: defaults(map[string]string{
			"padding":        "0px 0px 0px 0px",
			"border":         "none",
			"vertical-align": "top",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"width":          lengthSchema(),
			"vertical-align": enumSchema("top", "middle", "bottom"),
		}),
		Render: container("mj-column"),
	}
}

// Hero is a full width section with a background image.
func Hero() block.Definition {
	return block.Definition{
		Name:             "Hero",
		Type:             block.TypeHero,
		ValidParentTypes: parents(block.TypePage, block.TypeWrapper),
		Defaults: defaults(map[string]string{
			"background-color":    "#ffffff",
			"background-position": "center center",
			"mode":                "fluid-height",
			"padding":             "100px 0px 100px 0px",
			"vertical-align":      "top",
		}, block.EmptyValue{}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"mode":           enumSchema("fluid-height", "fixed-height"),
			"height":         lengthSchema(),
			"vertical-align": enumSchema("top", "middle", "bottom"),
		}),
		Render: container("mj-hero"),
	}
}
