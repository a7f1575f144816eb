package standard

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Theme token names read by the page renderer.
const (
	TokenFontFamily        = "font-family"
	TokenTextColor         = "text-color"
	TokenContentBackground = "content-background"
	TokenBreakpoint        = "breakpoint"
)

// Page is the document root. It renders mjml > mj-head + mj-body.
func Page() block.Definition {
	return block.Definition{
		Name: "Page",
		Type: block.TypePage,
		Defaults: defaults(
			map[string]string{"width": "600px", "background-color": "#efeeea"},
			block.PageValue{
				Breakpoint:        "480px",
				FontFamily:        "lucida Grande,Verdana,Microsoft YaHei",
				TextColor:         "#000000",
				ContentBackground: "#ffffff",
			},
			Section().Create(block.Node{Children: []block.Node{Column().Create(block.Node{})}}),
		),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"width": lengthSchema(),
		}),
		Render: renderPage,
	}
}

func renderPage(params block.RenderParams) (render.Result, error) {
	node := params.Block()
	value, _ := node.Data.Value.(block.PageValue)

	body, err := params.RenderChildren()
	if err != nil {
		return nil, err
	}

	return render.Of(render.Element{
		Name: "mjml",
		Children: render.Of(
			render.Element{Name: "mj-head", Children: head(value, params.Theme)},
			render.Element{Name: "mj-body", Attributes: attributes(params), Children: body},
		),
	}), nil
}

// head builds mj-head. Page values win over theme tokens; remaining tokens are
// exposed as mj-class definitions.
func head(value block.PageValue, theme map[string]string) render.Result {
	pick := func(own, token string) string {
		if own != "" {
			return own
		}
		return theme[token]
	}

	var out render.Result
	if breakpoint := pick(value.Breakpoint, TokenBreakpoint); breakpoint != "" {
		out = append(out, render.Element{Name: "mj-breakpoint", Attributes: map[string]string{"width": breakpoint}})
	}
	for _, font := range value.Fonts {
		out = append(out, render.Element{Name: "mj-font", Attributes: map[string]string{"name": font.Name, "href": font.Href}})
	}

	var presets render.Result
	if family := pick(value.FontFamily, TokenFontFamily); family != "" {
		presets = append(presets, render.Element{Name: "mj-all", Attributes: map[string]string{"font-family": family}})
	}
	if color := pick(value.TextColor, TokenTextColor); color != "" {
		presets = append(presets, render.Element{Name: "mj-text", Attributes: map[string]string{"color": color}})
	}
	if background := pick(value.ContentBackground, TokenContentBackground); background != "" {
		presets = append(presets, render.Element{Name: "mj-section", Attributes: map[string]string{"background-color": background}})
	}
	for _, key := range sortedTokens(theme) {
		switch key {
		case TokenFontFamily, TokenTextColor, TokenContentBackground, TokenBreakpoint:
			continue
		}
		presets = append(presets, render.Element{
			Name:       "mj-class",
			Attributes: map[string]string{"name": "theme-" + key, tokenAttribute(key): theme[key]},
		})
	}
	if extra := strings.TrimSpace(value.HeadAttributes); extra != "" {
		presets = append(presets, render.Raw(extra))
	}
	if len(presets) > 0 {
		out = append(out, render.Element{Name: "mj-attributes", Children: presets})
	}

	if style := strings.TrimSpace(value.UserStyle); style != "" {
		out = append(out, render.Element{
			Name:       "mj-style",
			Attributes: map[string]string{"inline": "inline"},
			Children:   render.Of(render.Raw(style)),
		})
	}
	return out
}

// tokenAttribute maps a token such as "primary-color" or "heading-font-size"
// to the MJML attribute it configures.
func tokenAttribute(token string) string {
	for _, suffix := range []string{"background-color", "font-family", "font-size", "line-height", "color"} {
		if strings.HasSuffix(token, suffix) {
			return suffix
		}
	}
	return "color"
}
