package standard

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Navbar renders a row of links.
func Navbar() block.Definition {
	return block.Definition{
		Name:             "Navbar",
		Type:             block.TypeNavbar,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{"align": "center"}, block.NavbarValue{Links: []block.NavbarLink{
			{Content: "Shop", Href: "#", Color: "#1890ff", FontSize: "13px", Target: "_blank", Padding: "15px 10px"},
			{Content: "About", Href: "#", Color: "#1890ff", FontSize: "13px", Target: "_blank", Padding: "15px 10px"},
			{Content: "Contact", Href: "#", Color: "#1890ff", FontSize: "13px", Target: "_blank", Padding: "15px 10px"},
		}}),
		Attributes: attributeSchema(map[string]*openapi3.Schema{
			"align": alignSchema(),
		}),
		Render: renderNavbar,
	}
}

func renderNavbar(params block.RenderParams) (render.Result, error) {
	value, _ := params.Block().Data.Value.(block.NavbarValue)
	links := make(render.Result, 0, len(value.Links))
	for _, link := range value.Links {
		links = append(links, render.Element{
			Name: "mj-navbar-link",
			Attributes: map[string]string{
				"href":      link.Href,
				"color":     link.Color,
				"font-size": link.FontSize,
				"target":    link.Target,
				"padding":   link.Padding,
			},
			Children: render.Of(render.Text(link.Content)),
		})
	}
	return render.Of(render.Element{Name: "mj-navbar", Attributes: attributes(params), Children: links}), nil
}

// Social renders social network icons.
func Social() block.Definition {
	return block.Definition{
		Name:             "Social",
		Type:             block.TypeSocial,
		ValidParentTypes: contentParents,
		Defaults: defaults(map[string]string{
			"align":     "center",
			"mode":      "horizontal",
			"icon-size": "20px",
			"padding":   "10px 25px 10px 25px",
		}, block.SocialValue{Elements: []block.SocialElement{
			{Name: "facebook", Content: "Facebook", Href: "#"},
			{Name: "google", Content: "Google", Href: "#"},
			{Name: "twitter", Content: "Twitter", Href: "#"},
		}}),
		Attributes: boxSchema(map[string]*openapi3.Schema{
			"align":     alignSchema(),
			"mode":      enumSchema("horizontal", "vertical"),
			"icon-size": lengthSchema(),
		}),
		Render: renderSocial,
	}
}

func renderSocial(params block.RenderParams) (render.Result, error) {
	value, _ := params.Block().Data.Value.(block.SocialValue)
	elements := make(render.Result, 0, len(value.Elements))
	for _, element := range value.Elements {
		elements = append(elements, render.Element{
			Name: "mj-social-element",
			Attributes: map[string]string{
				"name": element.Name,
				"href": element.Href,
				"src":  element.Src,
			},
			Children: render.Of(render.Text(element.Content)),
		})
	}
	return render.Of(render.Element{Name: "mj-social", Attributes: attributes(params), Children: elements}), nil
}
