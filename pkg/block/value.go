package block

// Value is the type-specific payload held in Data.Value. The set is closed:
// every base type maps to one concrete struct (see ZeroValue) and unknown
// host types fall back to OpaqueValue.
//
// Merge rules used by Merge and Registry.Create:
//   - string fields: a non-empty payload value replaces the default
//   - pointer fields (*bool, ContentValue.Content): a non-nil payload value
//     replaces the default, so an explicit false or "" clears it
//   - slice fields: a non-nil payload slice replaces the default wholesale
//   - OpaqueValue: key-wise, payload keys win
//   - a payload of a different concrete type replaces the default
type Value interface {
	merge(override Value) Value
}

// PageValue configures the document root.
type PageValue struct {
	Breakpoint        string `json:"breakpoint,omitempty"`
	HeadAttributes    string `json:"headAttributes,omitempty"`
	FontFamily        string `json:"fontFamily,omitempty"`
	TextColor         string `json:"textColor,omitempty"`
	ContentBackground string `json:"contentBackground,omitempty"`
	UserStyle         string `json:"userStyle,omitempty"`
	Fonts             []Font `json:"fonts,omitempty"`
}

// Font is a web font declared on the page.
type Font struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// SectionValue carries the no-wrap toggle of section-like blocks.
type SectionValue struct {
	NoWrap *bool `json:"noWrap,omitempty"`
}

// ContentValue holds the markup of text, button and raw blocks. Content is a
// pointer so a payload can clear the default with an empty string.
type ContentValue struct {
	Content *string `json:"content,omitempty"`
}

// Text returns the content, empty when unset.
func (v ContentValue) Text() string {
	if v.Content == nil {
		return ""
	}
	return *v.Content
}

// NavbarValue lists navigation links.
type NavbarValue struct {
	Links []NavbarLink `json:"links,omitempty"`
}

// NavbarLink is one navbar entry.
type NavbarLink struct {
	Content  string `json:"content"`
	Href     string `json:"href,omitempty"`
	Color    string `json:"color,omitempty"`
	FontSize string `json:"font-size,omitempty"`
	Target   string `json:"target,omitempty"`
	Padding  string `json:"padding,omitempty"`
}

// SocialValue lists social network links.
type SocialValue struct {
	Elements []SocialElement `json:"elements,omitempty"`
}

// SocialElement is one social network entry.
type SocialElement struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
	Href    string `json:"href,omitempty"`
	Src     string `json:"src,omitempty"`
}

// EmptyValue is used by blocks that only carry attributes.
type EmptyValue struct{}

// OpaqueValue keeps the payload of block types this package does not model.
type OpaqueValue map[string]any

// Bool returns a pointer to v, for *bool payload fields.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

// ZeroValue returns the empty concrete value for t. Advanced types share the
// value of their base type.
func ZeroValue(t Type) Value {
	switch t.Base() {
	case TypePage:
		return PageValue{}
	case TypeSection:
		return SectionValue{}
	case TypeText, TypeButton, TypeRaw:
		return ContentValue{}
	case TypeNavbar:
		return NavbarValue{}
	case TypeSocial:
		return SocialValue{}
	case TypeWrapper, TypeGroup, TypeColumn, TypeImage, TypeDivider, TypeSpacer, TypeHero:
		return EmptyValue{}
	default:
		return OpaqueValue{}
	}
}

func (v PageValue) merge(override Value) Value {
	o, ok := override.(PageValue)
	if !ok {
		return override
	}
	v.Breakpoint = pickString(v.Breakpoint, o.Breakpoint)
	v.HeadAttributes = pickString(v.HeadAttributes, o.HeadAttributes)
	v.FontFamily = pickString(v.FontFamily, o.FontFamily)
	v.TextColor = pickString(v.TextColor, o.TextColor)
	v.ContentBackground = pickString(v.ContentBackground, o.ContentBackground)
	v.UserStyle = pickString(v.UserStyle, o.UserStyle)
	if o.Fonts != nil {
		v.Fonts = o.Fonts
	}
	return v
}

func (v SectionValue) merge(override Value) Value {
	o, ok := override.(SectionValue)
	if !ok {
		return override
	}
	if o.NoWrap != nil {
		v.NoWrap = o.NoWrap
	}
	return v
}

// NoWrapEnabled reports whether the toggle is set.
func (v SectionValue) NoWrapEnabled() bool {
	return v.NoWrap != nil && *v.NoWrap
}

func (v ContentValue) merge(override Value) Value {
	o, ok := override.(ContentValue)
	if !ok {
		return override
	}
	if o.Content != nil {
		v.Content = o.Content
	}
	return v
}

func (v NavbarValue) merge(override Value) Value {
	o, ok := override.(NavbarValue)
	if !ok {
		return override
	}
	if o.Links != nil {
		v.Links = o.Links
	}
	return v
}

func (v SocialValue) merge(override Value) Value {
	o, ok := override.(SocialValue)
	if !ok {
		return override
	}
	if o.Elements != nil {
		v.Elements = o.Elements
	}
	return v
}

func (v EmptyValue) merge(override Value) Value {
	return override
}

func (v OpaqueValue) merge(override Value) Value {
	o, ok := override.(OpaqueValue)
	if !ok {
		return override
	}
	out := make(OpaqueValue, len(v)+len(o))
	for key, value := range v {
		out[key] = value
	}
	for key, value := range o {
		out[key] = value
	}
	return out
}

func pickString(base, override string) string {
	if override != "" {
		return override
	}
	return base
}
