package render

import "strings"

// Fragment is one piece of rendered output. The set is closed: Text, Raw,
// Element, Tag and nested Result values.
type Fragment interface {
	fragment()
}

// Result is an ordered, possibly nested sequence of fragments. Order is
// significant and preserved by every transformation in this module.
type Result []Fragment

// Text is literal content; serialisation escapes it.
type Text string

// Raw is markup that has already been sanitised and is emitted verbatim.
type Raw string

// Element is a markup node such as <mj-section>.
type Element struct {
	Name       string
	Attributes map[string]string
	Children   Result
}

// Tag wraps children in a downstream templating construct, for example
// `{% if ... %}` / `{% endif %}`. Open and Close are emitted verbatim.
type Tag struct {
	Kind     string
	Open     string
	Close    string
	Children Result
}

func (Result) fragment()  {}
func (Text) fragment()    {}
func (Raw) fragment()     {}
func (Element) fragment() {}
func (Tag) fragment()     {}

// Of builds a Result, dropping nil fragments and empty nested results.
func Of(fragments ...Fragment) Result {
	out := make(Result, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment == nil {
			continue
		}
		if nested, ok := fragment.(Result); ok && len(nested) == 0 {
			continue
		}
		out = append(out, fragment)
	}
	return out
}

// Concat joins results in order into a single nested Result.
func Concat(results ...Result) Result {
	out := make(Result, 0, len(results))
	for _, result := range results {
		if len(result) == 0 {
			continue
		}
		out = append(out, result)
	}
	return out
}

// Flatten returns the fragments of r with nested Results spliced in place.
// Element and Tag children are left untouched.
func (r Result) Flatten() Result {
	out := make(Result, 0, len(r))
	for _, fragment := range r {
		if nested, ok := fragment.(Result); ok {
			out = append(out, nested.Flatten()...)
			continue
		}
		out = append(out, fragment)
	}
	return out
}

// Empty reports whether r produces no output.
func (r Result) Empty() bool {
	for _, fragment := range r {
		if nested, ok := fragment.(Result); ok {
			if !nested.Empty() {
				return false
			}
			continue
		}
		return false
	}
	return true
}

// Elements returns the top-level elements of r after flattening, a shortcut
// used by hosts and tests that inspect block output.
func (r Result) Elements() []Element {
	var out []Element
	for _, fragment := range r.Flatten() {
		if el, ok := fragment.(Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// String returns the markup for r.
func (r Result) String() string {
	var b strings.Builder
	_ = WriteMarkup(&b, r)
	return b.String()
}
