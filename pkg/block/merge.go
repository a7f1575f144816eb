package block

import "github.com/mohae/deepcopy"

// Merge lays payload over base and returns the result. Neither argument is
// modified and the result shares no maps or slices with them.
//
//   - Type: payload wins when set
//   - Data.Value: merged per Value rules
//   - Data.Hidden: payload wins when non-nil
//   - Data.Directives: each directive in payload replaces the base directive
//   - Attributes: key-wise, payload keys win
//   - Children: a non-nil payload slice replaces base children wholesale
func Merge(base, payload Node) Node {
	out := Clone(base)
	patch := Clone(payload)

	if patch.Type != "" {
		out.Type = patch.Type
	}

	out.Data.Value = mergeValue(out.Data.Value, patch.Data.Value)
	if patch.Data.Hidden != nil {
		out.Data.Hidden = patch.Data.Hidden
	}
	if patch.Data.Directives.Condition != nil {
		out.Data.Directives.Condition = patch.Data.Directives.Condition
	}
	if patch.Data.Directives.Iteration != nil {
		out.Data.Directives.Iteration = patch.Data.Directives.Iteration
	}
	if patch.Data.Directives.I18n != nil {
		out.Data.Directives.I18n = patch.Data.Directives.I18n
	}

	if len(patch.Attributes) > 0 {
		if out.Attributes == nil {
			out.Attributes = make(map[string]string, len(patch.Attributes))
		}
		for key, value := range patch.Attributes {
			out.Attributes[key] = value
		}
	}

	if patch.Children != nil {
		out.Children = patch.Children
	}
	return out
}

// Clone deep copies n.
func Clone(n Node) Node {
	copied, ok := deepcopy.Copy(n).(Node)
	if !ok {
		return n
	}
	return copied
}

func mergeValue(base, override Value) Value {
	switch {
	case override == nil:
		return base
	case base == nil:
		return override
	default:
		return base.merge(override)
	}
}
