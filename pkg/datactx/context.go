// Package datactx provides the read-only data context supplied by the host on
// every render call. Condition items and iteration data sources address it with
// dotted paths such as `customer.name` or `collection.products.0.title`;
// paths prefixed with `extras.` read from the Extras namespace instead.
package datactx

import (
	"reflect"
	"strconv"
	"strings"
)

const extrasPrefix = "extras."

// Context holds the values a render call can see. Values usually comes from
// the host's merge data while Extras carries engine supplied context such as
// the active theme tokens.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// New wraps values into a Context.
func New(values map[string]any) Context {
	return Context{Values: values}
}

// Lookup resolves a dotted path. Missing segments report false rather than an
// error so callers can treat absent data as falsy.
func (c Context) Lookup(path string) (any, bool) {
	key := strings.TrimSpace(path)
	if key == "" {
		return nil, false
	}
	if strings.HasPrefix(strings.ToLower(key), extrasPrefix) {
		return lookupPath(c.Extras, strings.TrimSpace(key[len(extrasPrefix):]))
	}
	return lookupPath(c.Values, key)
}

// Collection resolves path and returns it as an ordered slice. Non-collection
// values (including maps) report false.
func (c Context) Collection(path string) ([]any, bool) {
	value, ok := c.Lookup(path)
	if !ok || value == nil {
		return nil, false
	}
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Bind returns a copy of the context with name set to value at the top level
// of Values. The receiver is left untouched so sibling repetitions never see
// each other's bindings.
func (c Context) Bind(name string, value any) Context {
	name = strings.TrimSpace(name)
	if name == "" {
		return c
	}
	values := make(map[string]any, len(c.Values)+1)
	for key, existing := range c.Values {
		values[key] = existing
	}
	values[name] = value
	return Context{Values: values, Extras: c.Extras}
}

// WithExtra returns a copy of the context with an Extras entry set.
func (c Context) WithExtra(name string, value any) Context {
	extras := make(map[string]any, len(c.Extras)+1)
	for key, existing := range c.Extras {
		extras[key] = existing
	}
	extras[name] = value
	return Context{Values: c.Values, Extras: extras}
}

// Flatten returns Values merged with an `extras` key, the shape handed to
// downstream template engines.
func (c Context) Flatten() map[string]any {
	out := make(map[string]any, len(c.Values)+1)
	for key, value := range c.Values {
		out[key] = value
	}
	if len(c.Extras) > 0 {
		out["extras"] = c.Extras
	}
	return out
}

func lookupPath(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || path == "" {
		return nil, false
	}

	// Exact match first for flattened keys like "cta.headline".
	if v, ok := values[path]; ok {
		return v, true
	}

	var current any = values
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		next, ok := step(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, part string) (any, bool) {
	switch typed := current.(type) {
	case map[string]any:
		next, ok := typed[part]
		return next, ok
	case map[string]string:
		next, ok := typed[part]
		return next, ok
	case []any:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	}

	rv := reflect.ValueOf(current)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(part).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	default:
		return nil, false
	}
}
