// Package iteration expands the iteration directive of advanced blocks. It
// only decides how many repetitions are rendered and in which order; emitting
// loop syntax for a templating language is left to tag template dialects.
package iteration

import (
	"strings"

	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// DefaultItemName is bound when a Spec leaves ItemName empty.
const DefaultItemName = "item"

// Spec is the iteration directive.
type Spec struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	DataSource   string `json:"dataSource" yaml:"dataSource"`
	ItemName     string `json:"itemName" yaml:"itemName"`
	Limit        int    `json:"limit" yaml:"limit"`
	MockQuantity int    `json:"mockQuantity" yaml:"mockQuantity"`
}

// Active reports whether the directive should be applied in production.
func Active(spec *Spec) bool {
	return spec != nil && spec.Enabled
}

// Item returns the binding name, defaulting to DefaultItemName.
func (s Spec) Item() string {
	if name := strings.TrimSpace(s.ItemName); name != "" {
		return name
	}
	return DefaultItemName
}

// Mocks returns the testing repetition count, at least 1.
func (s Spec) Mocks() int {
	if s.MockQuantity < 1 {
		return 1
	}
	return s.MockQuantity
}

// Binding is handed to the per-repetition render callback. In production Data
// has the item bound under Spec.Item(); in testing mode Item is nil and Data
// is the caller's context unchanged.
type Binding struct {
	Index int
	Item  any
	Data  datactx.Context
}

// RenderFunc renders one repetition.
type RenderFunc func(Binding) (render.Result, error)

// Count returns how many repetitions Expand would produce.
//
// Production resolves DataSource to a collection and caps it with Limit when
// Limit is positive; a missing or non-collection source yields zero.
// Testing never touches data and yields max(MockQuantity, 1).
func Count(spec Spec, data datactx.Context, mode render.Mode) int {
	if mode.Testing() {
		return spec.Mocks()
	}
	items, _ := data.Collection(spec.DataSource)
	return limit(len(items), spec.Limit)
}

// Expand calls renderOne once per repetition in ascending index order and
// concatenates the results. The first error aborts expansion and is returned
// unchanged.
func Expand(spec Spec, data datactx.Context, mode render.Mode, renderOne RenderFunc) (render.Result, error) {
	if mode.Testing() {
		n := spec.Mocks()
		out := make(render.Result, 0, n)
		for i := 0; i < n; i++ {
			result, err := renderOne(Binding{Index: i, Data: data})
			if err != nil {
				return nil, err
			}
			out = append(out, result)
		}
		return out, nil
	}

	items, _ := data.Collection(spec.DataSource)
	n := limit(len(items), spec.Limit)
	name := spec.Item()
	out := make(render.Result, 0, n)
	for i := 0; i < n; i++ {
		result, err := renderOne(Binding{Index: i, Item: items[i], Data: data.Bind(name, items[i])})
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

func limit(length, max int) int {
	if max > 0 && max < length {
		return max
	}
	return length
}
