// Package advancedset compiles the advanced_* definitions from the standard
// block set.
package advancedset

import (
	"github.com/goliatone/go-blockgen/pkg/advanced"
	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
)

// Definitions compiles one advanced definition per advanced type. Base types
// must already be resolvable through lookup.
func Definitions(lookup block.Lookup, generator tagtemplate.Generator) ([]block.Definition, error) {
	types := block.AdvancedTypes()
	defs := make([]block.Definition, 0, len(types))
	for _, t := range types {
		def, err := advanced.Compile(lookup, generator, advanced.Options{
			Type:     t,
			BaseType: t.Base(),
		})
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Register compiles the advanced definitions against builder and adds them.
func Register(builder *block.Builder, generator tagtemplate.Generator) error {
	defs, err := Definitions(builder, generator)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := builder.Register(def); err != nil {
			return err
		}
	}
	return nil
}
