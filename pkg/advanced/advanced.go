// Package advanced compiles advanced block definitions: a base block plus the
// condition, iteration and i18n directives stored in its data.
package advanced

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
)

// ErrUnknownBaseBlock is returned by Compile when the base type is not
// registered. It also matches block.ErrUnknownBlockType.
var ErrUnknownBaseBlock = errors.New("advanced: unknown base block")

type unknownBaseError struct {
	base block.Type
}

func (e *unknownBaseError) Error() string {
	return fmt.Sprintf("advanced: unknown base block %q", e.base)
}

func (e *unknownBaseError) Is(target error) bool {
	return target == ErrUnknownBaseBlock || target == block.ErrUnknownBlockType
}

// ContentParams is handed to a ContentFunc for one repetition.
type ContentParams struct {
	block.RenderParams
	// I18n is the node's i18n directive, passed through untouched.
	I18n *block.I18n
}

// ContentFunc produces the base content of an advanced block for repetition
// index params.Index.
type ContentFunc func(params ContentParams) (render.Result, error)

// Options configures Compile.
type Options struct {
	Type             block.Type
	BaseType         block.Type
	GetContent       ContentFunc
	ValidParentTypes []block.Type
}

// Compile builds the definition for opts.Type from the registered base
// definition. When GetContent is nil the base renderer produces the content.
func Compile(lookup block.Lookup, generator tagtemplate.Generator, opts Options) (block.Definition, error) {
	if lookup == nil {
		return block.Definition{}, errors.New("advanced: lookup is required")
	}
	if generator == nil {
		return block.Definition{}, errors.New("advanced: tag template generator is required")
	}
	if opts.Type == "" {
		return block.Definition{}, errors.New("advanced: type is required")
	}

	base, err := lookup.Lookup(opts.BaseType)
	if err != nil {
		if errors.Is(err, block.ErrUnknownBlockType) {
			return block.Definition{}, &unknownBaseError{base: opts.BaseType}
		}
		return block.Definition{}, err
	}

	conditionTag, err := tagtemplate.Generate(generator, tagtemplate.KindCondition)
	if err != nil {
		return block.Definition{}, err
	}
	iterationTag, err := tagtemplate.Generate(generator, tagtemplate.KindIteration)
	if err != nil {
		return block.Definition{}, err
	}

	getContent := opts.GetContent
	if getContent == nil {
		getContent = baseContent(base)
	}
	validParents := opts.ValidParentTypes
	if validParents == nil {
		validParents = base.ValidParentTypes
	}

	def := block.Definition{
		Name:             base.Name,
		Type:             opts.Type,
		ValidParentTypes: append([]block.Type(nil), validParents...),
		Attributes:       base.Attributes,
		Defaults: func() block.Node {
			node := base.Create(block.Node{})
			node.Type = opts.Type
			return node
		},
	}

	def.Render = func(params block.RenderParams) (render.Result, error) {
		directives := params.Block().Data.Directives

		content := func(index int) (render.Result, error) {
			rp := params
			rp.Index = index
			return getContent(ContentParams{RenderParams: rp, I18n: directives.I18n})
		}

		children, err := content(0)
		if err != nil {
			return nil, err
		}

		if params.Mode.Testing() {
			spec := iteration.Spec{}
			if directives.Iteration != nil {
				spec = *directives.Iteration
			}
			return iteration.Expand(spec, params.Data, render.ModeTesting, func(b iteration.Binding) (render.Result, error) {
				if b.Index == 0 {
					return children, nil
				}
				return content(b.Index)
			})
		}

		if condition.Active(directives.Condition) {
			children, err = conditionTag(directives.Condition, children, params.Data)
			if err != nil {
				return nil, err
			}
		}
		if iteration.Active(directives.Iteration) {
			children, err = iterationTag(directives.Iteration, children, params.Data)
			if err != nil {
				return nil, err
			}
		}
		return children, nil
	}

	return def, nil
}

// baseContent renders the advanced node with the base definition's renderer.
func baseContent(base block.Definition) ContentFunc {
	return func(params ContentParams) (render.Result, error) {
		return base.Render(params.RenderParams)
	}
}
