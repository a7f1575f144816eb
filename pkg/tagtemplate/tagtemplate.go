// Package tagtemplate turns condition and iteration directives into the tag
// syntax of a downstream templating language. Each dialect is a Generator;
// the advanced block compiler only depends on the Generator interface, so the
// same block tree can target Liquid, Django/pongo2 or be evaluated inline.
package tagtemplate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Kind names a directive that can be turned into tags.
type Kind string

const (
	KindCondition Kind = "condition"
	KindIteration Kind = "iteration"
	KindI18n      Kind = "i18n"
)

var (
	// ErrUnsupportedKind is returned by Generate for kinds no dialect emits.
	ErrUnsupportedKind = errors.New("tagtemplate: unsupported kind")
	// ErrUnknownDialect is returned by Registry.Get for unregistered names.
	ErrUnknownDialect = errors.New("tagtemplate: unknown dialect")
)

// Generator emits the wrapping tags of one templating dialect. Content is the
// already rendered block output; data is the render context, which dialects
// that emit template syntax ignore.
type Generator interface {
	Name() string
	Condition(expr condition.Expr, content render.Result, data datactx.Context) (render.Result, error)
	Iteration(spec iteration.Spec, content render.Result, data datactx.Context) (render.Result, error)
}

// Func wraps content according to a directive value. The directive must match
// the kind the Func was generated for (condition.Expr or iteration.Spec, by
// value or pointer).
type Func func(directive any, content render.Result, data datactx.Context) (render.Result, error)

// Generate returns the tag template function for kind.
func Generate(g Generator, kind Kind) (Func, error) {
	if g == nil {
		return nil, errors.New("tagtemplate: generator is required")
	}
	switch kind {
	case KindCondition:
		return func(directive any, content render.Result, data datactx.Context) (render.Result, error) {
			switch expr := directive.(type) {
			case condition.Expr:
				return g.Condition(expr, content, data)
			case *condition.Expr:
				if expr == nil {
					return content, nil
				}
				return g.Condition(*expr, content, data)
			default:
				return nil, fmt.Errorf("tagtemplate: condition directive has type %T", directive)
			}
		}, nil
	case KindIteration:
		return func(directive any, content render.Result, data datactx.Context) (render.Result, error) {
			switch spec := directive.(type) {
			case iteration.Spec:
				return g.Iteration(spec, content, data)
			case *iteration.Spec:
				if spec == nil {
					return content, nil
				}
				return g.Iteration(*spec, content, data)
			default:
				return nil, fmt.Errorf("tagtemplate: iteration directive has type %T", directive)
			}
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

func wrap(kind Kind, open, close string, content render.Result) render.Result {
	return render.Of(render.Tag{
		Kind:     string(kind),
		Open:     open,
		Close:    close,
		Children: content,
	})
}
