package tagtemplate

import (
	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Inline applies directives while rendering instead of emitting tags. It is
// meant for hosts without a templating engine: the condition is evaluated
// against the render data and the content is repeated once per collection
// item. Item bindings are not substituted into already rendered content.
type Inline struct {
	// Evaluator defaults to condition.Default.
	Evaluator condition.Evaluator
}

func (Inline) Name() string { return "inline" }

func (g Inline) Condition(expr condition.Expr, content render.Result, data datactx.Context) (render.Result, error) {
	evaluator := g.Evaluator
	if evaluator == nil {
		evaluator = condition.Default
	}
	if !evaluator.Evaluate(expr, data) {
		return render.Result{}, nil
	}
	return content, nil
}

func (Inline) Iteration(spec iteration.Spec, content render.Result, data datactx.Context) (render.Result, error) {
	return iteration.Expand(spec, data, render.ModeProduction, func(iteration.Binding) (render.Result, error) {
		return content, nil
	})
}
