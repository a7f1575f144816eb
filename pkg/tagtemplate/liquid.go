package tagtemplate

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Liquid emits Shopify Liquid tags.
//
// Liquid has no parentheses and evaluates and/or right to left, so every
// condition group is first assigned to a variable and the top-level if only
// combines those variables:
//
//	{% if a == 1 or b == 2 %}{% assign cond_1f2e3d4c_0 = true %}{% else %}{% assign cond_1f2e3d4c_0 = false %}{% endif %}
//	{% if cond_1f2e3d4c_0 %} ... {% endif %}
type Liquid struct{}

func (Liquid) Name() string { return "liquid" }

func (Liquid) Condition(expr condition.Expr, content render.Result, _ datactx.Context) (render.Result, error) {
	if len(expr.Groups) == 0 {
		return wrap(KindCondition, "{% if "+foldLiteral(expr.Symbol)+" %}", "{% endif %}", content), nil
	}

	groups := make([]string, 0, len(expr.Groups))
	for _, group := range expr.Groups {
		groups = append(groups, joinItems(group, liquidItem))
	}
	prefix := liquidPrefix(expr.Symbol, groups)

	var open strings.Builder
	variables := make([]string, 0, len(groups))
	for i, group := range groups {
		name := fmt.Sprintf("%s_%d", prefix, i)
		variables = append(variables, name)
		fmt.Fprintf(&open, "{%% if %s %%}{%% assign %s = true %%}{%% else %%}{%% assign %s = false %%}{%% endif %%}", group, name, name)
	}
	fmt.Fprintf(&open, "{%% if %s %%}", strings.Join(variables, " "+symbolWord(expr.Symbol)+" "))

	return wrap(KindCondition, open.String(), "{% endif %}", content), nil
}

func (Liquid) Iteration(spec iteration.Spec, content render.Result, _ datactx.Context) (render.Result, error) {
	if strings.TrimSpace(spec.DataSource) == "" {
		// Nothing to iterate: zero repetitions, as iteration.Count reports.
		return render.Result{}, nil
	}
	open := fmt.Sprintf("{%% for %s in %s", spec.Item(), spec.DataSource)
	if spec.Limit > 0 {
		open += fmt.Sprintf(" limit:%d", spec.Limit)
	}
	open += " %}"
	return wrap(KindIteration, open, "{% endfor %}", content), nil
}

func liquidItem(item condition.Item) string {
	switch item.Operator {
	case condition.OperatorTruthy:
		return item.Left + " != blank"
	case condition.OperatorFalsy:
		return item.Left + " == blank"
	default:
		right, _ := literal(item.Right)
		return fmt.Sprintf("%s %s %s", item.Left, item.Operator, right)
	}
}

// liquidPrefix derives variable names from the expression so repeated renders
// of the same block produce identical output.
func liquidPrefix(symbol condition.Symbol, groups []string) string {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	for _, group := range groups {
		h.Write([]byte{0})
		h.Write([]byte(group))
	}
	return fmt.Sprintf("cond_%08x", h.Sum32())
}
