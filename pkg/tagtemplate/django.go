package tagtemplate

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Django emits Django template tags in the subset pongo2 executes, so the
// generated markup can be run in-process by the gotemplate engine:
//
//	{% if (a|float == 1.0 or b == "x") and c %} ... {% endif %}
//	{% for order in orders|slice:":3" %} ... {% endfor %}
//
// Numeric comparisons go through the float filter so integer and float data
// compare equal.
type Django struct{}

func (Django) Name() string { return "django" }

func (Django) Condition(expr condition.Expr, content render.Result, _ datactx.Context) (render.Result, error) {
	var clause string
	if len(expr.Groups) == 0 {
		clause = foldLiteral(expr.Symbol)
	} else {
		groups := make([]string, 0, len(expr.Groups))
		for _, group := range expr.Groups {
			groups = append(groups, "("+joinItems(group, djangoItem)+")")
		}
		clause = strings.Join(groups, " "+symbolWord(expr.Symbol)+" ")
	}
	return wrap(KindCondition, "{% if "+clause+" %}", "{% endif %}", content), nil
}

func (Django) Iteration(spec iteration.Spec, content render.Result, _ datactx.Context) (render.Result, error) {
	if strings.TrimSpace(spec.DataSource) == "" {
		// Nothing to iterate: zero repetitions, as iteration.Count reports.
		return render.Result{}, nil
	}
	source := spec.DataSource
	if spec.Limit > 0 {
		source += fmt.Sprintf(`|slice:":%d"`, spec.Limit)
	}
	open := fmt.Sprintf("{%% for %s in %s %%}", spec.Item(), source)
	return wrap(KindIteration, open, "{% endfor %}", content), nil
}

func djangoItem(item condition.Item) string {
	switch item.Operator {
	case condition.OperatorTruthy:
		return item.Left
	case condition.OperatorFalsy:
		return "not " + item.Left
	default:
		right, numeric := literal(item.Right)
		if numeric {
			return fmt.Sprintf("%s|float %s %s", item.Left, item.Operator, floatLiteral(right))
		}
		return fmt.Sprintf("%s %s %s", item.Left, item.Operator, right)
	}
}
