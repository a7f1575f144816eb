// Package condition evaluates the condition directive attached to advanced
// blocks. An Expr folds its groups with a top-level symbol; every group folds
// its items with its own symbol, so expressions are at most two levels deep.
package condition

import (
	"github.com/goliatone/go-blockgen/internal/coerce"
	"github.com/goliatone/go-blockgen/pkg/datactx"
)

// Operator names the comparison applied by an Item. The string values match
// the editor's wire format.
type Operator string

const (
	OperatorTruthy         Operator = "truthy"
	OperatorFalsy          Operator = "falsy"
	OperatorEqual          Operator = "=="
	OperatorNotEqual       Operator = "!="
	OperatorGreater        Operator = ">"
	OperatorGreaterOrEqual Operator = ">="
	OperatorLess           Operator = "<"
	OperatorLessOrEqual    Operator = "<="
)

// Valid reports whether op is one of the known operators.
func (op Operator) Valid() bool {
	switch op {
	case OperatorTruthy, OperatorFalsy, OperatorEqual, OperatorNotEqual,
		OperatorGreater, OperatorGreaterOrEqual, OperatorLess, OperatorLessOrEqual:
		return true
	default:
		return false
	}
}

// Unary reports whether op ignores the right operand.
func (op Operator) Unary() bool {
	return op == OperatorTruthy || op == OperatorFalsy
}

// Symbol joins groups or items.
type Symbol string

const (
	SymbolAnd Symbol = "and"
	SymbolOr  Symbol = "or"
)

// Expr is the condition directive.
type Expr struct {
	Groups  []Group `json:"groups" yaml:"groups"`
	Symbol  Symbol  `json:"symbol" yaml:"symbol"`
	Enabled bool    `json:"enabled" yaml:"enabled"`
}

// Group folds its items with Symbol.
type Group struct {
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	Groups []Item `json:"groups" yaml:"groups"`
}

// Item compares the value at Left (a data context path) with Right.
type Item struct {
	Left     string   `json:"left" yaml:"left"`
	Operator Operator `json:"operator" yaml:"operator"`
	Right    any      `json:"right,omitempty" yaml:"right,omitempty"`
}

// Active reports whether the directive should be applied at all. Disabled or
// absent conditions mean "always render" and are never evaluated.
func Active(expr *Expr) bool {
	return expr != nil && expr.Enabled
}

// Evaluator decides whether an expression holds for a data context.
type Evaluator interface {
	Evaluate(expr Expr, ctx datactx.Context) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(expr Expr, ctx datactx.Context) bool

// Evaluate delegates to the underlying function.
func (fn EvaluatorFunc) Evaluate(expr Expr, ctx datactx.Context) bool {
	return fn(expr, ctx)
}

// Default is the Evaluator backed by Evaluate.
var Default Evaluator = EvaluatorFunc(Evaluate)

// Evaluate folds expr against ctx. It does not consult expr.Enabled; callers
// gate on Active first. Evaluation never fails: missing paths and
// non-numeric operands resolve to false.
func Evaluate(expr Expr, ctx datactx.Context) bool {
	return fold(expr.Symbol, len(expr.Groups), func(i int) bool {
		return EvaluateGroup(expr.Groups[i], ctx)
	})
}

// EvaluateGroup folds a single group.
func EvaluateGroup(group Group, ctx datactx.Context) bool {
	return fold(group.Symbol, len(group.Groups), func(i int) bool {
		return EvaluateItem(group.Groups[i], ctx)
	})
}

// EvaluateItem applies a single comparison.
func EvaluateItem(item Item, ctx datactx.Context) bool {
	value, ok := ctx.Lookup(item.Left)
	if !ok {
		value = nil
	}

	switch item.Operator {
	case OperatorTruthy:
		return coerce.Truthy(value)
	case OperatorFalsy:
		return !coerce.Truthy(value)
	case OperatorEqual:
		return coerce.LooseEqual(value, item.Right)
	case OperatorNotEqual:
		return !coerce.LooseEqual(value, item.Right)
	case OperatorGreater, OperatorGreaterOrEqual, OperatorLess, OperatorLessOrEqual:
		return compareNumbers(item.Operator, value, item.Right)
	default:
		return false
	}
}

func compareNumbers(op Operator, left, right any) bool {
	l, ok := coerce.Number(left)
	if !ok {
		return false
	}
	r, ok := coerce.Number(right)
	if !ok {
		return false
	}
	switch op {
	case OperatorGreater:
		return l > r
	case OperatorGreaterOrEqual:
		return l >= r
	case OperatorLess:
		return l < r
	case OperatorLessOrEqual:
		return l <= r
	default:
		return false
	}
}

// fold short-circuits: "or" stops at the first true operand, anything else
// is treated as "and" and stops at the first false one.
func fold(symbol Symbol, n int, operand func(int) bool) bool {
	if symbol == SymbolOr {
		for i := 0; i < n; i++ {
			if operand(i) {
				return true
			}
		}
		return false
	}
	for i := 0; i < n; i++ {
		if !operand(i) {
			return false
		}
	}
	return true
}
