package tagtemplate

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-blockgen/internal/coerce"
	"github.com/goliatone/go-blockgen/pkg/condition"
)

// literal formats the right operand of a comparison. Values that parse as a
// number are written as numbers, everything else as a quoted string.
func literal(value any) (string, bool) {
	if number, ok := coerce.Number(value); ok {
		return strconv.FormatFloat(number, 'f', -1, 64), true
	}
	return quote(coerce.String(value)), false
}

var escapeQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote prefers escape-free literals: double quotes, then single quotes when
// the value holds a double quote. Anything else is double quoted with
// backslash escapes.
func quote(value string) string {
	plain := !strings.Contains(value, `\`)
	switch {
	case plain && !strings.Contains(value, `"`):
		return `"` + value + `"`
	case plain && !strings.Contains(value, `'`):
		return `'` + value + `'`
	default:
		return `"` + escapeQuoted.Replace(value) + `"`
	}
}

func floatLiteral(number string) string {
	if strings.ContainsAny(number, ".eE") {
		return number
	}
	return number + ".0"
}

// foldLiteral is the constant an empty and/or list folds to, matching
// condition.Evaluate.
func foldLiteral(symbol condition.Symbol) string {
	if symbol == condition.SymbolOr {
		return "false"
	}
	return "true"
}

func symbolWord(symbol condition.Symbol) string {
	if symbol == condition.SymbolOr {
		return "or"
	}
	return "and"
}

func joinItems(group condition.Group, item func(condition.Item) string) string {
	if len(group.Groups) == 0 {
		return foldLiteral(group.Symbol)
	}
	parts := make([]string, 0, len(group.Groups))
	for _, it := range group.Groups {
		parts = append(parts, item(it))
	}
	return strings.Join(parts, " "+symbolWord(group.Symbol)+" ")
}
