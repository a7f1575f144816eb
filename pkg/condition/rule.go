package condition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse compiles a textual rule into an enabled Expr. Supported syntax:
//
//   - comparisons: `total > 10`, `tier == "gold"`, `count != 0`
//   - truthiness: `subscribed`, `!subscribed`
//   - composition: `&&` / `||` (or the words `and` / `or`)
//   - one level of parentheses: `(a || b) && c`
//
// Rules that nest deeper than a group of items inside a top-level fold are
// rejected because Expr cannot represent them.
func Parse(rule string) (Expr, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return Expr{}, errors.New("condition: empty rule")
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return Expr{}, err
	}

	stream := &tokenStream{tokens: tokens}
	root, err := parseOr(stream)
	if err != nil {
		return Expr{}, err
	}
	if stream.pos < len(stream.tokens) {
		return Expr{}, fmt.Errorf("condition: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return normalise(root)
}

// MustParse panics when the rule is invalid. Useful for static fixtures.
func MustParse(rule string) Expr {
	expr, err := Parse(rule)
	if err != nil {
		panic(err)
	}
	return expr
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenCompare
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func(offset int) byte {
		if i+offset >= len(input) {
			return 0
		}
		return input[i+offset]
	}

	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '!':
			if peek(1) == '=' {
				tokens = append(tokens, token{kind: tokenCompare, raw: "!="})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			i++
		case ch == '=':
			if peek(1) != '=' {
				return nil, errors.New("condition: unexpected '='; use '=='")
			}
			tokens = append(tokens, token{kind: tokenCompare, raw: "=="})
			i += 2
		case ch == '>' || ch == '<':
			raw := string(ch)
			i++
			if peek(0) == '=' {
				raw += "="
				i++
			}
			tokens = append(tokens, token{kind: tokenCompare, raw: raw})
		case ch == '&':
			if peek(1) != '&' {
				return nil, errors.New("condition: unexpected '&'; use '&&'")
			}
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			i += 2
		case ch == '|':
			if peek(1) != '|' {
				return nil, errors.New("condition: unexpected '|'; use '||'")
			}
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			i += 2
		case ch == '"' || ch == '\'':
			value, next, err := readString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = next
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()!=<>&|\"'", rune(input[i])) {
				i++
			}
			tokens = append(tokens, classifyWord(input[start:i]))
		}
	}
	return tokens, nil
}

func readString(input string, start int) (string, int, error) {
	quote := input[start]
	escaped := false
	for i := start + 1; i < len(input); i++ {
		c := input[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c != quote {
			continue
		}
		body := input[start+1 : i]
		if quote == '\'' {
			body = strings.ReplaceAll(body, `\'`, `'`)
			body = strings.ReplaceAll(body, `"`, `\"`)
		}
		value, err := strconv.Unquote(`"` + body + `"`)
		if err != nil {
			return "", 0, fmt.Errorf("condition: invalid string literal: %w", err)
		}
		return value, i + 1, nil
	}
	return "", 0, errors.New("condition: unterminated string literal")
}

func classifyWord(raw string) token {
	switch strings.ToLower(raw) {
	case "true", "false":
		return token{kind: tokenBool, raw: strings.ToLower(raw)}
	case "null", "nil":
		return token{kind: tokenNull, raw: "null"}
	case "and":
		return token{kind: tokenAnd, raw: "and"}
	case "or":
		return token{kind: tokenOr, raw: "or"}
	}
	if looksLikeNumber(raw) {
		return token{kind: tokenNumber, raw: raw}
	}
	return token{kind: tokenIdentifier, raw: raw}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

// ruleNode is the parse tree: a leaf carries an item, an inner node folds its
// children with op.
type ruleNode struct {
	op       Symbol
	item     Item
	children []ruleNode
}

func (n ruleNode) leaf() bool { return n.op == "" }

type tokenStream struct {
	tokens []token
	pos    int
}

func parseOr(stream *tokenStream) (ruleNode, error) {
	return parseChain(stream, tokenOr, SymbolOr, parseAnd)
}

func parseAnd(stream *tokenStream) (ruleNode, error) {
	return parseChain(stream, tokenAnd, SymbolAnd, parsePrimary)
}

func parseChain(stream *tokenStream, sep tokenKind, symbol Symbol, operand func(*tokenStream) (ruleNode, error)) (ruleNode, error) {
	first, err := operand(stream)
	if err != nil {
		return ruleNode{}, err
	}
	if !stream.peek(sep) {
		return first, nil
	}

	node := ruleNode{op: symbol}
	node.children = appendFlat(node.children, first, symbol)
	for stream.match(sep) {
		next, err := operand(stream)
		if err != nil {
			return ruleNode{}, err
		}
		node.children = appendFlat(node.children, next, symbol)
	}
	return node, nil
}

func appendFlat(children []ruleNode, child ruleNode, symbol Symbol) []ruleNode {
	if child.op == symbol {
		return append(children, child.children...)
	}
	return append(children, child)
}

func parsePrimary(stream *tokenStream) (ruleNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return ruleNode{}, err
		}
		if !stream.match(tokenRParen) {
			return ruleNode{}, errors.New("condition: missing closing ')'")
		}
		return inner, nil
	}

	negate := stream.match(tokenNot)

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return ruleNode{}, errors.New("condition: unexpected end of rule")
		}
		return ruleNode{}, fmt.Errorf("condition: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	if negate {
		return ruleNode{item: Item{Left: ident.raw, Operator: OperatorFalsy}}, nil
	}

	cmp, ok := stream.consume(tokenCompare)
	if !ok {
		return ruleNode{item: Item{Left: ident.raw, Operator: OperatorTruthy}}, nil
	}

	right, err := stream.consumeLiteral()
	if err != nil {
		return ruleNode{}, err
	}
	return ruleNode{item: Item{Left: ident.raw, Operator: Operator(cmp.raw), Right: right}}, nil
}

func (s *tokenStream) peek(kind tokenKind) bool {
	return s.pos < len(s.tokens) && s.tokens[s.pos].kind == kind
}

func (s *tokenStream) match(kind tokenKind) bool {
	if !s.peek(kind) {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if !s.peek(kind) {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (any, error) {
	if s.pos >= len(s.tokens) {
		return nil, errors.New("condition: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return tok.raw, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("condition: invalid number literal %q", tok.raw)
		}
		return f, nil
	case tokenBool:
		return tok.raw == "true", nil
	case tokenNull:
		return nil, nil
	case tokenIdentifier:
		// Bare words are read as strings to keep hand written rules forgiving.
		return tok.raw, nil
	default:
		return nil, fmt.Errorf("condition: expected literal, got %q", tok.raw)
	}
}

func normalise(root ruleNode) (Expr, error) {
	if root.leaf() {
		return Expr{
			Enabled: true,
			Symbol:  SymbolAnd,
			Groups:  []Group{{Symbol: SymbolAnd, Groups: []Item{root.item}}},
		}, nil
	}

	expr := Expr{Enabled: true, Symbol: root.op}
	for _, child := range root.children {
		if child.leaf() {
			expr.Groups = append(expr.Groups, Group{Symbol: SymbolAnd, Groups: []Item{child.item}})
			continue
		}
		group := Group{Symbol: child.op}
		for _, grandchild := range child.children {
			if !grandchild.leaf() {
				return Expr{}, errors.New("condition: rule nests deeper than two levels")
			}
			group.Groups = append(group.Groups, grandchild.item)
		}
		expr.Groups = append(expr.Groups, group)
	}
	return expr, nil
}
