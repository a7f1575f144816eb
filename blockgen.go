// Package blockgen renders block-based email templates into MJML markup
// with condition and iteration tags for a downstream templating language.
package blockgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/document"
	"github.com/goliatone/go-blockgen/pkg/engine"
	"github.com/goliatone/go-blockgen/pkg/render"
)

// Node is a block in the template tree.
type Node = block.Node

// Template pairs email metadata with the page tree.
type Template = document.Template

// Request describes one render; see engine.Request.
type Request = engine.Request

// Result is the output of a render; see engine.Result.
type Result = engine.Result

// Mode selects production or testing output.
type Mode = render.Mode

const (
	ModeProduction = render.ModeProduction
	ModeTesting    = render.ModeTesting
)

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...engine.Option) *engine.Engine {
	return engine.New(options...)
}

// Generate renders tmpl with data in production mode.
func Generate(ctx context.Context, tmpl Template, data map[string]any, options ...engine.Option) (Result, error) {
	return engine.New(options...).Generate(ctx, Request{Template: tmpl, Data: data})
}

// GenerateMarkup parses a JSON or YAML template and returns its markup.
func GenerateMarkup(ctx context.Context, raw []byte, data map[string]any, options ...engine.Option) (string, error) {
	tmpl, err := document.Parse(raw, "input")
	if err != nil {
		return "", err
	}
	result, err := Generate(ctx, tmpl, data, options...)
	if err != nil {
		return "", err
	}
	return result.Markup, nil
}

// WithDialect selects the tag template dialect (liquid, django, inline).
func WithDialect(name string) engine.Option {
	return engine.WithDialect(name)
}

// WithThemeSelector resolves theme tokens through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) engine.Option {
	return engine.WithThemeSelector(selector, defaultTheme, defaultVariant)
}
