package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/blocks/advancedset"
	"github.com/goliatone/go-blockgen/pkg/blocks/standard"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/document"
	"github.com/goliatone/go-blockgen/pkg/render"
	"github.com/goliatone/go-blockgen/pkg/render/template"
	"github.com/goliatone/go-blockgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
	"github.com/goliatone/go-blockgen/pkg/transform"
)

// ThemeExtra is the extras key holding the active theme tokens.
const ThemeExtra = "theme"

// ErrNotExecutable is returned when execution is requested for a dialect the
// engine cannot run in-process.
var ErrNotExecutable = errors.New("engine: dialect output cannot be executed in-process")

// Option customises the engine configuration.
type Option func(*Engine)

// WithRegistry injects a prebuilt block registry. Advanced definitions in it
// keep the generator they were compiled with.
func WithRegistry(registry *block.Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithDialect selects the tag template dialect by name.
func WithDialect(name string) Option {
	return func(e *Engine) {
		e.dialect = name
	}
}

// WithDialects replaces the dialect registry used to resolve WithDialect.
func WithDialects(dialects *tagtemplate.Registry) Option {
	return func(e *Engine) {
		e.dialects = dialects
	}
}

// WithGenerator injects a generator directly, bypassing dialect lookup.
func WithGenerator(generator tagtemplate.Generator) Option {
	return func(e *Engine) {
		e.generator = generator
	}
}

// WithTemplateRenderer sets the executor used when a request asks for
// execution. Defaults to the go-template backed gotemplate engine.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(e *Engine) {
		e.executor = renderer
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithThemeSelector resolves request themes through selector. The defaults
// apply when a request leaves ThemeName or ThemeVariant empty.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(e *Engine) {
		e.themes = selector
		e.defaultTheme = defaultTheme
		e.defaultVariant = defaultVariant
	}
}

// WithTransformers registers document rewrites applied before validation.
func WithTransformers(transformers ...Transformer) Option {
	return func(e *Engine) {
		e.transformers = append(e.transformers, transformers...)
	}
}

// WithValidation toggles structural validation before render. On by default.
func WithValidation(enabled bool) Option {
	return func(e *Engine) {
		e.validate = enabled
	}
}

// Engine renders block documents into email markup.
type Engine struct {
	registry       *block.Registry
	dialects       *tagtemplate.Registry
	dialect        string
	generator      tagtemplate.Generator
	executor       template.TemplateRenderer
	logger         *slog.Logger
	themes         theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	transformers   []Transformer
	validate       bool
	initialiseErr  error
}

// New constructs an Engine. Missing dependencies get the built-in block set
// compiled against the configured dialect (liquid unless overridden).
// Configuration errors surface on the first call.
func New(options ...Option) *Engine {
	e := &Engine{validate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.applyDefaults()
	return e
}

func (e *Engine) applyDefaults() {
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.dialects == nil {
		e.dialects = tagtemplate.NewDefaultRegistry()
	}
	if e.executor == nil {
		executor, err := gotemplate.New()
		if err != nil {
			e.initialiseErr = fmt.Errorf("engine: create template renderer: %w", err)
			return
		}
		e.executor = executor
	}
	if e.generator == nil {
		generator, err := e.dialects.Get(e.dialect)
		if err != nil {
			e.initialiseErr = fmt.Errorf("engine: %w", err)
			return
		}
		e.generator = generator
	}
	if e.registry == nil {
		registry, err := DefaultRegistry(e.generator)
		if err != nil {
			e.initialiseErr = err
			return
		}
		e.registry = registry
	}
}

// DefaultRegistry builds the standard and advanced block set for generator.
func DefaultRegistry(generator tagtemplate.Generator) (*block.Registry, error) {
	builder := block.NewBuilder()
	if err := standard.Register(builder); err != nil {
		return nil, fmt.Errorf("engine: register standard blocks: %w", err)
	}
	if err := advancedset.Register(builder, generator); err != nil {
		return nil, fmt.Errorf("engine: register advanced blocks: %w", err)
	}
	return builder.Build(), nil
}

// Err reports a configuration error found while applying defaults.
func (e *Engine) Err() error {
	return e.initialiseErr
}

// Registry returns the block registry, nil if initialisation failed.
func (e *Engine) Registry() *block.Registry {
	return e.registry
}

// Dialect returns the name of the active tag template dialect.
func (e *Engine) Dialect() string {
	if e.generator == nil {
		return ""
	}
	return e.generator.Name()
}

// Request describes one render of a template.
type Request struct {
	Template document.Template

	// Data is the merge data visible to conditions, iterations and the
	// downstream template.
	Data map[string]any

	// Mode defaults to production.
	Mode render.Mode

	// ThemeName and ThemeVariant fall back to the engine defaults.
	ThemeName    string
	ThemeVariant string

	// Execute runs the generated markup through the template renderer so the
	// result no longer carries dialect tags. Only meaningful in production.
	Execute bool
}

// Result is the output of Generate.
type Result struct {
	Subject   string
	SubTitle  string
	Markup    string
	Fragments render.Result
	Mode      render.Mode
	Dialect   string
	Executed  bool
	Theme     *theme.Selection
}

// Render builds the fragment tree for req.
func (e *Engine) Render(ctx context.Context, req Request) (render.Result, error) {
	prepared, err := e.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return prepared.fragments, nil
}

// Generate renders req to markup and executes it when requested.
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	prepared, err := e.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Subject:   req.Template.Subject,
		SubTitle:  req.Template.SubTitle,
		Markup:    prepared.fragments.String(),
		Fragments: prepared.fragments,
		Mode:      prepared.mode,
		Dialect:   e.Dialect(),
		Theme:     prepared.theme,
	}

	if !req.Execute || prepared.mode.Testing() {
		return out, nil
	}
	if err := e.execute(&out, prepared.data); err != nil {
		return Result{}, err
	}
	return out, nil
}

type prepared struct {
	fragments render.Result
	mode      render.Mode
	data      datactx.Context
	theme     *theme.Selection
}

func (e *Engine) prepare(ctx context.Context, req Request) (prepared, error) {
	if ctx == nil {
		return prepared{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return prepared{}, err
	}
	if err := e.initialiseErr; err != nil {
		return prepared{}, err
	}
	if req.Template.Content.Type == "" {
		return prepared{}, errors.New("engine: template content is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = render.ModeProduction
	}

	selection, tokens, err := e.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return prepared{}, err
	}

	data := datactx.New(req.Data)
	if len(tokens) > 0 {
		data = data.WithExtra(ThemeExtra, tokens)
	}

	doc := block.NewDocument(req.Template.Content)
	for _, t := range e.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, doc); err != nil {
			return prepared{}, fmt.Errorf("engine: transform document: %w", err)
		}
	}
	if e.validate {
		if err := e.registry.Validate(doc); err != nil {
			return prepared{}, fmt.Errorf("engine: validate document: %w", err)
		}
	}

	e.logger.Debug("render document",
		"source", req.Template.Source,
		"dialect", e.Dialect(),
		"mode", mode,
		"nodes", doc.Len(),
		"theme", themeName(selection),
	)

	fragments, err := e.registry.Render(doc, mode, block.RenderData{Context: data, Theme: tokens})
	if err != nil {
		return prepared{}, err
	}
	return prepared{fragments: fragments, mode: mode, data: data, theme: selection}, nil
}

func (e *Engine) execute(out *Result, data datactx.Context) error {
	switch e.Dialect() {
	case "inline":
		return nil
	case "django":
	default:
		return fmt.Errorf("%w: %s", ErrNotExecutable, e.Dialect())
	}

	if e.executor == nil {
		return fmt.Errorf("%w: no template renderer configured", ErrNotExecutable)
	}

	flat := data.Flatten()
	markup, err := e.executor.RenderString(out.Markup, flat)
	if err != nil {
		return fmt.Errorf("engine: execute markup: %w", err)
	}
	out.Markup = markup

	if out.Subject != "" {
		subject, err := e.executor.RenderString(out.Subject, flat)
		if err != nil {
			return fmt.Errorf("engine: execute subject: %w", err)
		}
		out.Subject = subject
	}
	out.Executed = true

	e.logger.Debug("executed markup", "dialect", e.Dialect(), "bytes", len(markup))
	return nil
}

// Create instantiates a block of type t from its defaults merged with payload.
func (e *Engine) Create(t block.Type, payload block.Node) (block.Node, error) {
	if err := e.initialiseErr; err != nil {
		return block.Node{}, err
	}
	return e.registry.Create(t, payload)
}

// Validate checks root against the registry's parent rules and attribute
// schemas.
func (e *Engine) Validate(root block.Node) error {
	if err := e.initialiseErr; err != nil {
		return err
	}
	return e.registry.Validate(block.NewDocument(root))
}

// SetNoWrap toggles the no-wrap flag of the section at idx and returns the
// whole updated tree.
func (e *Engine) SetNoWrap(ctx context.Context, root block.Node, idx string, enabled bool) (block.Node, error) {
	if ctx == nil {
		return block.Node{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return block.Node{}, err
	}
	if err := e.initialiseErr; err != nil {
		return block.Node{}, err
	}

	doc := block.NewDocument(root)
	id, err := doc.Find(idx)
	if err != nil {
		return block.Node{}, err
	}
	if _, err := transform.SetNoWrap(doc, e.registry, id, enabled); err != nil {
		return block.Node{}, err
	}

	e.logger.Debug("set no-wrap", "idx", idx, "enabled", enabled)
	return doc.Tree(doc.Root()), nil
}
