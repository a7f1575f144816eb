package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/engine"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
	"github.com/goliatone/go-blockgen/pkg/testsupport"
)

func TestGenerate_LiquidProduction(t *testing.T) {
	t.Parallel()

	tmpl, data := testsupport.Sample(t, "newsletter")
	eng := engine.New()

	result, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, Data: data})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Dialect != "liquid" || result.Mode != render.ModeProduction {
		t.Fatalf("unexpected dialect/mode %q/%q", result.Dialect, result.Mode)
	}
	if result.Subject != tmpl.Subject {
		t.Fatalf("subject changed without execution: %q", result.Subject)
	}
	for _, fragment := range []string{
		"<mjml>",
		"{% if customer.accepts_marketing != blank %}",
		"{% for product in collection.products limit:3 %}",
		"{% endfor %}",
		"Hello {{ customer.first_name }}",
	} {
		if !strings.Contains(result.Markup, fragment) {
			t.Fatalf("expected %q in markup:\n%s", fragment, result.Markup)
		}
	}
	if result.Executed {
		t.Fatalf("liquid output should not be marked executed")
	}
}

func TestGenerate_DjangoExecute(t *testing.T) {
	t.Parallel()

	tmpl, data := testsupport.Sample(t, "newsletter")
	tmpl.Subject = "Picks for {{ customer.first_name }}"
	eng := engine.New(engine.WithDialect("django"))

	result, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, Data: data, Execute: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !result.Executed {
		t.Fatalf("expected executed result")
	}
	if strings.Contains(result.Markup, "{%") || strings.Contains(result.Markup, "{{") {
		t.Fatalf("executed markup still carries tags:\n%s", result.Markup)
	}
	for _, want := range []string{"Hello Ada", "Notebook", "Fountain pen", "Ink"} {
		if !strings.Contains(result.Markup, want) {
			t.Fatalf("expected %q in executed markup:\n%s", want, result.Markup)
		}
	}
	if strings.Contains(result.Markup, "Blotter") {
		t.Fatalf("iteration limit not applied:\n%s", result.Markup)
	}
	if result.Subject != "Picks for Ada" {
		t.Fatalf("subject not executed: %q", result.Subject)
	}
}

func TestGenerate_InlineEvaluatesDirectives(t *testing.T) {
	t.Parallel()

	tmpl, data := testsupport.Sample(t, "newsletter")
	eng := engine.New(engine.WithDialect("inline"))

	shown, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, Data: data, Execute: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n := strings.Count(shown.Markup, "{{ product.title }}"); n != 3 {
		t.Fatalf("expected 3 inline repetitions, got %d:\n%s", n, shown.Markup)
	}
	if strings.Contains(shown.Markup, "{%") {
		t.Fatalf("inline output should not carry tags:\n%s", shown.Markup)
	}

	hidden, err := eng.Generate(testsupport.Context(), engine.Request{
		Template: tmpl,
		Data:     map[string]any{"customer": map[string]any{"accepts_marketing": false}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(hidden.Markup, "product.title") || strings.Contains(hidden.Markup, "Shop now") {
		t.Fatalf("condition should remove the section:\n%s", hidden.Markup)
	}
}

func TestGenerate_TestingModeSkipsExecution(t *testing.T) {
	t.Parallel()

	tmpl, _ := testsupport.Sample(t, "newsletter")
	eng := engine.New(engine.WithDialect("liquid"))

	result, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, Mode: render.ModeTesting, Execute: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Executed || strings.Contains(result.Markup, "{%") {
		t.Fatalf("testing mode should neither tag nor execute:\n%s", result.Markup)
	}
	if n := strings.Count(result.Markup, "node-type-advanced_text"); n != 2 {
		t.Fatalf("expected 2 mock repetitions, got %d", n)
	}
	if !strings.Contains(result.Markup, "node-idx-content.children.[1]") {
		t.Fatalf("expected idx classes in preview:\n%s", result.Markup)
	}
}

func TestGenerate_LiquidCannotExecute(t *testing.T) {
	t.Parallel()

	tmpl, data := testsupport.Sample(t, "welcome")
	_, err := engine.New().Generate(testsupport.Context(), engine.Request{Template: tmpl, Data: data, Execute: true})
	if !errors.Is(err, engine.ErrNotExecutable) {
		t.Fatalf("expected ErrNotExecutable, got %v", err)
	}
}

func TestGenerate_IterationWithoutDataSourceDegrades(t *testing.T) {
	t.Parallel()

	for _, dialect := range []string{"liquid", "django", "inline"} {
		eng := engine.New(engine.WithDialect(dialect))
		text, err := eng.Create(block.TypeAdvancedText, block.Node{Data: block.Data{
			Value:      block.ContentValue{Content: block.String("Repeated item")},
			Directives: block.Directives{Iteration: &iteration.Spec{Enabled: true}},
		}})
		if err != nil {
			t.Fatalf("%s: create text: %v", dialect, err)
		}
		column, _ := eng.Create(block.TypeColumn, block.Node{Children: []block.Node{text}})
		section, _ := eng.Create(block.TypeSection, block.Node{Children: []block.Node{column}})
		page, _ := eng.Create(block.TypePage, block.Node{Children: []block.Node{section}})

		result, err := eng.Generate(testsupport.Context(), engine.Request{
			Template: documentOf(page),
			Execute:  dialect == "django",
		})
		if err != nil {
			t.Fatalf("%s: generate: %v", dialect, err)
		}
		if strings.Contains(result.Markup, "Repeated item") || strings.Contains(result.Markup, "{% for") {
			t.Fatalf("%s: expected zero repetitions:\n%s", dialect, result.Markup)
		}
		if !strings.Contains(result.Markup, "<mj-column") {
			t.Fatalf("%s: surrounding blocks should still render:\n%s", dialect, result.Markup)
		}
	}
}

func TestGenerate_ThemeTokens(t *testing.T) {
	t.Parallel()

	selector, err := engine.NewManifestSelector(&theme.Manifest{
		Name:    "paper",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "text-color": "#222222"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	tmpl, _ := testsupport.Sample(t, "welcome")
	eng := engine.New(engine.WithThemeSelector(selector, "paper", ""))

	base, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(base.Markup, `<mj-class color="#123456" name="theme-brand" />`) {
		t.Fatalf("expected brand token class:\n%s", base.Markup)
	}
	if base.Theme == nil || base.Theme.Theme != "paper" {
		t.Fatalf("expected selection on the result, got %+v", base.Theme)
	}

	dark, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, ThemeVariant: "dark"})
	if err != nil {
		t.Fatalf("generate dark: %v", err)
	}
	if !strings.Contains(dark.Markup, `<mj-class color="#654321" name="theme-brand" />`) {
		t.Fatalf("expected variant token to win:\n%s", dark.Markup)
	}

	if _, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl, ThemeName: "missing"}); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestTokens_VariantOverridesBase(t *testing.T) {
	t.Parallel()

	got := engine.Tokens(&theme.Selection{
		Theme:   "paper",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:     "paper",
			Tokens:   map[string]string{"brand": "#111111", "accent": "#222222"},
			Variants: map[string]theme.Variant{"dark": {Tokens: map[string]string{"brand": "#333333"}}},
		},
	})
	want := map[string]string{"brand": "#333333", "accent": "#222222"}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if engine.Tokens(nil) != nil {
		t.Fatalf("expected nil tokens for nil selection")
	}
}

func TestNew_UnknownDialect(t *testing.T) {
	t.Parallel()

	tmpl, _ := testsupport.Sample(t, "welcome")
	eng := engine.New(engine.WithDialect("handlebars"))
	if _, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl}); !errors.Is(err, tagtemplate.ErrUnknownDialect) {
		t.Fatalf("expected ErrUnknownDialect, got %v", err)
	}
	if _, err := eng.Create(block.TypeText, block.Node{}); err == nil {
		t.Fatalf("expected Create to report the initialisation error")
	}
}

func TestGenerate_ValidatesStructure(t *testing.T) {
	t.Parallel()

	eng := engine.New()
	text, err := eng.Create(block.TypeText, block.Node{})
	if err != nil {
		t.Fatalf("create text: %v", err)
	}
	page, err := eng.Create(block.TypePage, block.Node{Children: []block.Node{text}})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	page.Children = []block.Node{text}

	_, err = eng.Generate(testsupport.Context(), engine.Request{Template: documentOf(page)})
	if !errors.Is(err, block.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}

	lenient := engine.New(engine.WithValidation(false))
	if _, err := lenient.Generate(testsupport.Context(), engine.Request{Template: documentOf(page)}); err != nil {
		t.Fatalf("expected render without validation, got %v", err)
	}
}

func TestGenerate_ContextAndInput(t *testing.T) {
	t.Parallel()

	eng := engine.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tmpl, _ := testsupport.Sample(t, "welcome")
	if _, err := eng.Generate(ctx, engine.Request{Template: tmpl}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := eng.Generate(testsupport.Context(), engine.Request{}); err == nil {
		t.Fatalf("expected error for empty template")
	}
}

func TestRender_ReturnsFragments(t *testing.T) {
	t.Parallel()

	tmpl, _ := testsupport.Sample(t, "welcome")
	fragments, err := engine.New().Render(testsupport.Context(), engine.Request{Template: tmpl})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	elements := fragments.Flatten().Elements()
	if len(elements) != 1 || elements[0].Name != "mjml" {
		t.Fatalf("expected a single mjml root, got %+v", elements)
	}
}

func TestSetNoWrap(t *testing.T) {
	t.Parallel()

	tmpl, _ := testsupport.Sample(t, "newsletter")
	eng := engine.New()

	updated, err := eng.SetNoWrap(testsupport.Context(), tmpl.Content, "content.children.[0]", true)
	if err != nil {
		t.Fatalf("set no-wrap: %v", err)
	}
	section := updated.Children[0]
	if len(section.Children) != 1 || section.Children[0].Type != block.TypeGroup {
		t.Fatalf("expected a single group child, got %+v", section.Children)
	}
	if value, _ := section.Data.Value.(block.SectionValue); !value.NoWrapEnabled() {
		t.Fatalf("expected no-wrap flag to be stored, got %#v", section.Data.Value)
	}
	if err := eng.Validate(updated); err != nil {
		t.Fatalf("wrapped tree should validate: %v", err)
	}

	restored, err := eng.SetNoWrap(testsupport.Context(), updated, "content.children.[0]", false)
	if err != nil {
		t.Fatalf("clear no-wrap: %v", err)
	}
	if diff := testsupport.CompareGolden(tmpl.Content.Children[0].Children, restored.Children[0].Children); diff != "" {
		t.Fatalf("children not restored (-want +got):\n%s", diff)
	}

	if _, err := eng.SetNoWrap(testsupport.Context(), tmpl.Content, "content", true); err == nil {
		t.Fatalf("expected error toggling a page")
	}
	if _, err := eng.SetNoWrap(testsupport.Context(), tmpl.Content, "content.children.[9]", true); !errors.Is(err, block.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestAttributePresets(t *testing.T) {
	t.Parallel()

	presets, err := engine.ParseAttributePresets([]byte("text:\n  line-height: \"1.5\"\n  font-size: 12px\n"), "presets.yaml")
	if err != nil {
		t.Fatalf("parse presets: %v", err)
	}

	tmpl, _ := testsupport.Sample(t, "newsletter")
	eng := engine.New(engine.WithTransformers(presets))
	result, err := eng.Generate(testsupport.Context(), engine.Request{Template: tmpl})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(result.Markup, `font-size="18px" line-height="1.5"`) {
		t.Fatalf("expected node attribute to win over preset:\n%s", result.Markup)
	}
	if n := strings.Count(result.Markup, `line-height="1.5"`); n != 2 {
		t.Fatalf("expected preset on text and advanced_text, got %d:\n%s", n, result.Markup)
	}

	failing := engine.TransformerFunc(func(context.Context, *block.Document) error {
		return errors.New("boom")
	})
	if _, err := engine.New(engine.WithTransformers(failing)).Generate(testsupport.Context(), engine.Request{Template: tmpl}); err == nil {
		t.Fatalf("expected transformer error")
	}
}
