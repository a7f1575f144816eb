package advancedset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blockgen/pkg/advanced"
	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/blocks/advancedset"
	"github.com/goliatone/go-blockgen/pkg/blocks/standard"
	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
)

func newRegistry(t *testing.T, gen tagtemplate.Generator) *block.Registry {
	t.Helper()
	builder := block.NewBuilder()
	if err := standard.Register(builder); err != nil {
		t.Fatalf("register standard: %v", err)
	}
	if err := advancedset.Register(builder, gen); err != nil {
		t.Fatalf("register advanced: %v", err)
	}
	return builder.Build()
}

// Every block type constant must have a definition, so adding a type without
// a definition fails here.
func TestRegistry_CoversEveryBlockType(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, tagtemplate.Liquid{})
	all := append(block.BaseTypes(), block.AdvancedTypes()...)
	for _, typ := range all {
		if !registry.Has(typ) {
			t.Fatalf("type %q has no definition", typ)
		}
	}
	if got := len(registry.Types()); got != len(all) {
		t.Fatalf("expected %d definitions, got %d", len(all), got)
	}
	for _, typ := range block.AdvancedTypes() {
		if !typ.Advanced() || block.AdvancedOf(typ.Base()) != typ {
			t.Fatalf("advanced type %q does not round-trip through its base", typ)
		}
	}
}

func TestDefinitions_RequireBaseTypes(t *testing.T) {
	t.Parallel()

	_, err := advancedset.Definitions(block.NewBuilder(), tagtemplate.Liquid{})
	if !errors.Is(err, advanced.ErrUnknownBaseBlock) {
		t.Fatalf("expected ErrUnknownBaseBlock, got %v", err)
	}
}

func TestAdvancedBlocksNestUnderAdvancedParents(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, tagtemplate.Liquid{})
	text, _ := registry.Create(block.TypeAdvancedText, block.Node{})
	column, _ := registry.Create(block.TypeAdvancedColumn, block.Node{Children: []block.Node{text}})
	section, _ := registry.Create(block.TypeAdvancedSection, block.Node{Children: []block.Node{column}})
	page, _ := registry.Create(block.TypePage, block.Node{Children: []block.Node{section}})

	if err := registry.Validate(block.NewDocument(page)); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestRender_NestedAdvancedBlocks(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, tagtemplate.Liquid{})
	text, _ := registry.Create(block.TypeAdvancedText, block.Node{Data: block.Data{
		Value: block.ContentValue{Content: block.String("{{ product.title }}")},
		Directives: block.Directives{
			Iteration: &iteration.Spec{Enabled: true, DataSource: "collection.products", ItemName: "product", Limit: 4, MockQuantity: 2},
		},
	}})
	section, _ := registry.Create(block.TypeAdvancedSection, block.Node{
		Data: block.Data{Directives: block.Directives{
			Condition: &condition.Expr{Enabled: true, Symbol: condition.SymbolAnd, Groups: []condition.Group{{
				Symbol: condition.SymbolAnd,
				Groups: []condition.Item{{Left: "customer.accepts_marketing", Operator: condition.OperatorTruthy}},
			}}},
		}},
		Children: []block.Node{{Type: block.TypeColumn, Children: []block.Node{text}}},
	})
	doc := block.NewDocument(section)

	production, err := registry.Render(doc, render.ModeProduction, block.RenderData{})
	if err != nil {
		t.Fatalf("render production: %v", err)
	}
	got := production.String()
	for _, fragment := range []string{
		"{% if customer.accepts_marketing != blank %}",
		"<mj-section",
		"{% for product in collection.products limit:4 %}<mj-text",
		"{{ product.title }}</mj-text>{% endfor %}",
		"</mj-section>{% endif %}",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %s", fragment, got)
		}
	}

	testingResult, err := registry.Render(doc, render.ModeTesting, block.RenderData{})
	if err != nil {
		t.Fatalf("render testing: %v", err)
	}
	preview := testingResult.String()
	if strings.Contains(preview, "{%") {
		t.Fatalf("testing output should not contain tags: %s", preview)
	}
	if n := strings.Count(preview, "<mj-text"); n != 2 {
		t.Fatalf("expected 2 mock repetitions, got %d in %s", n, preview)
	}
	if n := strings.Count(preview, "node-type-advanced_text"); n != 2 {
		t.Fatalf("expected the advanced type in testing classes, got %d", n)
	}
}
