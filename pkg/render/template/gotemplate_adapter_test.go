package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-blockgen/pkg/condition"
	"github.com/goliatone/go-blockgen/pkg/datactx"
	"github.com/goliatone/go-blockgen/pkg/iteration"
	"github.com/goliatone/go-blockgen/pkg/render"
	"github.com/goliatone/go-blockgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
	"github.com/goliatone/go-blockgen/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"shop": map[string]any{"name": "  Paper Co "},
		"env":  "staging",
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_blockgen", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderString("{{ name|shout_blockgen }}", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("expected filtered output, got %q", got)
	}
	if err := engine.RegisterFilter("shout_blockgen", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestGoTemplateEngine_RenderDispatchesOnContent(t *testing.T) {
	engine := newEngine(t)

	inline, err := engine.Render("{{ name }}!", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "Ada!" {
		t.Fatalf("expected inline execution, got %q", inline)
	}
	named, err := engine.Render("hello", struct {
		Name string `json:"name"`
	}{Name: "Ada"})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if named != "Hello Ada" {
		t.Fatalf("expected named template, got %q", named)
	}
}

// Django-dialect output must execute as-is.
func TestGoTemplateEngine_ExecutesDjangoDialect(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	content := render.Of(render.Raw("<p>{{ order.id }}</p>"))
	loop, err := tagtemplate.Django{}.Iteration(iteration.Spec{Enabled: true, DataSource: "orders", ItemName: "order", Limit: 2}, content, datactx.Context{})
	if err != nil {
		t.Fatalf("iteration: %v", err)
	}
	guarded, err := tagtemplate.Django{}.Condition(condition.Expr{
		Enabled: true,
		Symbol:  condition.SymbolAnd,
		Groups: []condition.Group{
			{Symbol: condition.SymbolOr, Groups: []condition.Item{
				{Left: "customer.orders_count", Operator: condition.OperatorGreater, Right: "1"},
				{Left: "customer.tag", Operator: condition.OperatorEqual, Right: "vip"},
			}},
			{Symbol: condition.SymbolAnd, Groups: []condition.Item{
				{Left: "customer.accepts_marketing", Operator: condition.OperatorTruthy},
			}},
		},
	}, loop, datactx.Context{})
	if err != nil {
		t.Fatalf("condition: %v", err)
	}

	data := map[string]any{
		"customer": map[string]any{"orders_count": 3, "tag": "regular", "accepts_marketing": true},
		"orders":   []any{map[string]any{"id": 1}, map[string]any{"id": 2}, map[string]any{"id": 3}},
	}
	got, err := engine.RenderString(guarded.String(), data)
	if err != nil {
		t.Fatalf("execute %s: %v", guarded.String(), err)
	}
	if got != "<p>1</p><p>2</p>" {
		t.Fatalf("unexpected output %q from %s", got, guarded.String())
	}

	data["customer"] = map[string]any{"orders_count": 1, "tag": "regular", "accepts_marketing": true}
	got, err = engine.RenderString(guarded.String(), data)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != "" {
		t.Fatalf("expected condition to hide content, got %q", got)
	}
}

func TestGoTemplateEngine_PassesGoTemplateOptions(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithGlobalData(map[string]any{"brand": "Paper Co"}),
		gotemplate.WithGoTemplateOptions(gotemplatepkg.WithGlobalData(map[string]any{"footer": "Unsubscribe"})),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("{{ brand }} / {{ footer }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "Paper Co / Unsubscribe" {
		t.Fatalf("expected both global sources, got %q", got)
	}
}

func TestGoTemplateEngine_StringOnlyEngineRejectsNamedTemplates(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("hello", nil); err == nil {
		t.Fatalf("expected error loading a named template without a loader")
	}
}

func TestGoTemplateEngine_ExecutesQuotedOperands(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	tag := `say "hi" it's`
	guarded, err := tagtemplate.Django{}.Condition(condition.Expr{
		Enabled: true,
		Symbol:  condition.SymbolAnd,
		Groups: []condition.Group{{Symbol: condition.SymbolAnd, Groups: []condition.Item{
			{Left: "customer.tag", Operator: condition.OperatorEqual, Right: tag},
		}}},
	}, render.Of(render.Raw("shown")), datactx.Context{})
	if err != nil {
		t.Fatalf("condition: %v", err)
	}

	got, err := engine.RenderString(guarded.String(), map[string]any{"customer": map[string]any{"tag": tag}})
	if err != nil {
		t.Fatalf("execute %s: %v", guarded.String(), err)
	}
	if got != "shown" {
		t.Fatalf("expected the quoted operand to match, got %q from %s", got, guarded.String())
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
