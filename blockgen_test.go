package blockgen_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-blockgen"
)

func TestGenerateMarkup(t *testing.T) {
	t.Parallel()

	raw := []byte(`
type: page
children:
  - type: section
    children:
      - type: column
        children:
          - type: advanced_text
            data:
              value:
                content: "{{ item.name }}"
                iteration:
                  enabled: true
                  dataSource: items
                  limit: 2
`)

	markup, err := blockgen.GenerateMarkup(context.Background(), raw, nil, blockgen.WithDialect("django"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(markup, `{% for item in items|slice:":2" %}`) {
		t.Fatalf("expected django loop in markup:\n%s", markup)
	}
}

func TestLoadTemplates_Samples(t *testing.T) {
	t.Parallel()

	store, err := blockgen.LoadTemplates(blockgen.SamplesFS())
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	tmpl, ok := store.Template("welcome")
	if !ok {
		t.Fatalf("welcome sample missing")
	}
	result, err := blockgen.Generate(context.Background(), tmpl, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Mode != blockgen.ModeProduction || !strings.Contains(result.Markup, "Welcome aboard") {
		t.Fatalf("unexpected result %+v", result)
	}
}
