// Package testsupport holds fixture and golden helpers shared by tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/blocks/advancedset"
	"github.com/goliatone/go-blockgen/pkg/blocks/standard"
	"github.com/goliatone/go-blockgen/pkg/document"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
)

// NewRegistry builds the standard and advanced block set for generator.
func NewRegistry(t *testing.T, generator tagtemplate.Generator) *block.Registry {
	t.Helper()

	builder := block.NewBuilder()
	if err := standard.Register(builder); err != nil {
		t.Fatalf("register standard blocks: %v", err)
	}
	if err := advancedset.Register(builder, generator); err != nil {
		t.Fatalf("register advanced blocks: %v", err)
	}
	return builder.Build()
}

// LoadTemplate reads and parses a template fixture.
func LoadTemplate(t *testing.T, path string) document.Template {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	tmpl, err := document.Parse(data, path)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	return tmpl
}

// Sample returns a bundled sample template with its data set, if any.
func Sample(t *testing.T, name string) (document.Template, map[string]any) {
	t.Helper()

	store, err := document.LoadFS(document.SamplesFS())
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	tmpl, ok := store.Template(name)
	if !ok {
		t.Fatalf("sample %q not found", name)
	}
	data, _ := store.Data(name)
	return tmpl, data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
