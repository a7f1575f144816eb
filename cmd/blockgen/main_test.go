package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blockgen/internal/prompt"
)

type stubDriver struct {
	selects  []int
	confirms []bool
	asked    []string
}

func (d *stubDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", nil
}

func (d *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.confirms) == 0 {
		return cfg.Default, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func run(t *testing.T, driver prompt.Driver, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmdWith(&app{driver: driver, stdin: strings.NewReader("")})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_Sample(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "render", "--sample", "welcome")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<mjml>") || !strings.Contains(out, "Welcome aboard") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRender_DjangoExecute(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "render", "--sample", "newsletter", "--dialect", "django", "--execute")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Hello Ada") || strings.Contains(out, "{%") {
		t.Fatalf("expected executed output:\n%s", out)
	}
}

func TestRender_DataFileOverridesSampleData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.yaml")
	if err := os.WriteFile(dataPath, []byte("customer:\n  first_name: Grace\n  accepts_marketing: true\n"), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}

	out, err := run(t, &stubDriver{}, "render", "--sample", "newsletter", "--dialect", "django", "--execute", "--data", dataPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Hello Grace") || !strings.Contains(out, "Notebook") {
		t.Fatalf("expected merged data in output:\n%s", out)
	}
}

func TestRender_Interactive(t *testing.T) {
	t.Parallel()

	// sample welcome, mode testing, dialect liquid
	driver := &stubDriver{selects: []int{1, 1, 2}}
	out, err := run(t, driver, "render", "--interactive")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "node-type-text") {
		t.Fatalf("expected testing-mode classes:\n%s", out)
	}
	if len(driver.asked) != 3 {
		t.Fatalf("expected 3 prompts, got %v", driver.asked)
	}
}

func TestRender_ConfigThemes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "blockgen.yaml")
	config := `
dialect: liquid
theme: paper
themes:
  - name: paper
    tokens:
      brand: "#123456"
    variants:
      dark:
        brand: "#654321"
`
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := run(t, &stubDriver{}, "render", "--config", configPath, "--sample", "welcome", "--variant", "dark")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<mj-class color="#654321" name="theme-brand" />`) {
		t.Fatalf("expected themed output:\n%s", out)
	}

	if _, err := run(t, &stubDriver{}, "render", "--config", filepath.Join(dir, "missing.yaml"), "--sample", "welcome"); err == nil {
		t.Fatalf("expected error for a missing explicit config")
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	if _, err := run(t, &stubDriver{}, "render"); err == nil {
		t.Fatalf("expected error without template")
	}
	if _, err := run(t, &stubDriver{}, "render", "--sample", "nope"); err == nil {
		t.Fatalf("expected error for unknown sample")
	}
	if _, err := run(t, &stubDriver{}, "render", "--sample", "welcome", "--mode", "draft"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestBlocks_Plain(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "blocks", "--plain")
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 26 {
		t.Fatalf("expected 26 block types, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "advanced_text\t") || !strings.Contains(out, "\tadvanced\t") {
		t.Fatalf("expected advanced rows:\n%s", out)
	}
}

func TestBlocks_Table(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "blocks")
	if err != nil {
		t.Fatalf("blocks: %v", err)
	}
	for _, want := range []string{"TYPE", "PARENTS", "advanced_section"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestNoWrap_Sample(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "nowrap", "--sample", "newsletter")
	if err != nil {
		t.Fatalf("nowrap: %v", err)
	}

	var decoded struct {
		Content struct {
			Children []struct {
				Data struct {
					Value map[string]any `json:"value"`
				} `json:"data"`
				Children []struct {
					Type string `json:"type"`
				} `json:"children"`
			} `json:"children"`
		} `json:"content"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	section := decoded.Content.Children[0]
	if section.Data.Value["noWrap"] != true {
		t.Fatalf("expected noWrap flag, got %v", section.Data.Value)
	}
	if len(section.Children) != 1 || section.Children[0].Type != "group" {
		t.Fatalf("expected a single group child, got %+v", section.Children)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	out, err := run(t, &stubDriver{}, "validate", "--sample", "welcome")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "sample welcome is valid" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("debug", "json", &buf)
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("expected json debug line, got %q", buf.String())
	}

	buf.Reset()
	newLogger("bogus", "text", &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("unknown level should default to info, got %q", buf.String())
	}
}
