// Package document loads block templates and render data from JSON or YAML.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockgen/pkg/block"
)

// Template is an email template: metadata plus the page block tree.
type Template struct {
	Subject  string     `json:"subject,omitempty"`
	SubTitle string     `json:"subTitle,omitempty"`
	Content  block.Node `json:"content"`
	// Source is the file the template was loaded from, if any.
	Source string `json:"-"`
}

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("document: input is empty")

// Parse decodes a template. Input may be a full template object with a
// "content" key or a bare page node; JSON is tried first, then YAML.
func Parse(data []byte, source string) (Template, error) {
	raw, err := toJSON(data, source)
	if err != nil {
		return Template{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Template{}, fmt.Errorf("document: parse %s: expected an object: %w", source, err)
	}

	var tmpl Template
	if _, wrapped := fields["content"]; wrapped {
		if err := json.Unmarshal(raw, &tmpl); err != nil {
			return Template{}, fmt.Errorf("document: parse %s: %w", source, err)
		}
	} else {
		if err := json.Unmarshal(raw, &tmpl.Content); err != nil {
			return Template{}, fmt.Errorf("document: parse %s: %w", source, err)
		}
	}
	if tmpl.Content.Type == "" {
		return Template{}, fmt.Errorf("document: parse %s: content has no block type", source)
	}
	tmpl.Source = source
	return tmpl, nil
}

// ParseData decodes render data. JSON is tried first, then YAML.
func ParseData(data []byte, source string) (map[string]any, error) {
	raw, err := toJSON(data, source)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("document: parse data %s: expected an object: %w", source, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// Marshal writes tmpl as indented JSON in the editor format.
func Marshal(tmpl Template) ([]byte, error) {
	return json.MarshalIndent(tmpl, "", "  ")
}

// toJSON normalises JSON or YAML input to JSON bytes so block.Node decoding
// has a single code path.
func toJSON(data []byte, source string) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, source)
	}
	if json.Valid(trimmed) {
		return trimmed, nil
	}

	var generic any
	if err := yaml.Unmarshal(trimmed, &generic); err != nil {
		return nil, fmt.Errorf("document: parse %s: invalid JSON or YAML: %w", source, err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", source, err)
	}
	return raw, nil
}

func isDataFile(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range []string{".data.json", ".data.yaml", ".data.yml"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func isDocumentFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// Name strips the document extension from a path: "emails/welcome.data.yaml" -> "emails/welcome".
func Name(path string) string {
	name := path
	for _, suffix := range []string{".data.json", ".data.yaml", ".data.yml", ".json", ".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
