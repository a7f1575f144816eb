package engine

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func (e *Engine) resolveTheme(name, variant string) (*theme.Selection, map[string]string, error) {
	if e.themes == nil {
		return nil, nil, nil
	}
	if strings.TrimSpace(name) == "" {
		name = e.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = e.defaultVariant
	}
	if name == "" {
		return nil, nil, nil
	}

	selection, err := e.themes.Select(name, variant)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: select theme %q: %w", name, err)
	}
	return selection, Tokens(selection), nil
}

// Tokens returns the manifest tokens of selection with the selected
// variant's tokens layered on top.
func Tokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

func themeName(selection *theme.Selection) string {
	if selection == nil {
		return ""
	}
	if selection.Variant == "" {
		return selection.Theme
	}
	return selection.Theme + "/" + selection.Variant
}

// ManifestSelector selects among in-memory manifests. It is enough for hosts
// that configure a handful of themes without a go-theme registry.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			return nil, fmt.Errorf("engine: theme manifest name is required")
		}
		if _, exists := s.manifests[manifest.Name]; exists {
			return nil, fmt.Errorf("engine: duplicate theme %q", manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
	}
	return s, nil
}

// Select returns the manifest called name. An unknown variant is an error;
// an empty variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown theme %q (have %s)", name, strings.Join(s.Names(), ", "))
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("engine: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists the known theme names in sorted order.
func (s *ManifestSelector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
