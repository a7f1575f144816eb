package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockgen/pkg/engine"
)

const defaultConfigFile = appName + ".yaml"

// config mirrors blockgen.yaml. Flags set on the command line win.
type config struct {
	Dialect   string        `yaml:"dialect"`
	Mode      string        `yaml:"mode"`
	LogLevel  string        `yaml:"logLevel"`
	LogFormat string        `yaml:"logFormat"`
	Theme     string        `yaml:"theme"`
	Variant   string        `yaml:"variant"`
	Execute   bool          `yaml:"execute"`
	Presets   string        `yaml:"presets"`
	Themes    []themeConfig `yaml:"themes"`
}

type themeConfig struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

func defaultConfig() config {
	return config{
		Dialect:   "liquid",
		Mode:      "production",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// loadConfig reads path over the defaults. A missing default file is not an
// error; a missing explicit file is.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) manifests() []*theme.Manifest {
	out := make([]*theme.Manifest, 0, len(c.Themes))
	for _, tc := range c.Themes {
		manifest := &theme.Manifest{
			Name:    tc.Name,
			Version: tc.Version,
			Tokens:  tc.Tokens,
		}
		if len(tc.Variants) > 0 {
			manifest.Variants = make(map[string]theme.Variant, len(tc.Variants))
			for name, tokens := range tc.Variants {
				manifest.Variants[name] = theme.Variant{Tokens: tokens}
			}
		}
		out = append(out, manifest)
	}
	return out
}

func (c config) themeSelector() (*engine.ManifestSelector, error) {
	if len(c.Themes) == 0 {
		return nil, nil
	}
	return engine.NewManifestSelector(c.manifests()...)
}
