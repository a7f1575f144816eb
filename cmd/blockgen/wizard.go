package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-blockgen/internal/prompt"
	"github.com/goliatone/go-blockgen/pkg/document"
	"github.com/goliatone/go-blockgen/pkg/tagtemplate"
)

var modes = []string{"production", "testing"}

// runWizard asks for the render options the user did not pass. askSample is
// set when no template path was given.
func runWizard(ctx context.Context, driver prompt.Driver, cfg *config, flags *renderFlags, askSample bool) error {
	if askSample && flags.sample == "" {
		store, err := document.LoadFS(document.SamplesFS())
		if err != nil {
			return err
		}
		names := store.Templates()
		idx, err := driver.Select(ctx, prompt.SelectConfig{Message: "Sample template", Options: names})
		if err != nil {
			return err
		}
		if idx < 0 {
			return fmt.Errorf("no sample selected")
		}
		flags.sample = names[idx]
	}

	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Render mode",
		Options:      modes,
		DefaultIndex: prompt.IndexOf(modes, cfg.Mode),
		Help:         "testing repeats iterations mockQuantity times and ignores conditions",
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		cfg.Mode = modes[idx]
	}

	dialects := tagtemplate.NewDefaultRegistry().List()
	idx, err = driver.Select(ctx, prompt.SelectConfig{
		Message:      "Tag template dialect",
		Options:      dialects,
		DefaultIndex: prompt.IndexOf(dialects, cfg.Dialect),
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		cfg.Dialect = dialects[idx]
	}

	if cfg.Dialect == "django" && cfg.Mode == "production" {
		execute, err := driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Execute the output with the data?",
			Default: cfg.Execute,
		})
		if err != nil {
			return err
		}
		cfg.Execute = execute
	}

	if len(cfg.Themes) > 0 {
		names := make([]string, 0, len(cfg.Themes)+1)
		names = append(names, "(none)")
		for _, tc := range cfg.Themes {
			names = append(names, tc.Name)
		}
		idx, err := driver.Select(ctx, prompt.SelectConfig{Message: "Theme", Options: names, DefaultIndex: max(prompt.IndexOf(names, cfg.Theme), 0)})
		if err != nil {
			return err
		}
		if idx > 0 {
			cfg.Theme = names[idx]
		} else {
			cfg.Theme = ""
		}
	}
	return nil
}
