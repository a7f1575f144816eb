package document

import (
	"embed"
	"io/fs"
)

//go:embed samples/*
var embeddedSamples embed.FS

// SamplesFS returns the bundled sample templates and data sets. Pass it to
// LoadFS to get a ready store.
func SamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedSamples, "samples")
	if err != nil {
		panic(err)
	}
	return sub
}
