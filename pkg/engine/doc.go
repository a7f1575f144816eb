// Package engine wires the block registry, tag template dialect, theme
// selection and template execution behind a single entry point. Hosts load a
// document.Template, hand it to Engine.Generate and get email markup back.
package engine
