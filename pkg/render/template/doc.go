// Package template defines the seam used to execute generated markup that
// still carries tag template syntax. Adapters live in subpackages.
package template
