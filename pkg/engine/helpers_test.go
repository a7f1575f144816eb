package engine_test

import (
	"github.com/goliatone/go-blockgen/pkg/block"
	"github.com/goliatone/go-blockgen/pkg/document"
)

func documentOf(root block.Node) document.Template {
	return document.Template{Content: root}
}
