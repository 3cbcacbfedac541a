package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// gomponentComponent wraps a gomponents.Node to satisfy templ.Component so
// gomponents pages go through the same rendering pipeline as templ ones.
type gomponentComponent struct {
	node gomponents.Node
}

// Render ignores ctx; gomponents nodes render synchronously.
func (a gomponentComponent) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// Component converts a gomponents node into a templ.Component.
func Component(node gomponents.Node) templ.Component {
	return gomponentComponent{node: node}
}
