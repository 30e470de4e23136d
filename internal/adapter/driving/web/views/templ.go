// Package views builds the dashboard HTML. The page frames (document, shell,
// loader, auth card) are templ components; page bodies, the sidebar and the
// account menu are gomponents nodes embedded through Component.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a gomponents node to the templ rendering contract so it
// can be embedded with @ in a templ component or rendered on its own.
func Component(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}
