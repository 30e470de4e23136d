package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
)

// SessionStreamPath is the Server-Sent Events endpoint the shell subscribes to.
const SessionStreamPath = "/session/stream"

func sidebar(items []vm.NavItem) g.Node {
	return html.Aside(
		html.Class("sidebar"),
		html.A(html.Class("sidebar-brand"), html.Href("/"), g.Text("AdminPanel")),
		html.Nav(
			html.Ul(
				g.Map(items, func(item vm.NavItem) g.Node {
					return html.Li(
						html.A(
							html.Href(item.Href),
							g.If(item.Active, html.Class("active")),
							g.If(item.Active, g.Attr("aria-current", "page")),
							g.Text(item.Label),
						),
					)
				}),
			),
		),
	)
}

func header(data vm.ShellViewModel) g.Node {
	return html.Header(
		html.Class("header"),
		html.H1(html.Class("header-title"), g.Text(data.Title)),
		AccountMenu(data.User, data.CSRFToken, data.MenuOpen),
	)
}

// Toaster renders the flash message container, empty when flash is nil.
func Toaster(flash *vm.Flash) g.Node {
	return html.Div(
		html.ID("toaster"),
		html.Class("toaster"),
		g.Attr("aria-live", "polite"),
		g.Iff(flash != nil, func() g.Node {
			return html.Div(
				html.Class("toast toast-"+flash.Kind),
				g.Attr("role", "alert"),
				g.Text(flash.Message),
			)
		}),
	)
}
