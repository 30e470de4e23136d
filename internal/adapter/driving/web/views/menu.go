package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// Account menu element IDs and endpoint, shared with static/app.js.
const (
	MenuEndpoint = "/ui/account-menu"
	menuRootID   = "account-menu"
	menuPanelID  = "account-menu-panel"
	menuStateID  = "account-menu-state"
)

// AccountMenu renders the trigger and the initial panel. The wrapper is
// rendered once per page and owns the document-level listeners; only the
// panel is replaced on each transition.
func AccountMenu(user vm.Identity, csrfToken string, open bool) g.Node {
	state := model.MenuClosed
	if open {
		state = model.MenuOpen
	}

	return html.Div(
		html.ID(menuRootID),
		html.Class("account-menu"),
		g.Attr("data-menu-endpoint", MenuEndpoint),
		html.Button(
			html.ID("account-menu-trigger"),
			html.Type("button"),
			html.Class("account-menu-trigger"),
			g.Attr("aria-haspopup", "menu"),
			g.Attr("aria-controls", menuPanelID),
			g.Attr("aria-expanded", boolString(open)),
			g.Attr("hx-post", MenuEndpoint),
			g.Attr("hx-vals", `{"event":"toggle"}`),
			g.Attr("hx-include", "#"+menuStateID),
			g.Attr("hx-target", "#"+menuPanelID),
			g.Attr("hx-swap", "outerHTML"),
			identity(user),
		),
		AccountMenuPanel(state, csrfToken),
	)
}

// AccountMenuPanel renders the swappable part of the menu. The hidden state
// input is what the listeners read to learn the current state.
func AccountMenuPanel(state model.MenuState, csrfToken string) g.Node {
	return html.Div(
		html.ID(menuPanelID),
		html.Class("account-menu-panel"),
		html.Input(
			html.Type("hidden"),
			html.ID(menuStateID),
			html.Name("state"),
			html.Value(string(state)),
		),
		g.If(state.IsOpen(), html.Div(
			html.Class("dropdown"),
			g.Attr("role", "menu"),
			g.Attr("tabindex", "-1"),
			html.Ul(
				g.Map(model.AccountMenuItems, func(item model.MenuItem) g.Node {
					return html.Li(
						html.A(
							html.Href(item.Href),
							g.Attr("role", "menuitem"),
							html.Class("dropdown-item icon-"+item.Icon),
							g.Text(item.Label),
						),
					)
				}),
			),
			html.Form(
				html.Method("post"),
				html.Action("/auth/logout"),
				csrfField(csrfToken),
				html.Button(
					html.Type("submit"),
					g.Attr("role", "menuitem"),
					html.Class("dropdown-item icon-logout"),
					g.Text("Log Out"),
				),
			),
		)),
	)
}

func identity(user vm.Identity) g.Node {
	name := user.Name
	if name == "" {
		name = model.GuestName
	}

	var avatar g.Node
	if user.AvatarURL != "" {
		avatar = html.Img(html.Class("avatar"), html.Src(user.AvatarURL), html.Alt(name))
	} else {
		avatar = html.Span(html.Class("avatar avatar-initials"), g.Text(user.Initials))
	}

	return g.Group{
		html.Span(
			html.Class("identity"),
			html.Span(html.Class("identity-name"), g.Text(name)),
			g.If(user.Title != "", html.Span(html.Class("identity-title"), g.Text(user.Title))),
		),
		avatar,
	}
}

func csrfField(token string) g.Node {
	return html.Input(html.Type("hidden"), html.Name("csrf_token"), html.Value(token))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
