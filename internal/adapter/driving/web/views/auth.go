package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
)

// SignIn renders the standalone sign-in page.
func SignIn(data vm.AuthFormViewModel) templ.Component {
	return authPage("Sign In", data,
		html.Form(
			html.Method("post"),
			html.Action("/auth/signin"),
			html.Class("auth-form"),
			csrfField(data.CSRFToken),
			field("email", "Email", "email", data.Email, "email"),
			field("password", "Password", "password", "", "current-password"),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), g.Text("Sign In")),
		),
		html.P(
			html.Class("auth-alt"),
			g.Text("Don’t have an account? "),
			html.A(html.Href("/auth/signup"), g.Text("Sign Up")),
		),
	)
}

// SignUp renders the standalone sign-up page.
func SignUp(data vm.AuthFormViewModel) templ.Component {
	return authPage("Sign Up", data,
		html.Form(
			html.Method("post"),
			html.Action("/auth/signup"),
			html.Class("auth-form"),
			csrfField(data.CSRFToken),
			field("name", "Name", "text", data.Name, "name"),
			field("email", "Email", "email", data.Email, "email"),
			field("password", "Password", "password", "", "new-password"),
			field("confirm", "Re-type Password", "password", "", "new-password"),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), g.Text("Create account")),
		),
		html.P(
			html.Class("auth-alt"),
			g.Text("Already have an account? "),
			html.A(html.Href("/auth/signin"), g.Text("Sign In")),
		),
	)
}

func authPage(title string, data vm.AuthFormViewModel, body ...g.Node) templ.Component {
	return AuthPage(title, data, Component(g.Group(body)))
}

func field(name, label, typ, value, autocomplete string) g.Node {
	return html.Div(
		html.Class("field"),
		html.Label(html.For(name), g.Text(label)),
		html.Input(
			html.ID(name),
			html.Name(name),
			html.Type(typ),
			html.Value(value),
			html.AutoComplete(autocomplete),
			html.Required(),
		),
	)
}
