package views

import (
	"time"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
)

// Dashboard renders the e-commerce overview content.
func Dashboard(data vm.DashboardViewModel) g.Node {
	return g.Group{
		html.Div(
			html.Class("metrics"),
			g.Map(data.Metrics, metricCard),
		),
		html.Section(
			html.Class("card"),
			html.H2(g.Text("Recent sign-ups")),
			signupTable(data.Recent),
		),
	}
}

func metricCard(m vm.MetricCardViewModel) g.Node {
	trend := "trend-down"
	if m.Rising {
		trend = "trend-up"
	}
	return html.Div(
		html.Class("card metric"),
		html.Span(html.Class("metric-value"), g.Text(m.Value)),
		html.Span(html.Class("metric-label"), g.Text(m.Label)),
		html.Span(html.Class("metric-delta "+trend), g.Text(m.Delta)),
	)
}

func signupTable(rows []vm.SignupRowViewModel) g.Node {
	if len(rows) == 0 {
		return html.P(html.Class("empty"), g.Text("No sign-ups yet."))
	}
	return html.Table(
		html.Class("table"),
		html.THead(html.Tr(html.Th(g.Text("Name")), html.Th(g.Text("Email")), html.Th(g.Text("Joined")))),
		html.TBody(
			g.Map(rows, func(r vm.SignupRowViewModel) g.Node {
				return html.Tr(html.Td(g.Text(r.Name)), html.Td(g.Text(r.Email)), html.Td(g.Text(r.JoinedAt)))
			}),
		),
	)
}

// Tables renders the user directory.
func Tables(rows []vm.SignupRowViewModel) g.Node {
	return html.Section(
		html.Class("card"),
		html.H2(g.Text("Users")),
		signupTable(rows),
	)
}

// Profile renders the profile card with the sanitized bio.
func Profile(data vm.ProfileViewModel) g.Node {
	name := data.User.Name
	if !data.User.SignedIn {
		return html.Section(
			html.Class("card profile"),
			html.H2(g.Text(name)),
			html.P(html.Class("empty"), g.Text("This session has no profile.")),
		)
	}

	return html.Section(
		html.Class("card profile"),
		g.Iff(data.User.AvatarURL != "", func() g.Node {
			return html.Img(html.Class("avatar avatar-lg"), html.Src(data.User.AvatarURL), html.Alt(name))
		}),
		html.H2(g.Text(name)),
		g.If(data.User.Title != "", html.P(html.Class("profile-title"), g.Text(data.User.Title))),
		html.Dl(
			html.Dt(g.Text("Email")), html.Dd(g.Text(data.Email)),
			html.Dt(g.Text("Member since")), html.Dd(g.Text(data.MemberSince)),
			g.Iff(data.GitHubLogin != "", func() g.Node {
				return g.Group{
					html.Dt(g.Text("GitHub")),
					html.Dd(html.A(html.Href(data.GitHubURL), html.Rel("noopener"), g.Text("@"+data.GitHubLogin))),
				}
			}),
		),
		html.Div(html.Class("profile-bio"), g.Raw(data.BioHTML)),
		html.A(html.Class("btn"), html.Href("/settings"), g.Text("Edit profile")),
	)
}

// Settings renders the profile and GitHub forms.
func Settings(data vm.SettingsViewModel) g.Node {
	return g.Group{
		html.Section(
			html.Class("card"),
			html.H2(g.Text("Personal information")),
			html.Form(
				html.Method("post"),
				html.Action("/settings/profile"),
				csrfField(data.CSRFToken),
				field("name", "Full name", "text", data.Name, "name"),
				optionalField("title", "Job title", data.Title),
				html.Div(
					html.Class("field"),
					html.Label(html.For("bio"), g.Text("Bio (markdown)")),
					html.Textarea(html.ID("bio"), html.Name("bio"), html.Rows("6"), g.Text(data.Bio)),
				),
				html.Button(html.Type("submit"), html.Class("btn btn-primary"), g.Text("Save")),
			),
		),
		html.Section(
			html.Class("card"),
			html.H2(g.Text("GitHub")),
			html.Form(
				html.Method("post"),
				html.Action("/settings/github-token"),
				csrfField(data.CSRFToken),
				html.Div(
					html.Class("field"),
					html.Label(html.For("github_token"), g.Text("Personal access token")),
					html.Input(
						html.ID("github_token"),
						html.Name("github_token"),
						html.Type("password"),
						html.AutoComplete("off"),
						html.Placeholder(tokenPlaceholder(data.GitHubTokenStored)),
					),
				),
				html.Button(html.Type("submit"), html.Class("btn"), g.Text("Save token")),
			),
			g.If(data.ImportAvailable, html.Form(
				html.Method("post"),
				html.Action("/settings/github-import"),
				csrfField(data.CSRFToken),
				optionalField("github_login", "GitHub username", data.GitHubLogin),
				html.Button(html.Type("submit"), html.Class("btn"), g.Text("Import profile")),
			)),
		),
		html.Section(
			html.Class("card"),
			html.H2(g.Text("Stored credentials")),
			credentialTable(data.Credentials),
		),
	}
}

func credentialTable(rows []vm.CredentialRowViewModel) g.Node {
	if len(rows) == 0 {
		return html.P(html.Class("empty"), g.Text("No credentials stored."))
	}
	return html.Table(
		html.Class("table credentials"),
		html.THead(html.Tr(html.Th(g.Text("Service")), html.Th(g.Text("Last updated")))),
		html.TBody(g.Map(rows, func(row vm.CredentialRowViewModel) g.Node {
			return html.Tr(html.Td(g.Text(row.Service)), html.Td(g.Text(row.UpdatedAt)))
		})),
	)
}

func tokenPlaceholder(stored bool) string {
	if stored {
		return "Token stored. Submit empty to remove"
	}
	return "Optional, raises the GitHub rate limit"
}

func optionalField(name, label, value string) g.Node {
	return html.Div(
		html.Class("field"),
		html.Label(html.For(name), g.Text(label)),
		html.Input(html.ID(name), html.Name(name), html.Type("text"), html.Value(value)),
	)
}

// Calendar renders a month grid with today highlighted.
func Calendar(now time.Time) g.Node {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7 // weeks start on Monday

	cells := make([]g.Node, 0, offset+days)
	for range offset {
		cells = append(cells, html.Div(html.Class("day day-blank")))
	}
	for d := 1; d <= days; d++ {
		class := "day"
		if d == now.Day() {
			class += " day-today"
		}
		cells = append(cells, html.Div(html.Class(class), g.Textf("%d", d)))
	}

	return html.Section(
		html.Class("card calendar"),
		html.H2(g.Text(first.Format("January 2006"))),
		html.Div(
			html.Class("calendar-grid"),
			g.Map([]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, func(d string) g.Node {
				return html.Div(html.Class("day-name"), g.Text(d))
			}),
			g.Group(cells),
		),
	)
}

// NotFound renders the in-shell 404 content.
func NotFound() g.Node {
	return html.Section(
		html.Class("card not-found"),
		html.H2(g.Text("Page not found")),
		html.P(g.Text("The page you are looking for does not exist.")),
		html.A(html.Class("btn"), html.Href("/"), g.Text("Back to dashboard")),
	)
}

// FragmentError replaces the loader when content could not be produced.
func FragmentError() g.Node {
	return html.P(html.Class("form-error"), g.Attr("role", "alert"), g.Text("Something went wrong loading this page."))
}
