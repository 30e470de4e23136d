// Package viewmodel defines presentation-ready structs for the view layer.
// View models decouple rendering from domain model types.
package viewmodel

// Identity is who the header and account menu show. A zero Identity renders
// as the guest.
type Identity struct {
	Name      string
	Title     string
	Initials  string
	AvatarURL string
	SignedIn  bool
}

// Flash is a one-shot toast shown on the next rendered page.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// NavItem is a sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// ShellViewModel holds everything the layout shell needs around a page.
type ShellViewModel struct {
	Title        string
	Nav          []NavItem
	User         Identity
	CSRFToken    string
	Flash        *Flash
	FragmentPath string // lazily loaded into the content region
	MenuOpen     bool
}

// MetricCardViewModel is one overview card.
type MetricCardViewModel struct {
	Label  string
	Value  string
	Delta  string
	Rising bool
}

// SignupRowViewModel is a row of the recent sign-ups table.
type SignupRowViewModel struct {
	Name     string
	Email    string
	JoinedAt string
}

// DashboardViewModel holds the data of the e-commerce overview.
type DashboardViewModel struct {
	Metrics []MetricCardViewModel
	Recent  []SignupRowViewModel
}

// ProfileViewModel holds the data of the profile page.
type ProfileViewModel struct {
	User        Identity
	Email       string
	BioHTML     string
	GitHubLogin string
	GitHubURL   string
	MemberSince string
}

// SettingsViewModel holds the data of the settings forms.
type SettingsViewModel struct {
	CSRFToken         string
	Name              string
	Title             string
	Bio               string
	GitHubLogin       string
	GitHubTokenStored bool
	ImportAvailable   bool
	Credentials       []CredentialRowViewModel
}

// CredentialRowViewModel is a stored credential without its value.
type CredentialRowViewModel struct {
	Service   string
	UpdatedAt string
}

// AuthFormViewModel holds the sign-in and sign-up form state.
type AuthFormViewModel struct {
	CSRFToken string
	Name      string
	Email     string
	Error     string
	Flash     *Flash
}
