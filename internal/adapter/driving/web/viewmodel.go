package web

import (
	"fmt"
	"strconv"
	"time"

	vm "github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

const dateLayout = "Jan 2, 2006"

// toIdentity maps the signed-in user to the header identity. nil is the guest.
func toIdentity(user *model.User) vm.Identity {
	if user == nil {
		return vm.Identity{Name: model.GuestName, Initials: "G"}
	}
	return vm.Identity{
		Name:      user.DisplayName(),
		Title:     user.Title,
		Initials:  user.Initials(),
		AvatarURL: user.AvatarURL,
		SignedIn:  true,
	}
}

func toDashboardViewModel(o *application.Overview) vm.DashboardViewModel {
	metrics := make([]vm.MetricCardViewModel, 0, len(o.Metrics))
	for _, m := range o.Metrics {
		metrics = append(metrics, vm.MetricCardViewModel{
			Label:  m.Label,
			Value:  strconv.Itoa(m.Value),
			Delta:  formatDelta(m.Delta),
			Rising: m.Rising(),
		})
	}
	return vm.DashboardViewModel{Metrics: metrics, Recent: toSignupRows(o.Recent)}
}

func toSignupRows(signups []model.Signup) []vm.SignupRowViewModel {
	rows := make([]vm.SignupRowViewModel, 0, len(signups))
	for _, s := range signups {
		rows = append(rows, vm.SignupRowViewModel{
			Name:     s.Name,
			Email:    s.Email,
			JoinedAt: formatDate(s.CreatedAt),
		})
	}
	return rows
}

func toProfileViewModel(user *model.User) vm.ProfileViewModel {
	p := vm.ProfileViewModel{User: toIdentity(user)}
	if user == nil {
		return p
	}
	p.Email = user.Email
	p.BioHTML = RenderMarkdown(user.Bio)
	p.MemberSince = formatDate(user.CreatedAt)
	if user.GitHubLogin != "" {
		p.GitHubLogin = user.GitHubLogin
		p.GitHubURL = "https://github.com/" + user.GitHubLogin
	}
	return p
}

func toSettingsViewModel(user *model.User, csrf string, tokenStored, importAvailable bool, creds []model.Credential) vm.SettingsViewModel {
	rows := make([]vm.CredentialRowViewModel, 0, len(creds))
	for _, c := range creds {
		rows = append(rows, vm.CredentialRowViewModel{Service: c.Service, UpdatedAt: formatDate(c.UpdatedAt)})
	}

	return vm.SettingsViewModel{
		CSRFToken:         csrf,
		Name:              user.Name,
		Title:             user.Title,
		Bio:               user.Bio,
		GitHubLogin:       user.GitHubLogin,
		GitHubTokenStored: tokenStored,
		ImportAvailable:   importAvailable,
		Credentials:       rows,
	}
}

// formatDelta renders a percentage change with an explicit sign.
func formatDelta(d float64) string {
	return fmt.Sprintf("%+.2f%%", d)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
