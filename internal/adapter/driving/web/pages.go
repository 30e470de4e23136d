package web

import (
	"context"
	"fmt"
	"time"

	g "maragu.dev/gomponents"

	"github.com/ericfisherdev/adminpanel/internal/adapter/driving/web/views"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

const directorySize = 25

func (h *Handler) dashboardContent(ctx context.Context, _ *model.User, _ string) (g.Node, error) {
	overview, err := h.dashboard.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}
	return views.Dashboard(toDashboardViewModel(overview)), nil
}

func (h *Handler) calendarContent(_ context.Context, _ *model.User, _ string) (g.Node, error) {
	return views.Calendar(time.Now()), nil
}

func (h *Handler) tablesContent(ctx context.Context, _ *model.User, _ string) (g.Node, error) {
	recent, err := h.dashboard.RecentSignups(ctx, directorySize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return views.Tables(toSignupRows(recent)), nil
}

func (h *Handler) profileContent(_ context.Context, user *model.User, _ string) (g.Node, error) {
	return views.Profile(toProfileViewModel(user)), nil
}

func (h *Handler) settingsContent(ctx context.Context, user *model.User, csrf string) (g.Node, error) {
	if user == nil {
		return views.Profile(toProfileViewModel(nil)), nil
	}
	creds, err := h.profiles.StoredCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("stored credentials: %w", err)
	}
	return views.Settings(toSettingsViewModel(user, csrf, h.profiles.GitHubAuthenticated(), h.profiles.ImportAvailable(), creds)), nil
}
