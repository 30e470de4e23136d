package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

const (
	metricsWindow     = 7 * 24 * time.Hour
	recentSignupLimit = 5
)

// Overview is the data behind the e-commerce overview page.
type Overview struct {
	Metrics []model.DashboardMetric
	Recent  []model.Signup
}

// DashboardService computes the overview metrics from the user store.
type DashboardService struct {
	users driven.UserStore
	now   func() time.Time
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(users driven.UserStore) *DashboardService {
	return &DashboardService{users: users, now: time.Now}
}

// Overview returns the metric cards and the most recent sign-ups.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	now := s.now().UTC()

	total, err := s.users.Count(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	thisWeek, err := s.users.Count(ctx, now.Add(-metricsWindow))
	if err != nil {
		return nil, fmt.Errorf("count recent users: %w", err)
	}
	sinceTwoWeeks, err := s.users.Count(ctx, now.Add(-2*metricsWindow))
	if err != nil {
		return nil, fmt.Errorf("count previous users: %w", err)
	}
	linked, err := s.users.CountLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("count linked users: %w", err)
	}

	lastWeek := sinceTwoWeeks - thisWeek

	signups, err := s.RecentSignups(ctx, recentSignupLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Metrics: []model.DashboardMetric{
			{Label: "Total Users", Value: total, Delta: percentChange(total-thisWeek, total)},
			{Label: "New This Week", Value: thisWeek, Delta: percentChange(lastWeek, thisWeek)},
			{Label: "GitHub Linked", Value: linked, Delta: share(linked, total)},
		},
		Recent: signups,
	}, nil
}

// RecentSignups returns up to limit users, newest first.
func (s *DashboardService) RecentSignups(ctx context.Context, limit int) ([]model.Signup, error) {
	recent, err := s.users.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}

	signups := make([]model.Signup, 0, len(recent))
	for _, u := range recent {
		signups = append(signups, model.Signup{
			Name:      u.DisplayName(),
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}
	return signups, nil
}

// percentChange returns the growth from prev to cur in percent, rounded to
// two decimals. Growth from zero counts as 100%.
func percentChange(prev, cur int) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return round2(float64(cur-prev) / float64(prev) * 100)
}

func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
