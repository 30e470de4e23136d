package model

import "time"

// DashboardMetric is a single card on the overview page.
type DashboardMetric struct {
	Label string
	Value int
	// Delta is the change against the previous period, in percent.
	Delta float64
}

// Rising reports whether the metric grew over the previous period.
func (m DashboardMetric) Rising() bool {
	return m.Delta >= 0
}

// Signup is a row in the recent sign-ups table.
type Signup struct {
	Name      string
	Email     string
	CreatedAt time.Time
}
