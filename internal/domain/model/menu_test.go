package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuState_Next(t *testing.T) {
	tests := []struct {
		name  string
		from  MenuState
		event MenuEvent
		key   string
		want  MenuState
	}{
		{"toggle opens closed menu", MenuClosed, MenuEventToggle, "", MenuOpen},
		{"toggle closes open menu", MenuOpen, MenuEventToggle, "", MenuClosed},
		{"focus opens", MenuClosed, MenuEventFocus, "", MenuOpen},
		{"focus keeps open", MenuOpen, MenuEventFocus, "", MenuOpen},
		{"blur closes", MenuOpen, MenuEventBlur, "", MenuClosed},
		{"outside click closes open menu", MenuOpen, MenuEventOutside, "", MenuClosed},
		{"outside click on closed menu is a no-op", MenuClosed, MenuEventOutside, "", MenuClosed},
		{"escape closes open menu", MenuOpen, MenuEventKeyDown, "Escape", MenuClosed},
		{"other keys leave open menu open", MenuOpen, MenuEventKeyDown, "Enter", MenuOpen},
		{"escape on closed menu is a no-op", MenuClosed, MenuEventKeyDown, "Escape", MenuClosed},
		{"unknown event is ignored", MenuOpen, MenuEvent("hover"), "", MenuOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next(tt.event, tt.key))
		})
	}
}

func TestParseMenuState(t *testing.T) {
	assert.Equal(t, MenuOpen, ParseMenuState("open"))
	assert.Equal(t, MenuClosed, ParseMenuState("closed"))
	assert.Equal(t, MenuClosed, ParseMenuState(""))
	assert.Equal(t, MenuClosed, ParseMenuState("OPEN"))
}

func TestUser_DisplayNameAndInitials(t *testing.T) {
	u := User{Name: "Thomas Anree", Email: "thomas@example.com"}
	assert.Equal(t, "Thomas Anree", u.DisplayName())
	assert.Equal(t, "TA", u.Initials())

	u = User{Email: "jane@example.com"}
	assert.Equal(t, "jane", u.DisplayName())
	assert.Equal(t, "J", u.Initials())

	assert.Equal(t, GuestName, User{}.DisplayName())
}

func TestSessionState_ShouldRedirect(t *testing.T) {
	assert.False(t, SessionState{Loading: true}.ShouldRedirect())
	assert.True(t, SessionState{}.ShouldRedirect())
	assert.False(t, SessionState{Authenticated: true}.ShouldRedirect())
}
