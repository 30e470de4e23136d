package model

// MenuState is the open/closed state of the account menu.
type MenuState string

const (
	MenuClosed MenuState = "closed"
	MenuOpen   MenuState = "open"
)

// ParseMenuState maps a form value to a MenuState. Unknown values are
// treated as closed, the initial state.
func ParseMenuState(s string) MenuState {
	if MenuState(s) == MenuOpen {
		return MenuOpen
	}
	return MenuClosed
}

// IsOpen reports whether the panel is visible.
func (s MenuState) IsOpen() bool {
	return s == MenuOpen
}

// MenuEvent is a user interaction reported by the account menu.
type MenuEvent string

const (
	MenuEventToggle  MenuEvent = "toggle"  // trigger activated
	MenuEventFocus   MenuEvent = "focus"   // focus entered the panel
	MenuEventBlur    MenuEvent = "blur"    // focus left the panel
	MenuEventOutside MenuEvent = "outside" // click outside trigger and panel
	MenuEventKeyDown MenuEvent = "keydown"
)

// EscapeKey is the KeyboardEvent.key value that dismisses the menu.
const EscapeKey = "Escape"

// Next returns the state after event. key is only consulted for
// MenuEventKeyDown. Unknown events leave the state unchanged.
func (s MenuState) Next(event MenuEvent, key string) MenuState {
	switch event {
	case MenuEventToggle:
		if s.IsOpen() {
			return MenuClosed
		}
		return MenuOpen
	case MenuEventFocus:
		return MenuOpen
	case MenuEventBlur:
		return MenuClosed
	case MenuEventOutside:
		return MenuClosed
	case MenuEventKeyDown:
		if s.IsOpen() && key == EscapeKey {
			return MenuClosed
		}
		return s
	default:
		return s
	}
}

// MenuItem is a link in the account menu panel.
type MenuItem struct {
	Label string
	Href  string
	Icon  string
}

// AccountMenuItems lists the navigation entries of the account menu. Log out
// is rendered separately as a form action.
var AccountMenuItems = []MenuItem{
	{Label: "My Profile", Href: "/profile", Icon: "profile"},
	{Label: "My Contacts", Href: "#", Icon: "contacts"},
	{Label: "Account Settings", Href: "/settings", Icon: "settings"},
}
