package model

import (
	"strings"
	"time"
)

// User is a registered dashboard account.
type User struct {
	ID           string
	Name         string
	Email        string
	Title        string // job title shown under the name in the header
	Bio          string // markdown
	AvatarURL    string
	GitHubLogin  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GuestName is displayed in the header when the token does not identify a
// stored user.
const GuestName = "Guest"

// DisplayName returns the name shown in the header, falling back to the
// local part of the email address.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return GuestName
}

// Initials returns up to two upper-case initials for the avatar placeholder.
func (u User) Initials() string {
	fields := strings.Fields(u.DisplayName())
	var b strings.Builder
	for _, f := range fields {
		if b.Len() == 2 {
			break
		}
		b.WriteString(strings.ToUpper(f[:1]))
	}
	return b.String()
}

// NormalizeEmail lower-cases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
