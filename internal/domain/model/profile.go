package model

// ExternalProfile is the public profile of a user on an external service,
// used to prefill the local profile.
type ExternalProfile struct {
	Login     string
	Name      string
	Bio       string
	AvatarURL string
	Company   string
	Location  string
}

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Name  string
	Title string
	Bio   string
}
