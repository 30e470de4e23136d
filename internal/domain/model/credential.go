package model

import "time"

// Credential holds an encrypted-at-rest secret for an external service.
// Service identifies the external system ("github").
type Credential struct {
	ID        int64
	Service   string
	Value     string
	UpdatedAt time.Time
}

// CredentialServiceGitHub is the credential service key for the GitHub token
// used by profile import.
const CredentialServiceGitHub = "github"
