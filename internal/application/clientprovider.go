package application

import (
	"sync"

	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// ProfileSourceProvider enables runtime hot-swap of the profile source.
// It holds a mutex-protected reference to the current driven.ProfileSource,
// allowing a GitHub token saved in settings to take effect without a restart.
type ProfileSourceProvider struct {
	mu            sync.RWMutex
	source        driven.ProfileSource
	authenticated bool
}

// NewProfileSourceProvider creates a provider with the given initial source.
// source may be nil, which disables profile import.
func NewProfileSourceProvider(source driven.ProfileSource, authenticated bool) *ProfileSourceProvider {
	return &ProfileSourceProvider{
		source:        source,
		authenticated: authenticated,
	}
}

// Get returns the current source. Callers should check for nil.
func (p *ProfileSourceProvider) Get() driven.ProfileSource {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// Authenticated reports whether the current source uses a stored token
// rather than anonymous access.
func (p *ProfileSourceProvider) Authenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.authenticated
}

// Replace swaps the current source. The next caller of Get() receives it.
func (p *ProfileSourceProvider) Replace(source driven.ProfileSource, authenticated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = source
	p.authenticated = authenticated
}

// HasSource returns true if a non-nil source is currently held.
func (p *ProfileSourceProvider) HasSource() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source != nil
}
