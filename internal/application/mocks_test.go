package application_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// mockUserStore is an in-memory driven.UserStore.
type mockUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
	err   error
}

func newMockUserStore(users ...model.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]model.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return driven.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, driven.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, driven.ErrUserNotFound
}

func (m *mockUserStore) Update(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ID]; !ok {
		return driven.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) Count(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *mockUserStore) CountLinked(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.GitHubLogin != "" {
			n++
		}
	}
	return n, m.err
}

func (m *mockUserStore) ListRecent(_ context.Context, limit int) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockUserStore) get(id string) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

// mockCredentialStore is an in-memory driven.CredentialStore.
type mockCredentialStore struct {
	values  map[string]string
	setErr  error
	listErr error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{values: make(map[string]string)}
}

func (m *mockCredentialStore) Set(_ context.Context, service, plaintext string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[service] = plaintext
	return nil
}

func (m *mockCredentialStore) Get(_ context.Context, service string) (string, error) {
	return m.values[service], nil
}

func (m *mockCredentialStore) List(_ context.Context) ([]model.Credential, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Credential
	for s, v := range m.values {
		out = append(out, model.Credential{Service: s, Value: v})
	}
	return out, nil
}

func (m *mockCredentialStore) Delete(_ context.Context, service string) error {
	delete(m.values, service)
	return nil
}

// mockProfileSource is a driven.ProfileSource returning a canned profile.
type mockProfileSource struct {
	token   string
	profile *model.ExternalProfile
	err     error
	logins  []string
}

func (m *mockProfileSource) FetchProfile(_ context.Context, login string) (*model.ExternalProfile, error) {
	m.logins = append(m.logins, login)
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}
