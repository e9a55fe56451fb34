// Package session owns the authenticated identity of the process: the
// token pair, the display principal, and their persistence across runs.
package session

import (
	"strings"
	"sync"

	"github.com/dmateus/plantdoc/internal/api"
	"github.com/dmateus/plantdoc/internal/config"
)

// Principal is the locally synthesized identity shown to the user. The
// backend login flow returns only tokens, so the display name is derived
// client-side: from the email local-part on login, from the supplied
// name on signup.
type Principal struct {
	Email       string
	DisplayName string
}

// CredentialStore abstracts the persisted credential file so the
// manager can be tested without touching the home directory.
type CredentialStore interface {
	Load() (*config.Credentials, error)
	Save(*config.Credentials) error
	Clear() error
}

// FileCredentialStore persists credentials under the config directory.
type FileCredentialStore struct{}

func (FileCredentialStore) Load() (*config.Credentials, error) { return config.LoadCredentials() }
func (FileCredentialStore) Save(c *config.Credentials) error   { return config.SaveCredentials(c) }
func (FileCredentialStore) Clear() error                       { return config.ClearCredentials() }

// Manager holds the active session and keeps three views consistent:
// the in-memory principal, the persisted credential file, and the API
// client's armed bearer token. Login, Signup, Logout and Restore each
// swap all three atomically with respect to readers.
type Manager struct {
	mu        sync.RWMutex
	client    api.PlantAPI
	store     CredentialStore
	principal *Principal
}

// NewManager creates a manager bound to the given API client. A nil
// store falls back to the credential file under the config directory.
func NewManager(client api.PlantAPI, store CredentialStore) *Manager {
	if store == nil {
		store = FileCredentialStore{}
	}
	return &Manager{client: client, store: store}
}

// Restore adopts a previously persisted session if one exists, arming
// the API client with its token. It reports whether a session was
// restored; read or parse failures degrade to an empty session.
func (m *Manager) Restore() bool {
	creds, err := m.store.Load()
	if err != nil || creds == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.principal = &Principal{Email: creds.Email, DisplayName: creds.DisplayName}
	m.client.SetAuthToken(creds.AccessToken)
	return true
}

// Login authenticates against the backend. On success the session is
// swapped in whole (principal, persisted file, armed token) and ok is
// true. On any failure ok is false, message carries the user-facing
// reason, and the session is exactly as before the call.
func (m *Manager) Login(email, password string) (ok bool, message string) {
	pair, err := m.client.Login(email, password)
	if err != nil {
		return false, err.Error()
	}
	m.adopt(pair.Access, pair.Refresh, email, displayNameFromEmail(email))
	return true, ""
}

// Signup registers a new account and logs it in. Same contract as
// Login; the principal uses the supplied name.
func (m *Manager) Signup(email, password, name string) (ok bool, message string) {
	pair, err := m.client.Register(email, password, name)
	if err != nil {
		return false, err.Error()
	}
	m.adopt(pair.Access, pair.Refresh, email, name)
	return true, ""
}

// Logout clears the persisted credentials, disarms the API client and
// empties the session. It never fails and performs no network call.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.store.Clear()
	m.client.ClearAuthToken()
	m.principal = nil
}

// Current returns the active principal, if any.
func (m *Manager) Current() (Principal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.principal == nil {
		return Principal{}, false
	}
	return *m.principal, true
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	_, ok := m.Current()
	return ok
}

func (m *Manager) adopt(access, refresh, email, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Persistence failure is tolerated: the in-memory session still
	// works for this run, it just will not survive a restart.
	_ = m.store.Save(&config.Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        email,
		DisplayName:  displayName,
	})

	m.client.SetAuthToken(access)
	m.principal = &Principal{Email: email, DisplayName: displayName}
}

// displayNameFromEmail derives a display name from the local-part of an
// email address ("farmer@example.com" -> "farmer").
func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
