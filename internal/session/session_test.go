package session

import (
	"errors"
	"testing"

	"github.com/dmateus/plantdoc/internal/api"
	"github.com/dmateus/plantdoc/internal/config"
)

// memoryCredentialStore keeps credentials in memory and can be told to
// fail, standing in for the on-disk store.
type memoryCredentialStore struct {
	creds   *config.Credentials
	loadErr error
	saveErr error

	saves  int
	clears int
}

func (m *memoryCredentialStore) Load() (*config.Credentials, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.creds, nil
}

func (m *memoryCredentialStore) Save(c *config.Credentials) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds = c
	return nil
}

func (m *memoryCredentialStore) Clear() error {
	m.clears++
	m.creds = nil
	return nil
}

func TestManager_Restore(t *testing.T) {
	tests := []struct {
		name      string
		store     *memoryCredentialStore
		wantOK    bool
		wantToken string
	}{
		{
			name: "persisted session adopted",
			store: &memoryCredentialStore{creds: &config.Credentials{
				AccessToken: "acc-1",
				Email:       "farmer@example.com",
				DisplayName: "farmer",
			}},
			wantOK:    true,
			wantToken: "acc-1",
		},
		{
			name:   "no stored session",
			store:  &memoryCredentialStore{},
			wantOK: false,
		},
		{
			name:   "unreadable store degrades to empty",
			store:  &memoryCredentialStore{loadErr: errors.New("corrupt")},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &api.MockPlantClient{}
			m := NewManager(client, tt.store)

			if got := m.Restore(); got != tt.wantOK {
				t.Fatalf("Restore() = %v, want %v", got, tt.wantOK)
			}
			if m.LoggedIn() != tt.wantOK {
				t.Errorf("LoggedIn() = %v, want %v", m.LoggedIn(), tt.wantOK)
			}
			if client.AuthToken() != tt.wantToken {
				t.Errorf("armed token = %q, want %q", client.AuthToken(), tt.wantToken)
			}
		})
	}
}

func TestManager_Login(t *testing.T) {
	client := &api.MockPlantClient{
		LoginPair: &api.TokenPair{Access: "acc-1", Refresh: "ref-1"},
	}
	store := &memoryCredentialStore{}
	m := NewManager(client, store)

	ok, message := m.Login("farmer@example.com", "hunter2")
	if !ok {
		t.Fatalf("Login() failed: %s", message)
	}

	principal, present := m.Current()
	if !present {
		t.Fatal("Current() empty after successful login")
	}
	// Display name comes from the email local-part
	if principal.DisplayName != "farmer" {
		t.Errorf("DisplayName = %q, want farmer", principal.DisplayName)
	}
	if principal.Email != "farmer@example.com" {
		t.Errorf("Email = %q", principal.Email)
	}
	if client.AuthToken() != "acc-1" {
		t.Errorf("armed token = %q, want acc-1", client.AuthToken())
	}
	if store.creds == nil || store.creds.RefreshToken != "ref-1" {
		t.Errorf("persisted credentials = %+v", store.creds)
	}
}

func TestManager_Login_FailureLeavesSessionUntouched(t *testing.T) {
	client := &api.MockPlantClient{
		LoginPair: &api.TokenPair{Access: "acc-1"},
	}
	store := &memoryCredentialStore{}
	m := NewManager(client, store)

	// Establish a session, then fail a second login
	if ok, _ := m.Login("first@example.com", "pw"); !ok {
		t.Fatal("initial login failed")
	}

	client.LoginErr = errors.New("no active account found")
	ok, message := m.Login("second@example.com", "wrong")
	if ok {
		t.Fatal("Login() should fail")
	}
	if message == "" {
		t.Error("failure should carry a message")
	}

	// Both principal and armed token are exactly as before the call
	principal, present := m.Current()
	if !present || principal.Email != "first@example.com" {
		t.Errorf("principal after failed login = %+v, %v", principal, present)
	}
	if client.AuthToken() != "acc-1" {
		t.Errorf("token after failed login = %q", client.AuthToken())
	}
	if store.creds.Email != "first@example.com" {
		t.Errorf("persisted email = %q", store.creds.Email)
	}
}

func TestManager_Signup(t *testing.T) {
	client := &api.MockPlantClient{
		RegisterPair: &api.TokenPair{Access: "acc-2", Refresh: "ref-2"},
	}
	m := NewManager(client, &memoryCredentialStore{})

	ok, _ := m.Signup("new@example.com", "secret", "New Farmer")
	if !ok {
		t.Fatal("Signup() failed")
	}

	principal, _ := m.Current()
	// Signup uses the supplied name, not the email local-part
	if principal.DisplayName != "New Farmer" {
		t.Errorf("DisplayName = %q, want New Farmer", principal.DisplayName)
	}
}

func TestManager_Signup_Failure(t *testing.T) {
	client := &api.MockPlantClient{RegisterErr: errors.New("email already registered")}
	m := NewManager(client, &memoryCredentialStore{})

	ok, message := m.Signup("dup@example.com", "secret", "Dup")
	if ok {
		t.Fatal("Signup() should fail")
	}
	if message != "email already registered" {
		t.Errorf("message = %q", message)
	}
	if m.LoggedIn() {
		t.Error("no session should exist after a failed signup")
	}
}

func TestManager_Logout(t *testing.T) {
	client := &api.MockPlantClient{
		LoginPair: &api.TokenPair{Access: "acc-1"},
	}
	store := &memoryCredentialStore{}
	m := NewManager(client, store)

	m.Login("farmer@example.com", "pw")
	m.Logout()

	if m.LoggedIn() {
		t.Error("LoggedIn() after Logout() = true")
	}
	if client.AuthToken() != "" {
		t.Errorf("token after Logout() = %q, want empty", client.AuthToken())
	}
	if store.creds != nil {
		t.Error("credentials should be cleared on logout")
	}
	if client.LoginCalls != 1 {
		t.Error("Logout() must not issue network calls")
	}

	// Logout of an empty session is harmless
	m.Logout()
	if store.clears != 2 {
		t.Errorf("clears = %d, want 2", store.clears)
	}
}

func TestManager_Login_PersistenceFailureTolerated(t *testing.T) {
	client := &api.MockPlantClient{
		LoginPair: &api.TokenPair{Access: "acc-1"},
	}
	store := &memoryCredentialStore{saveErr: errors.New("disk full")}
	m := NewManager(client, store)

	ok, _ := m.Login("farmer@example.com", "pw")
	if !ok {
		t.Fatal("Login() should succeed even when persistence fails")
	}
	if !m.LoggedIn() {
		t.Error("in-memory session should be active")
	}
	if client.AuthToken() != "acc-1" {
		t.Error("token should still be armed")
	}
}

func TestDisplayNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"farmer@example.com", "farmer"},
		{"a.b+c@example.com", "a.b+c"},
		{"noatsign", "noatsign"},
		{"@example.com", "@example.com"},
	}

	for _, tt := range tests {
		if got := displayNameFromEmail(tt.email); got != tt.want {
			t.Errorf("displayNameFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
