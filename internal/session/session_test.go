package session

import (
	"errors"
	"testing"

	"github.com/sagarsuraksha/hz/internal/kv"
)

func testManager(t *testing.T) (*Manager, *kv.MemoryStore) {
	t.Helper()
	db := kv.NewMemory()
	return NewManager(db, nil), db
}

func TestAnonymousByDefault(t *testing.T) {
	m, _ := testManager(t)

	s, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected anonymous, got %+v", s)
	}
}

func TestLoginPersists(t *testing.T) {
	m, _ := testManager(t)

	if _, err := m.Login("Asha", RoleCitizen); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	s, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s == nil || s.Name != "Asha" || s.Role != RoleCitizen {
		t.Errorf("session = %+v, want Asha/citizen", s)
	}
}

func TestLoginOverwrites(t *testing.T) {
	m, _ := testManager(t)

	if _, err := m.Login("Asha", RoleCitizen); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := m.Login("Ravi", RoleAdmin); err != nil {
		t.Fatalf("second Login failed: %v", err)
	}

	s, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s == nil || s.Name != "Ravi" || s.Role != RoleAdmin {
		t.Errorf("session = %+v, want Ravi/admin", s)
	}
}

func TestLoginTrimsName(t *testing.T) {
	m, _ := testManager(t)

	s, err := m.Login("  Asha  ", RoleCitizen)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if s.Name != "Asha" {
		t.Errorf("name = %q, want trimmed", s.Name)
	}
}

func TestLoginValidation(t *testing.T) {
	m, _ := testManager(t)

	if _, err := m.Login("   ", RoleCitizen); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: expected ErrEmptyName, got %v", err)
	}
	if _, err := m.Login("Asha", Role("superuser")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: expected ErrInvalidRole, got %v", err)
	}

	// A rejected login must not create a session
	s, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s != nil {
		t.Errorf("rejected login left a session: %+v", s)
	}
}

func TestLogout(t *testing.T) {
	m, _ := testManager(t)

	if _, err := m.Login("Asha", RoleCitizen); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	s, err := m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected anonymous after logout, got %+v", s)
	}

	// Logging out again is a no-op
	if err := m.Logout(); err != nil {
		t.Errorf("repeated Logout failed: %v", err)
	}
}

func TestCorruptSessionDegradesToAnonymous(t *testing.T) {
	m, db := testManager(t)

	if err := db.Set("session", []byte("{not json")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	s, err := m.Current()
	if err != nil {
		t.Fatalf("expected corrupt session to degrade, got error: %v", err)
	}
	if s != nil {
		t.Errorf("corrupt session surfaced: %+v", s)
	}

	// A parseable session with an out-of-set role degrades the same way
	if err := db.Set("session", []byte(`{"name":"Asha","role":"superuser"}`)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	s, err = m.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s != nil {
		t.Errorf("invalid role surfaced: %+v", s)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"citizen", RoleCitizen, false},
		{"ADMIN", RoleAdmin, false},
		{" Citizen ", RoleCitizen, false},
		{"superuser", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRolePolicy(t *testing.T) {
	if !CanSubmit(RoleCitizen) || CanSubmit(RoleAdmin) {
		t.Error("submit policy: only citizens may submit")
	}
	if !CanTriage(RoleAdmin) || CanTriage(RoleCitizen) {
		t.Error("triage policy: only admins may triage")
	}
	if CanSubmit(Role("weird")) || CanTriage(Role("weird")) {
		t.Error("unknown roles must have no rights")
	}
}
