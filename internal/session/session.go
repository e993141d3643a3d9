// Package session tracks the active self-declared role and the field-level
// mutation rights it grants. A session is a name/role pair with no
// credential verification; it is written to durable storage but is logically
// ephemeral user state, not domain data.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sagarsuraksha/hz/internal/kv"
)

// sessionKey is the durable key holding the active session as a JSON object.
// The key is absent while logged out.
const sessionKey = "session"

// Role is a self-declared user role.
type Role string

const (
	// RoleCitizen may submit new reports.
	RoleCitizen Role = "citizen"

	// RoleAdmin may change report status and priority.
	RoleAdmin Role = "admin"
)

var (
	// ErrEmptyName rejects a login with a blank name.
	ErrEmptyName = errors.New("name is required")

	// ErrInvalidRole rejects a login with a role outside the enumerated set.
	ErrInvalidRole = errors.New("invalid role")
)

// ParseRole parses a role string (case-insensitive, trimmed).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "citizen":
		return RoleCitizen, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q (expected citizen or admin)", ErrInvalidRole, s)
	}
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Session is the active name/role pair.
type Session struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Manager is a two-state machine over the session key: Anonymous (key
// absent) and Authenticated (key present). Login re-enters Authenticated
// and overwrites; Logout resets to Anonymous.
type Manager struct {
	kv     kv.Store
	logger *slog.Logger
}

// NewManager wraps a kv substrate. A nil logger defaults to slog.Default().
func NewManager(db kv.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: db, logger: logger}
}

// Login validates and persists a session. An existing session is overwritten.
func (m *Manager) Login(name string, role Role) (Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Session{}, ErrEmptyName
	}
	if !role.Valid() {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s := Session{Name: name, Role: role}
	data, err := json.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Set(sessionKey, data); err != nil {
		return Session{}, fmt.Errorf("write session: %w", err)
	}
	return s, nil
}

// Logout clears the active session. Logging out while anonymous is a no-op.
func (m *Manager) Logout() error {
	if err := m.kv.Delete(sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the active session, or nil while anonymous. A corrupt or
// invalid stored session degrades to anonymous rather than failing.
func (m *Manager) Current() (*Session, error) {
	data, err := m.kv.Get(sessionKey)
	if err != nil {
		if errors.Is(err, kv.ErrNoKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		m.logger.Warn("stored session corrupt, treating as logged out", "error", err)
		return nil, nil
	}
	if s.Name == "" || !s.Role.Valid() {
		m.logger.Warn("stored session invalid, treating as logged out", "role", s.Role)
		return nil, nil
	}
	return &s, nil
}

// CanSubmit reports whether the role may create reports. The policy lives
// here and only here; every mutating entry point consults it instead of
// re-deriving role logic.
func CanSubmit(r Role) bool {
	return r == RoleCitizen
}

// CanTriage reports whether the role may change report status or priority.
func CanTriage(r Role) bool {
	return r == RoleAdmin
}
