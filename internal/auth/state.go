package auth

import (
	"github.com/ghaggin/internhub/internal/model"
)

type State int

const (
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of a Core. Role flags are derived from
// User on every call and never stored.
type Snapshot struct {
	State State
	User  *model.User
	Token string
	Error string
}

// Loading is true while the stored session is being restored and while a
// login or registration is in flight.
func (s Snapshot) Loading() bool {
	return s.State == StateRestoring || s.State == StateAuthenticating
}

func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

func (s Snapshot) Role() model.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Snapshot) IsStudent() bool {
	return s.User != nil && s.User.Role.StudentTier()
}

func (s Snapshot) IsCompany() bool {
	return s.User != nil && s.User.Role == model.RoleCompany
}

func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.Role == model.RoleAdmin
}
