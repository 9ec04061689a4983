// Package guard decides whether a page may render for the current session.
package guard

import (
	"slices"

	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/model"
)

type Kind int

const (
	Render Kind = iota
	Wait
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

type Decision struct {
	Kind   Kind
	Target string
}

func redirect(target string) Decision {
	return Decision{Kind: Redirect, Target: target}
}

// Protected admits signed-in users, optionally only those with one of roles.
// It never redirects while the session is loading.
func Protected(s auth.Snapshot, roles ...model.Role) Decision {
	if s.Loading() {
		return Decision{Kind: Wait}
	}
	if !s.IsAuthenticated() {
		return redirect(auth.PathLogin)
	}
	if len(roles) > 0 && !slices.Contains(roles, s.Role()) {
		return redirect(auth.PathHome)
	}
	return Decision{Kind: Render}
}

// PublicOnly sends signed-in users to their dashboard. Users with a role
// that has no dashboard see the page.
func PublicOnly(s auth.Snapshot) Decision {
	if s.Loading() {
		return Decision{Kind: Wait}
	}
	if s.IsAuthenticated() {
		if target, ok := auth.Dashboard(s.Role()); ok {
			return redirect(target)
		}
	}
	return Decision{Kind: Render}
}
