package auth

import "github.com/ghaggin/internhub/internal/model"

const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathStudentDashboard = "/student/dashboard"
	PathCompanyDashboard = "/company/dashboard"
	PathAdminDashboard   = "/admin/dashboard"
)

type NextKind int

const (
	Stay NextKind = iota
	Redirect
)

// Next tells the caller where to send the browser after a session operation.
// The core never navigates itself.
type Next struct {
	Kind   NextKind
	Target string
}

func RedirectTo(target string) Next {
	return Next{Kind: Redirect, Target: target}
}

func (n Next) IsRedirect() bool {
	return n.Kind == Redirect
}

// Dashboard is the landing page of a role. ok is false for unknown roles.
func Dashboard(role model.Role) (string, bool) {
	switch {
	case role.StudentTier():
		return PathStudentDashboard, true
	case role == model.RoleCompany:
		return PathCompanyDashboard, true
	case role == model.RoleAdmin:
		return PathAdminDashboard, true
	}
	return "", false
}

func afterLogin(role model.Role) Next {
	if p, ok := Dashboard(role); ok {
		return RedirectTo(p)
	}
	return RedirectTo(PathHome)
}

// afterRegister only knows the self-service roles. Admin accounts are not
// expected to come through registration, so they stay put.
func afterRegister(role model.Role) Next {
	switch {
	case role.StudentTier():
		return RedirectTo(PathStudentDashboard)
	case role == model.RoleCompany:
		return RedirectTo(PathCompanyDashboard)
	}
	return Next{Kind: Stay}
}
