package web

import (
	"net/http"

	"github.com/ghaggin/internhub/internal/guard"
	"github.com/ghaggin/internhub/internal/model"
)

var (
	studentTier = []model.Role{model.RoleStudent, model.RoleEmployee}
	companyOnly = []model.Role{model.RoleCompany}
	adminOnly   = []model.Role{model.RoleAdmin}
	everyone    = []model.Role{model.RoleStudent, model.RoleEmployee, model.RoleCompany, model.RoleAdmin}
)

func public(pattern string, h http.HandlerFunc) guard.Route {
	return guard.Route{Pattern: pattern, Access: guard.Public, Handler: h}
}

func publicOnly(pattern string, h http.HandlerFunc) guard.Route {
	return guard.Route{Pattern: pattern, Access: guard.PublicOnlyAccess, Handler: h}
}

func protected(pattern string, roles []model.Role, h http.HandlerFunc) guard.Route {
	return guard.Route{Pattern: pattern, Access: guard.ProtectedAccess, Roles: roles, Handler: h}
}

// routes is the page table. Order matters: /jobs/create has to come before
// /jobs/:id and the catch-all has to be last.
func routes(v *views) (*guard.Table, error) {
	return guard.NewTable(
		public("/", v.home),
		publicOnly("/login", v.login),
		publicOnly("/register", v.register),

		protected("/jobs", nil, v.listing("Jobs", "/jobs")),
		protected("/jobs/create", companyOnly, v.listing("Post a job", "/categories")),
		protected("/jobs/:id/edit", companyOnly, v.listing("Edit job", "/jobs/:id")),
		protected("/jobs/:id", nil, v.listing("Job details", "/jobs/:id")),

		protected("/student/dashboard", studentTier, v.listing("Student dashboard", "/my-applications")),
		protected("/student/applications", studentTier, v.listing("My applications", "/my-applications")),
		protected("/student/profile", studentTier, v.profile("My profile")),
		protected("/student/saved-jobs", studentTier, v.listing("Saved jobs", "/saved-jobs")),

		protected("/company/dashboard", companyOnly, v.listing("Company dashboard", "/my-jobs")),
		protected("/company/jobs", companyOnly, v.listing("My jobs", "/my-jobs")),
		protected("/company/jobs/:id/applications", companyOnly, v.listing("Applications", "/jobs/:id/applications")),
		protected("/company/profile", companyOnly, v.profile("Company profile")),

		protected("/admin/dashboard", adminOnly, v.listing("Admin dashboard", "/admin/stats")),
		protected("/admin/pending-jobs", adminOnly, v.listing("Pending jobs", "/admin/jobs/pending")),
		protected("/admin/profile", adminOnly, v.profile("Admin profile")),
		protected("/admin/users", adminOnly, v.listing("Users", "/admin/users")),
		protected("/admin/analytics", adminOnly, v.listing("Analytics", "/admin/analytics")),
		protected("/admin/verifications", adminOnly, v.listing("Verifications", "/admin/verifications")),

		protected("/settings", everyone, v.profile("Settings")),

		public("*", v.notFound),
	)
}
