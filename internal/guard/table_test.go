package guard

import (
	"net/http"
	"testing"

	"github.com/ghaggin/internhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nop = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

func route(pattern string) Route {
	return Route{Pattern: pattern, Handler: nop}
}

func TestTable_DeclarationOrder(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	table, err := NewTable(
		route("/"),
		route("/jobs"),
		Route{Pattern: "/jobs/create", Access: ProtectedAccess, Roles: []model.Role{model.RoleCompany}, Handler: nop},
		route("/jobs/:id/edit"),
		route("/jobs/:id"),
		route("/company/jobs/:id/applications"),
		route("*"),
	)
	require.NoError(err)

	cases := map[string]string{
		"/":                             "/",
		"/jobs":                         "/jobs",
		"/jobs/":                        "/jobs",
		"/jobs/create":                  "/jobs/create",
		"/jobs/42":                      "/jobs/:id",
		"/jobs/42/edit":                 "/jobs/:id/edit",
		"/company/jobs/7/applications":  "/company/jobs/:id/applications",
		"/company/jobs/7/applications/": "/company/jobs/:id/applications",
		"/nowhere/at/all":               "*",
	}
	for path, want := range cases {
		r, _, ok := table.Match(path)
		require.True(ok, path)
		assert.Equal(want, r.Pattern, path)
	}

	_, params, _ := table.Match("/jobs/42/edit")
	assert.Equal(map[string]string{"id": "42"}, params)

	assert.Len(table.Routes(), 7)
}

func TestTable_RejectsShadowedLiteral(t *testing.T) {
	_, err := NewTable(
		route("/jobs/:id"),
		route("/jobs/create"),
	)
	assert.ErrorIs(t, err, ErrShadowedRoute)
}

func TestTable_RejectsRoutesAfterCatchAll(t *testing.T) {
	_, err := NewTable(route("*"), route("/login"))
	assert.ErrorIs(t, err, ErrShadowedRoute)

	_, err = NewTable(route("/admin/*"), route("/admin/users"))
	assert.ErrorIs(t, err, ErrShadowedRoute)

	_, err = NewTable(route("/login"), route("/login"))
	assert.ErrorIs(t, err, ErrShadowedRoute)
}

func TestTable_BadPatterns(t *testing.T) {
	for _, p := range []string{"jobs", "/jobs/*/edit", "/jobs/:"} {
		_, err := NewTable(route(p))
		assert.ErrorIs(t, err, ErrBadPattern, p)
	}
}

func TestTable_NoMatch(t *testing.T) {
	table, err := NewTable(route("/"), route("/jobs/:id"))
	require.NoError(t, err)

	_, _, ok := table.Match("/jobs/1/edit")
	assert.False(t, ok)
}

func TestTable_PrefixCatchAll(t *testing.T) {
	table, err := NewTable(route("/static/*"))
	require.NoError(t, err)

	_, _, ok := table.Match("/static/css/site.css")
	assert.True(t, ok)
	_, _, ok = table.Match("/static")
	assert.True(t, ok)
	_, _, ok = table.Match("/other")
	assert.False(t, ok)
}
