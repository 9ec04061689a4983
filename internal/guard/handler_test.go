package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, snap auth.Snapshot, next http.Handler) (*Handler, *[]string) {
	t.Helper()
	table, err := NewTable(
		Route{Pattern: "/login", Access: PublicOnlyAccess, Handler: next},
		Route{Pattern: "/jobs/:id", Access: ProtectedAccess, Handler: next},
		Route{Pattern: "/admin/dashboard", Access: ProtectedAccess, Roles: []model.Role{model.RoleAdmin}, Handler: next},
	)
	require.NoError(t, err)

	var seen []string
	return &Handler{
		Table:   table,
		Session: func(*http.Request) auth.Snapshot { return snap },
		Observe: func(pattern string, d Decision) { seen = append(seen, pattern+" "+d.Kind.String()) },
	}, &seen
}

func Test_ProtectedRedirectsToLogin(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	req, err := http.NewRequest("GET", "/jobs/1", nil)
	require.Nil(err)

	responseRecorder := httptest.NewRecorder()

	calledNext := false
	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calledNext = true
	})

	handler, seen := newHandler(t, anonymous, testHandler)
	handler.ServeHTTP(responseRecorder, req)

	assert.False(calledNext)
	assert.Equal(http.StatusSeeOther, responseRecorder.Code)
	assert.Equal("/login", responseRecorder.Result().Header.Get("Location"))
	assert.Equal([]string{"/jobs/:id redirect"}, *seen)
}

func Test_ProtectedRendersWithParams(t *testing.T) {
	assert := assert.New(t)

	var id string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		id = Param(r.Context(), "id")
	})

	handler, _ := newHandler(t, signedIn(model.RoleStudent), next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/jobs/42", nil))

	assert.Equal(http.StatusOK, rr.Code)
	assert.Equal("42", id)
}

func Test_PublicOnlyRedirectsAdmin(t *testing.T) {
	calledNext := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calledNext = true })

	handler, _ := newHandler(t, signedIn(model.RoleAdmin), next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/login", nil))

	assert.False(t, calledNext)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, auth.PathAdminDashboard, rr.Header().Get("Location"))
}

func Test_WrongRoleRedirectsHome(t *testing.T) {
	handler, _ := newHandler(t, signedIn(model.RoleStudent), nop)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/admin/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, auth.PathHome, rr.Header().Get("Location"))
}

func Test_WaitingWhileLoading(t *testing.T) {
	assert := assert.New(t)

	handler, _ := newHandler(t, auth.Snapshot{State: auth.StateRestoring}, nop)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/jobs/1", nil))

	assert.Equal(http.StatusServiceUnavailable, rr.Code)
	assert.Equal("1", rr.Header().Get("Retry-After"))
	assert.Empty(rr.Header().Get("Location"))

	handler.Waiting = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/login", nil))
	assert.Equal(http.StatusAccepted, rr.Code)
}

func Test_UnmatchedPath(t *testing.T) {
	handler, _ := newHandler(t, anonymous, nop)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
