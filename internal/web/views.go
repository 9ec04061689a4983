package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ghaggin/internhub/internal/api"
	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/guard"
	"github.com/ghaggin/internhub/internal/model"
	"github.com/ghaggin/internhub/internal/template"
	"go.uber.org/zap"
)

// registrationFields are the form fields forwarded to POST /register.
var registrationFields = []string{
	"name", "email", "password", "phone", "role",
	"company_name", "company_location", "university", "department",
}

// profileFields are the form fields forwarded to PUT /profile.
var profileFields = []string{"name", "phone"}

type views struct {
	log *zap.Logger
}

func (v *views) render(w http.ResponseWriter, r *http.Request, status int, tmpl string, td *template.Data) {
	if td.User == nil {
		td.User = coreFrom(r.Context()).Snapshot().User
	}
	if err := template.RenderStatus(w, r, status, tmpl, td); err != nil {
		v.log.Error("render failed", zap.String("template", tmpl), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (v *views) home(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusOK, "home.html", &template.Data{PageTitle: "home"})
}

func (v *views) notFound(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusNotFound, "notfound.html", &template.Data{PageTitle: "not found"})
}

func (v *views) loading(w http.ResponseWriter, r *http.Request) {
	v.render(w, r, http.StatusServiceUnavailable, "loading.html", &template.Data{PageTitle: "loading"})
}

func (v *views) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.render(w, r, http.StatusOK, "login.html", &template.Data{PageTitle: "login"})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	res := coreFrom(r.Context()).Login(r.Context(), email, r.PostForm.Get("password"))
	if res.Success {
		http.Redirect(w, r, res.Next.Target, http.StatusSeeOther)
		return
	}

	status := http.StatusUnauthorized
	if errors.Is(res.Err, auth.ErrOperationInFlight) {
		status = http.StatusConflict
	}
	v.render(w, r, status, "login.html", &template.Data{
		PageTitle: "login",
		Error:     res.Message,
		Form:      map[string]string{"email": email},
	})
}

func (v *views) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		v.render(w, r, http.StatusOK, "register.html", &template.Data{
			PageTitle: "register",
			Form:      map[string]string{"role": r.URL.Query().Get("role")},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data := auth.Registration{}
	for _, f := range registrationFields {
		if val := strings.TrimSpace(r.PostForm.Get(f)); val != "" {
			data[f] = val
		}
	}
	if data["role"] == "" {
		data["role"] = string(model.RoleStudent)
	}

	_, next, err := coreFrom(r.Context()).Register(r.Context(), data)
	if err != nil {
		form := map[string]string(data)
		delete(form, "password")

		td := &template.Data{PageTitle: "register", Form: form}
		status := http.StatusConflict
		var regErr *auth.RegistrationError
		if errors.As(err, &regErr) {
			td.Error = regErr.Message()
			td.FieldErrors = regErr.FieldErrors()
			status = http.StatusUnprocessableEntity
		} else {
			td.Error = err.Error()
		}
		v.render(w, r, status, "register.html", td)
		return
	}

	target := r.URL.Path
	if next.IsRedirect() {
		target = next.Target
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (v *views) logout(w http.ResponseWriter, r *http.Request) {
	next := coreFrom(r.Context()).Logout(r.Context())
	http.Redirect(w, r, next.Target, http.StatusSeeOther)
}

// listing shows whatever the backend returns for endpoint. ":name" segments
// of endpoint are filled from the route parameters and the page query string
// (filters, pagination) is passed through.
func (v *views) listing(title, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := expand(endpoint, r)
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}

		res, err := coreFrom(r.Context()).Client().Get(r.Context(), path)
		if err != nil {
			v.backendError(w, r, title, "dashboard.html", err)
			return
		}

		v.render(w, r, http.StatusOK, "dashboard.html", listingData(title, res))
	}
}

func (v *views) profile(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		core := coreFrom(r.Context())

		if r.Method == http.MethodPost {
			v.saveProfile(w, r, title, core)
			return
		}

		res, err := core.Client().Get(r.Context(), "/me")
		if err != nil {
			v.backendError(w, r, title, "profile.html", err)
			return
		}
		var u model.User
		if err := json.Unmarshal(res.Unwrap("data", "user"), &u); err != nil {
			v.backendError(w, r, title, "profile.html", err)
			return
		}

		v.render(w, r, http.StatusOK, "profile.html", &template.Data{
			PageTitle: title,
			Form:      map[string]string{"name": u.Name, "phone": u.Phone},
		})
	}
}

func (v *views) saveProfile(w http.ResponseWriter, r *http.Request, title string, core *auth.Core) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body := map[string]string{}
	for _, f := range profileFields {
		body[f] = strings.TrimSpace(r.PostForm.Get(f))
	}

	res, err := core.Client().Put(r.Context(), "/profile", body)
	if err != nil {
		var re *api.RequestError
		if errors.As(err, &re) && re.Status == http.StatusUnprocessableEntity {
			v.render(w, r, re.Status, "profile.html", &template.Data{
				PageTitle:   title,
				Error:       "Please fix the errors in the form",
				FieldErrors: re.FieldErrors(),
				Form:        body,
			})
			return
		}
		v.backendError(w, r, title, "profile.html", err)
		return
	}

	var u model.User
	if err := json.Unmarshal(res.Unwrap("data", "user"), &u); err != nil {
		v.backendError(w, r, title, "profile.html", err)
		return
	}
	if err := core.UpdateUser(r.Context(), &u); err != nil {
		v.log.Warn("profile update not applied to session", zap.Int("user_id", u.ID), zap.Error(err))
		v.render(w, r, http.StatusConflict, "profile.html", &template.Data{
			PageTitle: title,
			Error:     err.Error(),
			Form:      body,
		})
		return
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

// backendError renders a failed backend call. A 401 has already ended the
// session through the client's unauthorized hook, so it goes to login.
func (v *views) backendError(w http.ResponseWriter, r *http.Request, title, tmpl string, err error) {
	if api.IsUnauthorized(err) {
		http.Redirect(w, r, auth.PathLogin, http.StatusSeeOther)
		return
	}

	msg := "Something went wrong. Please try again."
	var re *api.RequestError
	if errors.As(err, &re) && re.Message() != "" {
		msg = re.Message()
	}
	v.log.Warn("backend call failed", zap.String("path", r.URL.Path), zap.Error(err))
	v.render(w, r, http.StatusBadGateway, tmpl, &template.Data{PageTitle: title, Error: msg})
}

func expand(endpoint string, r *http.Request) string {
	segs := strings.Split(endpoint, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = guard.Param(r.Context(), s[1:])
		}
	}
	return strings.Join(segs, "/")
}

// listingData accepts a bare array, {"data": [...]} and the paginated
// {"data": {"data": [...]}} shape. Anything else is shown as JSON.
func listingData(title string, res *api.Response) *template.Data {
	td := &template.Data{PageTitle: title}

	payload := res.Unwrap("data")
	for i := 0; i < 2; i++ {
		var items []map[string]any
		if json.Unmarshal(payload, &items) == nil {
			td.Items = items
			return td
		}
		payload = (&api.Response{Data: payload}).Unwrap("data")
	}

	var buf bytes.Buffer
	if json.Indent(&buf, payload, "", "  ") == nil {
		td.Raw = buf.String()
	}
	return td
}
