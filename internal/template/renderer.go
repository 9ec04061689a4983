package template

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/ghaggin/internhub/internal/model"
)

const (
	templateDir string = "tmpl"
)

//go:embed tmpl/*.html
var files embed.FS

var funcs = template.FuncMap{
	"list": func(s ...string) []string { return s },
}

type Data struct {
	PageTitle   string
	User        *model.User
	Error       string
	FieldErrors map[string][]string
	Form        map[string]string
	// Items and Raw carry backend payloads for listing pages.
	Items []map[string]any
	Raw   string
}

func Render(w http.ResponseWriter, r *http.Request, tmpl string, td any) error {
	return RenderStatus(w, r, http.StatusOK, tmpl, td)
}

// RenderStatus renders into a buffer first so a template error never leaves a
// half-written page behind the status line.
func RenderStatus(w http.ResponseWriter, _ *http.Request, status int, tmpl string, td any) error {
	t, err := template.New("base").Funcs(funcs).ParseFS(files,
		templateDir+"/"+"base.html",
		templateDir+"/"+tmpl,
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.ExecuteTemplate(buf, "base", td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
