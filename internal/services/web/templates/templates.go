// Package templates renders web pages as templ components backed by embedded
// HTML templates.
package templates

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.New("pages").ParseFS(files, "*.html"))

func lookup(name string) *template.Template {
	t := pages.Lookup(name)
	if t == nil {
		panic("templates: missing template " + name)
	}
	return t
}

// Layout wraps the child component in the document shell.
func Layout(view LayoutView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := templ.GetChildren(ctx).Render(ctx, &body); err != nil {
			return err
		}
		return lookup("layout").Execute(w, layoutData{
			LayoutView: view,
			Body:       template.HTML(body.String()),
		})
	})
}

// Loading renders the blocking spinner shown while a session check runs.
func Loading(view LoadingView) templ.Component {
	return templ.FromGoHTML(lookup("loading"), view)
}

// Login renders the credential form.
func Login(view LoginView) templ.Component {
	return templ.FromGoHTML(lookup("login"), view)
}

// LoginError renders the swappable login error region.
func LoginError(message string) templ.Component {
	return templ.FromGoHTML(lookup("login_error"), message)
}

// Notes renders the tenant notes screen.
func Notes(view NotesView) templ.Component {
	return templ.FromGoHTML(lookup("notes"), view)
}

// ErrorState renders an error page body.
func ErrorState(view ErrorView) templ.Component {
	return templ.FromGoHTML(lookup("error"), view)
}

type layoutData struct {
	LayoutView
	Body template.HTML
}
