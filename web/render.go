// Package web provides the HTML rendering layer: embedded templates, shared
// page data, and cookie-backed flash messages. Handlers build a PageData and
// hand it to the Renderer; every page is composed from the base layout plus
// one page template.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/Charchl1/Blog-Project/forms"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageFiles lists the page templates composed with the base layout.
var pageFiles = []string{
	"index.html",
	"post.html",
	"make-post.html",
	"register.html",
	"login.html",
	"about.html",
	"contact.html",
	"error.html",
}

// SessionUser is the view-level representation of the authenticated user.
// A nil *SessionUser means the viewer is anonymous.
type SessionUser struct {
	ID      int
	Name    string
	Email   string
	IsAdmin bool
}

// PageData is the data passed to every rendered template.
type PageData struct {
	Title  string
	Path   string
	User   *SessionUser
	Flash  []FlashMessage
	Errors forms.Errors
	Form   interface{}
	Data   interface{}
}

var functions = template.FuncMap{
	// raw marks post bodies as pre-rendered HTML. Bodies come from the
	// admin-only editor, never from anonymous input.
	"raw": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// Renderer renders pages from the embedded template set.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each page is parsed together
// with the base layout so pages can override layout blocks.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		ts, err := template.New(page).Funcs(functions).ParseFS(
			templateFS,
			"templates/base.layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = ts
	}
	return &Renderer{templates: templates}, nil
}

// Render writes a page to the response. The template is executed into a
// buffer first so a render failure can still produce a clean 500 instead of
// a half-written page. Pending flash messages are attached automatically.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}
	data.Path = r.URL.Path
	if data.Flash == nil {
		data.Flash = PopFlash(w, r)
	}

	ts, ok := rn.templates[page]
	if !ok {
		rn.ServerError(w, r, fmt.Errorf("template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		rn.ServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write response for %s: %v", r.URL.Path, err)
	}
}

// ServerError logs the cause and renders a generic 500 page. The underlying
// error is never shown to the client.
func (rn *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("server error on %s %s: %v", r.Method, r.URL.Path, err)
	rn.errorPage(w, r, http.StatusInternalServerError, "Something went wrong on our side. Please try again later.")
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.errorPage(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (rn *Renderer) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	ts, ok := rn.templates["error.html"]
	if !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	data := &PageData{
		Title: http.StatusText(status),
		Path:  r.URL.Path,
		Data:  message,
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		log.Printf("failed to render error page: %v", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
