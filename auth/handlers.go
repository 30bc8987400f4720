package auth

import (
	"net/http"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/forms"
	"github.com/Charchl1/Blog-Project/web"
)

// Handlers serves the registration, login and logout pages.
type Handlers struct {
	service Service
	cookies *CookieManager
	render  *web.Renderer
}

// NewHandlers creates the auth HTTP handlers.
func NewHandlers(service Service, cookies *CookieManager, render *web.Renderer) *Handlers {
	return &Handlers{service: service, cookies: cookies, render: render}
}

// HandleRegisterForm renders the empty registration form.
func (h *Handlers) HandleRegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, http.StatusOK, "register.html", &web.PageData{
			Title: "Register",
			User:  SessionUser(IdentityFromContext(r.Context())),
		})
	}
}

// HandleRegister validates the registration form, creates the account and
// logs the new user in. A duplicate email re-renders the form with a flash
// message and performs no write.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.render.Render(w, r, http.StatusBadRequest, "register.html", &web.PageData{Title: "Register"})
			return
		}

		form := forms.BindRegisterForm(r.PostForm)
		if errs, ok := form.Validate(); !ok {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "register.html", &web.PageData{
				Title:  "Register",
				Form:   form,
				Errors: errs,
			})
			return
		}

		_, session, err := h.service.Register(r.Context(), form)
		if err != nil {
			if apperror.IsConflict(err) {
				appErr, _ := apperror.FromError(err)
				h.render.Render(w, r, http.StatusConflict, "register.html", &web.PageData{
					Title: "Register",
					Form:  form,
					Flash: []web.FlashMessage{{Kind: "error", Message: appErr.Message}},
				})
				return
			}
			h.render.ServerError(w, r, err)
			return
		}

		if err := h.cookies.SetCookie(w, session); err != nil {
			h.render.ServerError(w, r, err)
			return
		}
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// HandleLoginForm renders the empty login form.
func (h *Handlers) HandleLoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, http.StatusOK, "login.html", &web.PageData{
			Title: "Log In",
			User:  SessionUser(IdentityFromContext(r.Context())),
		})
	}
}

// HandleLogin validates the login form and establishes a session. Both
// failure modes (unknown email, wrong password) re-render the form with a
// flash message and leave no session behind.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.render.Render(w, r, http.StatusBadRequest, "login.html", &web.PageData{Title: "Log In"})
			return
		}

		form := forms.BindLoginForm(r.PostForm)
		if errs, ok := form.Validate(); !ok {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "login.html", &web.PageData{
				Title:  "Log In",
				Form:   form,
				Errors: errs,
			})
			return
		}

		_, session, err := h.service.Login(r.Context(), form)
		if err != nil {
			if apperror.IsAuthError(err) {
				appErr, _ := apperror.FromError(err)
				h.render.Render(w, r, http.StatusUnauthorized, "login.html", &web.PageData{
					Title: "Log In",
					Form:  form,
					Flash: []web.FlashMessage{{Kind: "error", Message: appErr.Message}},
				})
				return
			}
			h.render.ServerError(w, r, err)
			return
		}

		if err := h.cookies.SetCookie(w, session); err != nil {
			h.render.ServerError(w, r, err)
			return
		}
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// HandleLogout ends the session server-side and expires the cookie.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, err := h.cookies.ReadToken(r); err == nil {
			if err := h.service.Logout(r.Context(), token); err != nil {
				h.render.ServerError(w, r, err)
				return
			}
		}
		h.cookies.ClearCookie(w)
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// SessionUser converts an Identity into its view representation.
// Anonymous stays nil.
func SessionUser(identity *Identity) *web.SessionUser {
	if identity == nil {
		return nil
	}
	return &web.SessionUser{
		ID:      identity.UserID,
		Name:    identity.Name,
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin(),
	}
}
