package auth

import (
	"errors"
	"net/http"

	"github.com/Charchl1/Blog-Project/web"
)

// LoadIdentity resolves the session cookie to an Identity and stores it in
// the request context for every downstream handler. Requests without a valid
// session proceed as anonymous; only a database fault aborts the request.
func LoadIdentity(service Service, cookies *CookieManager, render *web.Renderer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookies.ReadToken(r)
			if err != nil {
				// A cookie that fails signature verification is dropped
				// so the client stops sending it. No cookie at all is
				// simply anonymous.
				if !errors.Is(err, http.ErrNoCookie) {
					cookies.ClearCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			identity, err := service.IdentityForToken(r.Context(), token)
			if err != nil {
				render.ServerError(w, r, err)
				return
			}
			if identity == nil {
				// Session expired or was removed server-side; drop the
				// stale cookie so the client stops sending it.
				cookies.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := NewContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects every non-admin caller, anonymous included, with a
// hard 403 before the wrapped handler can run any mutation.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromContext(r.Context()).IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
