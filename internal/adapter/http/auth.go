package http

import (
	"net/http"
	"strings"

	"github.com/bnema/batchenc/internal/adapter/http/templates"
)

const (
	CookieName     = "auth_token"
	CookieMaxAge   = 7 * 24 * 60 * 60
	CookiePath     = "/"
	CookieSameSite = http.SameSiteStrictMode
)

type AuthService interface {
	ValidatePassword(password string) bool
	GenerateToken() string
	ValidateToken(token string) error
}

// AuthMiddleware accepts either a session cookie or an
// "Authorization: Bearer <secret>" header. Browsers are sent to the login
// page; API clients get 401.
func AuthMiddleware(authSvc AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if authSvc.ValidatePassword(bearer) {
				next(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		cookie, err := r.Cookie(CookieName)
		if err == nil && authSvc.ValidateToken(cookie.Value) == nil {
			next(w, r)
			return
		}

		if wantsJSON(r) {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func LoginHandler(authSvc AuthService, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			renderLogin(w, r, r.URL.Query().Get("error") != "")
			return
		}

		if r.Method == http.MethodPost {
			password := r.FormValue("password")
			if !authSvc.ValidatePassword(password) {
				http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    authSvc.GenerateToken(),
				MaxAge:   CookieMaxAge,
				Path:     CookiePath,
				Secure:   secureCookies,
				HttpOnly: true,
				SameSite: CookieSameSite,
			})

			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, failed bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = templates.Login(failed).Render(r.Context(), w)
}

func LogoutHandler(secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			MaxAge:   -1,
			Path:     CookiePath,
			Secure:   secureCookies,
			HttpOnly: true,
			SameSite: CookieSameSite,
		})

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
