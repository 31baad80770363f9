package middleware

import (
	"net/http"

	"github.com/cosmic-community/inkwell-blog/internal/view"
)

// ThemeCookie is the name of the cookie holding the visitor's theme choice.
const ThemeCookie = "theme"

// Theme reads the persisted theme cookie and sets a corresponding flag in the
// request context. This lets templates render the dark variant server-side
// instead of flashing the light theme first.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dark := false
		if cookie, err := r.Cookie(ThemeCookie); err == nil {
			dark = cookie.Value == "dark"
		}
		next.ServeHTTP(w, r.WithContext(view.WithDarkMode(r.Context(), dark)))
	})
}
