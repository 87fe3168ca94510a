package middlewares

import (
	"net/http"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/session"
)

// RequireAdmin guards admin-only actions. Anonymous and non-admin requests
// get a notice and are sent back to the landing page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.Status(r.Context()) != models.StatusAdmin {
			session.SetFlashes(w, session.Flash{
				Category: session.FlashDanger,
				Message:  "You do not have permission to perform this action.",
			})
			http.Redirect(w, r, "/home", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
