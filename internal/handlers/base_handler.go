package handlers

import (
	"net/http"

	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger   *zap.Logger
	Renderer *Renderer
}

// Redirect sends the browser to another page
func (h *BaseHandler) Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// RedirectWithFlash queues a one-time notice and redirects
func (h *BaseHandler) RedirectWithFlash(w http.ResponseWriter, r *http.Request, path string, flash session.Flash) {
	session.SetFlashes(w, flash)
	h.Redirect(w, r, path)
}
