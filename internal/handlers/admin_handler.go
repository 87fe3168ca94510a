package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/miniblog/backend/internal/middlewares"
	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/repositories"
	"github.com/miniblog/backend/internal/services"
	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for user management business logic
type AdminService interface {
	// Method ListUsers returns every account for the management page.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	ListUsers(ctx context.Context) ([]models.User, error)
	// Method ChangeStatus sets the target user's status.
	//
	// A status outside {admin, user} yields services.ErrInvalidStatus.
	ChangeStatus(ctx context.Context, userID int, newStatus string) (*models.User, error)
	// Method DeleteUser deletes the target and everything they own, posts first.
	//
	// selfDeleted reports whether the acting admin removed their own account.
	DeleteUser(ctx context.Context, targetID, actorID int) (selfDeleted bool, err error)
}

// AdminHandler handles admin-only user management actions
type AdminHandler struct {
	BaseHandler
	adminService AdminService
	sessions     *session.Manager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, sessions *session.Manager, logger *zap.Logger, renderer *Renderer) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger, Renderer: renderer},
		adminService: adminService,
		sessions:     sessions,
	}
}

// RegisterRoutes registers admin actions behind the admin guard
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireAdmin)
		r.Post("/change_status/{user_id}", h.ChangeStatus)
		r.Post("/delete_user/{user_id}", h.DeleteUser)
	})
}

// ChangeStatus handles POST /change_status/{user_id}
func (h *AdminHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		h.Redirect(w, r, "/")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Logger.Warn("failed to parse status form", zap.Error(err))
		h.Redirect(w, r, "/home")
		return
	}

	user, err := h.adminService.ChangeStatus(r.Context(), userID, r.PostForm.Get("new_status"))
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		h.RedirectWithFlash(w, r, "/home", session.Flash{
			Category: session.FlashDanger,
			Message:  "Invalid status.",
		})
	case errors.Is(err, repositories.ErrUserNotFound):
		h.Redirect(w, r, "/")
	case err != nil:
		h.Logger.Error("failed to change user status", zap.Int("userID", userID), zap.Error(err))
		h.Redirect(w, r, "/")
	default:
		h.RedirectWithFlash(w, r, "/home", session.Flash{
			Category: session.FlashSuccess,
			Message:  fmt.Sprintf("User '%s' status changed to '%s'.", user.Username, user.Status),
		})
	}
}

// DeleteUser handles POST /delete_user/{user_id}. Deleting one's own account
// also ends the session.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		h.Redirect(w, r, "/")
		return
	}

	sess := session.FromContext(r.Context())

	selfDeleted, err := h.adminService.DeleteUser(r.Context(), targetID, sess.UserID)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		h.Redirect(w, r, "/")
	case err != nil:
		h.Logger.Error("failed to delete user", zap.Int("userID", targetID), zap.Error(err))
		h.Redirect(w, r, "/")
	default:
		if selfDeleted {
			h.sessions.End(r.Context(), w, r)
			h.RedirectWithFlash(w, r, "/home", session.Flash{
				Category: session.FlashSuccess,
				Message:  "You have been logged out.",
			})
			return
		}
		h.Redirect(w, r, "/home")
	}
}
