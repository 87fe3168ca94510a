package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/miniblog/backend/internal/forms"
	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/repositories"
	"github.com/miniblog/backend/internal/services"
	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

// PostService is the interface that wraps methods for post authoring business logic
type PostService interface {
	// Method Create stores a new post owned by the given user.
	//
	// If some error occurs during creation, the error will be returned together with "nil" value.
	Create(ctx context.Context, userID int, header, content string) (*models.Post, error)
	// Method ListNewestFirst returns the post feed, most recent first.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	ListNewestFirst(ctx context.Context) ([]models.Post, error)
	// Method Delete removes a post on behalf of userID; only the owner may delete.
	//
	// Non-owners get services.ErrNoPermission and the post survives.
	Delete(ctx context.Context, postID, userID int) error
}

// PostHandler handles post creation and deletion
type PostHandler struct {
	BaseHandler
	postService PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService PostService, logger *zap.Logger, renderer *Renderer) *PostHandler {
	return &PostHandler{
		BaseHandler: BaseHandler{Logger: logger, Renderer: renderer},
		postService: postService,
	}
}

// RegisterRoutes registers all post handler routes
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/create_post", h.CreatePost)
	r.Post("/create_post", h.CreatePost)
	r.Post("/delete_post/{post_id}", h.DeletePost)
}

// CreatePost handles GET/POST /create_post and returns to the default page
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	submitPost(r, h.postService, h.Logger)
	h.Redirect(w, r, "/")
}

// DeletePost handles POST /delete_post/{post_id}. Only the post's owner may
// delete it; anyone else is turned away with a notice and the post survives.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "post_id"))
	if err != nil {
		h.Redirect(w, r, "/")
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		h.RedirectWithFlash(w, r, "/", session.Flash{
			Category: session.FlashDanger,
			Message:  "You do not have permission to delete this post.",
		})
		return
	}

	err = h.postService.Delete(r.Context(), postID, sess.UserID)
	switch {
	case errors.Is(err, repositories.ErrPostNotFound):
		h.Redirect(w, r, "/")
	case errors.Is(err, services.ErrNoPermission):
		h.RedirectWithFlash(w, r, "/", session.Flash{
			Category: session.FlashDanger,
			Message:  "You do not have permission to delete this post.",
		})
	case err != nil:
		h.Logger.Error("failed to delete post", zap.Int("postID", postID), zap.Error(err))
		h.Redirect(w, r, "/")
	default:
		h.RedirectWithFlash(w, r, "/", session.Flash{
			Category: session.FlashSuccess,
			Message:  "Post deleted successfully.",
		})
	}
}

// submitPost creates a post from a form submission when the form validates
// and the session is authenticated. Invalid or anonymous submissions are
// silently dropped, not reported.
func submitPost(r *http.Request, postService PostService, logger *zap.Logger) {
	if r.Method != http.MethodPost {
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Warn("failed to parse post form", zap.Error(err))
		return
	}

	if ok, _ := forms.Post().Validate(r.PostForm); !ok {
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		return
	}

	if _, err := postService.Create(r.Context(), sess.UserID, r.PostForm.Get("header"), r.PostForm.Get("content")); err != nil {
		logger.Error("failed to create post", zap.Error(err))
	}
}
