package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

// PagesHandler renders the default page, the landing page and the about page
type PagesHandler struct {
	BaseHandler
	postService  PostService
	adminService AdminService
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(postService PostService, adminService AdminService, logger *zap.Logger, renderer *Renderer) *PagesHandler {
	return &PagesHandler{
		BaseHandler:  BaseHandler{Logger: logger, Renderer: renderer},
		postService:  postService,
		adminService: adminService,
	}
}

// RegisterRoutes registers all page routes
func (h *PagesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/", h.Index)
	r.Get("/home", h.Home)
	r.Get("/about", h.About)
}

// Index handles GET/POST /. Anyone can view the feed; a valid authenticated
// submission creates a post before the page renders.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	submitPost(r, h.postService, h.Logger)
	h.renderFeed(w, r)
}

// Home handles GET /home, the landing page. Admins see the user management
// list; everyone else sees exactly the default page.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAdmin() {
		users, err := h.adminService.ListUsers(r.Context())
		if err != nil {
			h.Logger.Error("failed to list users", zap.Error(err))
			h.Redirect(w, r, "/")
			return
		}

		h.Renderer.Render(w, r, "home.html", &PageData{
			Session: session.FromContext(r.Context()),
			Flashes: session.PopFlashes(w, r),
			Users:   users,
		})
		return
	}

	h.renderFeed(w, r)
}

// About handles GET /about, a static informational page
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "about.html", &PageData{
		Session: session.FromContext(r.Context()),
		Flashes: session.PopFlashes(w, r),
	})
}

// renderFeed renders the post feed, newest first. A feed read failure still
// renders the page, empty, so the default page never redirects to itself.
func (h *PagesHandler) renderFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListNewestFirst(r.Context())
	if err != nil {
		h.Logger.Error("failed to list posts", zap.Error(err))
		posts = nil
	}

	h.Renderer.Render(w, r, "index.html", &PageData{
		Session: session.FromContext(r.Context()),
		Flashes: session.PopFlashes(w, r),
		Posts:   posts,
	})
}
