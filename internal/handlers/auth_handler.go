package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/miniblog/backend/internal/forms"
	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/services"
	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register performs uniqueness checks and user creation.
	//
	// "req" parameter contains username, email, password and its confirmation.
	//
	// Recoverable failures are services.ErrPasswordMismatch, ErrUsernameTaken and ErrEmailTaken.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login authenticates a user by username and password.
	//
	// A missing user and a wrong password both yield services.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	authService AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, sessions *session.Manager, logger *zap.Logger, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger, Renderer: renderer},
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/register", h.Register)
	r.Post("/register", h.Register)
	r.Get("/login", h.Login)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
}

// Register handles GET/POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if session.IsAuthenticated(r.Context()) {
		h.RedirectWithFlash(w, r, "/", session.Flash{
			Category: session.FlashInfo,
			Message:  "You are already logged in.",
		})
		return
	}

	if r.Method == http.MethodGet {
		h.renderPage(w, r, "register.html", nil, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Logger.Warn("failed to parse registration form", zap.Error(err))
		h.Redirect(w, r, "/")
		return
	}

	if ok, fieldErrs := forms.Registration().Validate(r.PostForm); !ok {
		h.renderPage(w, r, "register.html", fieldErrorFlashes(fieldErrs), r.PostForm)
		return
	}

	req := &models.RegisterRequest{
		Username:        r.PostForm.Get("username"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			message = "Passwords must match."
		case errors.Is(err, services.ErrUsernameTaken):
			message = "Username is taken."
		case errors.Is(err, services.ErrEmailTaken):
			message = "Email is taken."
		default:
			h.Logger.Error("failed to register user", zap.Error(err))
			h.Redirect(w, r, "/")
			return
		}

		h.renderPage(w, r, "register.html", []session.Flash{{Category: session.FlashDanger, Message: message}}, r.PostForm)
		return
	}

	if err := h.sessions.Start(r.Context(), w, user); err != nil {
		h.Logger.Error("failed to start session", zap.Error(err))
		h.Redirect(w, r, "/")
		return
	}

	h.RedirectWithFlash(w, r, "/home", session.Flash{
		Category: session.FlashSuccess,
		Message:  "Registration successful! Welcome to the blog.",
	})
}

// Login handles GET/POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if session.IsAuthenticated(r.Context()) {
		h.RedirectWithFlash(w, r, "/", session.Flash{
			Category: session.FlashInfo,
			Message:  "You are already logged in.",
		})
		return
	}

	if r.Method == http.MethodGet {
		h.renderPage(w, r, "login.html", nil, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Logger.Warn("failed to parse login form", zap.Error(err))
		h.Redirect(w, r, "/")
		return
	}

	if ok, fieldErrs := forms.Login().Validate(r.PostForm); !ok {
		h.renderPage(w, r, "login.html", fieldErrorFlashes(fieldErrs), r.PostForm)
		return
	}

	req := &models.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.renderPage(w, r, "login.html", []session.Flash{{
				Category: session.FlashDanger,
				Message:  "Invalid username or password. Please try again.",
			}}, r.PostForm)
			return
		}

		h.Logger.Error("failed to login user", zap.Error(err))
		h.Redirect(w, r, "/")
		return
	}

	if err := h.sessions.Start(r.Context(), w, user); err != nil {
		h.Logger.Error("failed to start session", zap.Error(err))
		h.Redirect(w, r, "/")
		return
	}

	h.RedirectWithFlash(w, r, "/home", session.Flash{
		Category: session.FlashSuccess,
		Message:  "Login successful.",
	})
}

// Logout handles GET /logout by clearing the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(r.Context(), w, r)
	h.RedirectWithFlash(w, r, "/", session.Flash{
		Category: session.FlashSuccess,
		Message:  "You have been logged out.",
	})
}

// renderPage renders a form page with same-request notices and prior input
func (h *AuthHandler) renderPage(w http.ResponseWriter, r *http.Request, name string, flashes []session.Flash, form url.Values) {
	h.Renderer.Render(w, r, name, &PageData{
		Session: session.FromContext(r.Context()),
		Flashes: append(session.PopFlashes(w, r), flashes...),
		Form:    form,
	})
}

// fieldErrorFlashes turns validation errors into "Field: message" notices,
// preserving field-declaration order
func fieldErrorFlashes(fieldErrs []forms.FieldError) []session.Flash {
	flashes := make([]session.Flash, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		flashes = append(flashes, session.Flash{
			Category: session.FlashDanger,
			Message:  fmt.Sprintf("%s: %s", capitalize(fe.Field), fe.Message),
		})
	}
	return flashes
}

// capitalize upper-cases the first letter of a field name for display
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
