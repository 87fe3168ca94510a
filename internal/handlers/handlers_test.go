package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRenderer parses the embedded templates for handler tests
func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)
	return renderer
}

// withSession attaches an identity snapshot to the request
func withSession(r *http.Request, sess *models.Session) *http.Request {
	return r.WithContext(session.WithSession(r.Context(), sess))
}

// queuedFlashes decodes the notices a handler queued on the response
func queuedFlashes(t *testing.T, rec *httptest.ResponseRecorder) []session.Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != "flash" || c.Value == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(c.Value)
		require.NoError(t, err)
		var flashes []session.Flash
		require.NoError(t, json.Unmarshal(data, &flashes))
		return flashes
	}
	return nil
}

// mockPostService is a mock implementation of PostService
type mockPostService struct {
	posts          []models.Post
	listError      error
	createError    error
	deleteError    error
	createdUserID  int
	createdHeader  string
	createdContent string
	deletedPostID  int
	deletedUserID  int
}

func (m *mockPostService) Create(ctx context.Context, userID int, header, content string) (*models.Post, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	m.createdUserID = userID
	m.createdHeader = header
	m.createdContent = content
	return &models.Post{ID: 1, Header: header, Content: content, UserID: userID}, nil
}

func (m *mockPostService) ListNewestFirst(ctx context.Context) ([]models.Post, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.posts, nil
}

func (m *mockPostService) Delete(ctx context.Context, postID, userID int) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.deletedPostID = postID
	m.deletedUserID = userID
	return nil
}

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user          *models.User
	registerError error
	loginError    error
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.registerError != nil {
		return nil, m.registerError
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if m.loginError != nil {
		return nil, m.loginError
	}
	return m.user, nil
}

// mockAdminService is a mock implementation of AdminService
type mockAdminService struct {
	users             []models.User
	user              *models.User
	listError         error
	changeStatusError error
	deleteUserError   error
	selfDeleted       bool
	deletedTargetID   int
	deleteActorID     int
}

func (m *mockAdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.users, nil
}

func (m *mockAdminService) ChangeStatus(ctx context.Context, userID int, newStatus string) (*models.User, error) {
	if m.changeStatusError != nil {
		return nil, m.changeStatusError
	}
	return m.user, nil
}

func (m *mockAdminService) DeleteUser(ctx context.Context, targetID, actorID int) (bool, error) {
	if m.deleteUserError != nil {
		return false, m.deleteUserError
	}
	m.deletedTargetID = targetID
	m.deleteActorID = actorID
	return m.selfDeleted, nil
}

// stubSessionRepository backs the session manager in handler tests
type stubSessionRepository struct {
	session      *models.Session
	createError  error
	deletedToken string
}

func (s *stubSessionRepository) Create(ctx context.Context, sess *models.Session) error {
	if s.createError != nil {
		return s.createError
	}
	sess.ID = 1
	s.session = sess
	return nil
}

func (s *stubSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	return s.session, nil
}

func (s *stubSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	s.deletedToken = token
	return nil
}

// newTestSessionManager builds a manager over the stub repository
func newTestSessionManager(repo *stubSessionRepository) *session.Manager {
	return session.NewManager(repo, zap.NewNop())
}
