package routes

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/images"
	"github.com/yoockh/coachify/internal/services"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	args := m.Called(ctx, raw)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockFacebook struct{ mock.Mock }

func (m *mockFacebook) AuthURL(ctx context.Context, u *models.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *mockFacebook) Callback(ctx context.Context, code, state string) (*services.FacebookStatus, error) {
	args := m.Called(ctx, code, state)
	st, _ := args.Get(0).(*services.FacebookStatus)
	return st, args.Error(1)
}

func (m *mockFacebook) Status(u *models.User) services.FacebookStatus {
	return m.Called(u).Get(0).(services.FacebookStatus)
}

func (m *mockFacebook) Disconnect(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockSocial struct{ mock.Mock }

func (m *mockSocial) Publish(ctx context.Context, u *models.User, content, imageID string) (*services.PublishResult, error) {
	args := m.Called(ctx, u, content, imageID)
	r, _ := args.Get(0).(*services.PublishResult)
	return r, args.Error(1)
}

func (m *mockSocial) SearchImages(ctx context.Context, query string, perPage int) ([]images.Image, error) {
	args := m.Called(ctx, query, perPage)
	imgs, _ := args.Get(0).([]images.Image)
	return imgs, args.Error(1)
}

func (m *mockSocial) History(ctx context.Context, userID string, limit int) ([]models.SocialPost, error) {
	args := m.Called(ctx, userID, limit)
	posts, _ := args.Get(0).([]models.SocialPost)
	return posts, args.Error(1)
}

type mockConversations struct{ mock.Mock }

func (m *mockConversations) Record(ctx context.Context, rec services.TurnRecord) (*models.ConversationLog, error) {
	args := m.Called(ctx, rec)
	l, _ := args.Get(0).(*models.ConversationLog)
	return l, args.Error(1)
}

func (m *mockConversations) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationLog, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]models.ConversationLog)
	return rows, args.Error(1)
}

func (m *mockConversations) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error) {
	args := m.Called(ctx, userID, sessionID, limit)
	rows, _ := args.Get(0).([]models.ConversationLog)
	return rows, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Start(ctx context.Context, userID, endpoint, mode string) (*models.VoiceSession, error) {
	args := m.Called(ctx, userID, endpoint, mode)
	s, _ := args.Get(0).(*models.VoiceSession)
	return s, args.Error(1)
}

func (m *mockSessions) Get(ctx context.Context, sessionID string) (*models.VoiceSession, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*models.VoiceSession)
	return s, args.Error(1)
}

func (m *mockSessions) GetOwned(ctx context.Context, userID, sessionID string) (*models.VoiceSession, error) {
	args := m.Called(ctx, userID, sessionID)
	s, _ := args.Get(0).(*models.VoiceSession)
	return s, args.Error(1)
}

func (m *mockSessions) CountTurn(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockSessions) End(ctx context.Context, sessionID string) (*models.VoiceSession, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*models.VoiceSession)
	return s, args.Error(1)
}

type mockBuffers struct{ mock.Mock }

func (m *mockBuffers) Open(ctx context.Context, sessionID string, turn int64) (*models.RealtimeBuffer, error) {
	args := m.Called(ctx, sessionID, turn)
	b, _ := args.Get(0).(*models.RealtimeBuffer)
	return b, args.Error(1)
}

func (m *mockBuffers) MarkSTT(ctx context.Context, sessionID string, turn int64, transcript, status string) error {
	return m.Called(ctx, sessionID, turn, transcript, status).Error(0)
}

func (m *mockBuffers) MarkLLM(ctx context.Context, sessionID string, turn int64, response, feedback, status string, ms int64) error {
	return m.Called(ctx, sessionID, turn, response, feedback, status, ms).Error(0)
}

func (m *mockBuffers) ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.RealtimeBuffer, error) {
	args := m.Called(ctx, sessionID, limit)
	rows, _ := args.Get(0).([]models.RealtimeBuffer)
	return rows, args.Error(1)
}
