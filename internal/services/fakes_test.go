package services

import (
	"context"
	"sync"
	"time"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/images"
	"github.com/yoockh/coachify/internal/providers/llm"
	"github.com/yoockh/coachify/internal/providers/social"
	"github.com/yoockh/coachify/internal/utils"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]*models.User
	err     error

	// createErr fails only inserts, as a unique index does
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*models.User{}, byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) SetFacebook(_ context.Context, id int64, token, fbUserID, fbName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.FacebookToken, u.FacebookUserID, u.FacebookName = &token, &fbUserID, &fbName
	return nil
}

func (r *fakeUserRepo) ClearFacebook(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.FacebookToken, u.FacebookUserID, u.FacebookName = nil, nil, nil
	}
	return nil
}

type fakeConversationRepo struct {
	mu   sync.Mutex
	rows []models.ConversationLog
}

func (r *fakeConversationRepo) Insert(_ context.Context, l *models.ConversationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *l)
	return nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.ConversationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ConversationLog
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) ListBySession(_ context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ConversationLog
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].UserID == userID && r.rows[i].SessionID == sessionID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id int64) (*models.ConversationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.VoiceSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.VoiceSession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *models.VoiceSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.SessionID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetBySessionID(_ context.Context, id string) (*models.VoiceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) IncrementTurns(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return utils.ErrNotFound
	}
	s.Turns++
	return nil
}

func (r *fakeSessionRepo) End(_ context.Context, id string, endedAt time.Time, dur int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return utils.ErrNotFound
	}
	s.Status = models.SessionEnded
	s.EndedAt = &endedAt
	s.DurationSeconds = dur
	return nil
}

type fakeSocialPostRepo struct {
	mu   sync.Mutex
	rows []models.SocialPost
	err  error
}

func (r *fakeSocialPostRepo) Insert(_ context.Context, p *models.SocialPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	p.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *p)
	return nil
}

func (r *fakeSocialPostRepo) LatestByUser(_ context.Context, userID string, limit int) ([]models.SocialPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SocialPost
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(context.Context, llm.Request) (string, error) {
	s.calls++
	return s.reply, s.err
}

type fakeFacebook struct {
	configured  bool
	exchangeErr error
	postErr     error
	posted      []social.FeedPost
	lastToken   string
}

func (f *fakeFacebook) Configured() bool { return f.configured }
func (f *fakeFacebook) AuthURL(state string) string { return "https://fb.test/dialog?state=" + state }

func (f *fakeFacebook) Exchange(_ context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return "short-" + code, nil
}

func (f *fakeFacebook) LongLived(_ context.Context, short string) (string, error) {
	return "long-" + short, nil
}

func (f *fakeFacebook) Me(context.Context, string) (*social.Profile, error) {
	return &social.Profile{ID: "fb-1", Name: "Ada"}, nil
}

func (f *fakeFacebook) PostToFeed(_ context.Context, token string, p social.FeedPost) (string, error) {
	f.lastToken = token
	f.posted = append(f.posted, p)
	if f.postErr != nil {
		return "", f.postErr
	}
	return "page_1", nil
}

type fakeImages struct {
	configured bool
	searches   int
	results    []images.Image
	urls       map[string]string
}

func (f *fakeImages) Configured() bool { return f.configured }

func (f *fakeImages) Search(context.Context, string, int) ([]images.Image, error) {
	f.searches++
	return f.results, nil
}

func (f *fakeImages) PhotoURL(_ context.Context, id string) (string, error) {
	if u, ok := f.urls[id]; ok {
		return u, nil
	}
	return "", utils.ErrNotFound
}
