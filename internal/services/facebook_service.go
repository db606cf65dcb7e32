package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/yoockh/coachify/internal/cache"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/social"
	pgrepo "github.com/yoockh/coachify/internal/repositories/postgres"
	"github.com/yoockh/coachify/internal/utils"
)

const (
	oauthStateTTL    = 10 * time.Minute
	oauthStatePrefix = "fb_state:"
)

// FacebookClient is the Graph API surface the app uses.
type FacebookClient interface {
	Configured() bool
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	LongLived(ctx context.Context, shortToken string) (string, error)
	Me(ctx context.Context, token string) (*social.Profile, error)
	PostToFeed(ctx context.Context, token string, p social.FeedPost) (string, error)
}

type FacebookStatus struct {
	Connected      bool   `json:"connected"`
	FacebookUserID string `json:"facebook_user_id"`
	Name           string `json:"name"`
}

type FacebookService interface {
	AuthURL(ctx context.Context, u *models.User) (string, error)
	// Callback completes the OAuth handshake for the user that started it.
	Callback(ctx context.Context, code, state string) (*FacebookStatus, error)
	Status(u *models.User) FacebookStatus
	Disconnect(ctx context.Context, u *models.User) error
}

type facebookService struct {
	fb     FacebookClient
	users  pgrepo.UserRepository
	states cache.StateStore
}

func NewFacebookService(fb FacebookClient, users pgrepo.UserRepository, states cache.StateStore) FacebookService {
	return &facebookService{fb: fb, users: users, states: states}
}

func (s *facebookService) AuthURL(ctx context.Context, u *models.User) (string, error) {
	const op = "FacebookService.AuthURL"

	if !s.fb.Configured() {
		return "", utils.E(utils.CodeUnavailable, op, "Facebook app is not configured", nil)
	}

	state, err := newState()
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to generate state", err)
	}
	if err := s.states.Put(ctx, oauthStatePrefix+state, u.Email, oauthStateTTL); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to store oauth state", err)
	}
	return s.fb.AuthURL(state), nil
}

func (s *facebookService) Callback(ctx context.Context, code, state string) (*FacebookStatus, error) {
	const op = "FacebookService.Callback"

	if code == "" || state == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "code and state are required", nil)
	}

	email, ok, err := s.states.Take(ctx, oauthStatePrefix+state)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read oauth state", err)
	}
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid or expired state", nil)
	}

	short, err := s.fb.Exchange(ctx, code)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "Failed to get Facebook access token", err)
	}
	long, err := s.fb.LongLived(ctx, short)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "Failed to get long-lived token", err)
	}
	me, err := s.fb.Me(ctx, long)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "Failed to get user information", err)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := s.users.SetFacebook(ctx, u.ID, long, me.ID, me.Name); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save facebook token", err)
	}

	return &FacebookStatus{Connected: true, FacebookUserID: me.ID, Name: me.Name}, nil
}

func (s *facebookService) Status(u *models.User) FacebookStatus {
	st := FacebookStatus{Connected: u.HasFacebook()}
	if !st.Connected {
		return st
	}
	if u.FacebookUserID != nil {
		st.FacebookUserID = *u.FacebookUserID
	}
	if u.FacebookName != nil {
		st.Name = *u.FacebookName
	}
	return st
}

func (s *facebookService) Disconnect(ctx context.Context, u *models.User) error {
	const op = "FacebookService.Disconnect"

	if err := s.users.ClearFacebook(ctx, u.ID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to clear facebook token", err)
	}
	u.FacebookToken, u.FacebookUserID, u.FacebookName = nil, nil, nil
	return nil
}

func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
