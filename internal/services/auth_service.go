package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/coachify/internal/models"
	pgrepo "github.com/yoockh/coachify/internal/repositories/postgres"
	"github.com/yoockh/coachify/internal/utils"
)

const msgBadToken = "Could not validate credentials"

type AuthService interface {
	// Login checks the credentials and returns a bearer token for the email.
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

type authService struct {
	users  pgrepo.UserRepository
	tokens *utils.TokenIssuer
}

func NewAuthService(users pgrepo.UserRepository, tokens *utils.TokenIssuer) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "AuthService.Login"

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "username and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if err := utils.CheckPassword(u.Password, password); err != nil {
		return "", utils.E(utils.CodeUnauthorized, op, "Invalid Credentials", err)
	}

	tok, err := s.tokens.Issue(u.Email)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return tok, nil
}

func (s *authService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	const op = "AuthService.Authenticate"

	email, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, msgBadToken, err)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, msgBadToken, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}
