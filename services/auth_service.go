package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"

	"go.uber.org/zap"
)

// AuthService drives login/register/profile against /api/auth and owns
// the session lifecycle: a successful login fills the session and saves
// the token locally, logout clears both.
type AuthService struct {
	api      *api.Client
	session  *api.Session
	sessions *repository.SessionRepository
	log      *zap.Logger
}

func NewAuthService(client *api.Client, session *api.Session, sessions *repository.SessionRepository, log *zap.Logger) *AuthService {
	return &AuthService{api: client, session: session, sessions: sessions, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var res entity.AuthResult
	req := entity.LoginRequest{Email: email, Password: password}
	if err := s.api.Post(ctx, "/api/auth/login", req, &res); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", api.ErrFetchFailed)
	}

	s.adopt(res.Token)
	return &res, nil
}

func (s *AuthService) Register(ctx context.Context, req entity.RegisterRequest) (*entity.AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("name, email and password are required")
	}

	var res entity.AuthResult
	if err := s.api.Post(ctx, "/api/auth/register", req, &res); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if res.Token != "" {
		s.adopt(res.Token)
	}
	return &res, nil
}

func (s *AuthService) Profile(ctx context.Context) (*entity.Profile, error) {
	if !s.session.Authenticated() {
		return nil, api.ErrUnauthenticated
	}
	var p entity.Profile
	if err := s.api.Get(ctx, "/api/auth/profile", &p); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", api.ErrFetchFailed, err)
	}
	return &p, nil
}

// Restore loads a previously saved token into the session, skipping
// tokens that already expired.
func (s *AuthService) Restore() {
	tok, err := s.sessions.Token()
	if err != nil {
		s.log.Warn("restore session failed", zap.Error(err))
		return
	}
	if tok == "" || utils.TokenExpired(tok) {
		return
	}
	s.session.SetToken(tok)
}

func (s *AuthService) Logout() {
	s.session.Clear()
	if err := s.sessions.Delete(); err != nil {
		s.log.Warn("delete saved session failed", zap.Error(err))
	}
}

func (s *AuthService) adopt(tok string) {
	s.session.SetToken(tok)
	if err := s.sessions.Save(tok); err != nil {
		s.log.Warn("save session failed", zap.Error(err))
	}
}
