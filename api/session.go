package api

import (
	"sync"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"
)

// Session holds the bearer credential used to authorize every request.
// It is an explicit object handed to the services instead of ambient
// global state, so ownership and lifecycle are visible at construction.
type Session struct {
	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

func NewSession() *Session { return &Session{} }

// OnUnauthorized registers the hook invoked when the backend rejects the
// credential. The typical hook clears saved state and shows the login
// screen.
func (s *Session) OnUnauthorized(fn func()) {
	s.mu.Lock()
	s.onUnauthorized = fn
	s.mu.Unlock()
}

func (s *Session) SetToken(tok string) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Authenticated reports whether a credential is held and not visibly
// expired. Expiry is checked locally from the exp claim; the backend
// still makes the final call.
func (s *Session) Authenticated() bool {
	tok := s.Token()
	return tok != "" && !utils.TokenExpired(tok)
}

// invalidate drops the token and fires the onUnauthorized hook. Called by
// the client on a 401.
func (s *Session) invalidate() {
	s.mu.Lock()
	s.token = ""
	fn := s.onUnauthorized
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
