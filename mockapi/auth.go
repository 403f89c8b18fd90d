package mockapi

import (
	"net/http"
	"strings"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// POST /api/auth/register
func (s *Server) register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "hash password failed")
		return
	}

	s.mu.Lock()
	if s.findUser(req.Email) != nil {
		s.mu.Unlock()
		fail(c, http.StatusBadRequest, "email already registered")
		return
	}
	u := &user{ID: s.nextUserID, Name: req.Name, Email: req.Email, Phone: req.Phone, Hash: hash}
	s.nextUserID++
	s.users = append(s.users, u)
	s.mu.Unlock()

	tok, err := utils.GenerateToken(u.ID, "customer", s.JWTSecret, tokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "cannot generate token")
		return
	}
	created(c, entity.AuthResult{
		Token: tok,
		User:  entity.AuthUser{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// POST /api/auth/login
func (s *Server) login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	u := s.findUser(strings.ToLower(strings.TrimSpace(req.Email)))
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.Hash, []byte(req.Password)) != nil {
		fail(c, http.StatusBadRequest, "invalid credentials")
		return
	}

	tok, err := utils.GenerateToken(u.ID, "customer", s.JWTSecret, tokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "cannot generate token")
		return
	}
	ok(c, entity.AuthResult{
		Token: tok,
		User:  entity.AuthUser{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// GET /api/auth/profile
func (s *Server) profile(c *gin.Context) {
	uid := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == uid {
			ok(c, entity.Profile{Name: u.Name, Email: u.Email, Phone: u.Phone})
			return
		}
	}
	fail(c, http.StatusUnauthorized, "unknown user")
}
