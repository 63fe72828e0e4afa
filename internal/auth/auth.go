// Package auth implements the admin session layer: configured credentials
// checked at login, opaque tokens stored in Redis with a TTL, and a gin
// middleware guarding the admin routes.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront-service/internal/redisclient"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned by Login when the username/password
// pair does not match the configured admin account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service issues and checks admin sessions.
type Service struct {
	sessions   *redisclient.Client
	username   string
	password   string
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewService creates a new auth service. An empty configured password
// disables login entirely.
func NewService(sessions *redisclient.Client, username, password string, sessionTTL time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		username:   username,
		password:   password,
		sessionTTL: sessionTTL,
		logger:     util.GetLogger(),
	}
}

// Login checks the credentials and returns a fresh session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if !checkCredentials(s.username, s.password, username, password) {
		util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := s.sessions.CreateSession(ctx, token, username, s.sessionTTL); err != nil {
		return "", err
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Admin logged in", zap.String("username", username))
	return token, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// Middleware rejects requests that do not carry a valid session token in
// the Authorization header.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		username, ok, err := s.sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session check failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("admin_user", username)
		c.Next()
	}
}

// checkCredentials compares both fields in constant time. An empty
// configured password never matches.
func checkCredentials(wantUser, wantPass, gotUser, gotPass string) bool {
	if wantPass == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(gotUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(wantPass), []byte(gotPass)) == 1
	return userOK && passOK
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
