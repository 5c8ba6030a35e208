package utils

import (
	"github.com/gin-gonic/gin"
)

// Session is the request-scoped identity established at login. IsAdmin is
// computed once at login and is not re-checked per request.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID > 0
}

type contextKey string

const SessionContextKey contextKey = "session"

// GetSession returns the caller's session, or nil for anonymous visitors.
func GetSession(c *gin.Context) *Session {
	value, exists := c.Get(string(SessionContextKey))
	if !exists {
		return nil
	}
	if session, ok := value.(*Session); ok && session.Authenticated() {
		return session
	}
	return nil
}

func SetSession(c *gin.Context, session *Session) {
	c.Set(string(SessionContextKey), session)
}
