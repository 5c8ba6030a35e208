package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "session"

// SessionManager keeps the login in a signed HS256 token stored in the
// session cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Sign encodes s as a token that expires after the configured TTL.
func (m *SessionManager) Sign(s *utils.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  s.UserID,
		"username": s.Username,
		"is_admin": s.IsAdmin,
		"exp":      time.Now().Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Parse verifies a token and rebuilds the session it carries.
func (m *SessionManager) Parse(token string) (*utils.Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, errors.New("invalid session claims")
	}
	username, _ := claims["username"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return &utils.Session{
		UserID:   int(userID),
		Username: username,
		IsAdmin:  isAdmin,
	}, nil
}

// Start logs s in by setting the session cookie.
func (m *SessionManager) Start(c *gin.Context, s *utils.Session) error {
	token, err := m.Sign(s)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	utils.SetSession(c, s)
	return nil
}

// End clears the session cookie.
func (m *SessionManager) End(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", m.secure, true)
	utils.SetSession(c, nil)
}

// Middleware loads the session from the cookie. A missing, expired or
// tampered cookie leaves the visitor anonymous. Flash messages are signed
// with the same secret.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SetFlashKey(c, m.secret)
		token, err := c.Cookie(sessionCookie)
		if err == nil && token != "" {
			session, err := m.Parse(token)
			if err != nil {
				log.Ctx(c.Request.Context()).Debug().Err(err).Msg("ignoring session cookie")
			} else {
				utils.SetSession(c, session)
			}
		}
		c.Next()
	}
}
