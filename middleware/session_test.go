package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionManager_SignParse(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)

	token, err := m.Sign(&utils.Session{UserID: 7, Username: "Ann", IsAdmin: true})
	require.NoError(t, err)

	s, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, &utils.Session{UserID: 7, Username: "Ann", IsAdmin: true}, s)
}

func TestSessionManager_RejectsBadTokens(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)

	other, err := NewSessionManager("other", time.Hour, false).Sign(&utils.Session{UserID: 1})
	require.NoError(t, err)
	expired, err := NewSessionManager("secret", -time.Minute, false).Sign(&utils.Session{UserID: 1})
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":       "not-a-token",
		"wrong secret":  other,
		"expired":       expired,
		"missing claim": noUser,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.Error(t, err)
		})
	}
}

func sessionRouter(m *SessionManager) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/whoami", func(c *gin.Context) {
		s := utils.GetSession(c)
		if s == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, s.Username)
	})
	r.GET("/login", func(c *gin.Context) {
		_ = m.Start(c, &utils.Session{UserID: 3, Username: "Bea"})
		c.Status(http.StatusNoContent)
	})
	r.GET("/logout", func(c *gin.Context) {
		m.End(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionManager_CookieRoundTrip(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	r := sessionRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Bea", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestSessionManager_TamperedCookieIsAnonymous(t *testing.T) {
	r := sessionRouter(NewSessionManager("secret", time.Hour, false))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tampered"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}
