package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFlashKey = []byte("flash-secret")

func guardedRouter(session *utils.Session, guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		utils.SetFlashKey(c, testFlashKey)
		if session != nil {
			utils.SetSession(c, session)
		}
		c.Next()
	})
	r.GET("/target", guard, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) []utils.FlashMessage {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			return utils.DecodeFlashes(ck.Value, testFlashKey)
		}
	}
	return nil
}

func TestRequireLogin(t *testing.T) {
	w := httptest.NewRecorder()
	guardedRouter(nil, RequireLogin("Please log in")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/target", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	flashes := flashCookie(t, w)
	require.Len(t, flashes, 1)
	assert.Equal(t, utils.FlashMessage{Category: utils.FlashWarning, Message: "Please log in"}, flashes[0])

	w = httptest.NewRecorder()
	guardedRouter(&utils.Session{UserID: 1}, RequireLogin("Please log in")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/target", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		session *utils.Session
		allowed bool
	}{
		{"anonymous", nil, false},
		{"user", &utils.Session{UserID: 1}, false},
		{"admin", &utils.Session{UserID: 1, IsAdmin: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			guardedRouter(tt.session, RequireAdmin()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/target", nil))
			if tt.allowed {
				assert.Equal(t, http.StatusOK, w.Code)
				return
			}
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/home", w.Header().Get("Location"))
			flashes := flashCookie(t, w)
			require.Len(t, flashes, 1)
			assert.Equal(t, "You are not authorised", flashes[0].Message)
		})
	}
}

func TestAnonymousOnly(t *testing.T) {
	w := httptest.NewRecorder()
	guardedRouter(&utils.Session{UserID: 1}, AnonymousOnly()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/target", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	w = httptest.NewRecorder()
	guardedRouter(nil, AnonymousOnly()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/target", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
