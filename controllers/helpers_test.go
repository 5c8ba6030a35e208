package controllers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/middleware"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/routes"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/storage"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	t         *testing.T
	engine    *gin.Engine
	store     *store.MemoryStore
	svc       *services.Services
	staticDir string
}

func newApp(t *testing.T) *app {
	t.Helper()
	return newAppWith(t, func(st *store.MemoryStore) store.Store { return st })
}

// newAppWith serves the app from wrap(st) while tests inspect st directly.
func newAppWith(t *testing.T, wrap func(*store.MemoryStore) store.Store) *app {
	t.Helper()
	mem := store.NewMemoryStore()
	st := wrap(mem)
	svc := services.New(st, services.NewLocalLocker())
	staticDir := t.TempDir()

	engine, err := routes.NewEngine(routes.Dependencies{
		Store:     st,
		Services:  svc,
		Sessions:  middleware.NewSessionManager(testSecret, time.Hour, false),
		Images:    storage.NewUploader(storage.NewLocalStore(staticDir), 1<<20),
		StaticDir: staticDir,
	})
	require.NoError(t, err)
	return &app{t: t, engine: engine, store: mem, svc: svc, staticDir: staticDir}
}

// client keeps cookies between requests like a browser would.
type client struct {
	app     *app
	cookies map[string]*http.Cookie
}

func (a *app) client() *client {
	return &client{app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.app.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func newFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.send(newFormRequest(path, form))
}

// postMultipart submits a form the way a browser does: the image part is
// always present and carries filename="" when no file was chosen.
func (c *client) postMultipart(path string, fields map[string]string, fileName string, file []byte) *httptest.ResponseRecorder {
	c.app.t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(c.app.t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", fileName)
	require.NoError(c.app.t, err)
	_, err = fw.Write(file)
	require.NoError(c.app.t, err)
	require.NoError(c.app.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req)
}

// flashes returns the messages queued for the next page.
func (c *client) flashes() []utils.FlashMessage {
	ck, ok := c.cookies["flash"]
	if !ok {
		return nil
	}
	return utils.DecodeFlashes(ck.Value, []byte(testSecret))
}

func (c *client) assertRedirect(w *httptest.ResponseRecorder, location, category, message string) {
	c.app.t.Helper()
	assert.Equal(c.app.t, http.StatusFound, w.Code)
	assert.Equal(c.app.t, location, w.Header().Get("Location"))
	if message == "" {
		return
	}
	assert.Contains(c.app.t, c.flashes(), utils.FlashMessage{Category: category, Message: message})
	// Rendering the next page consumes the messages.
	c.get("/home")
}

func (c *client) register(first, email, password string) {
	c.app.t.Helper()
	w := c.post("/register", url.Values{
		"first_name": {first},
		"last_name":  {"Tester"},
		"email":      {email},
		"password":   {password},
	})
	c.assertRedirect(w, "/home", utils.FlashSuccess, "You are registered")
}

func (c *client) login(email, password string) {
	c.app.t.Helper()
	w := c.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(c.app.t, http.StatusFound, w.Code)
	require.Contains(c.app.t, c.cookies, "session")
	c.get("/home")
}

// userClient registers and logs in a fresh user.
func (a *app) userClient(first string) *client {
	c := a.client()
	email := strings.ToLower(first) + "@example.com"
	c.register(first, email, "password1")
	c.login(email, "password1")
	return c
}

// adminClient registers a user, grants admin and logs in so the session
// carries the flag.
func (a *app) adminClient(first string) *client {
	c := a.client()
	email := strings.ToLower(first) + "@example.com"
	c.register(first, email, "password1")
	_, err := a.svc.Admin.Grant(context.Background(), email)
	require.NoError(a.t, err)
	c.login(email, "password1")
	return c
}

func (a *app) attraction(id int) *models.Attraction {
	a.t.Helper()
	at, err := a.store.Attractions().FindByAttractionID(context.Background(), id)
	require.NoError(a.t, err)
	return at
}
