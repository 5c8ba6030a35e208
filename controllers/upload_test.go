package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_EmptyFileInput(t *testing.T) {
	a := newApp(t)
	alice := a.userClient("Alice")

	w := alice.postMultipart("/add_attraction", map[string]string{"attraction_name": "Museum"}, "", nil)
	alice.assertRedirect(w, "/browse", utils.FlashSuccess, "Museum has been added and is pending approval")
	assert.Empty(t, a.attraction(1).Image)

	w = alice.postMultipart("/add_attraction", map[string]string{"attraction_name": "Park"}, "park.png", pngHeader)
	require.Equal(t, http.StatusFound, w.Code)
	alice.get("/home")
	image := a.attraction(2).Image
	require.NotEmpty(t, image)

	w = alice.postMultipart("/edit_attraction/2", map[string]string{"attraction_name": "City Park"}, "", nil)
	alice.assertRedirect(w, "/my_pending", utils.FlashSuccess, "Attraction updated successfully!")
	park := a.attraction(2)
	assert.Equal(t, "City Park", park.Name)
	assert.Equal(t, image, park.Image)
}

func TestScenario_SameImageNameKeepsApprovedImage(t *testing.T) {
	a := newApp(t)
	alice := a.userClient("Alice")
	bob := a.userClient("Bob")
	admin := a.adminClient("Root")

	w := alice.postMultipart("/add_attraction", map[string]string{"attraction_name": "Museum"}, "museum.png", append(append([]byte{}, pngHeader...), "ALICE"...))
	require.Equal(t, http.StatusFound, w.Code)
	alice.get("/home")
	w = admin.post("/approve_attraction/1", nil)
	require.Equal(t, http.StatusFound, w.Code)
	admin.get("/home")

	w = bob.postMultipart("/add_attraction", map[string]string{"attraction_name": "Gallery"}, "museum.png", append(append([]byte{}, pngHeader...), "BOB"...))
	require.Equal(t, http.StatusFound, w.Code)
	bob.get("/home")

	museum, gallery := a.attraction(1), a.attraction(2)
	assert.NotEqual(t, museum.Image, gallery.Image)
	data, err := os.ReadFile(filepath.Join(a.staticDir, filepath.FromSlash(museum.Image)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "ALICE"))
}

type failingAttractionCreates struct {
	store.AttractionRepository
}

func (failingAttractionCreates) Create(context.Context, *models.Attraction) error {
	return errors.New("database unavailable")
}

type failingCreateStore struct {
	*store.MemoryStore
}

func (s failingCreateStore) Attractions() store.AttractionRepository {
	return failingAttractionCreates{s.MemoryStore.Attractions()}
}

func TestScenario_FailedSubmitRemovesUpload(t *testing.T) {
	a := newAppWith(t, func(st *store.MemoryStore) store.Store { return failingCreateStore{st} })
	alice := a.userClient("Alice")

	w := alice.postMultipart("/add_attraction", map[string]string{"attraction_name": "Museum"}, "museum.png", pngHeader)
	alice.assertRedirect(w, "/add_attraction", utils.FlashDanger, "Something went wrong, please try again")

	entries, err := os.ReadDir(filepath.Join(a.staticDir, "images"))
	if !os.IsNotExist(err) {
		require.NoError(t, err)
	}
	assert.Empty(t, entries)
}

func TestScenario_CrossSitePostRefused(t *testing.T) {
	a := newApp(t)
	alice := a.userClient("Alice")

	req := newFormRequest("/add_attraction", url.Values{"attraction_name": {"Museum"}})
	req.Header.Set("Origin", "https://evil.example.net")
	w := alice.send(req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, err := a.store.Attractions().FindByAttractionID(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	req = newFormRequest("/add_attraction", url.Values{"attraction_name": {"Museum"}})
	req.Header.Set("Origin", "http://example.com")
	w = alice.send(req)
	alice.assertRedirect(w, "/browse", utils.FlashSuccess, "Museum has been added and is pending approval")
}
