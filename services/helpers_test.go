package services_test

import (
	"context"
	"testing"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/models"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/store"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	store *store.MemoryStore
	svc   *services.Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	return &fixture{
		ctx:   context.Background(),
		store: st,
		svc:   services.New(st, services.NewLocalLocker()),
	}
}

func (f *fixture) seedUser(t *testing.T, userID int, firstName string) *utils.Session {
	t.Helper()
	require.NoError(t, f.store.Users().Create(f.ctx, &models.User{
		UserID:    userID,
		FirstName: firstName,
		Email:     firstName + "@test.com",
	}))
	return &utils.Session{UserID: userID, Username: firstName}
}

func (f *fixture) seedAdmin(t *testing.T, userID int, firstName string) *utils.Session {
	t.Helper()
	sess := f.seedUser(t, userID, firstName)
	require.NoError(t, f.store.Admins().Create(f.ctx, &models.Admin{AdminID: userID, UserID: userID}))
	sess.IsAdmin = true
	return sess
}

func (f *fixture) seedAttraction(t *testing.T, id int, status models.AttractionStatus, createdBy int) {
	t.Helper()
	require.NoError(t, f.store.Attractions().Create(f.ctx, &models.Attraction{
		AttractionID: id,
		Name:         "Attraction",
		Status:       status,
		CreatedBy:    createdBy,
	}))
}

func (f *fixture) attraction(t *testing.T, id int) *models.Attraction {
	t.Helper()
	a, err := f.store.Attractions().FindByAttractionID(f.ctx, id)
	require.NoError(t, err)
	return a
}

func assertUserError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	msg, ok := services.UserMessage(err)
	assert.True(t, ok)
	assert.Equal(t, message, msg)
}
