package event

import (
	"testing"
	"time"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/pkg/inttest"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *gorm.DB, model.Actor) {
	t.Helper()

	db := inttest.SetupDB(t)

	author := &model.User{Email: "admin@confdeck.org"}
	require.NoError(t, db.Create(author).Error)

	return NewService(NewRepository(db)), db, model.NewActor(author)
}

func TestCreate(t *testing.T) {
	service, _, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	event, err := service.Create(actor, "RuPy", "Ruby and Python conference", dueDate, true, true)

	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, "rupy", event.Slug)
	assert.True(t, event.IsPublished)
	assert.True(t, event.AllowPublicVoting)
}

func TestCreateAnonymous(t *testing.T) {
	service, _, _ := setup(t)

	_, err := service.Create(model.Anonymous(), "RuPy", "", time.Now(), true, true)

	require.True(t, errdef.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestCreateSlugCollision(t *testing.T) {
	service, _, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	first, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)
	second, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)
	third, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)

	assert.Equal(t, "rupy", first.Slug)
	assert.Equal(t, "rupy-2", second.Slug)
	assert.Equal(t, "rupy-3", third.Slug)
}

func TestUpdate(t *testing.T) {
	service, _, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	event, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)

	updated, err := service.Update(actor, event.Slug, UpdateEvent{
		Title:             "RuPy 2014",
		Description:       "Now with a year",
		DueDate:           dueDate,
		IsPublished:       true,
		AllowPublicVoting: false,
	})

	require.NoError(t, err)
	assert.Equal(t, "RuPy 2014", updated.Title)
	assert.Equal(t, "rupy-2014", updated.Slug, "the slug follows the title")
	assert.False(t, updated.AllowPublicVoting)

	_, err = service.FindBySlug("rupy")
	assert.True(t, errdef.IsNotFound(err), "the old slug no longer resolves")
}

func TestUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	service, _, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	event, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)

	updated, err := service.Update(actor, event.Slug, UpdateEvent{
		Title:             "RuPy",
		Description:       "New description",
		DueDate:           dueDate,
		IsPublished:       true,
		AllowPublicVoting: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "rupy", updated.Slug)
}

func TestUpdateNotAuthor(t *testing.T) {
	service, db, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	event, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)

	other := &model.User{Email: "user@confdeck.org"}
	require.NoError(t, db.Create(other).Error)

	unchanged, err := service.Update(model.NewActor(other), event.Slug, UpdateEvent{Title: "Hijacked"})

	require.True(t, errdef.IsForbidden(err), "expected forbidden, got %v", err)
	require.NotNil(t, unchanged)
	assert.Equal(t, "RuPy", unchanged.Title)

	persisted, err := service.FindBySlug("rupy")
	require.NoError(t, err)
	assert.Equal(t, "RuPy", persisted.Title)
}

func TestFindBySlugNotFound(t *testing.T) {
	service, _, _ := setup(t)

	_, err := service.FindBySlug("unknown")

	require.True(t, errdef.IsNotFound(err), "expected not found, got %v", err)
}

func TestFindAllPublished(t *testing.T) {
	service, db, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	_, err := service.Create(actor, "Draft", "", dueDate, false, true)
	require.NoError(t, err)
	published, err := service.Create(actor, "RuPy", "", dueDate, true, true)
	require.NoError(t, err)

	// make ordering deterministic regardless of clock resolution
	require.NoError(t, db.Model(published).Update("created_at", time.Now().Add(time.Second)).Error)
	newest, err := service.Create(actor, "GopherCon", "", dueDate, true, true)
	require.NoError(t, err)
	require.NoError(t, db.Model(newest).Update("created_at", time.Now().Add(2*time.Second)).Error)

	events, err := service.FindAllPublished()

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "gophercon", events[0].Slug, "newest first")
	assert.Equal(t, "rupy", events[1].Slug)
}

func TestFindByAuthor(t *testing.T) {
	service, db, actor := setup(t)
	dueDate := time.Now().Add(24 * time.Hour)

	_, err := service.Create(actor, "RuPy", "", dueDate, false, true)
	require.NoError(t, err)

	other := &model.User{Email: "user@confdeck.org"}
	require.NoError(t, db.Create(other).Error)
	_, err = service.Create(model.NewActor(other), "GopherCon", "", dueDate, true, true)
	require.NoError(t, err)

	events, err := service.FindByAuthor(actor)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "rupy", events[0].Slug)

	_, err = service.FindByAuthor(model.Anonymous())
	assert.True(t, errdef.IsUnauthorized(err))
}
