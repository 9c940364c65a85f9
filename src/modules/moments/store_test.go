package moments

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
	"github.com/ctan76-dev/suckthumb/src/core/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Moment{}, &models.Like{}, &models.Comment{}))
	return db
}

func TestCreateRequiresTextOrAttachment(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	_, err := store.Create(alice, "alice@example.com", "   ", nil)
	assert.ErrorIs(t, err, faults.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Moment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateWithTextOnly(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "Got rejected today", nil)
	require.NoError(t, err)
	assert.Equal(t, alice, moment.UserID)
	assert.Equal(t, "Got rejected today", moment.Text)
	assert.Equal(t, 0, moment.LikesCount)
	assert.Empty(t, moment.MediaURL)
}

func TestCreateWithAttachmentOnly(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	moment, err := store.Create(uuid.New(), "alice@example.com", "", &Attachment{
		URL:  "https://cdn.example.com/u/1-abc.png",
		Kind: models.MediaImage,
	})
	require.NoError(t, err)
	assert.Empty(t, moment.Text)
	assert.Equal(t, models.MediaImage, moment.MediaType)
}

func TestCreateRejectsUnknownAttachmentKind(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	_, err := store.Create(uuid.New(), "a@b.com", "text", &Attachment{URL: "x", Kind: "gif"})
	assert.ErrorIs(t, err, faults.ErrValidation)
}

func TestCreateRequiresSession(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	_, err := store.Create(uuid.Nil, "", "hello", nil)
	assert.ErrorIs(t, err, faults.ErrUnauthenticated)
}

func TestEditByNonAuthorIsForbidden(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "original", nil)
	require.NoError(t, err)

	_, err = store.Edit(moment.ID, uuid.New(), "hijacked")
	assert.ErrorIs(t, err, faults.ErrForbidden)

	var stored models.Moment
	require.NoError(t, db.Where("id = ?", moment.ID).First(&stored).Error)
	assert.Equal(t, "original", stored.Text)
}

func TestEditByAuthorReplacesText(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "original", nil)
	require.NoError(t, err)

	edited, err := store.Edit(moment.ID, alice, "updated")
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.Text)

	var stored models.Moment
	require.NoError(t, db.Where("id = ?", moment.ID).First(&stored).Error)
	assert.Equal(t, "updated", stored.Text)
}

func TestEditVanishedMomentReportsNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	_, err := store.Edit(uuid.New(), uuid.New(), "text")
	assert.ErrorIs(t, err, faults.ErrNotFound)
}

func TestEditCannotBlankTextWithoutAttachment(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "original", nil)
	require.NoError(t, err)

	_, err = store.Edit(moment.ID, alice, "  ")
	assert.ErrorIs(t, err, faults.ErrValidation)
}

func TestDeleteByNonAuthorIsForbidden(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "mine", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete(moment.ID, uuid.New()), faults.ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Moment{}).Where("id = ?", moment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCascadesToLikesAndComments(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice, bob := uuid.New(), uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "Got rejected today", nil)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Like{MomentID: moment.ID, UserID: bob}).Error)
	require.NoError(t, db.Create(&models.Comment{
		ID:       uuid.New(),
		MomentID: moment.ID,
		UserID:   bob,
		Text:     "hang in there",
	}).Error)

	require.NoError(t, store.Delete(moment.ID, alice))

	var likes, comments, moments int64
	require.NoError(t, db.Model(&models.Like{}).Where("moment_id = ?", moment.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("moment_id = ?", moment.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Moment{}).Where("id = ?", moment.ID).Count(&moments).Error)
	assert.EqualValues(t, 0, likes)
	assert.EqualValues(t, 0, comments)
	assert.EqualValues(t, 0, moments)
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	moment, err := store.Create(alice, "alice@example.com", "fleeting", nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(moment.ID, alice))
	assert.ErrorIs(t, store.Delete(moment.ID, alice), faults.ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	alice := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		moment := models.Moment{
			ID:        uuid.New(),
			UserID:    alice,
			Text:      fmt.Sprintf("story %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&moment).Error)
	}

	listed, err := store.List(0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "story 2", listed[0].Text)
	assert.Equal(t, "story 0", listed[2].Text)

	page, err := store.List(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "story 1", page[0].Text)
}
