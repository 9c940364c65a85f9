package likes

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

func seedMoment(t *testing.T, db *gorm.DB, author uuid.UUID) *models.Moment {
	t.Helper()
	moment := models.Moment{
		ID:        uuid.New(),
		UserID:    author,
		UserEmail: "author@example.com",
		Text:      "Got rejected today",
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&moment).Error)
	return &moment
}

func likeRows(t *testing.T, db *gorm.DB, momentID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("moment_id = ?", momentID).Count(&count).Error)
	return count
}

func cachedCount(t *testing.T, db *gorm.DB, momentID uuid.UUID) int {
	t.Helper()
	var moment models.Moment
	require.NoError(t, db.Where("id = ?", momentID).First(&moment).Error)
	return moment.LikesCount
}

func TestLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())
	bob := uuid.New()

	require.NoError(t, store.Like(moment.ID, bob))
	require.NoError(t, store.Like(moment.ID, bob))

	assert.EqualValues(t, 1, likeRows(t, db, moment.ID))
	assert.Equal(t, 1, cachedCount(t, db, moment.ID))

	liked, err := store.HasLiked(moment.ID, bob)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestUnlikeWithoutLikeIsNoop(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())

	require.NoError(t, store.Unlike(moment.ID, uuid.New()))
	assert.EqualValues(t, 0, likeRows(t, db, moment.ID))
	assert.Equal(t, 0, cachedCount(t, db, moment.ID))
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())
	bob := uuid.New()

	require.NoError(t, store.Like(moment.ID, bob))
	require.NoError(t, store.Unlike(moment.ID, bob))
	require.NoError(t, store.Like(moment.ID, bob))

	assert.EqualValues(t, 1, likeRows(t, db, moment.ID))
	assert.Equal(t, 1, cachedCount(t, db, moment.ID))

	require.NoError(t, store.Unlike(moment.ID, bob))
	assert.EqualValues(t, 0, likeRows(t, db, moment.ID))
	assert.Equal(t, 0, cachedCount(t, db, moment.ID))

	liked, err := store.HasLiked(moment.ID, bob)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCounterMatchesRowsAfterMixedToggles(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())
	bob, carol, dave := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, store.Like(moment.ID, bob))
	require.NoError(t, store.Like(moment.ID, carol))
	require.NoError(t, store.Like(moment.ID, carol))
	require.NoError(t, store.Like(moment.ID, dave))
	require.NoError(t, store.Unlike(moment.ID, bob))
	require.NoError(t, store.Unlike(moment.ID, bob))

	rows := likeRows(t, db, moment.ID)
	assert.EqualValues(t, 2, rows)
	assert.EqualValues(t, rows, cachedCount(t, db, moment.ID))

	trueCount, err := store.Count(moment.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, trueCount)
}

func TestCounterNeverDropsBelowZero(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())
	bob := uuid.New()

	// Simulate drift: a like row exists but the cache reads zero.
	require.NoError(t, db.Create(&models.Like{MomentID: moment.ID, UserID: bob}).Error)
	require.NoError(t, db.Model(&models.Moment{}).Where("id = ?", moment.ID).
		UpdateColumn("likes_count", 0).Error)

	require.NoError(t, store.Unlike(moment.ID, bob))
	assert.Equal(t, 0, cachedCount(t, db, moment.ID))
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())

	require.NoError(t, store.Like(moment.ID, uuid.New()))
	require.NoError(t, store.Like(moment.ID, uuid.New()))
	require.NoError(t, db.Model(&models.Moment{}).Where("id = ?", moment.ID).
		UpdateColumn("likes_count", 99).Error)

	require.NoError(t, store.Reconcile(moment.ID))
	assert.Equal(t, 2, cachedCount(t, db, moment.ID))
}

func TestLikeUnknownMomentReportsNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	err := store.Like(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, faults.ErrNotFound)
}

func TestLikeRequiresSession(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())

	assert.ErrorIs(t, store.Like(moment.ID, uuid.Nil), faults.ErrUnauthenticated)
	assert.ErrorIs(t, store.Unlike(moment.ID, uuid.Nil), faults.ErrUnauthenticated)
	_, err := store.LikedMomentIDs(uuid.Nil)
	assert.ErrorIs(t, err, faults.ErrUnauthenticated)
}

func TestLikedMomentIDs(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	first := seedMoment(t, db, uuid.New())
	second := seedMoment(t, db, uuid.New())
	third := seedMoment(t, db, uuid.New())
	bob := uuid.New()

	require.NoError(t, store.Like(first.ID, bob))
	require.NoError(t, store.Like(third.ID, bob))
	require.NoError(t, store.Like(second.ID, uuid.New()))

	ids, err := store.LikedMomentIDs(bob)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, third.ID)
}

func TestConcurrentTogglesStayConsistent(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	moment := seedMoment(t, db, uuid.New())

	users := make([]uuid.UUID, 8)
	for i := range users {
		users[i] = uuid.New()
	}

	done := make(chan error, len(users))
	for _, u := range users {
		go func(u uuid.UUID) {
			if err := store.Like(moment.ID, u); err != nil {
				done <- err
				return
			}
			done <- store.Like(moment.ID, u)
		}(u)
	}
	for range users {
		require.NoError(t, <-done)
	}

	rows := likeRows(t, db, moment.ID)
	assert.EqualValues(t, len(users), rows)
	assert.EqualValues(t, rows, cachedCount(t, db, moment.ID))
}
