package likes

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
	"github.com/ctan76-dev/suckthumb/src/core/models"
)

// Store toggles likes while keeping moments.likes_count in step with the
// likes table. The table is the source of truth; the counter is a cache
// that only ever moves through atomic SQL updates, and only when the like
// insert or delete actually changed a row. No read-modify-write path to
// the counter exists.
type Store struct {
	db *gorm.DB

	mu       sync.Mutex
	inflight map[uuid.UUID]*momentLock
}

type momentLock struct {
	sync.Mutex
	refs int
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, inflight: make(map[uuid.UUID]*momentLock)}
}

// lock serializes mutations against one moment from this process. The
// database constraint stays the real guard; this only prevents a client's
// own rapid double-toggles from interleaving.
func (s *Store) lock(momentID uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.inflight[momentID]
	if !ok {
		l = &momentLock{}
		s.inflight[momentID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.inflight, momentID)
		}
		s.mu.Unlock()
	}
}

// Like records that userID likes momentID. Liking a moment twice is a
// no-op, not an error; the counter moves only when a row was inserted.
func (s *Store) Like(momentID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return faults.ErrUnauthenticated
	}
	unlock := s.lock(momentID)
	defer unlock()

	if err := s.ensureMomentExists(momentID); err != nil {
		return err
	}

	like := models.Like{MomentID: momentID, UserID: userID}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "moment_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&like)
	if result.Error != nil {
		return faults.Backend(result.Error)
	}
	if result.RowsAffected == 0 {
		// Already liked
		return nil
	}

	if err := s.db.Model(&models.Moment{}).
		Where("id = ?", momentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
		return faults.Backend(err)
	}
	return nil
}

// Unlike removes the like if it exists. The decrement is guarded so the
// counter never drops below zero even if the cache has drifted.
func (s *Store) Unlike(momentID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return faults.ErrUnauthenticated
	}
	unlock := s.lock(momentID)
	defer unlock()

	result := s.db.Where("moment_id = ? AND user_id = ?", momentID, userID).Delete(&models.Like{})
	if result.Error != nil {
		return faults.Backend(result.Error)
	}
	if result.RowsAffected == 0 {
		// Nothing to unlike
		return nil
	}

	if err := s.db.Model(&models.Moment{}).
		Where("id = ? AND likes_count > 0", momentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
		return faults.Backend(err)
	}
	return nil
}

// HasLiked reports whether the user has an existing like on the moment.
func (s *Store) HasLiked(momentID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Like{}).
		Where("moment_id = ? AND user_id = ?", momentID, userID).
		Count(&count).Error; err != nil {
		return false, faults.Backend(err)
	}
	return count > 0, nil
}

// LikedMomentIDs returns every moment the user has liked, fetched once per
// session and kept current client-side through Like/Unlike calls.
func (s *Store) LikedMomentIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, faults.ErrUnauthenticated
	}
	var ids []uuid.UUID
	if err := s.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("moment_id", &ids).Error; err != nil {
		return nil, faults.Backend(err)
	}
	return ids, nil
}

// Count returns the true like count from the likes table.
func (s *Store) Count(momentID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Like{}).
		Where("moment_id = ?", momentID).
		Count(&count).Error; err != nil {
		return 0, faults.Backend(err)
	}
	return count, nil
}

// Reconcile rewrites the cached counter from the true row count. Run it on
// a schedule or after suspected drift; Like/Unlike alone keep the two in
// step under normal operation.
func (s *Store) Reconcile(momentID uuid.UUID) error {
	unlock := s.lock(momentID)
	defer unlock()

	err := s.db.Model(&models.Moment{}).
		Where("id = ?", momentID).
		UpdateColumn("likes_count", gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.moment_id = moments.id)")).Error
	if err != nil {
		return faults.Backend(err)
	}
	return nil
}

func (s *Store) ensureMomentExists(momentID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Moment{}).Where("id = ?", momentID).Count(&count).Error; err != nil {
		return faults.Backend(err)
	}
	if count == 0 {
		return faults.ErrNotFound
	}
	return nil
}
