package moments

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
	"github.com/ctan76-dev/suckthumb/src/core/models"
)

// Attachment references an already-uploaded object. Uploads happen before
// the row insert; a moment never points at a file that failed to upload.
type Attachment struct {
	URL  string
	Kind string
}

var validKinds = map[string]bool{
	models.MediaImage: true,
	models.MediaVideo: true,
	models.MediaFile:  true,
	models.MediaLink:  true,
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new moment. Text may be blank only when an attachment
// is present; a moment with neither is rejected before any write.
func (s *Store) Create(authorID uuid.UUID, authorEmail, text string, attachment *Attachment) (*models.Moment, error) {
	if authorID == uuid.Nil {
		return nil, faults.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return nil, faults.Validation("a moment needs text or an attachment")
	}
	if attachment != nil {
		if attachment.URL == "" {
			return nil, faults.Validation("attachment has no URL")
		}
		if !validKinds[attachment.Kind] {
			return nil, faults.Validation("unknown attachment kind: " + attachment.Kind)
		}
	}

	moment := models.Moment{
		ID:        uuid.New(),
		UserID:    authorID,
		UserEmail: authorEmail,
		Text:      text,
	}
	if attachment != nil {
		moment.MediaURL = attachment.URL
		moment.MediaType = attachment.Kind
	}

	if err := s.db.Create(&moment).Error; err != nil {
		return nil, faults.Backend(err)
	}
	return &moment, nil
}

func (s *Store) Get(id uuid.UUID) (*models.Moment, error) {
	var moment models.Moment
	if err := s.db.Where("id = ?", id).First(&moment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.ErrNotFound
		}
		return nil, faults.Backend(err)
	}
	return &moment, nil
}

// Edit replaces the text of a moment. The attachment is immutable after
// creation, so a moment that carries one may have its text blanked.
func (s *Store) Edit(id, actorID uuid.UUID, newText string) (*models.Moment, error) {
	moment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if moment.UserID != actorID {
		return nil, faults.ErrForbidden
	}
	newText = strings.TrimSpace(newText)
	if newText == "" && moment.MediaURL == "" {
		return nil, faults.Validation("a moment needs text or an attachment")
	}

	if err := s.db.Model(moment).Update("text", newText).Error; err != nil {
		return nil, faults.Backend(err)
	}
	moment.Text = newText
	return moment, nil
}

// Delete removes a moment together with its likes and comments. All three
// deletes run in one transaction so a failure midway leaves nothing
// half-removed. A moment already deleted by a concurrent call reports
// ErrNotFound, which callers treat as benign.
func (s *Store) Delete(id, actorID uuid.UUID) error {
	moment, err := s.Get(id)
	if err != nil {
		return err
	}
	if moment.UserID != actorID {
		return faults.ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("moment_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("moment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Moment{}).Error
	})
	if err != nil {
		return faults.Backend(err)
	}
	return nil
}

// List returns moments newest first. limit <= 0 fetches everything, which
// is the wall's initial-load behavior.
func (s *Store) List(limit, offset int) ([]models.Moment, error) {
	query := s.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var result []models.Moment
	if err := query.Find(&result).Error; err != nil {
		return nil, faults.Backend(err)
	}
	return result, nil
}
