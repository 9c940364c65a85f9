package comments

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
	"github.com/ctan76-dev/suckthumb/src/core/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Add appends a comment to a moment. Whitespace-only text is rejected
// before any write.
func (s *Store) Add(momentID, authorID uuid.UUID, authorEmail, text string) (*models.Comment, error) {
	if authorID == uuid.Nil {
		return nil, faults.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, faults.Validation("comment text is empty")
	}

	var count int64
	if err := s.db.Model(&models.Moment{}).Where("id = ?", momentID).Count(&count).Error; err != nil {
		return nil, faults.Backend(err)
	}
	if count == 0 {
		return nil, faults.ErrNotFound
	}

	comment := models.Comment{
		ID:        uuid.New(),
		MomentID:  momentID,
		UserID:    authorID,
		UserEmail: authorEmail,
		Text:      text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, faults.Backend(err)
	}
	return &comment, nil
}

// Edit replaces the comment text and stamps the edited timestamp.
func (s *Store) Edit(commentID, actorID uuid.UUID, newText string) (*models.Comment, error) {
	comment, err := s.get(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, faults.ErrForbidden
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, faults.Validation("comment text is empty")
	}

	now := time.Now()
	updates := map[string]interface{}{"text": newText, "edited_at": now}
	if err := s.db.Model(comment).Updates(updates).Error; err != nil {
		return nil, faults.Backend(err)
	}
	comment.Text = newText
	comment.EditedAt = &now
	return comment, nil
}

func (s *Store) Delete(commentID, actorID uuid.UUID) error {
	comment, err := s.get(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return faults.ErrForbidden
	}
	if err := s.db.Where("id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
		return faults.Backend(err)
	}
	return nil
}

// ListForMoment returns a moment's comments oldest first. The ascending
// order carries the conversation semantics; an empty slice is a valid
// result, not an error.
func (s *Store) ListForMoment(momentID uuid.UUID) ([]models.Comment, error) {
	var result []models.Comment
	if err := s.db.Where("moment_id = ?", momentID).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, faults.Backend(err)
	}
	return result, nil
}

func (s *Store) CountForMoment(momentID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Comment{}).
		Where("moment_id = ?", momentID).
		Count(&count).Error; err != nil {
		return 0, faults.Backend(err)
	}
	return count, nil
}

func (s *Store) get(commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Where("id = ?", commentID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.ErrNotFound
		}
		return nil, faults.Backend(err)
	}
	return &comment, nil
}
