package wall

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
)

// WallPost is a moment projected with its engagement aggregates. The
// counts come from the database at fetch time; Bump* adjust them locally
// after the current user's own mutation.
type WallPost struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	Text         string    `json:"text"`
	MediaURL     string    `json:"media_url,omitempty"`
	MediaType    string    `json:"media_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"comment_count"`
	LikeCount    int       `json:"like_count"`
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Fetch loads every moment with its true comment and like counts in one
// query, newest first. This is the source of truth on initial load and on
// explicit refresh.
func (s *Store) Fetch() ([]WallPost, error) {
	var posts []WallPost
	err := s.db.Table("moments").
		Select(`moments.id, moments.user_id, moments.user_email, moments.text,
			moments.media_url, moments.media_type, moments.created_at,
			(SELECT COUNT(*) FROM comments WHERE comments.moment_id = moments.id) AS comment_count,
			(SELECT COUNT(*) FROM likes WHERE likes.moment_id = moments.id) AS like_count`).
		Order("moments.created_at DESC").
		Scan(&posts).Error
	if err != nil {
		return nil, faults.Backend(err)
	}
	return posts, nil
}

// Rank orders posts in place: most comments first, like count breaking
// comment ties, and remaining ties keeping their fetch order. The stable
// tie-break keeps the wall from reshuffling between renders.
func Rank(posts []WallPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CommentCount != posts[j].CommentCount {
			return posts[i].CommentCount > posts[j].CommentCount
		}
		return posts[i].LikeCount > posts[j].LikeCount
	})
}

// BumpLike adjusts one post's like count after a local Like/Unlike and
// re-ranks, so a toggle does not force a full refetch. The count never
// drops below zero.
func BumpLike(posts []WallPost, id string, delta int) {
	for i := range posts {
		if posts[i].ID == id {
			posts[i].LikeCount += delta
			if posts[i].LikeCount < 0 {
				posts[i].LikeCount = 0
			}
			break
		}
	}
	Rank(posts)
}

// BumpComment adjusts one post's comment count after a local add and
// re-ranks.
func BumpComment(posts []WallPost, id string, delta int) {
	for i := range posts {
		if posts[i].ID == id {
			posts[i].CommentCount += delta
			if posts[i].CommentCount < 0 {
				posts[i].CommentCount = 0
			}
			break
		}
	}
	Rank(posts)
}

// MaskEmail hides most of the local part of an author label: "ab••@x.com".
// Anything that does not look like an email comes back as "Anonymous".
func MaskEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		if email == "" {
			return "Anonymous"
		}
		return email
	}
	parts := strings.SplitN(email, "@", 2)
	user, domain := parts[0], parts[1]
	if domain == "" {
		return "Anonymous"
	}
	visible := user
	if len(user) > 2 {
		visible = user[:2]
	}
	bullets := len(user) - len(visible)
	if bullets > 2 {
		bullets = 2
	}
	return visible + strings.Repeat("•", bullets) + "@" + domain
}
