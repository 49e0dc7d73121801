package domain

import (
	"regexp"
	"time"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags returns every substring of text that immediately follows a
// '#' and consists of word characters (letters, digits, underscore), in order
// of first occurrence. Repeated tags are kept as-is and case is preserved;
// callers lower-case before using a tag as a lookup key.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// Tweet represents a single user-authored post, text and/or image.
// LikeAmount and CommentAmount are denormalized hints refreshed on every
// engagement write; the feed path recomputes both from the live Like and
// Comment records instead of trusting them.
type Tweet struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id" gorm:"notNull;index"`
	User    User   `json:"user"`
	Content string `json:"content"`

	Topics        []Topic `json:"topics" gorm:"many2many:tweet_topics"`
	LikeAmount    int     `json:"like_amount"`
	CommentAmount int     `json:"comment_amount"`

	Images []Image `json:"images" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hashtags extracts the hashtags contained in the tweet's content.
func (t *Tweet) Hashtags() []string {
	return ExtractHashtags(t.Content)
}

// TweetService is a set of methods to manipulate and work with the Tweet model.
type TweetService interface {
	ByID(id int) (*Tweet, error)
	ByUserID(userID int) ([]Tweet, error)
	ByTopic(name string) ([]Tweet, error)
	Create(tweet *Tweet) error
}
