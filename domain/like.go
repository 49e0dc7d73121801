package domain

import "time"

// Like represents a many-to-many relationship between a User and a Tweet.
// At most one Like may exist per (tweet, user) pair. The unique index is the
// safety net against two concurrent identical submissions, so the write path
// inserts through it instead of checking first.
type Like struct {
	ID      int   `json:"id"`
	TweetID int   `json:"tweet_id" gorm:"notNull;uniqueIndex:idx_likes_tweet_user"`
	Tweet   Tweet `json:"-"`
	UserID  int   `json:"user_id" gorm:"notNull;uniqueIndex:idx_likes_tweet_user"`
	User    User  `json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	ByTweetID(tweetID int) ([]Like, error)
	Create(like *Like) error
}
