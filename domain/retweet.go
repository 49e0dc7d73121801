package domain

import "time"

// Retweet records a user re-posting an existing tweet. One per (tweet, user)
// pair. Retweets do not participate in feed composition.
type Retweet struct {
	ID      int   `json:"id"`
	TweetID int   `json:"tweet_id" gorm:"notNull;uniqueIndex:idx_retweets_tweet_user"`
	Tweet   Tweet `json:"tweet"`
	UserID  int   `json:"user_id" gorm:"notNull;uniqueIndex:idx_retweets_tweet_user"`
	User    User  `json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RetweetService is a set of methods to manipulate and work with the Retweet model.
type RetweetService interface {
	Create(retweet *Retweet) error
}
