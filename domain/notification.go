package domain

import "time"

// LikeNotification records that Notifier liked one of Notified's tweets.
// It is only created when the liker is not the tweet's author, and at most
// once per like, since the like insert itself is deduplicated.
type LikeNotification struct {
	ID         int   `json:"id"`
	NotifiedID int   `json:"-" gorm:"notNull;index"`
	Notified   User  `json:"-"`
	NotifierID int   `json:"-" gorm:"notNull"`
	Notifier   User  `json:"notifier"`
	TweetID    int   `json:"tweet_id" gorm:"notNull"`
	Tweet      Tweet `json:"tweet"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationService is a set of methods to manipulate and work with the
// LikeNotification model.
type NotificationService interface {
	Create(n *LikeNotification) error
	ByNotified(userID int) ([]LikeNotification, error)
}
