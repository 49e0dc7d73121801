package domain

import "time"

// Comment represents a reply left under a tweet. LikeAmount is the same kind
// of denormalized hint as the counters on Tweet.
type Comment struct {
	ID      int    `json:"id"`
	TweetID int    `json:"tweet_id" gorm:"notNull;index"`
	Tweet   Tweet  `json:"-"`
	UserID  int    `json:"user_id" gorm:"notNull"`
	User    User   `json:"user"`
	Content string `json:"content"`

	LikeAmount int `json:"like_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentLike represents a user liking a comment. At most one may exist per
// (comment, user) pair, enforced by a unique index.
type CommentLike struct {
	ID        int `json:"id"`
	CommentID int `json:"comment_id" gorm:"notNull;uniqueIndex:idx_comment_likes_comment_user"`
	UserID    int `json:"user_id" gorm:"notNull;uniqueIndex:idx_comment_likes_comment_user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentService is a set of methods to manipulate and work with the Comment
// and CommentLike models.
type CommentService interface {
	ByTweetID(tweetID int) ([]Comment, error)
	Create(comment *Comment) error
	Like(commentID, userID int) error
}
