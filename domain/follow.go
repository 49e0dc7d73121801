package domain

import "time"

// Follow represents a self-referential many-to-many relationship between two
// users. The FollowerID is the ID of the user that follows, the FollowedID the
// ID of the user being followed. The pair is unique at the storage layer.
type Follow struct {
	ID         int  `json:"id"`
	FollowerID int  `json:"-" gorm:"notNull;uniqueIndex:idx_follows_follower_followed"`
	Follower   User `json:"follower"`
	FollowedID int  `json:"-" gorm:"notNull;uniqueIndex:idx_follows_follower_followed"`
	Followed   User `json:"followed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	Create(follow *Follow) error
}
