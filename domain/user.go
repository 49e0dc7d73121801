package domain

import (
	"time"
)

// User represents a registered account. It doubles as the profile record that
// the identity layer resolves a request to. The Password field only ever holds
// an incoming plaintext password and is never written to the database, same as
// the Remember token, which is only stored in hashed form.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	Tweets    []Tweet  `json:"tweets,omitempty"`
	Likes     []Like   `json:"likes,omitempty"`
	Followers []Follow `json:"followers,omitempty" gorm:"foreignKey:FollowedID"`
	Followeds []Follow `json:"followeds,omitempty" gorm:"foreignKey:FollowerID"`

	// Aggregates set by the handlers, not mapped to columns.
	TweetCount    int     `json:"tweet_count" gorm:"-"`
	FollowerCount int     `json:"follower_count" gorm:"-"`
	FollowedCount int     `json:"followed_count" gorm:"-"`
	AuthFollow    *Follow `json:"auth_follow,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
// It also contains the database-facing half of the authentication system.
type UserService interface {
	Authenticate(email, password string) (*User, error)
	ByID(id int) (*User, error)
	ByEmail(email string) (*User, error)
	ByRemember(token string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	Search(term string) ([]User, error)
	CountTweets(userID int) (int, error)
	CountFollowers(userID int) (int, error)
	CountFolloweds(userID int) (int, error)
}
