package domain

import "time"

// Topic represents a hashtag extracted from tweet content. Names are stored
// lower-cased and unique; tweets are associated through the tweet_topics join
// table right after creation and the association is immutable afterwards.
type Topic struct {
	ID   int    `json:"id"`
	Name string `json:"name" gorm:"notNull;uniqueIndex"`

	Tweets []Tweet `json:"-" gorm:"many2many:tweet_topics"`

	// TweetCount is filled by ranking queries; there is no backing column.
	TweetCount int `json:"tweet_count" gorm:"->;-:migration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TweetTopic is a row of the tweet_topics join table. Declaring it explicitly
// lets the attach path insert with ON CONFLICT DO NOTHING, so a tweet that
// repeats the same hashtag attaches the topic exactly once without erroring.
type TweetTopic struct {
	TweetID int `gorm:"primaryKey"`
	TopicID int `gorm:"primaryKey"`
}

// TableName keeps the explicit join struct on the same table gorm derives for
// the many2many relation on Tweet.Topics.
func (TweetTopic) TableName() string { return "tweet_topics" }

// TopicService is a set of methods to manipulate and work with the Topic model.
type TopicService interface {
	GetOrCreate(name string) (*Topic, error)
	AttachTweet(tweetID, topicID int) error
}
