package crud

import (
	"math/rand"

	"gorm.io/gorm"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db           *gorm.DB
	User         *UserService
	OAuth        *OAuthService
	Tweet        *TweetService
	Topic        *TopicService
	Feed         *FeedService
	Suggestion   *SuggestionService
	Follow       *FollowService
	Like         *LikeService
	Comment      *CommentService
	Retweet      *RetweetService
	Notification *NotificationService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it creates.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser(hmacKey, pepper string) ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db, hmacKey, pepper)
		return nil
	}
}

// WithOAuth wraps the constructor of OAuthService, NewOAuthService.
func WithOAuth() ServicesConfig {
	return func(s *Services) error {
		s.OAuth = NewOAuthService(s.db)
		return nil
	}
}

// WithTweet wraps the constructor of TweetService, NewTweetService.
// It depends on WithTopic having run first, since freshly created tweets
// get their hashtag topics attached through the topic service.
func WithTweet() ServicesConfig {
	return func(s *Services) error {
		s.Tweet = NewTweetService(s.db, s.Topic)
		return nil
	}
}

// WithTopic wraps the constructor of TopicService, NewTopicService.
func WithTopic() ServicesConfig {
	return func(s *Services) error {
		s.Topic = NewTopicService(s.db)
		return nil
	}
}

// WithFeed wraps the constructor of FeedService, NewFeedService.
func WithFeed() ServicesConfig {
	return func(s *Services) error {
		s.Feed = NewFeedService(s.db)
		return nil
	}
}

// WithSuggestion wraps the constructor of SuggestionService. The random
// source is passed in so tests can seed it deterministically.
func WithSuggestion(rnd *rand.Rand) ServicesConfig {
	return func(s *Services) error {
		s.Suggestion = NewSuggestionService(s.db, rnd)
		return nil
	}
}

// WithFollow wraps the constructor of FollowService, NewFollowService.
func WithFollow() ServicesConfig {
	return func(s *Services) error {
		s.Follow = NewFollowService(s.db)
		return nil
	}
}

// WithLike wraps the constructor of LikeService, NewLikeService.
func WithLike() ServicesConfig {
	return func(s *Services) error {
		s.Like = NewLikeService(s.db)
		return nil
	}
}

// WithComment wraps the constructor of CommentService, NewCommentService.
func WithComment() ServicesConfig {
	return func(s *Services) error {
		s.Comment = NewCommentService(s.db)
		return nil
	}
}

// WithRetweet wraps the constructor of RetweetService, NewRetweetService.
func WithRetweet() ServicesConfig {
	return func(s *Services) error {
		s.Retweet = NewRetweetService(s.db)
		return nil
	}
}

// WithNotification wraps the constructor of NotificationService.
func WithNotification() ServicesConfig {
	return func(s *Services) error {
		s.Notification = NewNotificationService(s.db)
		return nil
	}
}
