package crud

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// TopicService manages Topics and their associations to tweets.
// It implements the domain.TopicService interface.
type TopicService struct {
	topicValidator
}

// topicValidator runs validations on incoming Topic data.
// On success, it passes the data on to topicGorm.
type topicValidator struct {
	topicGorm
}

// topicGorm runs CRUD operations on the database using incoming Topic data.
type topicGorm struct {
	db *gorm.DB
}

// NewTopicService returns an instance of TopicService.
func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{
		topicValidator{
			topicGorm{
				db: db,
			},
		},
	}
}

// Ensure the TopicService struct properly implements the domain.TopicService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TopicService = &TopicService{}

// GetOrCreate normalizes the name to lower case and returns the matching
// Topic, creating it first if it doesn't exist yet.
func (tv *topicValidator) GetOrCreate(name string) (*domain.Topic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errs.Errorf(errs.EINVALID, "A topic name is required.")
	}
	return tv.topicGorm.GetOrCreate(name)
}

// GetOrCreate fetches the Topic with the given name or creates it.
func (tg *topicGorm) GetOrCreate(name string) (*domain.Topic, error) {
	var topic domain.Topic
	err := tg.db.Where(domain.Topic{Name: name}).FirstOrCreate(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// AttachTweet associates a tweet with a topic. The association is idempotent
// per pair: a tweet repeating the same hashtag attaches its topic only once.
func (tg *topicGorm) AttachTweet(tweetID, topicID int) error {
	return tg.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.TweetTopic{TweetID: tweetID, TopicID: topicID}).Error
}
