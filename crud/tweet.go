package crud

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// TweetService manages Tweets.
// It implements the domain.TweetService interface.
type TweetService struct {
	tweetValidator
}

// tweetValidator runs validations on incoming Tweet data.
// On success, it passes the data on to tweetGorm.
// Otherwise, it returns the error of the validation that has failed.
type tweetValidator struct {
	tweetGorm
}

// tweetGorm runs CRUD operations on the database using incoming Tweet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tweetGorm struct {
	db     *gorm.DB
	topics domain.TopicService
}

// NewTweetService returns an instance of TweetService.
func NewTweetService(db *gorm.DB, topics domain.TopicService) *TweetService {
	return &TweetService{
		tweetValidator{
			tweetGorm{
				db:     db,
				topics: topics,
			},
		},
	}
}

// Ensure the TweetService struct properly implements the domain.TweetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TweetService = &TweetService{}

// Create runs validations needed for creating new Tweet database records.
func (tv *tweetValidator) Create(tweet *domain.Tweet) error {
	err := runTweetValFns(tweet,
		tv.userIdValid,
		tv.contentOrImageRequired,
		tv.contentMaxLength)
	if err != nil {
		return err
	}
	return tv.tweetGorm.Create(tweet)
}

// runTweetValFns runs any number of functions of type tweetValFn on the passed in Tweet object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runTweetValFns(tweet *domain.Tweet, fns ...tweetValFn) error {
	for _, fn := range fns {
		if err := fn(tweet); err != nil {
			return err
		}
	}
	return nil
}

// A tweetValFn is any function that takes in a pointer to a domain.Tweet object and returns an error.
type tweetValFn = func(tweet *domain.Tweet) error

// contentOrImageRequired makes sure that the Tweet has either text content or
// a pending image upload attached by the handler. A tweet with neither is an
// empty submission and gets rejected.
func (tv *tweetValidator) contentOrImageRequired(tweet *domain.Tweet) error {
	contentStripped := strings.ReplaceAll(tweet.Content, " ", "")
	if contentStripped == "" && len(tweet.Images) == 0 {
		return errs.Errorf(errs.EINVALID, "Tweet content must not be empty.")
	}
	return nil
}

// contentMaxLength makes sure that the Tweet's content does not exceed the maximum content length.
func (tv *tweetValidator) contentMaxLength(tweet *domain.Tweet) error {
	if utf8.RuneCountInString(tweet.Content) > 280 {
		return errs.Errorf(errs.EINVALID, "Tweet content max length is 280 characters.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (tv *tweetValidator) userIdValid(tweet *domain.Tweet) error {
	if tweet.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	return nil
}

// ByID retrieves a single Tweet by ID, along with its author and topics.
// If the record doesn't exist, it returns ENOTFOUND.
func (tg *tweetGorm) ByID(id int) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := tg.db.
		Preload("User").
		Preload("Topics").
		First(&tweet, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The tweet does not exist.")
		}
		return nil, err
	}
	return &tweet, nil
}

// ByUserID retrieves all tweets authored by a user, most recent first.
func (tg *tweetGorm) ByUserID(userID int) ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	err := tg.db.
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Topics").
		Order("created_at DESC, id DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

// ByTopic retrieves all tweets associated with the topic of the given name,
// most recent first.
func (tg *tweetGorm) ByTopic(name string) ([]domain.Tweet, error) {
	var tweets []domain.Tweet
	err := tg.db.
		Joins("JOIN tweet_topics ON tweet_topics.tweet_id = tweets.id").
		Joins("JOIN topics ON topics.id = tweet_topics.topic_id").
		Where("topics.name = ?", strings.ToLower(name)).
		Preload("User").
		Order("tweets.created_at DESC, tweets.id DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

// Create stores the data from the Tweet object in a new database record.
// Immediately after the record is durably created, the tweet's hashtags are
// extracted and each topic is fetched-or-created by lower-cased name and
// attached. Tags derived here are immutable afterwards.
func (tg *tweetGorm) Create(tweet *domain.Tweet) error {
	if err := tg.db.Create(tweet).Error; err != nil {
		return err
	}
	for _, tag := range tweet.Hashtags() {
		topic, err := tg.topics.GetOrCreate(tag)
		if err != nil {
			return err
		}
		if err := tg.topics.AttachTweet(tweet.ID, topic.ID); err != nil {
			return err
		}
	}
	if err := tg.db.Preload("User").Preload("Topics").First(tweet).Error; err != nil {
		return err
	}
	return nil
}
