package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Create runs validations needed for creating new Like database records.
func (lv *likeValidator) Create(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.userIdValid,
		lv.likedTweetExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed in Like object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like object and returns an error.
type likeValFn func(like *domain.Like) error

// likedTweetExists makes sure that the tweet to be liked actually exists.
func (lv *likeValidator) likedTweetExists(like *domain.Like) error {
	err := lv.db.First(&domain.Tweet{}, "id = ?", like.TweetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The liked tweet does not exist.")
		}
		return err
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (lv *likeValidator) userIdValid(like *domain.Like) error {
	if like.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	return nil
}

// ByTweetID retrieves all likes of a tweet, along with each liker.
func (lg *likeGorm) ByTweetID(tweetID int) ([]domain.Like, error) {
	var likes []domain.Like
	err := lg.db.
		Where("tweet_id = ?", tweetID).
		Preload("User").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// Create inserts the like through the unique (tweet_id, user_id) index with
// ON CONFLICT DO NOTHING, so two concurrent identical submissions cannot both
// land. A conflict means the user already likes the tweet and is a benign
// no-op: no error, no notification. A real insert refreshes the tweet's
// cached like_amount from the live count and, when the liker is not the
// tweet's author, records a like notification. All of it runs in one
// transaction.
func (lg *likeGorm) Create(like *domain.Like) error {
	return lg.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := refreshTweetLikeAmount(tx, like.TweetID); err != nil {
			return err
		}

		var tweet domain.Tweet
		if err := tx.Select("id", "user_id").First(&tweet, "id = ?", like.TweetID).Error; err != nil {
			return err
		}
		if tweet.UserID != like.UserID {
			notification := domain.LikeNotification{
				NotifiedID: tweet.UserID,
				NotifierID: like.UserID,
				TweetID:    like.TweetID,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// refreshTweetLikeAmount rewrites the tweet's cached like counter from the
// live Like records. The cached column is only a denormalized hint; readers
// that care recompute, writers keep it current.
func refreshTweetLikeAmount(tx *gorm.DB, tweetID int) error {
	count := tx.Model(&domain.Like{}).Select("COUNT(id)").Where("tweet_id = ?", tweetID)
	return tx.Model(&domain.Tweet{}).Where("id = ?", tweetID).Update("like_amount", count).Error
}
