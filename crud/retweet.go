package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// RetweetService manages Retweets.
// It implements the domain.RetweetService interface.
type RetweetService struct {
	retweetValidator
}

// retweetValidator runs validations on incoming Retweet data.
// On success, it passes the data on to retweetGorm.
type retweetValidator struct {
	retweetGorm
}

// retweetGorm runs CRUD operations on the database using incoming Retweet data.
type retweetGorm struct {
	db *gorm.DB
}

// NewRetweetService returns an instance of RetweetService.
func NewRetweetService(db *gorm.DB) *RetweetService {
	return &RetweetService{
		retweetValidator{
			retweetGorm{
				db: db,
			},
		},
	}
}

// Ensure the RetweetService struct properly implements the domain.RetweetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.RetweetService = &RetweetService{}

// Create runs validations needed for creating new Retweet database records.
func (rv *retweetValidator) Create(retweet *domain.Retweet) error {
	if retweet.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	err := rv.db.First(&domain.Tweet{}, "id = ?", retweet.TweetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The retweeted tweet does not exist.")
		}
		return err
	}
	return rv.retweetGorm.Create(retweet)
}

// Create inserts the retweet through the unique (tweet_id, user_id) index
// with ON CONFLICT DO NOTHING. Retweeting twice is a benign no-op.
func (rg *retweetGorm) Create(retweet *domain.Retweet) error {
	return rg.db.Clauses(clause.OnConflict{DoNothing: true}).Create(retweet).Error
}
