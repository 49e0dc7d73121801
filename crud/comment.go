package crud

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chirper/domain"
	"chirper/errs"
)

// CommentService manages Comments and CommentLikes.
// It implements the domain.CommentService interface.
type CommentService struct {
	commentValidator
}

// commentValidator runs validations on incoming Comment data.
// On success, it passes the data on to commentGorm.
// Otherwise, it returns the error of the validation that has failed.
type commentValidator struct {
	commentGorm
}

// commentGorm runs CRUD operations on the database using incoming Comment data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type commentGorm struct {
	db *gorm.DB
}

// NewCommentService returns an instance of CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		commentValidator{
			commentGorm{
				db: db,
			},
		},
	}
}

// Ensure the CommentService struct properly implements the domain.CommentService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.CommentService = &CommentService{}

// Create runs validations needed for creating new Comment database records.
func (cv *commentValidator) Create(comment *domain.Comment) error {
	err := runCommentValFns(comment,
		cv.userIdValid,
		cv.contentRequired,
		cv.commentedTweetExists)
	if err != nil {
		return err
	}
	return cv.commentGorm.Create(comment)
}

// runCommentValFns runs any number of functions of type commentValFn on the passed in Comment object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runCommentValFns(comment *domain.Comment, fns ...commentValFn) error {
	for _, fn := range fns {
		if err := fn(comment); err != nil {
			return err
		}
	}
	return nil
}

// A commentValFn is any function that takes in a pointer to a domain.Comment object and returns an error.
type commentValFn func(comment *domain.Comment) error

// commentedTweetExists makes sure that the tweet being replied to actually exists.
func (cv *commentValidator) commentedTweetExists(comment *domain.Comment) error {
	err := cv.db.First(&domain.Tweet{}, "id = ?", comment.TweetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The tweet replied to does not exist.")
		}
		return err
	}
	return nil
}

// contentRequired makes sure that the comment is not blank.
func (cv *commentValidator) contentRequired(comment *domain.Comment) error {
	if strings.TrimSpace(comment.Content) == "" {
		return errs.Errorf(errs.EINVALID, "Reply content must not be empty.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (cv *commentValidator) userIdValid(comment *domain.Comment) error {
	if comment.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	return nil
}

// ByTweetID retrieves all comments of a tweet, newest first, along with each commentor.
func (cg *commentGorm) ByTweetID(tweetID int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := cg.db.
		Where("tweet_id = ?", tweetID).
		Preload("User").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create stores the comment and refreshes the tweet's cached comment_amount
// from the live count, in one transaction. Like all cached counters, the
// column is a denormalized hint; the feed recomputes instead of reading it.
func (cg *commentGorm) Create(comment *domain.Comment) error {
	return cg.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		count := tx.Model(&domain.Comment{}).Select("COUNT(id)").Where("tweet_id = ?", comment.TweetID)
		return tx.Model(&domain.Tweet{}).
			Where("id = ?", comment.TweetID).
			Update("comment_amount", count).Error
	})
}

// Like records that a user likes a comment, once per (comment, user) pair.
// The insert goes through the unique index with ON CONFLICT DO NOTHING; a
// conflict is a benign no-op. A real insert refreshes the comment's cached
// like_amount from the live count.
func (cg *commentGorm) Like(commentID, userID int) error {
	err := cg.db.First(&domain.Comment{}, "id = ?", commentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The liked comment does not exist.")
		}
		return err
	}
	return cg.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.CommentLike{CommentID: commentID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		count := tx.Model(&domain.CommentLike{}).Select("COUNT(id)").Where("comment_id = ?", commentID)
		return tx.Model(&domain.Comment{}).
			Where("id = ?", commentID).
			Update("like_amount", count).Error
	})
}
