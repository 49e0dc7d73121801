package crud

import (
	"gorm.io/gorm"

	"chirper/domain"
)

// FeedService composes home feed pages.
// It implements the domain.FeedService interface.
type FeedService struct {
	feedGorm
}

// feedGorm runs the feed queries against the database.
type feedGorm struct {
	db *gorm.DB
}

// NewFeedService returns an instance of FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		feedGorm{
			db: db,
		},
	}
}

// Ensure the FeedService struct properly implements the domain.FeedService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FeedService = &FeedService{}

// ClampPage normalizes a requested page index. Negative input (including
// whatever the handler turned unparseable input into) becomes page 0.
func ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// PreviousPage returns the page index preceding the given one, floored at 0.
func PreviousPage(page int) int {
	if page <= 0 {
		return 0
	}
	return page - 1
}

// Compose builds one feed page for the viewer: tweets authored by the viewer
// and everyone they follow, ordered by creation time descending with the id
// as tiebreaker, sliced to the fixed page size. Each returned tweet carries
// comment and like counts recomputed from the live Comment and Like records
// of the page; the cached columns on the tweets are ignored here. A page past
// the end of the feed yields an empty list, and the next page index is
// offered unconditionally.
func (fg *feedGorm) Compose(viewerID, page int) (*domain.FeedPage, error) {
	page = ClampPage(page)

	var authorIDs []int
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("followed_id", &authorIDs).Error
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, viewerID)

	tweets := []domain.Tweet{}
	err = fg.db.
		Where("user_id IN ?", authorIDs).
		Preload("User").
		Preload("Topics").
		Order("created_at DESC, id DESC").
		Limit(domain.TweetsPerPage).
		Offset(page * domain.TweetsPerPage).
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}

	ids := tweetIDs(tweets)
	commentCounts, err := fg.groupedCount(&domain.Comment{}, ids)
	if err != nil {
		return nil, err
	}
	likeCounts, err := fg.groupedCount(&domain.Like{}, ids)
	if err != nil {
		return nil, err
	}
	mergeCounts(tweets, commentCounts, likeCounts)

	return &domain.FeedPage{
		Tweets:       tweets,
		CurrentPage:  page,
		PreviousPage: PreviousPage(page),
		NextPage:     page + 1,
	}, nil
}

// tweetCountRow is the shape of one grouped-count result row.
type tweetCountRow struct {
	TweetID int
	Count   int
}

// groupedCount runs one COUNT ... GROUP BY tweet_id query over the given
// model, restricted to the page's tweet ids, and returns the counts keyed by
// tweet id. Tweets without matching rows are simply absent from the map.
func (fg *feedGorm) groupedCount(model interface{}, ids []int) (map[int]int, error) {
	counts := make(map[int]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []tweetCountRow
	err := fg.db.Model(model).
		Select("tweet_id, COUNT(id) AS count").
		Where("tweet_id IN ?", ids).
		Group("tweet_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}

// tweetIDs extracts the ids of a page of tweets.
func tweetIDs(tweets []domain.Tweet) []int {
	ids := make([]int, len(tweets))
	for i := range tweets {
		ids[i] = tweets[i].ID
	}
	return ids
}

// mergeCounts writes the grouped counts onto the page's tweets, defaulting to
// zero for tweets without engagement.
func mergeCounts(tweets []domain.Tweet, comments, likes map[int]int) {
	for i := range tweets {
		tweets[i].CommentAmount = comments[tweets[i].ID]
		tweets[i].LikeAmount = likes[tweets[i].ID]
	}
}
