package crud

import (
	"math/rand"
	"sync"

	"gorm.io/gorm"

	"chirper/domain"
)

// SuggestionService produces the "who to follow" and "topics to follow" lists
// shown next to every page. It implements the domain.SuggestionService
// interface.
type SuggestionService struct {
	db *gorm.DB

	// The random source is injected so tests can seed it. Guarded by mu,
	// since requests run concurrently and rand.Rand is not safe for
	// concurrent use.
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSuggestionService returns an instance of SuggestionService drawing
// randomness from the given source.
func NewSuggestionService(db *gorm.DB, rnd *rand.Rand) *SuggestionService {
	return &SuggestionService{
		db:  db,
		rnd: rnd,
	}
}

// Ensure the SuggestionService struct properly implements the domain.SuggestionService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.SuggestionService = &SuggestionService{}

// WhoToFollow returns up to SuggestionLimit users the viewer might want to
// follow: a random sample over everyone who is neither the viewer nor already
// followed by the viewer. A pool smaller than the limit is returned whole.
func (s *SuggestionService) WhoToFollow(viewerID int) ([]domain.User, error) {
	var excludeIDs []int
	err := s.db.Model(&domain.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("followed_id", &excludeIDs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []domain.User{}, nil
		}
		return nil, err
	}
	excludeIDs = append(excludeIDs, viewerID)

	var candidates []domain.User
	err = s.db.Where("id NOT IN ?", excludeIDs).Find(&candidates).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []domain.User{}, nil
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sampleUsers(candidates, domain.SuggestionLimit, s.rnd), nil
}

// TopicsToFollow returns up to SuggestionLimit topics ranked by the number of
// tweets associated with each, descending.
func (s *SuggestionService) TopicsToFollow() ([]domain.Topic, error) {
	topics := []domain.Topic{}
	err := s.db.Model(&domain.Topic{}).
		Select("topics.*, COUNT(tweet_topics.tweet_id) AS tweet_count").
		Joins("LEFT JOIN tweet_topics ON tweet_topics.topic_id = topics.id").
		Group("topics.id").
		Order("tweet_count DESC").
		Limit(domain.SuggestionLimit).
		Find(&topics).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []domain.Topic{}, nil
		}
		return nil, err
	}
	return topics, nil
}

// sampleUsers picks n users from the pool without replacement, in random
// order. If the pool holds n users or fewer, the whole pool is returned.
func sampleUsers(pool []domain.User, n int, rnd *rand.Rand) []domain.User {
	if len(pool) <= n {
		return pool
	}
	picked := make([]domain.User, 0, n)
	for _, i := range rnd.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}
