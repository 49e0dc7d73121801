package domain

// TweetsPerPage is the fixed size of a home feed page.
const TweetsPerPage = 46

// SuggestionLimit caps both suggestion lists on every page.
const SuggestionLimit = 5

// FeedPage is one page of a viewer's home feed: the tweets authored by the
// viewer and everyone they follow, most recent first, each annotated with live
// like and comment counts. NextPage is always offered; a page past the end of
// the feed simply carries an empty tweet list.
type FeedPage struct {
	Tweets       []Tweet `json:"tweets"`
	CurrentPage  int     `json:"current_page"`
	PreviousPage int     `json:"previous_page"`
	NextPage     int     `json:"next_page"`
}

// FeedService composes home feed pages.
type FeedService interface {
	Compose(viewerID, page int) (*FeedPage, error)
}

// SuggestionService produces the "who to follow" and "topics to follow" lists.
// Both degrade to empty slices when there is nothing to suggest.
type SuggestionService interface {
	WhoToFollow(viewerID int) ([]User, error)
	TopicsToFollow() ([]Topic, error)
}
