package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"chirper/domain"
	"chirper/errs"
)

// The fakes below embed the interface they stand in for, so each test only
// fills in the methods its handler actually touches. Calling anything else
// panics, which is exactly the loud failure a test wants.

type userService struct {
	domain.UserService
	authenticate   func(email, password string) (*domain.User, error)
	byID           func(id int) (*domain.User, error)
	byRemember     func(token string) (*domain.User, error)
	create         func(user *domain.User) error
	update         func(user *domain.User) error
	search         func(term string) ([]domain.User, error)
	countTweets    func(userID int) (int, error)
	countFollowers func(userID int) (int, error)
	countFolloweds func(userID int) (int, error)
}

func (s *userService) Authenticate(email, password string) (*domain.User, error) {
	return s.authenticate(email, password)
}
func (s *userService) ByID(id int) (*domain.User, error) { return s.byID(id) }
func (s *userService) ByRemember(token string) (*domain.User, error) {
	return s.byRemember(token)
}
func (s *userService) Create(user *domain.User) error            { return s.create(user) }
func (s *userService) Update(user *domain.User) error            { return s.update(user) }
func (s *userService) Search(term string) ([]domain.User, error) { return s.search(term) }
func (s *userService) CountTweets(userID int) (int, error)       { return s.countTweets(userID) }
func (s *userService) CountFollowers(userID int) (int, error) {
	return s.countFollowers(userID)
}
func (s *userService) CountFolloweds(userID int) (int, error) {
	return s.countFolloweds(userID)
}

type oauthService struct {
	domain.OAuthService
}

type tweetService struct {
	domain.TweetService
	byID    func(id int) (*domain.Tweet, error)
	byTopic func(name string) ([]domain.Tweet, error)
	create  func(tweet *domain.Tweet) error
}

func (s *tweetService) ByID(id int) (*domain.Tweet, error)          { return s.byID(id) }
func (s *tweetService) ByTopic(name string) ([]domain.Tweet, error) { return s.byTopic(name) }
func (s *tweetService) Create(tweet *domain.Tweet) error            { return s.create(tweet) }

type feedService struct {
	compose func(viewerID, page int) (*domain.FeedPage, error)
}

func (s *feedService) Compose(viewerID, page int) (*domain.FeedPage, error) {
	return s.compose(viewerID, page)
}

type suggestionService struct {
	whoToFollow    func(viewerID int) ([]domain.User, error)
	topicsToFollow func() ([]domain.Topic, error)
}

func (s *suggestionService) WhoToFollow(viewerID int) ([]domain.User, error) {
	return s.whoToFollow(viewerID)
}
func (s *suggestionService) TopicsToFollow() ([]domain.Topic, error) { return s.topicsToFollow() }

type followService struct {
	create func(follow *domain.Follow) error
}

func (s *followService) Create(follow *domain.Follow) error { return s.create(follow) }

type likeService struct {
	domain.LikeService
	byTweetID func(tweetID int) ([]domain.Like, error)
	create    func(like *domain.Like) error
}

func (s *likeService) ByTweetID(tweetID int) ([]domain.Like, error) { return s.byTweetID(tweetID) }
func (s *likeService) Create(like *domain.Like) error               { return s.create(like) }

type commentService struct {
	domain.CommentService
	byTweetID func(tweetID int) ([]domain.Comment, error)
	create    func(comment *domain.Comment) error
	like      func(commentID, userID int) error
}

func (s *commentService) ByTweetID(tweetID int) ([]domain.Comment, error) {
	return s.byTweetID(tweetID)
}
func (s *commentService) Create(comment *domain.Comment) error { return s.create(comment) }
func (s *commentService) Like(commentID, userID int) error     { return s.like(commentID, userID) }

type retweetService struct {
	create func(retweet *domain.Retweet) error
}

func (s *retweetService) Create(retweet *domain.Retweet) error { return s.create(retweet) }

type notificationService struct {
	domain.NotificationService
	byNotified func(userID int) ([]domain.LikeNotification, error)
}

func (s *notificationService) ByNotified(userID int) ([]domain.LikeNotification, error) {
	return s.byNotified(userID)
}

type imageService struct {
	domain.ImageService
	create  func(image *domain.Image) error
	byOwner func(ownerType string, ownerID int) ([]domain.Image, error)
}

func (s *imageService) Create(image *domain.Image) error { return s.create(image) }
func (s *imageService) ByOwner(ownerType string, ownerID int) ([]domain.Image, error) {
	return s.byOwner(ownerType, ownerID)
}

// fakes bundles one fake per service so a test can reach in and replace
// exactly the behavior it exercises.
type fakes struct {
	us  *userService
	os  *oauthService
	ts  *tweetService
	fds *feedService
	sgs *suggestionService
	fs  *followService
	ls  *likeService
	cs  *commentService
	rs  *retweetService
	ns  *notificationService
	is  *imageService
}

// testViewer is the user every authed test request resolves to.
var testViewer = domain.User{ID: 1, Name: "jane", Email: "jane@example.com"}

// newTestServer builds a server over fakes with workable defaults: requests
// carrying the valid remember cookie authenticate as testViewer, the feed is
// empty, both suggestion lists are empty and no tweet has stored images. CSRF
// is off because no key is configured.
func newTestServer() (*Server, *fakes) {
	f := &fakes{
		us: &userService{
			byRemember: func(token string) (*domain.User, error) {
				if token != "valid-token" {
					return nil, errs.Errorf(errs.ENOTFOUND, "User not found.")
				}
				viewer := testViewer
				return &viewer, nil
			},
		},
		os: &oauthService{},
		ts: &tweetService{},
		fds: &feedService{
			compose: func(viewerID, page int) (*domain.FeedPage, error) {
				previous := page - 1
				if page <= 0 {
					previous = 0
				}
				return &domain.FeedPage{
					Tweets:       []domain.Tweet{},
					CurrentPage:  page,
					PreviousPage: previous,
					NextPage:     page + 1,
				}, nil
			},
		},
		sgs: &suggestionService{
			whoToFollow:    func(viewerID int) ([]domain.User, error) { return []domain.User{}, nil },
			topicsToFollow: func() ([]domain.Topic, error) { return []domain.Topic{}, nil },
		},
		fs: &followService{},
		ls: &likeService{},
		cs: &commentService{},
		rs: &retweetService{},
		ns: &notificationService{},
		is: &imageService{
			byOwner: func(ownerType string, ownerID int) ([]domain.Image, error) {
				return []domain.Image{}, nil
			},
		},
	}
	s := NewServer(nil, false, nil, f.us, f.os, f.ts, f.fds, f.sgs, f.fs, f.ls, f.cs, f.rs, f.ns, f.is)
	return s, f
}

// authedRequest builds a request carrying the remember cookie that the default
// fake user service accepts.
func authedRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r.AddCookie(&http.Cookie{Name: "remember_token", Value: "valid-token"})
	return r
}

// formRequest builds an authed urlencoded form post.
func formRequest(target string, form url.Values) *http.Request {
	r := authedRequest("POST", target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// serve runs the request through the full router, middleware included.
func serve(s *Server, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rec.Code != code {
		t.Errorf("status = %d, want %d", rec.Code, code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func TestContentTypeMiddleware(t *testing.T) {
	s, _ := newTestServer()

	rec := serve(s, httptest.NewRequest("GET", "/", nil))
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestIndexRedirects(t *testing.T) {
	s, _ := newTestServer()

	rec := serve(s, httptest.NewRequest("GET", "/", nil))
	assertRedirect(t, rec, http.StatusFound, "/register")

	rec = serve(s, authedRequest("GET", "/", nil))
	assertRedirect(t, rec, http.StatusFound, "/home/0")
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	s, _ := newTestServer()

	for _, target := range []string{"/home/0", "/tweet/1", "/notifications", "/profile/1"} {
		rec := serve(s, httptest.NewRequest("GET", target, nil))
		assertRedirect(t, rec, http.StatusFound, "/register")
	}
}
