package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
	"chirper/storage"
)

// registerHomeRoutes is a helper for registering the home feed routes.
func (s *Server) registerHomeRoutes(r *mux.Router) {
	// Render one page of the viewer's home feed.
	r.HandleFunc("/home/{page}", s.requireAuth(s.handleHome)).Methods("GET")

	// Handle the forms posted from the home page.
	r.HandleFunc("/home/{page}", s.requireAuth(s.handleHomeForm)).Methods("POST")
}

// homeResponse is the view model handed to the presentation layer for the
// home page.
type homeResponse struct {
	CurrentUser    *domain.User   `json:"current_user"`
	WhoToFollow    []domain.User  `json:"who_to_follow"`
	TopicsToFollow []domain.Topic `json:"topics_to_follow"`
	TweetFeed      []domain.Tweet `json:"tweet_feed"`
	CurrentPage    int            `json:"current_page"`
	PreviousPage   int            `json:"previous_page"`
	NextPage       int            `json:"next_page"`
}

// handleHome handles the route "GET /home/{page}".
// It composes the viewer's feed page and wraps it in the home view model,
// along with the suggestion lists.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())

	feed, err := s.fds.Compose(user.ID, parsePage(mux.Vars(r)["page"]))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.attachTweetImages(feed.Tweets)

	whoToFollow, err := s.sgs.WhoToFollow(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	topicsToFollow, err := s.sgs.TopicsToFollow()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	resp := homeResponse{
		CurrentUser:    user,
		WhoToFollow:    whoToFollow,
		TopicsToFollow: topicsToFollow,
		TweetFeed:      feed.Tweets,
		CurrentPage:    feed.CurrentPage,
		PreviousPage:   feed.PreviousPage,
		NextPage:       feed.NextPage,
	}
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		errs.LogError(r, err)
	}
}

// handleHomeForm handles the route "POST /home/{page}".
// The home page hosts several forms that all post back to it, distinguished
// by the name of the submit button that was pressed. Exactly one discriminator
// is honored per submission; a request without a recognized one falls through
// to the plain read-only home render.
func (s *Server) handleHomeForm(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	if err := parseSubmission(r); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	switch {
	case formHas(r, "home_page_tweet_form_submit_btn"),
		formHas(r, "hidden_panel_tweet_submit_btn"),
		formHas(r, "mobile_hidden_tweet_submit_btn"):
		s.createTweetFromForm(w, r, user)

	case formHas(r, "right_nav_search_submit_btn"):
		term := r.PostFormValue("search_input")
		if term == "" {
			s.handleHome(w, r)
			return
		}
		http.Redirect(w, r, "/search/"+url.PathEscape(term), http.StatusSeeOther)

	case formHas(r, "base_who_to_follow_submit_btn"):
		followedID, _ := strconv.Atoi(r.PostFormValue("hidden_user_id"))
		err := s.fs.Create(&domain.Follow{FollowerID: user.ID, FollowedID: followedID})
		if err != nil && errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		// Unknown user or self-follow: the submission is simply dropped.
		http.Redirect(w, r, "/home/0", http.StatusSeeOther)

	case formHas(r, "tweet_cell_like_submit_btn"):
		tweetID, _ := strconv.Atoi(r.PostFormValue("hidden_tweet_id"))
		err := s.ls.Create(&domain.Like{TweetID: tweetID, UserID: user.ID})
		if err != nil && errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}
		http.Redirect(w, r, "/home/0", http.StatusSeeOther)

	case formHas(r, "tweet_cell_comment_submit_btn"):
		tweetID := r.PostFormValue("hidden_tweet_id")
		http.Redirect(w, r, "/tweet/"+tweetID, http.StatusSeeOther)

	default:
		s.handleHome(w, r)
	}
}

// createTweetFromForm reads the tweet form's content and optional image,
// creates the tweet and stores the image under it. An empty submission is
// ignored, not an error: the user just lands back on their feed.
func (s *Server) createTweetFromForm(w http.ResponseWriter, r *http.Request, user *domain.User) {
	tweet := domain.Tweet{
		UserID:  user.ID,
		Content: r.PostFormValue("tweet_content"),
	}

	file, header, err := r.FormFile("tweet_image")
	if err == nil {
		defer file.Close()
		tweet.Images = []domain.Image{{File: file, Filename: header.Filename}}
	}

	if err := s.ts.Create(&tweet); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			http.Redirect(w, r, "/home/0", http.StatusSeeOther)
			return
		}
		errs.ReturnError(w, r, err)
		return
	}

	if file != nil {
		img := &domain.Image{
			OwnerType: domain.OwnerTypeTweet,
			OwnerID:   tweet.ID,
			File:      file,
			Filename:  header.Filename,
		}
		if err := s.is.Create(img); err != nil {
			// The tweet itself is in; a rejected image only costs the upload.
			errs.LogError(r, err)
		}
	}

	http.Redirect(w, r, "/home/0", http.StatusSeeOther)
}

// attachTweetImages resolves the stored image files of every tweet in the slice.
func (s *Server) attachTweetImages(tweets []domain.Tweet) {
	for i := range tweets {
		images, err := s.is.ByOwner(domain.OwnerTypeTweet, tweets[i].ID)
		if err != nil {
			continue
		}
		tweets[i].Images = images
	}
}

// parsePage turns a page path segment into a usable page index. Non-numeric
// or negative input never fails a request, it just means page 0.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// parseSubmission parses an incoming form post, which may or may not be
// multipart depending on whether the form carries a file input.
func parseSubmission(r *http.Request) error {
	err := r.ParseMultipartForm(storage.MaxUploadSize)
	if err == http.ErrNotMultipart {
		err = r.ParseForm()
	}
	if err != nil {
		return errs.Errorf(errs.EINVALID, "Invalid form submission.")
	}
	return nil
}

// formHas reports whether the named submit button participated in the form
// submission.
func formHas(r *http.Request, field string) bool {
	return r.PostFormValue(field) != ""
}
