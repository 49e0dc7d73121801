package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

// registerTweetRoutes is a helper for registering all single-tweet routes.
func (s *Server) registerTweetRoutes(r *mux.Router) {
	// Render a single tweet with its likes and comments.
	r.HandleFunc("/tweet/{id:[0-9]+}", s.requireAuth(s.handleTweet)).Methods("GET")

	// Handle the forms posted from the single tweet page.
	r.HandleFunc("/tweet/{id:[0-9]+}", s.requireAuth(s.handleTweetForm)).Methods("POST")

	// Retweet an existing tweet.
	r.HandleFunc("/retweet/{id:[0-9]+}", s.requireAuth(s.handleCreateRetweet)).Methods("POST")

	// List all tweets under a topic.
	r.HandleFunc("/topic/{name}", s.requireAuth(s.handleTopic)).Methods("GET")
}

// tweetResponse is the view model handed to the presentation layer for the
// single tweet page.
type tweetResponse struct {
	CurrentUser    *domain.User     `json:"current_user"`
	WhoToFollow    []domain.User    `json:"who_to_follow"`
	TopicsToFollow []domain.Topic   `json:"topics_to_follow"`
	CurrentTweet   *domain.Tweet    `json:"current_tweet"`
	Likes          []domain.Like    `json:"current_tweet_likes"`
	LikeAmount     int              `json:"current_tweet_like_amount"`
	Comments       []domain.Comment `json:"current_tweet_comments"`
}

// handleTweet handles the route "GET /tweet/{id}".
// It renders a single tweet with its live like count and its comments,
// newest first. An unknown id renders the view model with a null tweet
// instead of erroring.
func (s *Server) handleTweet(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	resp := tweetResponse{
		CurrentUser: user,
		Likes:       []domain.Like{},
		Comments:    []domain.Comment{},
	}

	tweet, err := s.ts.ByID(id)
	if err != nil && errs.ErrorCode(err) != errs.ENOTFOUND {
		errs.ReturnError(w, r, err)
		return
	}
	if tweet != nil {
		likes, err := s.ls.ByTweetID(tweet.ID)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		comments, err := s.cs.ByTweetID(tweet.ID)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		images, err := s.is.ByOwner(domain.OwnerTypeTweet, tweet.ID)
		if err == nil {
			tweet.Images = images
		}
		resp.CurrentTweet = tweet
		resp.Likes = likes
		resp.LikeAmount = len(likes)
		resp.Comments = comments
	}

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
	resp.WhoToFollow = whoToFollow
	resp.TopicsToFollow = topicsToFollow

	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		errs.LogError(r, err)
	}
}

// handleTweetForm handles the route "POST /tweet/{id}".
// The single tweet page hosts the like, reply and comment-like forms, again
// discriminated by submit button name. Unrecognized submissions fall through
// to the read-only render.
func (s *Server) handleTweetForm(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := parseSubmission(r); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	switch {
	case formHas(r, "single_tweet_like_submit_btn"):
		err := s.ls.Create(&domain.Like{TweetID: id, UserID: user.ID})
		if err != nil && errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}

	case formHas(r, "single_tweet_reply_submit_btn"):
		comment := domain.Comment{
			TweetID: id,
			UserID:  user.ID,
			Content: r.PostFormValue("reply_content"),
		}
		// A blank reply or a vanished tweet drops the submission silently.
		err := s.cs.Create(&comment)
		if err != nil && errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}

	case formHas(r, "single_tweet_comment_like_submit_btn"):
		commentID, _ := strconv.Atoi(r.PostFormValue("comment_id"))
		err := s.cs.Like(commentID, user.ID)
		if err != nil && errs.ErrorCode(err) == errs.EINTERNAL {
			errs.ReturnError(w, r, err)
			return
		}

	default:
		s.handleTweet(w, r)
		return
	}

	http.Redirect(w, r, "/tweet/"+strconv.Itoa(id), http.StatusSeeOther)
}

// handleCreateRetweet handles the route "POST /retweet/{id}".
// It records a retweet of the given tweet by the authed user.
func (s *Server) handleCreateRetweet(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	retweet := domain.Retweet{TweetID: id, UserID: user.ID}
	if err := s.rs.Create(&retweet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&retweet); err != nil {
		errs.LogError(r, err)
	}
}

// handleTopic handles the route "GET /topic/{name}".
// It lists all tweets carrying the given hashtag, most recent first.
func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	tweets, err := s.ts.ByTopic(mux.Vars(r)["name"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.attachTweetImages(tweets)

	if err := json.NewEncoder(w).Encode(tweets); err != nil {
		errs.LogError(r, err)
	}
}
