package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"chirper/domain"
	"chirper/errs"
)

func TestHandleTweet(t *testing.T) {
	s, f := newTestServer()

	f.ts.byID = func(id int) (*domain.Tweet, error) {
		return &domain.Tweet{ID: id, UserID: 2, Content: "hello #go"}, nil
	}
	f.ls.byTweetID = func(tweetID int) ([]domain.Like, error) {
		return []domain.Like{
			{ID: 1, TweetID: tweetID, UserID: 1},
			{ID: 2, TweetID: tweetID, UserID: 3},
		}, nil
	}
	f.cs.byTweetID = func(tweetID int) ([]domain.Comment, error) {
		return []domain.Comment{{ID: 5, TweetID: tweetID, UserID: 3, Content: "nice"}}, nil
	}

	rec := serve(s, authedRequest("GET", "/tweet/8", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp tweetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.CurrentTweet == nil || resp.CurrentTweet.ID != 8 {
		t.Fatalf("current_tweet = %+v, want tweet 8", resp.CurrentTweet)
	}
	// The like amount comes from the live likes, not the cached column.
	if resp.LikeAmount != 2 || len(resp.Likes) != 2 {
		t.Errorf("like_amount = %d with %d likes, want 2 with 2", resp.LikeAmount, len(resp.Likes))
	}
	if len(resp.Comments) != 1 || resp.Comments[0].Content != "nice" {
		t.Errorf("comments = %+v, want the single reply", resp.Comments)
	}
}

func TestHandleTweetNotFound(t *testing.T) {
	s, f := newTestServer()

	f.ts.byID = func(id int) (*domain.Tweet, error) {
		return nil, errs.Errorf(errs.ENOTFOUND, "Tweet not found.")
	}

	rec := serve(s, authedRequest("GET", "/tweet/999", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp tweetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.CurrentTweet != nil {
		t.Errorf("current_tweet = %+v, want null", resp.CurrentTweet)
	}
	if len(resp.Likes) != 0 || len(resp.Comments) != 0 || resp.LikeAmount != 0 {
		t.Error("vanished tweet should render with empty likes and comments")
	}
}

func TestHandleTweetFormLike(t *testing.T) {
	s, f := newTestServer()

	var created *domain.Like
	f.ls.create = func(like *domain.Like) error {
		created = like
		return nil
	}

	form := url.Values{"single_tweet_like_submit_btn": {"Like"}}
	rec := serve(s, formRequest("/tweet/8", form))
	assertRedirect(t, rec, http.StatusSeeOther, "/tweet/8")

	if created == nil {
		t.Fatal("no like was created")
	}
	if created.TweetID != 8 || created.UserID != testViewer.ID {
		t.Errorf("like = %+v, want viewer liking tweet 8", created)
	}
}

func TestHandleTweetFormReply(t *testing.T) {
	s, f := newTestServer()

	var created *domain.Comment
	f.cs.create = func(comment *domain.Comment) error {
		created = comment
		return nil
	}

	form := url.Values{"single_tweet_reply_submit_btn": {"Reply"}, "reply_content": {"well said"}}
	rec := serve(s, formRequest("/tweet/8", form))
	assertRedirect(t, rec, http.StatusSeeOther, "/tweet/8")

	if created == nil {
		t.Fatal("no comment was created")
	}
	if created.TweetID != 8 || created.UserID != testViewer.ID || created.Content != "well said" {
		t.Errorf("comment = %+v, want viewer's reply on tweet 8", created)
	}
}

func TestHandleTweetFormBlankReply(t *testing.T) {
	s, f := newTestServer()

	f.cs.create = func(comment *domain.Comment) error {
		return errs.Errorf(errs.EINVALID, "Comment content is required.")
	}

	form := url.Values{"single_tweet_reply_submit_btn": {"Reply"}, "reply_content": {"   "}}
	rec := serve(s, formRequest("/tweet/8", form))

	// Blank replies are dropped silently.
	assertRedirect(t, rec, http.StatusSeeOther, "/tweet/8")
}

func TestHandleTweetFormCommentLike(t *testing.T) {
	s, f := newTestServer()

	var gotCommentID, gotUserID int
	f.cs.like = func(commentID, userID int) error {
		gotCommentID, gotUserID = commentID, userID
		return nil
	}

	form := url.Values{"single_tweet_comment_like_submit_btn": {"Like"}, "comment_id": {"5"}}
	rec := serve(s, formRequest("/tweet/8", form))
	assertRedirect(t, rec, http.StatusSeeOther, "/tweet/8")

	if gotCommentID != 5 || gotUserID != testViewer.ID {
		t.Errorf("comment like = %d/%d, want 5/%d", gotCommentID, gotUserID, testViewer.ID)
	}
}

func TestHandleCreateRetweet(t *testing.T) {
	s, f := newTestServer()

	var created *domain.Retweet
	f.rs.create = func(retweet *domain.Retweet) error {
		created = retweet
		retweet.ID = 3
		return nil
	}

	rec := serve(s, authedRequest("POST", "/retweet/8", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if created == nil {
		t.Fatal("no retweet was created")
	}
	if created.TweetID != 8 || created.UserID != testViewer.ID {
		t.Errorf("retweet = %+v, want viewer retweeting tweet 8", created)
	}
}

func TestHandleTopic(t *testing.T) {
	s, f := newTestServer()

	gotName := ""
	f.ts.byTopic = func(name string) ([]domain.Tweet, error) {
		gotName = name
		return []domain.Tweet{{ID: 2, Content: "#golang rocks"}}, nil
	}

	rec := serve(s, authedRequest("GET", "/topic/golang", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotName != "golang" {
		t.Errorf("looked up topic %q, want golang", gotName)
	}

	var tweets []domain.Tweet
	if err := json.NewDecoder(rec.Body).Decode(&tweets); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(tweets) != 1 || tweets[0].ID != 2 {
		t.Errorf("tweets = %+v, want the single topic tweet", tweets)
	}
}
