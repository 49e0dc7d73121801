package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"chirper/domain"
)

func TestHandleGetProfile(t *testing.T) {
	s, f := newTestServer()

	f.us.byID = func(id int) (*domain.User, error) {
		return &domain.User{
			ID:     id,
			Name:   "bob",
			Tweets: []domain.Tweet{{ID: 4, UserID: id, Content: "hi"}},
		}, nil
	}
	f.us.countFollowers = func(userID int) (int, error) { return 3, nil }
	f.us.countFolloweds = func(userID int) (int, error) { return 2, nil }
	f.us.countTweets = func(userID int) (int, error) { return 1, nil }

	rec := serve(s, authedRequest("GET", "/profile/2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var profile domain.User
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if profile.ID != 2 || profile.Name != "bob" {
		t.Errorf("profile = %+v, want user 2", profile)
	}
	if profile.FollowerCount != 3 || profile.FollowedCount != 2 || profile.TweetCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1",
			profile.FollowerCount, profile.FollowedCount, profile.TweetCount)
	}
	if len(profile.Tweets) != 1 {
		t.Errorf("profile carries %d tweets, want 1", len(profile.Tweets))
	}
}

func TestHandleSearchProfiles(t *testing.T) {
	s, f := newTestServer()

	gotTerm := ""
	f.us.search = func(term string) ([]domain.User, error) {
		gotTerm = term
		return []domain.User{{ID: 2, Name: "bob"}}, nil
	}

	rec := serve(s, authedRequest("GET", "/search/bob", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotTerm != "bob" {
		t.Errorf("searched for %q, want bob", gotTerm)
	}

	var results []domain.User
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(results) != 1 || results[0].Name != "bob" {
		t.Errorf("results = %+v, want the single match", results)
	}
}

func TestHandleNotifications(t *testing.T) {
	s, f := newTestServer()

	gotUserID := 0
	f.ns.byNotified = func(userID int) ([]domain.LikeNotification, error) {
		gotUserID = userID
		return []domain.LikeNotification{{ID: 1, NotifierID: 2, TweetID: 4}}, nil
	}

	rec := serve(s, authedRequest("GET", "/notifications", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != testViewer.ID {
		t.Errorf("listed notifications for user %d, want %d", gotUserID, testViewer.ID)
	}

	var notifications []domain.LikeNotification
	if err := json.NewDecoder(rec.Body).Decode(&notifications); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(notifications) != 1 || notifications[0].TweetID != 4 {
		t.Errorf("notifications = %+v, want the single like notification", notifications)
	}
}
