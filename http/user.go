package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
	"chirper/storage"
)

// registerUserRoutes is a helper for registering all user-facing routes.
func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the profile data of a specific user.
	r.HandleFunc("/profile/{user_id:[0-9]+}", s.requireAuth(s.handleGetProfile)).Methods("GET")

	// Upload a new profile image for the authed user.
	r.HandleFunc("/profile/image", s.requireAuth(s.handleUploadProfileImage)).Methods("POST")

	// Search for users.
	r.HandleFunc("/search/{term}", s.requireAuth(s.handleSearchProfiles)).Methods("GET")

	// List the authed user's like notifications.
	r.HandleFunc("/notifications", s.requireAuth(s.handleNotifications)).Methods("GET")
}

// handleSearchProfiles handles the route "GET /search/{term}".
// It parses the search term from the url, runs a user search with it, and
// returns the resulting slice of users.
func (s *Server) handleSearchProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.us.Search(mux.Vars(r)["term"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(profiles); err != nil {
		errs.LogError(r, err)
	}
}

// handleGetProfile handles the route "GET /profile/{user_id}".
// It displays the requested user's basic data and tweets, their association
// counts, and whether the authed user follows them.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if userID <= 0 || err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user, err := s.us.ByID(userID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.attachTweetImages(user.Tweets)

	if err = s.setUserAssociationCounts(user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(&user); err != nil {
		errs.LogError(r, err)
	}
}

// handleUploadProfileImage handles the route "POST /profile/image".
// It stores an uploaded image file under the authed user.
func (s *Server) handleUploadProfileImage(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())

	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form submission."))
		return
	}
	file, header, err := r.FormFile("profile_image")
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "A profile image file is required."))
		return
	}
	defer file.Close()

	img := &domain.Image{
		OwnerType: domain.OwnerTypeUser,
		OwnerID:   user.ID,
		File:      file,
		Filename:  header.Filename,
	}
	if err := s.is.Create(img); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(img); err != nil {
		errs.LogError(r, err)
	}
}

// handleNotifications handles the route "GET /notifications".
// It lists the like notifications of the authed user, newest first.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())

	notifications, err := s.ns.ByNotified(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(notifications); err != nil {
		errs.LogError(r, err)
	}
}

// setUserAssociationCounts takes a pointer to a user object, counts their
// followers, followeds and tweets, and sets those numbers on the according fields.
func (s *Server) setUserAssociationCounts(user *domain.User) error {
	followerCount, err := s.us.CountFollowers(user.ID)
	if err != nil {
		return err
	}
	user.FollowerCount = followerCount

	followedCount, err := s.us.CountFolloweds(user.ID)
	if err != nil {
		return err
	}
	user.FollowedCount = followedCount

	tweetCount, err := s.us.CountTweets(user.ID)
	if err != nil {
		return err
	}
	user.TweetCount = tweetCount

	return nil
}
