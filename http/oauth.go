package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/auth"
	"chirper/domain"
	"chirper/errs"
)

// registerOAuthRoutes is a helper for registering the GitHub oauth routes.
func (s *Server) registerOAuthRoutes(r *mux.Router) {
	r.HandleFunc("/oauth/github", s.handleGithubLogin).Methods("GET")
	r.HandleFunc("/oauth/github/callback", s.handleGithubCallback).Methods("GET")
}

// handleGithubLogin handles the route "GET /oauth/github".
// It sends the user to GitHub's consent page, with a random state value
// stored in a cookie to verify the callback against.
func (s *Server) handleGithubLogin(w http.ResponseWriter, r *http.Request) {
	state, err := auth.MakeRememberToken()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.github.AuthCodeURL(state), http.StatusFound)
}

// githubUser is the part of GitHub's user payload this app cares about.
type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// handleGithubCallback handles the route "GET /oauth/github/callback".
// It verifies the state, exchanges the code for a token, fetches the GitHub
// identity and signs in the linked user, creating user and oauth records on
// their first visit.
func (s *Server) handleGithubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.FormValue("state") {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Invalid oauth state."))
		return
	}

	token, err := s.github.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "GitHub code exchange failed."))
		return
	}

	client := s.github.Client(r.Context(), token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	defer resp.Body.Close()
	var ghUser githubUser
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user, err := s.findOrCreateGithubUser(&ghUser, token.AccessToken)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.signIn(w, r.Context(), user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/home/0", http.StatusFound)
}

// findOrCreateGithubUser resolves a GitHub identity to a local user. Unknown
// identities get a fresh user with a random password plus an oauth record
// linking the two.
func (s *Server) findOrCreateGithubUser(ghUser *githubUser, accessToken string) (*domain.User, error) {
	providerUserID := strconv.FormatInt(ghUser.ID, 10)

	oauth, err := s.os.ByProviderUserID("github", providerUserID)
	if err == nil {
		return s.us.ByID(oauth.UserID)
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return nil, err
	}

	// First visit: the account gets an unguessable random password, so only
	// the oauth flow can sign it in.
	password, err := auth.MakeRememberToken()
	if err != nil {
		return nil, err
	}
	email := ghUser.Email
	if email == "" {
		email = ghUser.Login + "@users.noreply.github.com"
	}
	user := &domain.User{
		Name:     ghUser.Login,
		Email:    email,
		Password: password,
	}
	if err := s.us.Create(user); err != nil {
		return nil, err
	}

	err = s.os.Create(&domain.OAuth{
		UserID:         user.ID,
		Provider:       "github",
		ProviderUserID: providerUserID,
		AccessToken:    accessToken,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
