package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirper/domain"
	"chirper/errs"
)

func rememberCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "remember_token" {
			return c
		}
	}
	return nil
}

func TestHandleRegister(t *testing.T) {
	s, f := newTestServer()

	var created *domain.User
	f.us.create = func(user *domain.User) error {
		created = user
		user.ID = 2
		return nil
	}
	f.us.update = func(user *domain.User) error {
		if user.Remember == "" {
			t.Error("sign in persisted an empty remember token")
		}
		return nil
	}

	body := `{"name":"bob","email":"bob@example.com","password":"super-secret"}`
	rec := serve(s, httptest.NewRequest("POST", "/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	if created == nil {
		t.Fatal("no user was created")
	}
	if created.Email != "bob@example.com" || created.Password != "super-secret" {
		t.Errorf("created user = %+v, want the submitted credentials", created)
	}

	cookie := rememberCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Error("registration did not set a remember cookie")
	}

	var resp domain.User
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != 2 {
		t.Errorf("response user ID = %d, want 2", resp.ID)
	}
}

func TestHandleRegisterInvalidBody(t *testing.T) {
	s, _ := newTestServer()

	rec := serve(s, httptest.NewRequest("POST", "/register", strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleLogin(t *testing.T) {
	s, f := newTestServer()

	f.us.authenticate = func(email, password string) (*domain.User, error) {
		if email != "jane@example.com" || password != "super-secret" {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid email or password.")
		}
		viewer := testViewer
		viewer.Remember = "existing-token"
		return &viewer, nil
	}

	body := `{"email":"jane@example.com","password":"super-secret"}`
	rec := serve(s, httptest.NewRequest("POST", "/login", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	cookie := rememberCookie(rec)
	if cookie == nil || cookie.Value != "existing-token" {
		t.Errorf("login cookie = %+v, want the user's remember token", cookie)
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	s, f := newTestServer()

	f.us.authenticate = func(email, password string) (*domain.User, error) {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid email or password.")
	}

	body := `{"email":"jane@example.com","password":"wrong"}`
	rec := serve(s, httptest.NewRequest("POST", "/login", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogoutRotatesToken(t *testing.T) {
	s, f := newTestServer()

	rotated := ""
	f.us.update = func(user *domain.User) error {
		rotated = user.Remember
		return nil
	}

	rec := serve(s, authedRequest("POST", "/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rotated == "" {
		t.Error("logout did not rotate the remember token")
	}

	cookie := rememberCookie(rec)
	if cookie == nil || cookie.Value != "" {
		t.Errorf("logout cookie = %+v, want an expired empty cookie", cookie)
	}
}
