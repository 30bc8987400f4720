package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/web"
)

func testRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	render, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return render
}

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestHandleRegisterSuccess(t *testing.T) {
	service := &fakeService{
		registerUser:    &User{ID: 1, Email: "a@x.com", Name: "A", Role: RoleAdmin},
		registerSession: &Session{Token: uuid.New(), UserID: 1, ExpiresAt: time.Now().Add(time.Hour)},
	}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, postForm("/register", url.Values{
		"name":     {"A"},
		"email":    {"a@x.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/posts" {
		t.Errorf("expected redirect to /posts, got %q", loc)
	}
	if service.registerCalls != 1 {
		t.Errorf("expected exactly one Register call, got %d", service.registerCalls)
	}
	if sessionCookie(rec, "blog_session") == nil {
		t.Error("expected a session cookie after registration")
	}
}

func TestHandleRegisterDuplicateEmail(t *testing.T) {
	service := &fakeService{
		registerErr: apperror.NewConflictError("You have already signed up with that email. Try to log in.", nil),
	}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, postForm("/register", url.Values{
		"name":     {"A"},
		"email":    {"a@x.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already signed up") {
		t.Error("expected the duplicate-email message on the page")
	}
	if sessionCookie(rec, "blog_session") != nil {
		t.Error("no session cookie may be set on a failed registration")
	}
}

func TestHandleRegisterValidationFailure(t *testing.T) {
	service := &fakeService{}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, postForm("/register", url.Values{
		"name":  {"A"},
		"email": {"not-an-email"},
	}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if service.registerCalls != 0 {
		t.Error("Register must not be called when validation fails")
	}
	// Submitted values are preserved in the re-rendered form.
	if !strings.Contains(rec.Body.String(), `value="A"`) {
		t.Error("expected the submitted name to be preserved")
	}
}

func TestHandleLoginSuccess(t *testing.T) {
	service := &fakeService{
		loginUser:    &User{ID: 2, Email: "b@x.com", Name: "B", Role: RoleMember},
		loginSession: &Session{Token: uuid.New(), UserID: 2, ExpiresAt: time.Now().Add(time.Hour)},
	}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, postForm("/login", url.Values{
		"email":    {"b@x.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if sessionCookie(rec, "blog_session") == nil {
		t.Error("expected a session cookie after login")
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	service := &fakeService{loginErr: apperror.NewAuthError("Wrong password.", nil)}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, postForm("/login", url.Values{
		"email":    {"b@x.com"},
		"password": {"nope"},
	}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Wrong password.") {
		t.Error("expected the wrong-password message on the page")
	}
	if sessionCookie(rec, "blog_session") != nil {
		t.Error("no session cookie may be set on a failed login")
	}
}

func TestHandleLoginUnknownEmail(t *testing.T) {
	service := &fakeService{
		loginErr: apperror.NewAuthError("User with that email does not exist. Check your email or register.", nil),
	}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, postForm("/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "does not exist") {
		t.Error("expected the unknown-user message on the page")
	}
	if sessionCookie(rec, "blog_session") != nil {
		t.Error("no session cookie may be set on a failed login")
	}
}

func TestHandleLogout(t *testing.T) {
	service := &fakeService{}
	cm := NewCookieManager(testSessionConfig())
	h := NewHandlers(service, cm, testRenderer(t))

	r := requestWithSession(t, cm)
	rec := httptest.NewRecorder()
	h.HandleLogout()(rec, r)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if service.logoutCalls != 1 {
		t.Errorf("expected one Logout call, got %d", service.logoutCalls)
	}

	// The cookie must be expired regardless.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "blog_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}
