package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/api/middleware"
	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, role domain.Role, form *domain.SignupForm) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, role domain.Role, form *domain.LoginForm) (*ports.AuthResult, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Signup(ctx context.Context, role domain.Role, form *domain.SignupForm) (*ports.AuthResult, error) {
	return s.signupFn(ctx, role, form)
}

func (s *stubAuthService) Login(ctx context.Context, role domain.Role, form *domain.LoginForm) (*ports.AuthResult, error) {
	return s.loginFn(ctx, role, form)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, token)
	}
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, role domain.Role, form *domain.SignupForm) (*ports.AuthResult, error) {
			if role != domain.RoleCitizen || form.Email != "jane@gmail.com" {
				t.Fatalf("unexpected args: %s %s", role, form.Email)
			}
			return &ports.AuthResult{
				Identity:     &domain.Identity{ID: "id1", Email: form.Email, Role: role, Name: "Jane Doe"},
				SessionToken: "tok1",
				BearerToken:  "jwt1",
				RedirectTo:   role.DashboardRoute(),
			}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := `{"role":"citizen","full_name":"Jane Doe","email":"jane@gmail.com","phone":"08011112222","password":"secret1","confirm_password":"secret1"}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/signup", body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect_to"] != "/citizen-dashboard" {
		t.Fatalf("unexpected redirect: %v", resp["redirect_to"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "citizen" || user["name"] != "Jane Doe" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookie && cookie.Value == "tok1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("session cookie not set: %+v", cookies)
	}
}

func TestAuthHandler_Signup_UnknownRole(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, domain.Role, *domain.SignupForm) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", `{"role":"superadmin"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, domain.Role, *domain.SignupForm) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", "not-json")
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_ValidationErrorPassedThrough(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, domain.Role, *domain.SignupForm) (*ports.AuthResult, error) {
			return nil, &domain.ValidationError{Message: "Passwords do not match"}
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := `{"role":"citizen","full_name":"Jane","email":"jane@gmail.com","phone":"08011112222","password":"secret1","confirm_password":"secret2"}`
	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", body)

	err := h.Signup(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Passwords do not match" {
		t.Fatalf("expected validation error to pass through, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, role domain.Role, form *domain.LoginForm) (*ports.AuthResult, error) {
			if role != domain.RoleAdmin || form.EmailOrPhone != "root@nitda.gov.ng" {
				t.Fatalf("unexpected args: %s %s", role, form.EmailOrPhone)
			}
			return &ports.AuthResult{
				Identity:     &domain.Identity{ID: "id2", Email: form.EmailOrPhone, Role: role, Name: "root"},
				SessionToken: "tok2",
				BearerToken:  "jwt2",
				RedirectTo:   role.DashboardRoute(),
			}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := `{"role":"admin","email_or_phone":"root@nitda.gov.ng","password":"secret1"}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt2" || resp["redirect_to"] != "/admin-dashboard" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, domain.Role, *domain.LoginForm) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	body := `{"role":"admin","email_or_phone":"missing@none.com","password":"x"}`
	c, _ := newTestContext(t, http.MethodPost, "/auth/login", body)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingRole(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, domain.Role, *domain.LoginForm) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email_or_phone":"jane@gmail.com","password":"x"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	var closedToken string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			closedToken = token
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tok3"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if closedToken != "tok3" {
		t.Fatalf("expected session tok3 closed, got %q", closedToken)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not cleared")
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, _ := newTestContext(t, http.MethodGet, "/auth/session", "")
	err := h.Session(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %v", err)
	}
}
