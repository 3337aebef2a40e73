package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/api/metrics"
	"github.com/optigov/ndpr-portal/internal/api/middleware"
	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

type signupRequest struct {
	Role            string `json:"role" validate:"required,oneof=citizen company admin"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Role         string `json:"role" validate:"required,oneof=citizen company admin"`
	EmailOrPhone string `json:"email_or_phone"`
	Password     string `json:"password"`
}

type authResponse struct {
	User       *domain.Identity `json:"user"`
	Token      string           `json:"token,omitempty"`
	RedirectTo string           `json:"redirect_to"`
}

// Signup registers a new account and opens a session.
//
// @Summary      Sign up a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup form and role tab"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	form := &domain.SignupForm{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            role,
	}

	start := time.Now()
	result, err := h.authService.Signup(c.Request().Context(), role, form)
	metrics.AuthDuration.WithLabelValues("signup").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(role.String(), resultLabel(err)).Inc()
		return err
	}
	metrics.SignupsTotal.WithLabelValues(role.String(), "success").Inc()

	h.setSessionCookie(c, result.SessionToken)
	return c.JSON(http.StatusCreated, authResponse{
		User:       result.Identity,
		Token:      result.BearerToken,
		RedirectTo: result.RedirectTo,
	})
}

// Login authenticates against the local user directory and opens a session.
//
// @Summary      Log in under a role tab
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login form and role tab"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	form := &domain.LoginForm{
		EmailOrPhone: req.EmailOrPhone,
		Password:     req.Password,
	}

	start := time.Now()
	result, err := h.authService.Login(c.Request().Context(), role, form)
	metrics.AuthDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role.String(), resultLabel(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(role.String(), "success").Inc()

	h.setSessionCookie(c, result.SessionToken)
	return c.JSON(http.StatusOK, authResponse{
		User:       result.Identity,
		Token:      result.BearerToken,
		RedirectTo: result.RedirectTo,
	})
}

// Logout closes the current session and clears the session cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.SessionTokenFrom(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Session returns the Identity of the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return c.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// resultLabel classifies a flow error for the attempt counters.
func resultLabel(err error) string {
	switch err.(type) {
	case *domain.ValidationError, *domain.RegistrationError:
		return "rejected"
	}
	switch err {
	case domain.ErrInvalidCredentials, domain.ErrUserExists, domain.ErrSubmitInFlight:
		return "rejected"
	}
	return "error"
}
