package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
	"github.com/optigov/ndpr-portal/internal/core/validation"
)

type authService struct {
	directory    ports.UserDirectory
	registration ports.RegistrationClient
	sessions     ports.SessionService
	audit        ports.AuditTrail
	log          zerolog.Logger

	// inFlight guards against overlapping submissions from the same
	// submitter: a double-clicked form resubmits the same email or phone
	// and is rejected with ErrSubmitInFlight while the first submission is
	// still running. Unrelated submitters are never serialized.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAuthService wires the signup and login flows together.
func NewAuthService(
	directory ports.UserDirectory,
	registration ports.RegistrationClient,
	sessions ports.SessionService,
	audit ports.AuditTrail,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		directory:    directory,
		registration: registration,
		sessions:     sessions,
		audit:        audit,
		log:          log,
		inFlight:     make(map[string]struct{}),
	}
}

// submitKey normalizes a submitter identifier so that retries of the same
// form land on the same guard slot.
func submitKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (s *authService) beginSubmit(actor string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[actor]; busy {
		return false
	}
	s.inFlight[actor] = struct{}{}
	return true
}

func (s *authService) endSubmit(actor string) {
	s.mu.Lock()
	delete(s.inFlight, actor)
	s.mu.Unlock()
}

// Signup validates the form, registers the account with the remote
// registration service, appends it to the local directory, and opens a
// session. The directory append completes the loop the login flow reads
// from; registered users can immediately log back in.
func (s *authService) Signup(ctx context.Context, role domain.Role, form *domain.SignupForm) (*ports.AuthResult, error) {
	actor := submitKey(form.Email)
	if !s.beginSubmit(actor) {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.endSubmit(actor)

	// 1. Validate locally — no network call on a rejected form.
	if err := validation.Validate(validation.Context{
		Mode:   validation.ModeSignup,
		Role:   role,
		Signup: form,
	}); err != nil {
		s.publishAudit(form.Email, role, domain.AuditActionSignup, domain.AuditOutcomeRejected, err.Error())
		return nil, err
	}

	// 2. Register with the remote collaborator. Its failure message is
	// surfaced verbatim.
	if err := s.registration.Register(ctx, form); err != nil {
		s.publishAudit(form.Email, role, domain.AuditActionSignup, domain.AuditOutcomeError, err.Error())
		return nil, err
	}

	// 3. Append to the local directory so the login lookup can find the
	// account. Passwords are stored hashed, never plaintext.
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	user := &domain.StoredUser{
		FullName:     strings.TrimSpace(form.FullName),
		Email:        form.Email,
		Phone:        validation.NormalizePhone(form.Phone),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.directory.Append(ctx, user); err != nil {
		s.publishAudit(form.Email, role, domain.AuditActionSignup, domain.AuditOutcomeError, err.Error())
		return nil, err
	}

	// 4. Open the session and hand back the role's dashboard route.
	identity, token, bearer, err := s.sessions.Open(ctx, form.Email, role, form.FullName)
	if err != nil {
		return nil, err
	}

	s.publishAudit(form.Email, role, domain.AuditActionSignup, domain.AuditOutcomeSuccess, "")
	s.log.Info().Str("email", form.Email).Str("role", role.String()).Msg("signup complete")

	return &ports.AuthResult{
		Identity:     identity,
		SessionToken: token,
		BearerToken:  bearer,
		RedirectTo:   role.DashboardRoute(),
	}, nil
}

// Login checks field presence, matches the (email-or-phone, password, role)
// triple against the directory, and opens a session. Any mismatch produces
// the same generic invalid-credentials error.
func (s *authService) Login(ctx context.Context, role domain.Role, form *domain.LoginForm) (*ports.AuthResult, error) {
	actor := submitKey(form.EmailOrPhone)
	if !s.beginSubmit(actor) {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.endSubmit(actor)

	if err := validation.Validate(validation.Context{
		Mode:  validation.ModeLogin,
		Role:  role,
		Login: form,
	}); err != nil {
		return nil, err
	}

	emailOrPhone := strings.TrimSpace(form.EmailOrPhone)
	user, err := s.directory.FindByLogin(ctx, emailOrPhone, role)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.publishAudit(emailOrPhone, role, domain.AuditActionLogin, domain.AuditOutcomeRejected, "no matching account")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		s.publishAudit(emailOrPhone, role, domain.AuditActionLogin, domain.AuditOutcomeRejected, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	identity, token, bearer, err := s.sessions.Open(ctx, user.Email, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}

	s.publishAudit(user.Email, user.Role, domain.AuditActionLogin, domain.AuditOutcomeSuccess, "")
	s.log.Info().Str("email", user.Email).Str("role", user.Role.String()).Msg("login complete")

	return &ports.AuthResult{
		Identity:     identity,
		SessionToken: token,
		BearerToken:  bearer,
		RedirectTo:   user.Role.DashboardRoute(),
	}, nil
}

// Logout closes the session held under token.
func (s *authService) Logout(ctx context.Context, token string) error {
	identity, err := s.sessions.Resolve(ctx, token)
	if err == nil && identity != nil {
		s.publishAudit(identity.Email, identity.Role, domain.AuditActionLogout, domain.AuditOutcomeSuccess, "")
	}
	return s.sessions.Close(ctx, token)
}

func (s *authService) publishAudit(actor string, role domain.Role, action, outcome, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Publish(domain.AuditEvent{
		Actor:   actor,
		Role:    role,
		Action:  action,
		Outcome: outcome,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
