package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

type sessionService struct {
	store     ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewSessionService returns a SessionService backed by the given store.
// Bearer tokens are signed with jwtSecret and expire after tokenTTL.
func NewSessionService(store ports.SessionStore, jwtSecret string, tokenTTL time.Duration) ports.SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &sessionService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Open creates a fresh Identity for email/role, persists it under a new
// session token, and issues a matching bearer token for API clients.
func (s *sessionService) Open(ctx context.Context, email string, role domain.Role, name string) (*domain.Identity, string, string, error) {
	identity := &domain.Identity{
		ID:    uuid.NewString(),
		Email: email,
		Role:  role,
		Name:  domain.DisplayName(email, name),
	}

	token := uuid.NewString()
	if err := s.store.Save(ctx, token, identity); err != nil {
		return nil, "", "", fmt.Errorf("open session: %w", err)
	}

	bearer, err := s.generateBearer(identity, token)
	if err != nil {
		return nil, "", "", fmt.Errorf("open session: sign token: %w", err)
	}

	return identity, token, bearer, nil
}

// Resolve returns the Identity stored under token.
func (s *sessionService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.store.Load(ctx, token)
}

// ResolveBearer verifies a signed bearer token and resolves the session it
// references, so a closed session invalidates outstanding bearer tokens too.
func (s *sessionService) ResolveBearer(ctx context.Context, bearer string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(bearer, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	return s.Resolve(ctx, sid)
}

// Close discards the session stored under token. Closing an already absent
// session is not an error.
func (s *sessionService) Close(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

func (s *sessionService) generateBearer(identity *domain.Identity, sessionToken string) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sessionToken,
		"email": identity.Email,
		"role":  identity.Role.String(),
		"name":  identity.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
