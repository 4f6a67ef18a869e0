package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// Service turns a verified bearer token into a principal.
type Service struct {
	repo   Repository
	secret []byte
	issuer string
	now    func() time.Time
}

// NewService constructs a new Service. An empty issuer disables the issuer
// check.
func NewService(repo Repository, secret, issuer string) *Service {
	return &Service{repo: repo, secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Authenticate verifies token and loads the principal it names. Every
// verification failure collapses into shared.ErrInvalidCredentials; storage
// failures are returned as is.
func (s *Service) Authenticate(ctx context.Context, token string) (*rbac.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, opts...)
	if err != nil || claims.Subject == "" {
		return nil, shared.ErrInvalidCredentials
	}

	rec, err := s.repo.FindPrincipal(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: find principal: %w", err)
	}
	if !rec.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	role, ok := rbac.ParseRole(rec.Role)
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}
	return &rbac.Principal{
		ID:       rec.ID,
		Role:     role,
		TenantID: rec.TenantID,
		Grants:   rbac.DecodeGrants(rec.Permissions),
	}, nil
}
