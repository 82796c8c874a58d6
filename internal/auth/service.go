// Package auth issues and verifies the admin bearer tokens that guard the
// link management endpoints. There is a single operator identity whose
// password hash is supplied through the environment.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/platform/hash"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
)

var ErrInvalidPassword = errors.New("auth service: invalid password")

const adminSubject = "admin"

type Providers struct {
	Hasher hash.Hasher
	Signer jwt.Signer
}

type service struct {
	hasher    hash.Hasher
	signer    jwt.Signer
	adminHash string
	ttl       time.Duration
}

var _ Service = (*service)(nil)

func NewService(providers *Providers, cfg *config.JWT, adminHash string) *service {
	return &service{
		hasher:    providers.Hasher,
		signer:    providers.Signer,
		adminHash: adminHash,
		ttl:       cfg.TTL.Duration,
	}
}

// IssueToken verifies the admin password and returns a signed bearer token.
func (s *service) IssueToken(_ context.Context, password string) (string, time.Duration, error) {
	ok, err := s.hasher.Verify(password, s.adminHash)
	if err != nil {
		return "", 0, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", 0, ErrInvalidPassword
	}

	token, err := s.signer.Sign(adminSubject, nil, s.ttl)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return token, s.ttl, nil
}
