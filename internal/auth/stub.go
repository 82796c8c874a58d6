package auth

import (
	"context"
	"errors"
	"time"
)

type StubService struct {
	IssueTokenFunc func(ctx context.Context, password string) (string, time.Duration, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) IssueToken(ctx context.Context, password string) (string, time.Duration, error) {
	if s.IssueTokenFunc == nil {
		return "", 0, errors.New("IssueToken() not implemented by stub")
	}
	return s.IssueTokenFunc(ctx, password)
}
