package db

import (
	"context"
	"errors"
)

// StubTxManager is a test double for TxManager.
type StubTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxManager = (*StubTxManager)(nil)

func (s *StubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.RunInTxFunc == nil {
		return errors.New("RunInTx() not implemented by stub")
	}
	return s.RunInTxFunc(ctx, fn)
}
