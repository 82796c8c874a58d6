package link

import (
	"context"
	"errors"
)

// StubService is a test double for the link Service.
type StubService struct {
	ShortenURLFunc  func(ctx context.Context, originalURL string) (Link, error)
	ResolveCodeFunc func(ctx context.Context, code string) (*Link, error)
	CodeStatsFunc   func(ctx context.Context, code string) (*Link, error)
	ListLinksFunc   func(ctx context.Context) ([]Link, error)
	DeleteLinkFunc  func(ctx context.Context, code string) error
}

var _ Service = (*StubService)(nil)

func (s *StubService) ShortenURL(ctx context.Context, originalURL string) (Link, error) {
	if s.ShortenURLFunc == nil {
		return Link{}, errors.New("ShortenURL() not implemented by stub")
	}
	return s.ShortenURLFunc(ctx, originalURL)
}

func (s *StubService) ResolveCode(ctx context.Context, code string) (*Link, error) {
	if s.ResolveCodeFunc == nil {
		return nil, errors.New("ResolveCode() not implemented by stub")
	}
	return s.ResolveCodeFunc(ctx, code)
}

func (s *StubService) CodeStats(ctx context.Context, code string) (*Link, error) {
	if s.CodeStatsFunc == nil {
		return nil, errors.New("CodeStats() not implemented by stub")
	}
	return s.CodeStatsFunc(ctx, code)
}

func (s *StubService) ListLinks(ctx context.Context) ([]Link, error) {
	if s.ListLinksFunc == nil {
		return nil, errors.New("ListLinks() not implemented by stub")
	}
	return s.ListLinksFunc(ctx)
}

func (s *StubService) DeleteLink(ctx context.Context, code string) error {
	if s.DeleteLinkFunc == nil {
		return errors.New("DeleteLink() not implemented by stub")
	}
	return s.DeleteLinkFunc(ctx, code)
}

// StubRepository is a test double for the link Repo.
type StubRepository struct {
	CreateFunc          func(ctx context.Context, params CreateLinkParams) (Link, error)
	FindByCodeFunc      func(ctx context.Context, code string) (*Link, error)
	CodeExistsFunc      func(ctx context.Context, code string) (bool, error)
	IncrementClicksFunc func(ctx context.Context, code string) error
	ListFunc            func(ctx context.Context) ([]Link, error)
	DeleteFunc          func(ctx context.Context, code string) error
}

var _ Repo = (*StubRepository)(nil)

func (r *StubRepository) Create(ctx context.Context, params CreateLinkParams) (Link, error) {
	if r.CreateFunc == nil {
		return Link{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepository) FindByCode(ctx context.Context, code string) (*Link, error) {
	if r.FindByCodeFunc == nil {
		return nil, errors.New("FindByCode() not implemented by stub")
	}
	return r.FindByCodeFunc(ctx, code)
}

func (r *StubRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	if r.CodeExistsFunc == nil {
		return false, errors.New("CodeExists() not implemented by stub")
	}
	return r.CodeExistsFunc(ctx, code)
}

func (r *StubRepository) IncrementClicks(ctx context.Context, code string) error {
	if r.IncrementClicksFunc == nil {
		return errors.New("IncrementClicks() not implemented by stub")
	}
	return r.IncrementClicksFunc(ctx, code)
}

func (r *StubRepository) List(ctx context.Context) ([]Link, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepository) Delete(ctx context.Context, code string) error {
	if r.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return r.DeleteFunc(ctx, code)
}
