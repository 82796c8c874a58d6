package link

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/pkg/security"
	"github.com/ferdiebergado/shortly/internal/platform/db"
)

var (
	ErrInvalidURL      = errors.New("link service: url must start with http:// or https://")
	ErrCodesExhausted  = errors.New("link service: could not generate a unique short code")
	ErrResolveNotFound = errors.New("link service: no link for code")
)

const (
	defaultCodeLength  = 6
	defaultMaxAttempts = 10
)

type service struct {
	repo        Repo
	txMgr       db.TxManager
	codeLength  uint32
	maxAttempts int
}

var _ Service = (*service)(nil)

// Repo is the persistence surface the service needs.
type Repo interface {
	Create(ctx context.Context, params CreateLinkParams) (Link, error)
	FindByCode(ctx context.Context, code string) (*Link, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	IncrementClicks(ctx context.Context, code string) error
	List(ctx context.Context) ([]Link, error)
	Delete(ctx context.Context, code string) error
}

func NewService(repo Repo, txMgr db.TxManager, cfg *config.Link) *service {
	codeLength := uint32(defaultCodeLength)
	maxAttempts := defaultMaxAttempts
	if cfg != nil {
		if cfg.CodeLength > 0 {
			codeLength = cfg.CodeLength
		}
		if cfg.MaxAttempts > 0 {
			maxAttempts = cfg.MaxAttempts
		}
	}

	return &service{
		repo:        repo,
		txMgr:       txMgr,
		codeLength:  codeLength,
		maxAttempts: maxAttempts,
	}
}

// IsValidURL reports whether the url uses a scheme the shortener accepts.
func IsValidURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// ShortenURL stores the original URL under a freshly generated short code.
func (s *service) ShortenURL(ctx context.Context, originalURL string) (Link, error) {
	originalURL = strings.TrimSpace(originalURL)
	if !IsValidURL(originalURL) {
		return Link{}, ErrInvalidURL
	}

	code, err := s.generateShortCode(ctx)
	if err != nil {
		return Link{}, err
	}

	l, err := s.repo.Create(ctx, CreateLinkParams{
		OriginalURL: originalURL,
		ShortCode:   code,
	})
	if err != nil {
		return Link{}, fmt.Errorf("create link: %w", err)
	}
	return l, nil
}

// ResolveCode returns the link for the code and records the click. The
// lookup and the click increment run in one transaction.
func (s *service) ResolveCode(ctx context.Context, code string) (*Link, error) {
	var l *Link
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w %s: %v", ErrResolveNotFound, code, err)
			}
			return err
		}

		if err := s.repo.IncrementClicks(txCtx, code); err != nil {
			return fmt.Errorf("increment clicks: %w", err)
		}
		found.Clicks++

		l = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

// CodeStats returns the link for the code without recording a click.
func (s *service) CodeStats(ctx context.Context, code string) (*Link, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *service) ListLinks(ctx context.Context) ([]Link, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteLink(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}

// generateShortCode draws random codes until one is unused. The keyspace at
// the default length is 62^6 so collisions are rare; the attempt cap only
// guards against a saturated table or a broken randomizer.
func (s *service) generateShortCode(ctx context.Context) (string, error) {
	for range s.maxAttempts {
		code, err := security.GenerateRandomString(s.codeLength)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check short code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodesExhausted
}
