package link

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/shortly/internal/platform/db"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("link repository: link not found")
	ErrQueryFailed = errors.New("link repository: query failed")
)

type SQLRepository struct {
	db *sql.DB
}

var _ Repo = (*SQLRepository)(nil)

func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db}
}

// executor returns the transaction carried by the context when there is one,
// so queries issued inside RunInTx share it.
func (r *SQLRepository) executor(ctx context.Context) db.Executor {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

type CreateLinkParams struct {
	OriginalURL string
	ShortCode   string
}

const QueryLinkCreate = `
INSERT INTO links (id, original_url, short_code, clicks, created_at)
VALUES ($1, $2, $3, 0, $4)
`

func (r *SQLRepository) Create(ctx context.Context, params CreateLinkParams) (Link, error) {
	l := Link{
		ID:          uuid.NewString(),
		OriginalURL: params.OriginalURL,
		ShortCode:   params.ShortCode,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := r.executor(ctx).ExecContext(ctx, QueryLinkCreate, l.ID, l.OriginalURL, l.ShortCode, l.CreatedAt); err != nil {
		return Link{}, fmt.Errorf("%w: create link with code %s: %v", ErrQueryFailed, params.ShortCode, err)
	}
	return l, nil
}

const QueryLinkFindByCode = `
SELECT id, original_url, short_code, clicks, created_at FROM links
WHERE short_code = $1
LIMIT 1
`

func (r *SQLRepository) FindByCode(ctx context.Context, code string) (*Link, error) {
	row := r.executor(ctx).QueryRowContext(ctx, QueryLinkFindByCode, code)
	var l Link
	if err := row.Scan(&l.ID, &l.OriginalURL, &l.ShortCode, &l.Clicks, &l.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find link with code %s: %v", ErrQueryFailed, code, err)
	}
	return &l, nil
}

const QueryLinkCodeExists = "SELECT EXISTS (SELECT 1 FROM links WHERE short_code = $1)"

func (r *SQLRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	row := r.executor(ctx).QueryRowContext(ctx, QueryLinkCodeExists, code)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: check code %s: %v", ErrQueryFailed, code, err)
	}
	return exists, nil
}

const QueryLinkIncrementClicks = "UPDATE links SET clicks = clicks + 1 WHERE short_code = $1"

func (r *SQLRepository) IncrementClicks(ctx context.Context, code string) error {
	res, err := r.executor(ctx).ExecContext(ctx, QueryLinkIncrementClicks, code)
	if err != nil {
		return fmt.Errorf("%w: increment clicks for code %s: %v", ErrQueryFailed, code, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for code %s: %v", ErrQueryFailed, code, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const QueryLinkList = "SELECT id, original_url, short_code, clicks, created_at FROM links ORDER BY created_at DESC"

func (r *SQLRepository) List(ctx context.Context) ([]Link, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, QueryLinkList)
	if err != nil {
		return nil, fmt.Errorf("%w: list links: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var links []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.OriginalURL, &l.ShortCode, &l.Clicks, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("link repository: scan row: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("link repository: iterate over link rows: %w", err)
	}

	return links, nil
}

const QueryLinkDelete = "DELETE FROM links WHERE short_code = $1"

func (r *SQLRepository) Delete(ctx context.Context, code string) error {
	res, err := r.executor(ctx).ExecContext(ctx, QueryLinkDelete, code)
	if err != nil {
		return fmt.Errorf("%w: delete link with code %s: %v", ErrQueryFailed, code, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for code %s: %v", ErrQueryFailed, code, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
