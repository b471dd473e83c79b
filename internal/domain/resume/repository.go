package resume

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Repository stores the resume slot
type Repository interface {
	// Get returns the current resume or storage.ErrNotFound
	Get(ctx context.Context) (*Resume, error)
	// Replace makes r the only record and returns the records it displaced
	Replace(ctx context.Context, r *Resume) ([]*Resume, error)
	// Clear removes every record and returns them
	Clear(ctx context.Context) ([]*Resume, error)
}

type localRepository struct {
	files *storage.JSONCollection[Resume]
}

// NewLocalRepository keeps the resume in <dataDir>/resume.json
func NewLocalRepository(dataDir string) Repository {
	return &localRepository{files: storage.NewJSONCollection[Resume](dataDir, "resume")}
}

func (r *localRepository) Get(ctx context.Context) (*Resume, error) {
	items, err := r.files.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, storage.ErrNotFound
	}
	storage.SortNewestFirst(items)
	return items[0], nil
}

func (r *localRepository) Replace(ctx context.Context, res *Resume) ([]*Resume, error) {
	return r.files.ReplaceAll(ctx, []*Resume{res})
}

func (r *localRepository) Clear(ctx context.Context) ([]*Resume, error) {
	return r.files.ReplaceAll(ctx, nil)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres resume repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const resumeColumns = `id, path, filename, uploaded_at`

func (r *repository) Get(ctx context.Context) (*Resume, error) {
	items := []*Resume{}
	query := `SELECT ` + resumeColumns + ` FROM resume ORDER BY id DESC LIMIT 1`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, storage.ErrNotFound
	}
	return items[0], nil
}

func (r *repository) Replace(ctx context.Context, res *Resume) ([]*Resume, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	previous, err := deleteAll(ctx, tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO resume (id, path, filename, uploaded_at)
		VALUES (:id, :path, :filename, :uploaded_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, res); err != nil {
		return nil, fmt.Errorf("failed to insert resume: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return previous, nil
}

func (r *repository) Clear(ctx context.Context) ([]*Resume, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	previous, err := deleteAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return previous, nil
}

func deleteAll(ctx context.Context, tx *sqlx.Tx) ([]*Resume, error) {
	previous := []*Resume{}
	query := `DELETE FROM resume RETURNING ` + resumeColumns
	if err := tx.SelectContext(ctx, &previous, query); err != nil {
		return nil, fmt.Errorf("failed to clear resume: %w", err)
	}
	return previous, nil
}
