package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Repository defines project data access interface
type Repository interface {
	storage.Collection[Project]
}

// NewLocalRepository keeps projects in <dataDir>/projects.json
func NewLocalRepository(dataDir string) Repository {
	return storage.NewJSONCollection[Project](dataDir, "projects")
}

// fallbackRepository serves List from the local copy when the database is
// down or empty.
type fallbackRepository struct {
	Repository
	reads *storage.ReadFallback[Project]
}

// NewFallbackRepository wraps primary so that List falls back to local
func NewFallbackRepository(primary, local Repository) Repository {
	return &fallbackRepository{
		Repository: primary,
		reads:      storage.NewReadFallback[Project]("projects", primary, local),
	}
}

func (r *fallbackRepository) List(ctx context.Context) ([]*Project, error) {
	return r.reads.List(ctx)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres project repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const projectColumns = `id, title, description, image, project_url, created_at, sort_order`

func (r *repository) List(ctx context.Context) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY sort_order, id DESC`
	projects := []*Project{}
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p Project
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (id, title, description, image, project_url, created_at, sort_order)
		VALUES (:id, :title, :description, :image, :project_url, :created_at, :sort_order)
	`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if database.IsUniqueViolation(err) {
			return storage.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	query := `
		UPDATE projects
		SET title = :title, description = :description, image = :image,
		    project_url = :project_url, sort_order = :sort_order
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectRow(result)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result)
}

func expectRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
