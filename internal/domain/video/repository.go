package video

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Repository defines video data access interface
type Repository interface {
	storage.Collection[Video]
}

// NewLocalRepository keeps videos in <dataDir>/videos.json
func NewLocalRepository(dataDir string) Repository {
	return storage.NewJSONCollection[Video](dataDir, "videos")
}

type fallbackRepository struct {
	Repository
	reads *storage.ReadFallback[Video]
}

// NewFallbackRepository wraps primary so that List falls back to local
func NewFallbackRepository(primary, local Repository) Repository {
	return &fallbackRepository{
		Repository: primary,
		reads:      storage.NewReadFallback[Video]("videos", primary, local),
	}
}

func (r *fallbackRepository) List(ctx context.Context) ([]*Video, error) {
	return r.reads.List(ctx)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres video repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const videoColumns = `id, title, description, video_url, video_id, thumbnail, created_at, sort_order`

func (r *repository) List(ctx context.Context) ([]*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY sort_order, id DESC`
	videos := []*Video{}
	if err := r.db.SelectContext(ctx, &videos, query); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	var v Video
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, v *Video) error {
	query := `
		INSERT INTO videos (id, title, description, video_url, video_id, thumbnail, created_at, sort_order)
		VALUES (:id, :title, :description, :video_url, :video_id, :thumbnail, :created_at, :sort_order)
	`
	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		if database.IsUniqueViolation(err) {
			return storage.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, v *Video) error {
	query := `
		UPDATE videos
		SET title = :title, description = :description, video_url = :video_url,
		    video_id = :video_id, thumbnail = :thumbnail, sort_order = :sort_order
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, v)
	if err != nil {
		return err
	}
	return expectRow(result)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
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
