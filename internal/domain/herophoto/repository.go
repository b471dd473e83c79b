package herophoto

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Repository defines hero photo data access interface
type Repository interface {
	storage.Collection[HeroPhoto]
}

// NewLocalRepository keeps hero photos in <dataDir>/hero-photos.json
func NewLocalRepository(dataDir string) Repository {
	return storage.NewJSONCollection[HeroPhoto](dataDir, "hero-photos")
}

type fallbackRepository struct {
	Repository
	reads *storage.ReadFallback[HeroPhoto]
}

// NewFallbackRepository wraps primary so that List falls back to local
func NewFallbackRepository(primary, local Repository) Repository {
	return &fallbackRepository{
		Repository: primary,
		reads:      storage.NewReadFallback[HeroPhoto]("hero_photos", primary, local),
	}
}

func (r *fallbackRepository) List(ctx context.Context) ([]*HeroPhoto, error) {
	return r.reads.List(ctx)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres hero photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const heroPhotoColumns = `id, image, alt, position_x, position_y, created_at, sort_order`

func (r *repository) List(ctx context.Context) ([]*HeroPhoto, error) {
	query := `SELECT ` + heroPhotoColumns + ` FROM hero_photos ORDER BY sort_order, id DESC`
	photos := []*HeroPhoto{}
	if err := r.db.SelectContext(ctx, &photos, query); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*HeroPhoto, error) {
	query := `SELECT ` + heroPhotoColumns + ` FROM hero_photos WHERE id = $1`
	var p HeroPhoto
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *HeroPhoto) error {
	query := `
		INSERT INTO hero_photos (id, image, alt, position_x, position_y, created_at, sort_order)
		VALUES (:id, :image, :alt, :position_x, :position_y, :created_at, :sort_order)
	`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if database.IsUniqueViolation(err) {
			return storage.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *HeroPhoto) error {
	query := `
		UPDATE hero_photos
		SET image = :image, alt = :alt, position_x = :position_x,
		    position_y = :position_y, sort_order = :sort_order
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectRow(result)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hero_photos WHERE id = $1`, id)
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
