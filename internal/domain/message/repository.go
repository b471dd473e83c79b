package message

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Repository defines message data access interface
type Repository interface {
	List(ctx context.Context) ([]*Message, error)
	GetByID(ctx context.Context, id int64) (*Message, error)
	Create(ctx context.Context, msg *Message) error
	Delete(ctx context.Context, id int64) error
	ToggleRead(ctx context.Context, id int64) (*Message, error)
}

// localRepository keeps messages in <dataDir>/messages.json
type localRepository struct {
	*storage.JSONCollection[Message]
}

// NewLocalRepository creates a flat-file message repository
func NewLocalRepository(dataDir string) Repository {
	return &localRepository{storage.NewJSONCollection[Message](dataDir, "messages")}
}

func (r *localRepository) ToggleRead(ctx context.Context, id int64) (*Message, error) {
	return r.Modify(ctx, id, func(m *Message) error {
		m.Read = !m.Read
		return nil
	})
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres message repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const messageColumns = `id, name, email, message, timestamp, read`

func (r *repository) List(ctx context.Context) ([]*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY id DESC`
	messages := []*Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	var msg Message
	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (id, name, email, message, timestamp, read)
		VALUES (:id, :name, :email, :message, :timestamp, :read)
	`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		if database.IsUniqueViolation(err) {
			return storage.ErrConflict
		}
		return err
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *repository) ToggleRead(ctx context.Context, id int64) (*Message, error) {
	query := `UPDATE messages SET read = NOT read WHERE id = $1 RETURNING ` + messageColumns
	var msg Message
	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}
