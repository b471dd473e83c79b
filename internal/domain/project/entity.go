package project

import "time"

// Project is a portfolio entry with a cover image
type Project struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Image       string    `db:"image" json:"image"`
	ProjectURL  string    `db:"project_url" json:"projectUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	Order       int       `db:"sort_order" json:"order"`
}

func (p Project) RecordID() int64 { return p.ID }
func (p Project) SortOrder() int  { return p.Order }
