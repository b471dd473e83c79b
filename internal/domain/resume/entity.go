package resume

import "time"

// DefaultFilename is used when the client sends no file name
const DefaultFilename = "resume.pdf"

// Resume is the single downloadable CV. At most one exists.
type Resume struct {
	ID         int64     `db:"id" json:"id"`
	Path       string    `db:"path" json:"path"`
	Filename   string    `db:"filename" json:"filename"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

func (r Resume) RecordID() int64 { return r.ID }
