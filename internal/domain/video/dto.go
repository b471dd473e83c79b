package video

import "strings"

// CreateRequest for POST /api/videos
type CreateRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	VideoURL    string `json:"videoUrl" validate:"required,notblank,max=2048"`
}

// UpdateRequest for PUT /api/videos/{id}. Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
}

// Validate checks the supplied fields
func (r *UpdateRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = "This field is required"
	}
	if r.VideoURL != nil && strings.TrimSpace(*r.VideoURL) == "" {
		errs["videoUrl"] = "This field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ReorderRequest for PATCH /api/videos/reorder
type ReorderRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}
