package project

import "strings"

// CreateRequest for POST /api/projects (multipart fields)
type CreateRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	ProjectURL  string `json:"projectUrl" validate:"required,notblank,max=2048"`
}

// UpdateRequest for PUT /api/projects/{id}. Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectURL  *string `json:"projectUrl"`
}

// Validate checks the supplied fields
func (r *UpdateRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = "This field is required"
	}
	if r.ProjectURL != nil && strings.TrimSpace(*r.ProjectURL) == "" {
		errs["projectUrl"] = "This field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ReorderRequest for PATCH /api/projects/reorder
type ReorderRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}
