package domain

import "time"

type Note struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Date        time.Time `json:"date"`
}

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"min=3"`
	Description string `json:"description" validate:"min=3"`
	Tag         string `json:"tag" validate:"min=3"`
}

// UpdateNoteRequest fields are optional; nil or empty leaves the stored value
// untouched. No length rules apply on update.
type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
}

type DeleteNoteByTitleRequest struct {
	Title string `json:"title" validate:"min=3"`
}

type DeleteNoteByTagRequest struct {
	Tag string `json:"tag" validate:"min=3"`
}

type DeleteNoteResponse struct {
	Success string `json:"Success"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field    string      `json:"field"`
	Msg      string      `json:"msg"`
	Value    interface{} `json:"value"`
	Location string      `json:"location"`
}
