package domain

import "time"

// Artwork tracks the single file a participant has most recently submitted.
// At most one record per creator; a re-upload replaces the stored file and
// updates this record in place.
type Artwork struct {
	ID        int64     `json:"-"`
	CreatedBy string    `json:"created_by"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}
