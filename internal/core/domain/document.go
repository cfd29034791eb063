package domain

import "time"

// DealDocument is a file attached to a deal by its owning agent. Documents are
// immutable after creation.
type DealDocument struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	DealID     string    `json:"deal_id" bson:"deal_id"`
	FileType   string    `json:"file_type" bson:"file_type"`
	FileName   string    `json:"file_name" bson:"file_name"`
	StoredPath string    `json:"stored_path" bson:"stored_path"`
	UploadedBy string    `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
