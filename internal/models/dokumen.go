package models

import (
	"time"

	"github.com/google/uuid"
)

type Dokumen struct {
	ID         uuid.UUID `json:"id"`
	SatwaID    uuid.UUID `json:"satwa_id"`
	Nama       string    `json:"nama"`
	FileURL    string    `json:"file_url"`
	FileKey    string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type DokumenCreateInput struct {
	SatwaID uuid.UUID
	Nama    string
	FileURL string
	FileKey string
}
