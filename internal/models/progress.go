package models

import (
	"time"

	"github.com/google/uuid"
)

// Progress.Status хранит то, что ввёл оператор: известные метки приводятся
// к каноническому статусу, остальное остаётся свободным текстом.
type Progress struct {
	ID         uuid.UUID `json:"id"`
	SatwaID    uuid.UUID `json:"satwa_id"`
	Status     string    `json:"status"`
	Lokasi     string    `json:"lokasi"`
	Keterangan *string   `json:"keterangan"`
	Tanggal    time.Time `json:"tanggal"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProgressInput struct {
	Status     string
	Lokasi     string
	Keterangan *string
	Tanggal    time.Time

	// ShipmentStatus выставляется сервисом; пустое значение оставляет статус отправки как есть.
	ShipmentStatus SatwaStatus
}
