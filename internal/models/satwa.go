package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SatwaStatus string

// Канонические статусы отправки. Переходы не ограничены: любой статус можно выставить из любого.
const (
	SatwaStatusPending   SatwaStatus = "PENDING"
	SatwaStatusInTransit SatwaStatus = "IN_TRANSIT"
	SatwaStatusCompleted SatwaStatus = "COMPLETED"
)

// statusAliases: допустимый ввод (в нижнем регистре) -> канонический статус.
// Индонезийские метки приходят из форм админки.
var statusAliases = map[string]SatwaStatus{
	"pending":          SatwaStatusPending,
	"in_transit":       SatwaStatusInTransit,
	"completed":        SatwaStatusCompleted,
	"menunggu":         SatwaStatusPending,
	"dalam perjalanan": SatwaStatusInTransit,
	"selesai":          SatwaStatusCompleted,
}

// ParseSatwaStatus приводит введённый статус к каноническому.
func ParseSatwaStatus(s string) (SatwaStatus, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

type Satwa struct {
	ID        uuid.UUID   `json:"id"`
	KodeResi  string      `json:"kode_resi"`
	Nama      string      `json:"nama"`
	Spesies   string      `json:"spesies"`
	Asal      string      `json:"asal"`
	Tujuan    string      `json:"tujuan"`
	Status    SatwaStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SatwaInput: проверенные поля для создания и полной замены.
// Пустой Status при создании значит "по умолчанию", при обновлении "оставить текущий".
type SatwaInput struct {
	KodeResi string
	Nama     string
	Spesies  string
	Asal     string
	Tujuan   string
	Status   SatwaStatus
}

type SatwaFilter struct {
	Search string
	Status SatwaStatus
	Limit  int
	Offset int
}
