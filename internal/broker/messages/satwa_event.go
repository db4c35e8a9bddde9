package messages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	SatwaCreated       = "satwa.created"
	SatwaUpdated       = "satwa.updated"
	SatwaStatusChanged = "satwa.status_changed"
	SatwaDeleted       = "satwa.deleted"
	ProgressAdded      = "satwa.progress_added"
)

type SatwaEvent struct {
	Type       string    `json:"type"`
	SatwaID    uuid.UUID `json:"satwa_id"`
	KodeResi   string    `json:"kode_resi"`
	Status     string    `json:"status,omitempty"`
	Lokasi     string    `json:"lokasi,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key: все события одной отправки попадают в одну партицию.
func (e SatwaEvent) Key() []byte {
	return []byte(e.SatwaID.String())
}

func (e SatwaEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
