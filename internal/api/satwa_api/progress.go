package satwa_api

import (
	"net/http"
	"strings"
	"time"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
)

type progressRequest struct {
	Status     string  `json:"status"`
	Lokasi     string  `json:"lokasi"`
	Keterangan *string `json:"keterangan"`
	Tanggal    string  `json:"tanggal"`
}

// Формы админки шлют datetime-local или просто дату.
var tanggalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range tanggalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("invalid tanggal")
}

func (req progressRequest) input() (models.ProgressInput, error) {
	tanggal, err := parseTanggal(req.Tanggal)
	if err != nil {
		return models.ProgressInput{}, err
	}
	return models.ProgressInput{
		Status:     req.Status,
		Lokasi:     req.Lokasi,
		Keterangan: req.Keterangan,
		Tanggal:    tanggal,
	}, nil
}

func (a *SatwaAPI) listProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	items, err := a.shipments.ListProgress(r.Context(), id)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Progress{}
	}
	jsonData(w, http.StatusOK, items)
}

func (a *SatwaAPI) addProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		jsonError(w, r, err)
		return
	}
	p, err := a.shipments.AddProgress(r.Context(), id, in)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusCreated, p)
}

func (a *SatwaAPI) updateProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	progressID, err := pathUUID(r, "progressId")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		jsonError(w, r, err)
		return
	}
	p, err := a.shipments.UpdateProgress(r.Context(), id, progressID, in)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, p)
}

func (a *SatwaAPI) deleteProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	progressID, err := pathUUID(r, "progressId")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if err := a.shipments.DeleteProgress(r.Context(), id, progressID); err != nil {
		jsonError(w, r, err)
		return
	}
	jsonMessage(w, "progress deleted")
}
