package satwa_api

import (
	"net/http"
	"strconv"

	"github.com/cekresi/satwa/internal/models"
	"github.com/cekresi/satwa/internal/services/satwa"
)

type shipmentRequest struct {
	KodeResi      string `json:"kodeResi"`
	KodeResiSnake string `json:"kode_resi"`
	Nama          string `json:"nama"`
	Spesies       string `json:"spesies"`
	Asal          string `json:"asal"`
	Tujuan        string `json:"tujuan"`
	Status        string `json:"status"`
}

func (req shipmentRequest) input() models.SatwaInput {
	kode := req.KodeResi
	if kode == "" {
		kode = req.KodeResiSnake
	}
	return models.SatwaInput{
		KodeResi: kode,
		Nama:     req.Nama,
		Spesies:  req.Spesies,
		Asal:     req.Asal,
		Tujuan:   req.Tujuan,
		Status:   models.SatwaStatus(req.Status),
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// queryInt: нечисловое значение считается отсутствующим.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

func (a *SatwaAPI) listShipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, p, err := a.shipments.List(r.Context(), satwa.ListQuery{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Satwa{}
	}
	jsonResponse(w, http.StatusOK, envelope{Success: true, Data: items, Pagination: &p})
}

func (a *SatwaAPI) getByKodeResi(w http.ResponseWriter, r *http.Request) {
	t, err := a.shipments.GetByKodeResi(r.Context(), r.URL.Query().Get("kode_resi"))
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, t)
}

func (a *SatwaAPI) getShipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	t, err := a.shipments.Get(r.Context(), id)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, t)
}

func (a *SatwaAPI) createShipment(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	t, err := a.shipments.Create(r.Context(), req.input())
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusCreated, t)
}

func (a *SatwaAPI) updateShipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req shipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	t, err := a.shipments.Update(r.Context(), id, req.input())
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, t)
}

func (a *SatwaAPI) deleteShipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if err := a.shipments.Delete(r.Context(), id); err != nil {
		jsonError(w, r, err)
		return
	}
	jsonMessage(w, "shipment deleted")
}

func (a *SatwaAPI) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	t, err := a.shipments.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, t)
}
