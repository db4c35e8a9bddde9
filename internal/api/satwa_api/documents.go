package satwa_api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/cekresi/satwa/internal/services/satwa"
)

// запас на поля формы и заголовки частей поверх самого файла
const multipartOverhead = 1 << 20

func (a *SatwaAPI) listDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	items, err := a.shipments.ListDocuments(r.Context(), id)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.Dokumen{}
	}
	jsonData(w, http.StatusOK, items)
}

func (a *SatwaAPI) uploadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, satwa.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(satwa.MaxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, r, apperr.Validation(fmt.Sprintf("file too large (max %d bytes)", satwa.MaxUploadSize)))
			return
		}
		jsonError(w, r, apperr.Validation("invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, r, apperr.Validation("nama and file are required"))
		return
	}
	defer file.Close()

	d, err := a.shipments.UploadDocument(r.Context(), id, satwa.Upload{
		Nama:        r.FormValue("nama"),
		File:        file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusCreated, d)
}

func (a *SatwaAPI) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	docID, err := pathUUID(r, "docId")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if err := a.shipments.DeleteDocument(r.Context(), id, docID); err != nil {
		jsonError(w, r, err)
		return
	}
	jsonMessage(w, "document deleted")
}
