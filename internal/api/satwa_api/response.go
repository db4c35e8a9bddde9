package satwa_api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/go-chi/chi/v5/middleware"
)

type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("encode response", "err", err)
		}
	}
}

func jsonData(w http.ResponseWriter, status int, data any) {
	jsonResponse(w, status, envelope{Success: true, Data: data})
}

func jsonMessage(w http.ResponseWriter, msg string) {
	jsonResponse(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// jsonError переводит ошибку домена в код ответа; неклассифицированные ошибки только логируются.
func jsonError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	jsonResponse(w, status, envelope{Success: false, Error: apperr.Message(err)})
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
