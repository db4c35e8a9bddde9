package satwa_api

import (
	"net"
	"net/http"

	"github.com/cekresi/satwa/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (a *SatwaAPI) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	u, token, err := a.users.Login(r.Context(), req.Username, req.Password, clientAddr(r))
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, loginResponse{Success: true, User: u, Token: token})
}

func (a *SatwaAPI) listUsers(w http.ResponseWriter, r *http.Request) {
	items, err := a.users.List(r.Context())
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if items == nil {
		items = []*models.User{}
	}
	jsonData(w, http.StatusOK, items)
}

func (a *SatwaAPI) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	u, err := a.users.Create(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusCreated, u)
}

func (a *SatwaAPI) updateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	u, err := a.users.UpdatePassword(r.Context(), id, req.Password)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, u)
}

func (a *SatwaAPI) updateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, err)
		return
	}
	u, err := a.users.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		jsonError(w, r, err)
		return
	}
	jsonData(w, http.StatusOK, u)
}

func (a *SatwaAPI) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		jsonError(w, r, err)
		return
	}
	if err := a.users.Delete(r.Context(), id); err != nil {
		jsonError(w, r, err)
		return
	}
	jsonMessage(w, "user deleted")
}
