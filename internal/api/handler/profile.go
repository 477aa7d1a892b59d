package handler

import (
	"net/http"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/services/identity"
)

// ProfileHandler handles profile and login endpoints
type ProfileHandler struct {
	identity *identity.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(identity *identity.Service) *ProfileHandler {
	return &ProfileHandler{identity: identity}
}

// List handles GET /api/v1/profiles and GET /api/v1/session
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RosterFromModel(h.identity.Roster()))
}

// Add handles POST /api/v1/profiles
func (h *ProfileHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddProfileRequest
	if !decode(w, r, &req) {
		return
	}

	added, err := h.identity.Add(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.AddProfile{
		Added:  added,
		Roster: response.RosterFromModel(h.identity.Roster()),
	})
}

// Login handles POST /api/v1/session/login
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.identity.SetActive(r.Context(), req.Name); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(h.identity.Roster()))
}

// Logout handles POST /api/v1/session/logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.ClearActive(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(h.identity.Roster()))
}
