package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"internmatch-engine/internal/domain"
	"internmatch-engine/internal/service"
)

type ApplicationsHandler struct {
	Service *service.Service
}

type createApplicationRequest struct {
	StudentID    string `json:"student_id"`
	InternshipID string `json:"internship_id"`
}

const maxBody = 1 << 16

// Create serves POST /applications. The match snapshot is frozen here.
func (h ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()

	var req createApplicationRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: trailing data")
		return
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.InternshipID = strings.TrimSpace(req.InternshipID)
	if req.StudentID == "" || req.InternshipID == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "student_id and internship_id are required")
		return
	}

	app, err := h.Service.Apply(r.Context(), RequestIDFrom(r.Context()), req.StudentID, req.InternshipID)
	if err != nil {
		writeServiceError(w, r, h.Service.Log, err)
		return
	}
	w.Header().Set("Location", "/applications/"+app.ID)
	WriteJSON(w, http.StatusCreated, app)
}

// GetByPath serves GET /applications/{id}.
func (h ApplicationsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/applications/", "")
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /applications/{id}")
		return
	}
	app, err := h.Service.GetApplication(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Service.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

type applicationList struct {
	InternshipID string               `json:"internship_id"`
	Items        []domain.Application `json:"items"`
}

// ListForInternship serves GET /internships/{id}/applications: the stored
// snapshots as they were frozen, not a live re-ranking.
func (h ApplicationsHandler) ListForInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/internships/", "/applications")
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /internships/{id}/applications")
		return
	}
	apps, err := h.Service.ListApplications(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.Service.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, applicationList{InternshipID: id, Items: nonNil(apps)})
}
