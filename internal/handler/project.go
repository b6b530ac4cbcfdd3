package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pcosta/travel-desk/backend/internal/domain"
)

// maxImportSize caps the in-memory portion of a project import upload.
const maxImportSize = 4 << 20

// CreateProject handles POST /projects.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project domain.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.projects.Create(r.Context(), project)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "projects", created.ID, created)
}

// GetProject handles GET /projects/{id}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid project ID")
		return
	}

	project, err := s.projects.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// ListProjects handles GET /projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// UpdateProject handles PUT /projects/{id}.
func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid project ID")
		return
	}

	var project domain.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if _, err := s.projects.Update(r.Context(), id, project); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportProjects handles POST /projects/import. The upload is a multipart
// form with a single "file" field holding a CSV of code,name,budget rows.
// The import is all-or-nothing: one bad row rejects the whole file.
func (s *Server) ImportProjects(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing file field")
		return
	}
	defer file.Close()

	imported, err := s.projects.ImportCSV(r.Context(), file)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"imported": imported,
		"message":  fmt.Sprintf("imported %d projects", imported),
	})
}
