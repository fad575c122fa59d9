// Package handlers exposes the project and design services over HTTP. Each
// handler depends on a locally declared interface so it can be tested
// against hand-written mocks.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"archiplan/internal/core"
	"archiplan/internal/projects"
	"archiplan/internal/types"
)

// ProjectService is the project lifecycle subset of projects.Service.
type ProjectService interface {
	CreateProject(ctx context.Context, in projects.CreateProjectInput) (*types.Project, error)
	GetProject(ctx context.Context, id string) (*types.Project, error)
	ListProjects(ctx context.Context, limit int) ([]types.ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error
}

// CreateProjectRequest is the body of POST /v1/projects.
type CreateProjectRequest struct {
	Name          string           `json:"name" validate:"max=200"`
	Type          string           `json:"type" validate:"required"`
	SurfaceArea   float64          `json:"surface_area" validate:"required,gt=0,lte=1000000"`
	OccupancyType string           `json:"occupancy_type,omitempty"`
	Requirements  map[string]any   `json:"requirements,omitempty"`
	Location      string           `json:"location,omitempty" validate:"max=500"`
	Portfolio     *types.Portfolio `json:"portfolio,omitempty"`
}

// ProjectHandler serves /v1/projects.
type ProjectHandler struct {
	svc       ProjectService
	validator *core.Validator
	logger    *slog.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc ProjectService, v *core.Validator, l *slog.Logger) *ProjectHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ProjectHandler{svc: svc, validator: v, logger: l}
}

// RegisterRoutes mounts the project routes. Design routes under /{id} are
// registered by DesignHandler.
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Post("/projects", h.Create)
	r.Get("/projects", h.List)
	r.Get("/projects/{id}", h.Get)
	r.Delete("/projects/{id}", h.Delete)
}

// Create handles POST /v1/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.svc.CreateProject(r.Context(), projects.CreateProjectInput{
		Name:          req.Name,
		Type:          types.ProjectType(req.Type),
		SurfaceArea:   req.SurfaceArea,
		OccupancyType: types.Occupancy(req.OccupancyType),
		Requirements:  req.Requirements,
		Location:      req.Location,
		Portfolio:     req.Portfolio,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "project created", "project_id", p.ID, "type", p.Requirements.Type)
	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: p})
}

// List handles GET /v1/projects?limit=N.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			core.Error(w, r, types.NewAppErrorWithDetails(types.ErrCodeValidationFailed,
				"limit must be a positive integer", err, map[string]any{"limit": raw}))
			return
		}
		limit = n
	}

	items, err := h.svc.ListProjects(r.Context(), limit)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: items})
}

// Get handles GET /v1/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: p})
}

// Delete handles DELETE /v1/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteProject(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "project deleted", "project_id", id)
	core.NoContent(w)
}
