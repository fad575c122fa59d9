package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"archiplan/internal/config"
	"archiplan/internal/core"
	"archiplan/internal/types"
)

// DesignService is the synthesis, modification and costing subset of
// projects.Service.
type DesignService interface {
	GetProject(ctx context.Context, id string) (*types.Project, error)
	Generate2D(ctx context.Context, id string, in types.SynthesisInput) (*types.Design2D, error)
	Generate3D(ctx context.Context, id string, in types.SynthesisInput) (*types.Model3D, error)
	GenerateStructural(ctx context.Context, id string, climate types.ClimateProfile) (*types.StructuralDesign, error)
	GenerateMEP(ctx context.Context, id string, climate types.ClimateProfile) (*types.MEPDesign, error)
	GenerateAll(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error)
	ApplyModification(ctx context.Context, id, command string, discipline types.Discipline) (*types.ModificationResult, error)
	EstimateCost(ctx context.Context, id, region, currency string) (*types.CostEstimate, error)
}

// PipelineEnqueuer schedules asynchronous full synthesis.
type PipelineEnqueuer interface {
	Enqueue(ctx context.Context, projectID string, in types.SynthesisInput) (*types.PipelineJob, error)
}

// ModificationRequest is the body of POST /v1/projects/{id}/modifications.
type ModificationRequest struct {
	Command    string `json:"command" validate:"required,max=1000"`
	Discipline string `json:"discipline" validate:"required,discipline"`
}

// CostEstimateRequest is the optional body of POST /v1/projects/{id}/cost-estimate.
type CostEstimateRequest struct {
	Region   string `json:"region,omitempty" validate:"max=64"`
	Currency string `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// DesignHandler serves the design, pipeline, modification and cost routes
// nested under /v1/projects/{id}.
type DesignHandler struct {
	svc       DesignService
	queue     PipelineEnqueuer
	defaults  config.SynthesisConfig
	validator *core.Validator
	logger    *slog.Logger
}

// NewDesignHandler creates a DesignHandler. queue may be nil, in which case
// the pipeline route reports the queue as unavailable.
func NewDesignHandler(svc DesignService, queue PipelineEnqueuer, defaults config.SynthesisConfig, v *core.Validator, l *slog.Logger) *DesignHandler {
	if l == nil {
		l = slog.Default()
	}
	return &DesignHandler{svc: svc, queue: queue, defaults: defaults, validator: v, logger: l}
}

// RegisterRoutes mounts the design routes.
func (h *DesignHandler) RegisterRoutes(r chi.Router) {
	r.Post("/projects/{id}/designs", h.GenerateAll)
	r.Post("/projects/{id}/designs/2d", h.Generate2D)
	r.Post("/projects/{id}/designs/3d", h.Generate3D)
	r.Post("/projects/{id}/designs/structural", h.GenerateStructural)
	r.Post("/projects/{id}/designs/mep", h.GenerateMEP)
	r.Post("/projects/{id}/pipeline", h.EnqueuePipeline)
	r.Post("/projects/{id}/modifications", h.ApplyModification)
	r.Post("/projects/{id}/cost-estimate", h.EstimateCost)
}

// synthesisInput decodes and validates the optional climate and style body.
func (h *DesignHandler) synthesisInput(w http.ResponseWriter, r *http.Request) (types.SynthesisInput, bool) {
	var in types.SynthesisInput
	if err := core.DecodeOptionalJSON(w, r, &in); err != nil {
		core.Error(w, r, err)
		return in, false
	}
	if err := h.validator.ValidateStruct(in); err != nil {
		core.Error(w, r, err)
		return in, false
	}
	return in, true
}

// Generate2D handles POST /v1/projects/{id}/designs/2d.
func (h *DesignHandler) Generate2D(w http.ResponseWriter, r *http.Request) {
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Generate2D(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, d, err)
}

// Generate3D handles POST /v1/projects/{id}/designs/3d.
func (h *DesignHandler) Generate3D(w http.ResponseWriter, r *http.Request) {
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Generate3D(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, d, err)
}

// GenerateStructural handles POST /v1/projects/{id}/designs/structural.
// Only the climate part of the body is used.
func (h *DesignHandler) GenerateStructural(w http.ResponseWriter, r *http.Request) {
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}
	d, err := h.svc.GenerateStructural(r.Context(), chi.URLParam(r, "id"), in.Climate)
	respond(w, r, d, err)
}

// GenerateMEP handles POST /v1/projects/{id}/designs/mep.
func (h *DesignHandler) GenerateMEP(w http.ResponseWriter, r *http.Request) {
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}
	d, err := h.svc.GenerateMEP(r.Context(), chi.URLParam(r, "id"), in.Climate)
	respond(w, r, d, err)
}

// GenerateAll handles POST /v1/projects/{id}/designs.
func (h *DesignHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GenerateAll(r.Context(), chi.URLParam(r, "id"), in)
	respond(w, r, p, err)
}

// EnqueuePipeline handles POST /v1/projects/{id}/pipeline. The project must
// exist; synthesis itself runs in the pipeline worker.
func (h *DesignHandler) EnqueuePipeline(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeUpstreamQueue, "pipeline queue is not configured", nil))
		return
	}
	in, ok := h.synthesisInput(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.svc.GetProject(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}

	job, err := h.queue.Enqueue(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "pipeline job accepted", "project_id", id, "job_id", job.JobID)
	core.JSON(w, r, http.StatusAccepted, core.APIResponse{Data: job})
}

// ApplyModification handles POST /v1/projects/{id}/modifications.
func (h *DesignHandler) ApplyModification(w http.ResponseWriter, r *http.Request) {
	var req ModificationRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	res, err := h.svc.ApplyModification(r.Context(), chi.URLParam(r, "id"), req.Command, types.Discipline(req.Discipline))
	respond(w, r, res, err)
}

// EstimateCost handles POST /v1/projects/{id}/cost-estimate. Missing region
// and currency fall back to the configured defaults.
func (h *DesignHandler) EstimateCost(w http.ResponseWriter, r *http.Request) {
	var req CostEstimateRequest
	if err := core.DecodeOptionalJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}
	if req.Region == "" {
		req.Region = h.defaults.DefaultRegion
	}
	if req.Currency == "" {
		req.Currency = h.defaults.DefaultCurrency
	}

	est, err := h.svc.EstimateCost(r.Context(), chi.URLParam(r, "id"), req.Region, req.Currency)
	respond(w, r, est, err)
}

func respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: data})
}
