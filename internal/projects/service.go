// Package projects orchestrates design synthesis for stored projects. Every
// generate or modify call holds the project's exclusive lock for its whole
// read-modify-write so concurrent requests on one project never lose updates.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"archiplan/internal/architecture"
	"archiplan/internal/cost"
	"archiplan/internal/mep"
	"archiplan/internal/modification"
	"archiplan/internal/structural"
	"archiplan/internal/types"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// StageMetrics records the duration and outcome of synthesis stages and
// counts applied modifications.
type StageMetrics interface {
	RecordStage(ctx context.Context, discipline types.Discipline, duration time.Duration, err error)
	RecordModification(ctx context.Context, discipline types.Discipline, action types.Action)
}

// CreateProjectInput carries the fields accepted at project creation.
type CreateProjectInput struct {
	Name          string
	Type          types.ProjectType
	SurfaceArea   float64
	OccupancyType types.Occupancy
	Requirements  map[string]any
	Location      string
	Portfolio     *types.Portfolio
}

// Service runs synthesis and modification against a ProjectStore.
type Service struct {
	store    types.ProjectStore
	metrics  StageMetrics
	logger   *slog.Logger
	clock    types.Clock
	validate *validator.Validate
	locks    *keyedMutex
}

// NewService creates a Service. metrics may be nil.
func NewService(store types.ProjectStore, metrics StageMetrics, logger *slog.Logger, clock types.Clock) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Service{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
		validate: newValidator(),
		locks:    newKeyedMutex(),
	}
}

// CreateProject validates the requirements and stores a new project.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*types.Project, error) {
	req := types.ProjectRequirements{
		Type:          types.ProjectType(strings.ToLower(string(in.Type))),
		SurfaceArea:   in.SurfaceArea,
		OccupancyType: types.Occupancy(strings.ToLower(string(in.OccupancyType))),
		Requirements:  in.Requirements,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidRequirements,
			"project requirements are invalid", err, validationDetails(err))
	}

	now := s.clock.Now()
	p := &types.Project{
		ID:           "prj_" + uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Requirements: req,
		Location:     in.Location,
		Status:       types.StatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("%s project", req.Type)
	}
	if in.Portfolio != nil {
		portfolio := in.Portfolio.Normalize()
		p.Portfolio = &portfolio
	}

	if err := s.store.Put(ctx, p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "project created",
		"project_id", p.ID,
		"type", req.Type,
		"surface_area", req.SurfaceArea,
	)
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id string) (*types.Project, error) {
	return s.store.Get(ctx, id)
}

// ListProjects clamps limit to [1, MaxListLimit], using DefaultListLimit for zero.
func (s *Service) ListProjects(ctx context.Context, limit int) ([]types.ProjectSummary, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.store.List(ctx, limit)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "project deleted", "project_id", id)
	return nil
}

// mutate runs fn on a fresh copy of the project under its lock and stores
// the result. Nothing is stored when fn fails.
func (s *Service) mutate(ctx context.Context, id string, fn func(p *types.Project) error) (*types.Project, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.clock.Now()
	if err := s.store.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// stage times one synthesis step and reports it. A panic in fn is
// returned as an internal error.
func (s *Service) stage(ctx context.Context, p *types.Project, d types.Discipline, fn func() error) error {
	start := s.clock.Now()
	err := runStage(d, fn)
	elapsed := s.clock.Now().Sub(start)
	if s.metrics != nil {
		s.metrics.RecordStage(ctx, d, elapsed, err)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "synthesis stage failed",
			"project_id", p.ID, "discipline", d, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "synthesis stage complete",
		"project_id", p.ID, "discipline", d, "duration_ms", elapsed.Milliseconds())
	return nil
}

func runStage(d types.Discipline, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.NewAppError(types.ErrCodeInternalUnexpected,
				fmt.Sprintf("%s synthesis failed", d), fmt.Errorf("panic: %v", r))
		}
	}()
	return fn()
}

func requirePlan(p *types.Project, d types.Discipline) (types.FloorPlan, error) {
	if p.Designs.Design2D == nil {
		return types.FloorPlan{}, types.ErrPrerequisiteMissing(p.ID, d, types.Discipline2D)
	}
	return p.Designs.Design2D.FloorPlan, nil
}

// Generate2D synthesizes the floor plan, elevations and sections.
func (s *Service) Generate2D(ctx context.Context, id string, in types.SynthesisInput) (*types.Design2D, error) {
	p, err := s.mutate(ctx, id, func(p *types.Project) error {
		return s.stage(ctx, p, types.Discipline2D, func() error {
			p.Designs.Design2D = architecture.Synthesize2D(p.Requirements, in)
			p.Status = types.CompletedStatus(types.Discipline2D)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return p.Designs.Design2D, nil
}

// Generate3D synthesizes the volumetric model.
func (s *Service) Generate3D(ctx context.Context, id string, in types.SynthesisInput) (*types.Model3D, error) {
	p, err := s.mutate(ctx, id, func(p *types.Project) error {
		return s.stage(ctx, p, types.Discipline3D, func() error {
			p.Designs.Design3D = architecture.SynthesizeVolumetric(p.Requirements, in.Climate, in.Style)
			p.Status = types.CompletedStatus(types.Discipline3D)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return p.Designs.Design3D, nil
}

// GenerateStructural requires a 2D design.
func (s *Service) GenerateStructural(ctx context.Context, id string, climate types.ClimateProfile) (*types.StructuralDesign, error) {
	p, err := s.mutate(ctx, id, func(p *types.Project) error {
		plan, err := requirePlan(p, types.DisciplineStructural)
		if err != nil {
			return err
		}
		return s.stage(ctx, p, types.DisciplineStructural, func() error {
			p.Designs.Structural = structural.Synthesize(plan, climate)
			p.Status = types.CompletedStatus(types.DisciplineStructural)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return p.Designs.Structural, nil
}

// GenerateMEP requires a 2D design.
func (s *Service) GenerateMEP(ctx context.Context, id string, climate types.ClimateProfile) (*types.MEPDesign, error) {
	p, err := s.mutate(ctx, id, func(p *types.Project) error {
		plan, err := requirePlan(p, types.DisciplineMEP)
		if err != nil {
			return err
		}
		return s.stage(ctx, p, types.DisciplineMEP, func() error {
			p.Designs.MEP = mep.Synthesize(plan, climate)
			p.Status = types.CompletedStatus(types.DisciplineMEP)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return p.Designs.MEP, nil
}

// GenerateAll runs the 2D and 3D branches concurrently, then structural and
// MEP concurrently from the new floor plan, and stores everything at once.
func (s *Service) GenerateAll(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error) {
	return s.mutate(ctx, id, func(p *types.Project) error {
		var (
			d2 *types.Design2D
			d3 *types.Model3D
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return s.stage(gctx, p, types.Discipline2D, func() error {
				d2 = architecture.Synthesize2D(p.Requirements, in)
				return nil
			})
		})
		g.Go(func() error {
			return s.stage(gctx, p, types.Discipline3D, func() error {
				d3 = architecture.SynthesizeVolumetric(p.Requirements, in.Climate, in.Style)
				return nil
			})
		})
		if err := g.Wait(); err != nil {
			return err
		}

		var (
			sd *types.StructuralDesign
			md *types.MEPDesign
		)
		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() error {
			return s.stage(gctx, p, types.DisciplineStructural, func() error {
				sd = structural.Synthesize(d2.FloorPlan, in.Climate)
				return nil
			})
		})
		g.Go(func() error {
			return s.stage(gctx, p, types.DisciplineMEP, func() error {
				md = mep.Synthesize(d2.FloorPlan, in.Climate)
				return nil
			})
		})
		if err := g.Wait(); err != nil {
			return err
		}

		p.Designs = types.Designs{Design2D: d2, Design3D: d3, Structural: sd, MEP: md}
		p.Status = types.CompletedStatus(types.DisciplineMEP)
		return nil
	})
}

// ApplyModification parses command and applies it to the artifact of the
// given discipline. Unrecognized commands are recorded as no-op modifications.
func (s *Service) ApplyModification(ctx context.Context, id, command string, discipline types.Discipline) (*types.ModificationResult, error) {
	discipline = types.Discipline(strings.ToLower(string(discipline)))
	if !discipline.Valid() {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidDiscipline,
			fmt.Sprintf("unknown discipline %q", discipline), nil,
			map[string]any{"allowed": types.Disciplines})
	}
	if strings.TrimSpace(command) == "" {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCommand, "command must not be empty", nil)
	}

	var result *types.ModificationResult
	_, err := s.mutate(ctx, id, func(p *types.Project) error {
		mod := modification.Parse(command, discipline)
		mod.AppliedAt = s.clock.Now()

		artifact, err := modification.Apply(&p.Designs, mod)
		if err != nil {
			if errors.Is(err, modification.ErrArtifactMissing) {
				return types.NewAppErrorWithDetails(types.ErrCodePrerequisiteMissing,
					fmt.Sprintf("no %s design to modify; generate it first", discipline), err,
					map[string]any{
						"project_id": p.ID,
						"discipline": string(discipline),
						"requires":   string(discipline),
					})
			}
			return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to apply modification", err)
		}

		p.Status = types.ModifiedStatus(discipline)
		p.Modifications = append(p.Modifications, mod)
		result = &types.ModificationResult{
			ProjectID:    p.ID,
			Discipline:   discipline,
			Artifact:     artifact,
			Modification: mod,
			Status:       p.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordModification(ctx, discipline, result.Modification.Action)
	}
	s.logger.InfoContext(ctx, "modification applied",
		"project_id", id,
		"discipline", discipline,
		"action", result.Modification.Action,
		"element", result.Modification.Parameters.Element,
	)
	return result, nil
}

// EstimateCost prices the project's current designs. It needs a 2D design.
func (s *Service) EstimateCost(ctx context.Context, id, region, currency string) (*types.CostEstimate, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err := requirePlan(p, types.Discipline("cost"))
	if err != nil {
		return nil, err
	}
	return cost.Estimate(cost.Input{
		ProjectID:   p.ID,
		SurfaceArea: p.Requirements.SurfaceArea,
		Plan:        plan,
		MEP:         p.Designs.MEP,
		Region:      region,
		Currency:    currency,
	}), nil
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationDetails(err error) map[string]any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return map[string]any{"fields": fields}
}
