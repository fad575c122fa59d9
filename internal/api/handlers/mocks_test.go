package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"archiplan/internal/core"
	"archiplan/internal/projects"
	"archiplan/internal/types"
)

type mockProjectService struct {
	createFn func(ctx context.Context, in projects.CreateProjectInput) (*types.Project, error)
	getFn    func(ctx context.Context, id string) (*types.Project, error)
	listFn   func(ctx context.Context, limit int) ([]types.ProjectSummary, error)
	deleteFn func(ctx context.Context, id string) error

	lastCreate *projects.CreateProjectInput
	lastLimit  int
}

func (m *mockProjectService) CreateProject(ctx context.Context, in projects.CreateProjectInput) (*types.Project, error) {
	m.lastCreate = &in
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &types.Project{ID: "prj_new", Name: in.Name, Status: types.StatusCreated,
		Requirements: types.ProjectRequirements{Type: in.Type, SurfaceArea: in.SurfaceArea}}, nil
}

func (m *mockProjectService) GetProject(ctx context.Context, id string) (*types.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &types.Project{ID: id, Status: types.StatusCreated}, nil
}

func (m *mockProjectService) ListProjects(ctx context.Context, limit int) ([]types.ProjectSummary, error) {
	m.lastLimit = limit
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return []types.ProjectSummary{}, nil
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockDesignService struct {
	mockProjectService

	generate2DFn         func(ctx context.Context, id string, in types.SynthesisInput) (*types.Design2D, error)
	generate3DFn         func(ctx context.Context, id string, in types.SynthesisInput) (*types.Model3D, error)
	generateStructuralFn func(ctx context.Context, id string, c types.ClimateProfile) (*types.StructuralDesign, error)
	generateMEPFn        func(ctx context.Context, id string, c types.ClimateProfile) (*types.MEPDesign, error)
	generateAllFn        func(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error)
	applyFn              func(ctx context.Context, id, command string, d types.Discipline) (*types.ModificationResult, error)
	estimateFn           func(ctx context.Context, id, region, currency string) (*types.CostEstimate, error)

	lastInput types.SynthesisInput
	calls     []string
}

func (m *mockDesignService) Generate2D(ctx context.Context, id string, in types.SynthesisInput) (*types.Design2D, error) {
	m.lastInput = in
	m.calls = append(m.calls, "2d")
	if m.generate2DFn != nil {
		return m.generate2DFn(ctx, id, in)
	}
	return &types.Design2D{}, nil
}

func (m *mockDesignService) Generate3D(ctx context.Context, id string, in types.SynthesisInput) (*types.Model3D, error) {
	m.lastInput = in
	m.calls = append(m.calls, "3d")
	if m.generate3DFn != nil {
		return m.generate3DFn(ctx, id, in)
	}
	return &types.Model3D{}, nil
}

func (m *mockDesignService) GenerateStructural(ctx context.Context, id string, c types.ClimateProfile) (*types.StructuralDesign, error) {
	m.lastInput = types.SynthesisInput{Climate: c}
	m.calls = append(m.calls, "structural")
	if m.generateStructuralFn != nil {
		return m.generateStructuralFn(ctx, id, c)
	}
	return &types.StructuralDesign{}, nil
}

func (m *mockDesignService) GenerateMEP(ctx context.Context, id string, c types.ClimateProfile) (*types.MEPDesign, error) {
	m.lastInput = types.SynthesisInput{Climate: c}
	m.calls = append(m.calls, "mep")
	if m.generateMEPFn != nil {
		return m.generateMEPFn(ctx, id, c)
	}
	return &types.MEPDesign{}, nil
}

func (m *mockDesignService) GenerateAll(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error) {
	m.lastInput = in
	m.calls = append(m.calls, "all")
	if m.generateAllFn != nil {
		return m.generateAllFn(ctx, id, in)
	}
	return &types.Project{ID: id, Status: types.StatusMEPDesignComplete}, nil
}

func (m *mockDesignService) ApplyModification(ctx context.Context, id, command string, d types.Discipline) (*types.ModificationResult, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, id, command, d)
	}
	return &types.ModificationResult{ProjectID: id, Discipline: d}, nil
}

func (m *mockDesignService) EstimateCost(ctx context.Context, id, region, currency string) (*types.CostEstimate, error) {
	if m.estimateFn != nil {
		return m.estimateFn(ctx, id, region, currency)
	}
	return &types.CostEstimate{ProjectID: id, Region: region, Currency: currency}, nil
}

type mockEnqueuer struct {
	enqueueFn func(ctx context.Context, projectID string, in types.SynthesisInput) (*types.PipelineJob, error)
	calls     int
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, projectID string, in types.SynthesisInput) (*types.PipelineJob, error) {
	m.calls++
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, projectID, in)
	}
	return &types.PipelineJob{JobID: "job_1", ProjectID: projectID, Climate: in.Climate, Style: in.Style}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve routes one request through a chi router with the handler's routes.
func serve(t *testing.T, register func(chi.Router), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	register(r)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env core.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error.Code
}
