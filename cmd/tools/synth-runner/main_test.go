package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiplan/internal/db"
	"archiplan/internal/projects"
	"archiplan/internal/types"
)

func newRunner(t *testing.T) (*projects.Service, string) {
	t.Helper()
	svc := projects.NewService(db.NewMemoryStore(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	p, err := svc.CreateProject(context.Background(), projects.CreateProjectInput{
		Name:        "Runner",
		Type:        types.ProjectResidential,
		SurfaceArea: 110,
	})
	require.NoError(t, err)
	return svc, p.ID
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		wantErr string
	}{
		{"ok", options{ProjectID: "p", Stage: "all"}, ""},
		{"missing project", options{Stage: "all"}, "--project is required"},
		{"unknown stage", options{ProjectID: "p", Stage: "paint"}, `unknown stage "paint"`},
		{"modify without discipline", options{ProjectID: "p", Stage: "modify", Command: "add"}, "--discipline"},
		{"modify without command", options{ProjectID: "p", Stage: "modify", Discipline: types.Discipline2D}, "--command is required"},
		{"modify ok", options{ProjectID: "p", Stage: "modify", Discipline: types.DisciplineMEP, Command: "add"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecute_Stages(t *testing.T) {
	ctx := context.Background()
	svc, id := newRunner(t)

	_, err := execute(ctx, svc, options{ProjectID: id, Stage: "mep"})
	assert.True(t, types.IsCode(err, types.ErrCodePrerequisiteMissing))

	out, err := execute(ctx, svc, options{ProjectID: id, Stage: "2d"})
	require.NoError(t, err)
	assert.IsType(t, &types.Design2D{}, out)

	out, err = execute(ctx, svc, options{ProjectID: id, Stage: "mep"})
	require.NoError(t, err)
	assert.IsType(t, &types.MEPDesign{}, out)

	out, err = execute(ctx, svc, options{ProjectID: id, Stage: "modify", Discipline: types.Discipline2D, Command: "add a room"})
	require.NoError(t, err)
	res := out.(*types.ModificationResult)
	assert.Equal(t, types.ActionAdd, res.Modification.Action)

	out, err = execute(ctx, svc, options{ProjectID: id, Stage: "cost", Region: "europe", Currency: "EUR"})
	require.NoError(t, err)
	assert.IsType(t, &types.CostEstimate{}, out)

	out, err = execute(ctx, svc, options{ProjectID: id, Stage: "all"})
	require.NoError(t, err)
	assert.Len(t, out.(*types.Project).Designs.Generated(), 4)

	_, err = execute(ctx, svc, options{ProjectID: "prj_missing", Stage: "3d"})
	assert.True(t, types.IsCode(err, types.ErrCodeNotFoundProject))
}

func TestReadInputAndDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"style":{"primary_style":"Colonial"}}`), 0o600))

	in, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, types.StyleColonial, in.Style.PrimaryStyle)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, dryRunJob(options{ProjectID: "prj_1", Input: in}, now)))

	var job types.PipelineJob
	require.NoError(t, json.Unmarshal(buf.Bytes(), &job))
	assert.Equal(t, "prj_1", job.ProjectID)
	assert.Equal(t, types.StyleColonial, job.Style.PrimaryStyle)
	assert.True(t, job.RequestedAt.Equal(now))

	_, err = readInput(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestPrintStages(t *testing.T) {
	var buf bytes.Buffer
	printStages(&buf)
	for _, s := range stageOrder {
		assert.Contains(t, buf.String(), s)
	}
	assert.Len(t, stageOrder, len(validStages))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logLevel("warn"))
	assert.Equal(t, slog.LevelError, logLevel("error"))
	assert.Equal(t, slog.LevelInfo, logLevel(""))
	assert.Equal(t, slog.LevelInfo, logLevel("verbose"))
}
