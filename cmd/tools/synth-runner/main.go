// Package main implements the synth-runner CLI tool for running synthesis
// stages against a stored project directly, bypassing the API and the
// pipeline queue.
//
// This tool is intended for local development, backfilling designs after a
// rule change, and operational debugging.
//
// Usage:
//
//	go run ./cmd/tools/synth-runner --project=prj_123 --stage=all
//	go run ./cmd/tools/synth-runner --project=prj_123 --stage=structural --input=climate.json
//	go run ./cmd/tools/synth-runner --project=prj_123 --stage=modify --discipline=2d --command="add a bedroom"
//	go run ./cmd/tools/synth-runner --project=prj_123 --stage=all --dry-run
//	go run ./cmd/tools/synth-runner --list
//
// Configuration is read the same way as the API (environment, then .env).
// Without DATABASE_URL the in-memory store is used, which only makes sense
// together with --dry-run.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"archiplan/internal/config"
	"archiplan/internal/db"
	"archiplan/internal/projects"
	"archiplan/internal/types"
)

// validStages maps each --stage value to its description.
var validStages = map[string]string{
	"2d":         "Floor plan, elevations and sections",
	"3d":         "Volumetric model with materials, lighting and landscaping",
	"structural": "Foundation, framing and load analysis (requires 2d)",
	"mep":        "HVAC, electrical and plumbing (requires 2d)",
	"all":        "Every discipline, stored in one write",
	"modify":     "Apply --command to --discipline",
	"cost":       "Cost estimate for the generated designs",
}

var stageOrder = []string{"2d", "3d", "structural", "mep", "all", "modify", "cost"}

type options struct {
	ProjectID  string
	Stage      string
	Input      types.SynthesisInput
	Discipline types.Discipline
	Command    string
	Region     string
	Currency   string
}

// runner is the subset of projects.Service the tool drives.
type runner interface {
	Generate2D(ctx context.Context, id string, in types.SynthesisInput) (*types.Design2D, error)
	Generate3D(ctx context.Context, id string, in types.SynthesisInput) (*types.Model3D, error)
	GenerateStructural(ctx context.Context, id string, climate types.ClimateProfile) (*types.StructuralDesign, error)
	GenerateMEP(ctx context.Context, id string, climate types.ClimateProfile) (*types.MEPDesign, error)
	GenerateAll(ctx context.Context, id string, in types.SynthesisInput) (*types.Project, error)
	ApplyModification(ctx context.Context, id, command string, discipline types.Discipline) (*types.ModificationResult, error)
	EstimateCost(ctx context.Context, id, region, currency string) (*types.CostEstimate, error)
}

func main() {
	projectFlag := flag.String("project", "", "Project ID to operate on")
	stageFlag := flag.String("stage", "all", "Stage to run (see --list)")
	inputFlag := flag.String("input", "", "Path to a JSON synthesis input ({\"climate\":...,\"style\":...})")
	disciplineFlag := flag.String("discipline", "", "Discipline for --stage=modify (2d, 3d, structural, mep)")
	commandFlag := flag.String("command", "", "Natural-language command for --stage=modify")
	regionFlag := flag.String("region", "", "Region for --stage=cost (defaults to DEFAULT_REGION)")
	currencyFlag := flag.String("currency", "", "Currency for --stage=cost (defaults to DEFAULT_CURRENCY)")
	listFlag := flag.Bool("list", false, "List all available stages and exit")
	dryRunFlag := flag.Bool("dry-run", false, "Print the pipeline job payload without executing")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synth-runner [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Run synthesis stages for a stored project directly.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag {
		printStages(os.Stdout)
		return
	}

	opts := options{
		ProjectID:  *projectFlag,
		Stage:      *stageFlag,
		Discipline: types.Discipline(*disciplineFlag),
		Command:    *commandFlag,
		Region:     *regionFlag,
		Currency:   *currencyFlag,
	}
	if *inputFlag != "" {
		in, err := readInput(*inputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		opts.Input = in
	}
	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if *dryRunFlag {
		if err := printJSON(os.Stdout, dryRunJob(opts, time.Now().UTC())); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading configuration: %v\n", err)
		os.Exit(1)
	}
	if opts.Region == "" {
		opts.Region = cfg.Synthesis.DefaultRegion
	}
	if opts.Currency == "" {
		opts.Currency = cfg.Synthesis.DefaultCurrency
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !cfg.UsePostgres() {
		fmt.Fprintf(os.Stderr, "error: DATABASE_URL is required unless --dry-run is set\n")
		os.Exit(1)
	}
	pool, err := db.Connect(ctx, cfg.Database.URL.Unmask(), db.PoolConfig{MaxConns: 2})
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := projects.NewService(db.NewProjectRepository(pool), nil, logger, nil)
	result, err := execute(ctx, svc, opts)
	if err != nil {
		logger.Error("stage failed", "stage", opts.Stage, "project_id", opts.ProjectID, "error", err)
		os.Exit(1)
	}
	if err := printJSON(os.Stdout, result); err != nil {
		logger.Error("writing result failed", "error", err)
		os.Exit(1)
	}
}

func logLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (o options) validate() error {
	if o.ProjectID == "" {
		return errors.New("--project is required")
	}
	if _, ok := validStages[o.Stage]; !ok {
		return fmt.Errorf("unknown stage %q", o.Stage)
	}
	if o.Stage == "modify" {
		if !o.Discipline.Valid() {
			return fmt.Errorf("--discipline must be one of %v", types.Disciplines)
		}
		if o.Command == "" {
			return errors.New("--command is required for --stage=modify")
		}
	}
	return nil
}

// execute dispatches one stage to the service.
func execute(ctx context.Context, svc runner, o options) (any, error) {
	switch o.Stage {
	case "2d":
		return svc.Generate2D(ctx, o.ProjectID, o.Input)
	case "3d":
		return svc.Generate3D(ctx, o.ProjectID, o.Input)
	case "structural":
		return svc.GenerateStructural(ctx, o.ProjectID, o.Input.Climate)
	case "mep":
		return svc.GenerateMEP(ctx, o.ProjectID, o.Input.Climate)
	case "all":
		return svc.GenerateAll(ctx, o.ProjectID, o.Input)
	case "modify":
		return svc.ApplyModification(ctx, o.ProjectID, o.Command, o.Discipline)
	case "cost":
		return svc.EstimateCost(ctx, o.ProjectID, o.Region, o.Currency)
	default:
		return nil, fmt.Errorf("unknown stage %q", o.Stage)
	}
}

func dryRunJob(o options, now time.Time) types.PipelineJob {
	return types.PipelineJob{
		JobID:       "dry-run",
		ProjectID:   o.ProjectID,
		Climate:     o.Input.Climate,
		Style:       o.Input.Style,
		RequestedAt: now,
	}
}

func readInput(path string) (types.SynthesisInput, error) {
	var in types.SynthesisInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("reading --input: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parsing --input: %w", err)
	}
	return in, nil
}

func printStages(w io.Writer) {
	fmt.Fprintln(w, "Available stages:")
	for _, s := range stageOrder {
		fmt.Fprintf(w, "  %-12s %s\n", s, validStages[s])
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
