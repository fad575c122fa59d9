package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"archiplan/internal/types"
)

// ProjectRepository is the PostgreSQL ProjectStore. Design artifacts are kept
// in a single zstd-compressed column; the generated disciplines are mirrored
// into a text array so listing never decompresses designs.
type ProjectRepository struct {
	db DBTX
}

// NewProjectRepository creates a ProjectRepository backed by the given
// database connection (pool or transaction).
func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ types.ProjectStore = (*ProjectRepository)(nil)

const projectColumns = `id, name, requirements, location, portfolio, status,
	designs_zstd, modifications, version, created_at, updated_at`

func scanProject(row pgx.Row) (*types.Project, error) {
	var (
		p        types.Project
		location *string
		designs  []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Requirements,
		&location,
		&p.Portfolio,
		&p.Status,
		&designs,
		&p.Modifications,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if location != nil {
		p.Location = *location
	}
	if p.Designs, err = DecodeDesigns(designs); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get loads a project with its decoded designs.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*types.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`,
		id,
	)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrProjectNotFound(id)
		}
		var appErr *types.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve project", err)
	}
	return p, nil
}

// Put inserts or updates p when the stored version equals p.Version. A new
// project has Version zero. On success p.Version is incremented.
func (r *ProjectRepository) Put(ctx context.Context, p *types.Project) error {
	designs, err := EncodeDesigns(p.Designs)
	if err != nil {
		return err
	}
	disciplines := make([]string, 0, 4)
	for _, d := range p.Designs.Generated() {
		disciplines = append(disciplines, string(d))
	}

	tag, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, name, project_type, requirements, location, portfolio,
		 status, designs_zstd, disciplines, modifications, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11 + 1,
		         COALESCE($12, NOW()), COALESCE($13, NOW()))
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name,
		     requirements = EXCLUDED.requirements,
		     location = EXCLUDED.location,
		     portfolio = EXCLUDED.portfolio,
		     status = EXCLUDED.status,
		     designs_zstd = EXCLUDED.designs_zstd,
		     disciplines = EXCLUDED.disciplines,
		     modifications = EXCLUDED.modifications,
		     version = EXCLUDED.version,
		     updated_at = EXCLUDED.updated_at
		 WHERE projects.version = $11`,
		p.ID,
		p.Name,
		string(p.Requirements.Type),
		p.Requirements,
		nilIfEmpty(p.Location),
		p.Portfolio,
		string(p.Status),
		designs,
		disciplines,
		p.Modifications,
		p.Version,
		nilIfZeroTime(p.CreatedAt),
		nilIfZeroTime(p.UpdatedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to store project", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrConcurrentModification(p.ID, p.Version)
	}
	p.Version++
	return nil
}

// Delete removes a project permanently.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrProjectNotFound(id)
	}
	return nil
}

// List returns project summaries, most recently updated first.
func (r *ProjectRepository) List(ctx context.Context, limit int) ([]types.ProjectSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, project_type, status, disciplines, updated_at
		 FROM projects
		 ORDER BY updated_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list projects", err)
	}
	defer rows.Close()

	out := make([]types.ProjectSummary, 0, limit)
	for rows.Next() {
		var (
			s           types.ProjectSummary
			disciplines []string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Status, &disciplines, &s.UpdatedAt); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan project", err)
		}
		s.Disciplines = make([]types.Discipline, len(disciplines))
		for i, d := range disciplines {
			s.Disciplines[i] = types.Discipline(d)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate projects", err)
	}
	return out, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nilIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
