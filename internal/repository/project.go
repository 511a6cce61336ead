package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emilianohg/storyboard/internal/models"
)

// ErrNotFound is returned by lookups that require the project to exist.
var ErrNotFound = errors.New("project not found")

// timeLayout is fixed width so that ORDER BY on the text column is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ProjectRepo stores whole Project aggregates as JSON documents keyed by id.
// There is no optimistic concurrency check: the last Put wins.
type ProjectRepo struct {
	db    *sql.DB
	clock clockwork.Clock
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db, clock: clockwork.NewRealClock()}
}

// WithClock swaps the clock used to stamp UpdatedAt on Put.
func (r *ProjectRepo) WithClock(clock clockwork.Clock) *ProjectRepo {
	r.clock = clock
	return r
}

// Put upserts the project. UpdatedAt is overwritten with the current time
// on the passed value before it is written.
func (r *ProjectRepo) Put(ctx context.Context, p *models.Project) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("put project: missing id")
	}

	p.UpdatedAt = r.clock.Now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", p.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, data, schema_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			schema_version = excluded.schema_version,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, string(data), p.SchemaVersion, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// GetByID returns nil, nil when the project does not exist.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM projects WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return decode(id, data)
}

// MustGet is GetByID for callers that treat absence as an error.
func (r *ProjectRepo) MustGet(ctx context.Context, id string) (*models.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// GetAll returns every project, least recently updated first.
func (r *ProjectRepo) GetAll(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, data
		FROM projects
		ORDER BY updated_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		p, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Summaries lists projects for pickers using SQLite's JSON functions, so a
// single corrupt document does not break the listing.
func (r *ProjectRepo) Summaries(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name,
			CASE WHEN json_valid(data) THEN COALESCE(json_array_length(data, '$.ideas'), 0) ELSE 0 END,
			CASE WHEN json_valid(data) THEN COALESCE(json_array_length(data, '$.scenes'), 0) ELSE 0 END,
			created_at, updated_at
		FROM projects
		ORDER BY updated_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ProjectSummary
	for rows.Next() {
		var s models.ProjectSummary
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &s.IdeaCount, &s.SceneCount, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		s.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete is a no-op when the project does not exist.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func decode(id, data string) (*models.Project, error) {
	var p models.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
