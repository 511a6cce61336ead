// Package exchange reads and writes the project exchange format: the
// indented JSON file offered for download and accepted on import.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/schema"
)

// ErrMalformed wraps every import validation failure.
var ErrMalformed = errors.New("malformed project file")

// Putter is the part of the project store Import writes through.
type Putter interface {
	Put(ctx context.Context, p *models.Project) error
}

// Export renders the project as indented JSON.
func Export(p *models.Project) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("export: no project")
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export project %s: %w", p.ID, err)
	}
	return append(data, '\n'), nil
}

// FileName is the download name for an exported project.
func FileName(p *models.Project) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(p.Name))
	if name == "" || name == "." || name == ".." {
		name = p.ID
	}
	return name + ".json"
}

// WriteFile exports p into dir as FileName(p) and returns the path written.
func WriteFile(dir string, p *models.Project) (string, error) {
	data, err := Export(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(p))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ImportFile imports the exchange file at path.
func ImportFile(ctx context.Context, store Putter, path string) (*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(ctx, store, data)
}

// Import decodes data, migrates it to the current schema and persists it
// before returning. The id embedded in the file is kept, so importing over
// an existing project replaces it.
func Import(ctx context.Context, store Putter, data []byte) (*models.Project, error) {
	p, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("save imported project %s: %w", p.ID, err)
	}
	return p, nil
}

// Decode parses an exported project. Mandatory identities and timestamps
// must be present and parseable; an unparseable due date is dropped.
func Decode(data []byte) (*models.Project, error) {
	var w projectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	p, err := w.toModel()
	if err != nil {
		return nil, err
	}
	return schema.Migrate(p), nil
}

// The wire types shadow timestamp fields of the embedded models with raw
// text so that each one can be validated on its own.

type projectWire struct {
	models.Project
	Ideas            []ideaWire  `json:"ideas"`
	Scenes           []sceneWire `json:"scenes"`
	Assets           []assetWire `json:"assets"`
	Todos            []todoWire  `json:"todos"`
	RepurposingClips []clipWire  `json:"repurposingClips"`
	CreatedAt        *string     `json:"createdAt"`
	UpdatedAt        *string     `json:"updatedAt"`
}

type ideaWire struct {
	models.Idea
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

type sceneWire struct {
	models.Scene
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

type assetWire struct {
	models.Asset
	CreatedAt *string `json:"createdAt"`
}

type todoWire struct {
	models.Todo
	CreatedAt *string         `json:"createdAt"`
	DueDate   json.RawMessage `json:"dueDate"`
}

type clipWire struct {
	models.RepurposingClip
	CreatedAt *string `json:"createdAt"`
}

func (w *projectWire) toModel() (*models.Project, error) {
	p := w.Project
	if p.ID == "" {
		return nil, fmt.Errorf("%w: project: missing id", ErrMalformed)
	}

	var err error
	if p.CreatedAt, err = required("project", p.ID, "createdAt", w.CreatedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = required("project", p.ID, "updatedAt", w.UpdatedAt); err != nil {
		return nil, err
	}

	p.Ideas = nil
	if w.Ideas != nil {
		p.Ideas = make([]models.Idea, len(w.Ideas))
		for i, iw := range w.Ideas {
			idea := iw.Idea
			if idea.ID == "" {
				return nil, fmt.Errorf("%w: idea #%d: missing id", ErrMalformed, i)
			}
			if idea.CreatedAt, err = required("idea", idea.ID, "createdAt", iw.CreatedAt); err != nil {
				return nil, err
			}
			if idea.UpdatedAt, err = required("idea", idea.ID, "updatedAt", iw.UpdatedAt); err != nil {
				return nil, err
			}
			p.Ideas[i] = idea
		}
	}

	p.Scenes = nil
	if w.Scenes != nil {
		p.Scenes = make([]models.Scene, len(w.Scenes))
		for i, sw := range w.Scenes {
			scene := sw.Scene
			if scene.ID == "" {
				return nil, fmt.Errorf("%w: scene #%d: missing id", ErrMalformed, i)
			}
			if scene.CreatedAt, err = required("scene", scene.ID, "createdAt", sw.CreatedAt); err != nil {
				return nil, err
			}
			if scene.UpdatedAt, err = required("scene", scene.ID, "updatedAt", sw.UpdatedAt); err != nil {
				return nil, err
			}
			p.Scenes[i] = scene
		}
	}

	p.Assets = nil
	if w.Assets != nil {
		p.Assets = make([]models.Asset, len(w.Assets))
		for i, aw := range w.Assets {
			asset := aw.Asset
			if asset.ID == "" {
				return nil, fmt.Errorf("%w: asset #%d: missing id", ErrMalformed, i)
			}
			if asset.CreatedAt, err = required("asset", asset.ID, "createdAt", aw.CreatedAt); err != nil {
				return nil, err
			}
			p.Assets[i] = asset
		}
	}

	p.Todos = nil
	if w.Todos != nil {
		p.Todos = make([]models.Todo, len(w.Todos))
		for i, tw := range w.Todos {
			todo := tw.Todo
			if todo.ID == "" {
				return nil, fmt.Errorf("%w: todo #%d: missing id", ErrMalformed, i)
			}
			if todo.CreatedAt, err = required("todo", todo.ID, "createdAt", tw.CreatedAt); err != nil {
				return nil, err
			}
			todo.DueDate = optional(tw.DueDate)
			p.Todos[i] = todo
		}
	}

	p.RepurposingClips = nil
	if w.RepurposingClips != nil {
		p.RepurposingClips = make([]models.RepurposingClip, len(w.RepurposingClips))
		for i, cw := range w.RepurposingClips {
			clip := cw.RepurposingClip
			if clip.ID == "" {
				return nil, fmt.Errorf("%w: repurposing clip #%d: missing id", ErrMalformed, i)
			}
			if clip.CreatedAt, err = required("repurposing clip", clip.ID, "createdAt", cw.CreatedAt); err != nil {
				return nil, err
			}
			p.RepurposingClips[i] = clip
		}
	}

	return &p, nil
}

func required(kind, id, field string, raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Time{}, fmt.Errorf("%w: %s %q: %s: missing", ErrMalformed, kind, id, field)
	}
	t, err := ParseTime(*raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %s: %v", ErrMalformed, kind, id, field, err)
	}
	return t, nil
}

func optional(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseTime accepts RFC 3339 timestamps, with or without fractional
// seconds, and bare dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
