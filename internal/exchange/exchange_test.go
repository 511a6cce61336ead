package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/schema"
)

type memStore struct {
	puts     int
	projects map[string]*models.Project
	err      error
}

func (m *memStore) Put(_ context.Context, p *models.Project) error {
	if m.err != nil {
		return m.err
	}
	if m.projects == nil {
		m.projects = map[string]*models.Project{}
	}
	m.puts++
	m.projects[p.ID] = p.Clone()
	return nil
}

func sampleProject() *models.Project {
	base := time.Date(2025, 2, 14, 8, 15, 30, 123_000_000, time.UTC)
	due := base.Add(72 * time.Hour)
	duration := 120.0
	order := 2
	return schema.Migrate(&models.Project{
		ID:          "p-demo",
		Name:        "Demo",
		Description: "round trip",
		Ideas: []models.Idea{{
			ID: "i1", Title: "A", Description: "first", Status: models.IdeaApproved,
			Color: "#fef3c7", SceneID: "s1", Position: &models.Position{X: 10, Y: 20}, Order: &order,
			CreatedAt: base, UpdatedAt: base.Add(time.Minute),
		}},
		Scenes: []models.Scene{{
			ID: "s1", Title: "Intro", Order: 0, Ideas: []string{"i1"},
			Timeline: []models.TimelineSection{{ID: "sec1", Type: models.SectionHook, StartTime: 0, EndTime: 20, Notes: "open strong"}},
			TimelineItems: []models.TimelineItem{{
				ID: "ti1", Track: models.TrackVideo, AssetID: "a1", StartTime: 2.5, Duration: 5, Type: models.ItemAsset, Label: "clip",
			}},
			Duration:  &duration,
			CreatedAt: base, UpdatedAt: base,
		}},
		Assets: []models.Asset{{ID: "a1", Type: models.AssetVideo, Name: "clip", URL: "https://example.com/a.mp4", CreatedAt: base}},
		Todos: []models.Todo{{
			ID: "t1", Title: "Charge", Priority: models.PriorityHigh, DueDate: &due,
			Subtasks:  []models.SubTask{{ID: "st1", Title: "Battery", Completed: true}},
			CreatedAt: base,
		}},
		Metadata: models.VideoMetadata{
			Titles: []string{"Title A"}, Tags: []string{"go"}, Notes: "notes",
			ABTestVariants: []models.YouTubePreviewVariant{{ID: "v1", Title: "Variant"}},
		},
		RepurposingClips: []models.RepurposingClip{{
			ID: "c1", StartTime: 0, EndTime: 20, Platforms: []models.Platform{models.PlatformShorts},
			Status: models.ClipPlanned, CreatedAt: base,
		}},
		ShotList: []models.ShotListItem{{ID: "sh1", Title: "HOOK - open strong", ShotType: models.ShotTalkingHead, Duration: 20}},
		CreatedAt: base,
		UpdatedAt: base.Add(time.Hour),
	})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExportImportRoundTrip(t *testing.T) {
	original := sampleProject()

	data, err := Export(original)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"id\": \"p-demo\"") {
		t.Fatalf("expected indented output, got %s", data)
	}

	store := &memStore{}
	imported, err := Import(context.Background(), store, data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("expected import to write through once, got %d", store.puts)
	}

	if got, want := mustJSON(t, imported), mustJSON(t, original); got != want {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", got, want)
	}
	if !imported.Todos[0].DueDate.Equal(*original.Todos[0].DueDate) {
		t.Fatal("due date lost in round trip")
	}
}

func TestDecodeLegacyFileIsMigrated(t *testing.T) {
	legacy := `{
		"id": "old",
		"name": "Old project",
		"description": "",
		"ideas": [],
		"scenes": [],
		"assets": [],
		"todos": [{"id": "t1", "title": "x", "completed": false, "priority": "low", "subtasks": [], "createdAt": "2024-05-01T10:00:00.000Z"}],
		"metadata": {"titles": [], "thumbnails": [], "tags": [], "notes": ""},
		"createdAt": "2024-05-01T10:00:00.000Z",
		"updatedAt": "2024-05-02T10:00:00.000Z"
	}`

	p, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.RepurposingClips == nil || p.ShotList == nil || p.Metadata.ABTestVariants == nil {
		t.Fatalf("expected missing collections to be defaulted: %#v", p)
	}
	if p.SchemaVersion != schema.CurrentVersion {
		t.Fatalf("expected schema version %d, got %d", schema.CurrentVersion, p.SchemaVersion)
	}
	want := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	if !p.UpdatedAt.Equal(want) {
		t.Fatalf("updatedAt = %v, want %v", p.UpdatedAt, want)
	}
}

func TestDecodeOptionalDueDate(t *testing.T) {
	cases := map[string]string{
		"missing":    ``,
		"null":       `"dueDate": null,`,
		"garbage":    `"dueDate": "next tuesday",`,
		"wrong type": `"dueDate": 12,`,
		"date only":  `"dueDate": "2025-06-01",`,
		"full stamp": `"dueDate": "2025-06-01T12:00:00Z",`,
	}
	for name, field := range cases {
		t.Run(name, func(t *testing.T) {
			payload := `{"id":"p","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z",
				"todos":[{"id":"t1","title":"x",` + field + `"createdAt":"2025-01-01T00:00:00Z"}]}`
			p, err := Decode([]byte(payload))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			due := p.Todos[0].DueDate
			switch name {
			case "date only", "full stamp":
				if due == nil || due.Year() != 2025 || due.Month() != time.June {
					t.Fatalf("expected parsed due date, got %v", due)
				}
			default:
				if due != nil {
					t.Fatalf("expected absent due date, got %v", due)
				}
			}
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	stamp := `"2025-01-01T00:00:00Z"`
	cases := map[string]string{
		"not json":               `{"id":`,
		"missing project id":     `{"createdAt":` + stamp + `,"updatedAt":` + stamp + `}`,
		"missing createdAt":      `{"id":"p","updatedAt":` + stamp + `}`,
		"bad updatedAt":          `{"id":"p","createdAt":` + stamp + `,"updatedAt":"yesterday"}`,
		"idea without updatedAt": `{"id":"p","createdAt":` + stamp + `,"updatedAt":` + stamp + `,"ideas":[{"id":"i","createdAt":` + stamp + `}]}`,
		"scene without id":       `{"id":"p","createdAt":` + stamp + `,"updatedAt":` + stamp + `,"scenes":[{"createdAt":` + stamp + `,"updatedAt":` + stamp + `}]}`,
		"asset bad createdAt":    `{"id":"p","createdAt":` + stamp + `,"updatedAt":` + stamp + `,"assets":[{"id":"a","createdAt":"?"}]}`,
		"todo missing createdAt": `{"id":"p","createdAt":` + stamp + `,"updatedAt":` + stamp + `,"todos":[{"id":"t"}]}`,
		"clip missing createdAt": `{"id":"p","createdAt":` + stamp + `,"updatedAt":` + stamp + `,"repurposingClips":[{"id":"c"}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			store := &memStore{}
			p, err := Import(context.Background(), store, []byte(payload))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if p != nil || store.puts != 0 {
				t.Fatal("a failed import must not persist anything")
			}
		})
	}
}

func TestImportKeepsEmbeddedIDAndOverwrites(t *testing.T) {
	store := &memStore{}
	first := sampleProject()
	data, err := Export(first)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Import(context.Background(), store, data); err != nil {
		t.Fatal(err)
	}

	second := sampleProject()
	second.Name = "Replacement"
	data, err = Export(second)
	if err != nil {
		t.Fatal(err)
	}
	imported, err := Import(context.Background(), store, data)
	if err != nil {
		t.Fatal(err)
	}

	if imported.ID != first.ID {
		t.Fatalf("expected embedded id %q to be kept, got %q", first.ID, imported.ID)
	}
	if len(store.projects) != 1 || store.projects[first.ID].Name != "Replacement" {
		t.Fatalf("expected the colliding import to overwrite, got %#v", store.projects)
	}
}

func TestImportPropagatesStoreError(t *testing.T) {
	data, err := Export(sampleProject())
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk full")
	if _, err := Import(context.Background(), &memStore{err: boom}, data); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Demo":        "Demo.json",
		"a/b\\c":      "a_b_c.json",
		"  ":          "p-demo.json",
		"line\nbreak": "line_break.json",
	}
	for name, want := range cases {
		if got := FileName(&models.Project{ID: "p-demo", Name: name}); got != want {
			t.Errorf("FileName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestWriteFileAndImportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	original := sampleProject()

	path, err := WriteFile(dir, original)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "Demo.json" {
		t.Fatalf("unexpected file name %s", path)
	}

	store := &memStore{}
	imported, err := ImportFile(context.Background(), store, path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if imported.ID != original.ID || store.puts != 1 {
		t.Fatalf("unexpected import %#v", imported)
	}

	if _, err := ImportFile(context.Background(), store, filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
