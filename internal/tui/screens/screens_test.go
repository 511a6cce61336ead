package screens

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/emilianohg/storyboard/internal/config"
	"github.com/emilianohg/storyboard/internal/db"
	"github.com/emilianohg/storyboard/internal/logging"
	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/repository"
	"github.com/emilianohg/storyboard/internal/session"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "storyboard.sqlite"))
	if err != nil {
		t.Fatalf("OpenAndMigrate failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	clock := clockwork.NewRealClock()
	cfg := config.DefaultConfig()
	// Long enough that only explicit saves reach the store during a test.
	cfg.AutosaveDelay = "1h"
	cfg.ExportDir = t.TempDir()

	return Deps{
		Repo:    repository.NewProjectRepo(database.DB).WithClock(clock),
		Planner: planner.New(clock),
		Config:  cfg,
		Logger:  logging.Nop(),
		Clock:   clock,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// openEditor opens id and runs the load so the editor is Ready.
func openEditor(t *testing.T, deps Deps, id string) *ProjectEditor {
	t.Helper()
	e := NewProjectEditor(deps)
	e.SetSize(120, 40)

	batch, ok := e.Open(id)().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected a load and a subscription command, got %#v", batch)
	}
	e.Update(batch[0]())
	e.Update(batch[1]())

	if e.snap.State != session.Ready {
		t.Fatalf("expected ready editor, got %s (%v)", e.snap.State, e.snap.Err)
	}
	return e
}

func TestEditorAddsIdeaAndSavesOnLeave(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()

	project := deps.Planner.NewProject("Demo", "")
	if err := deps.Repo.Put(ctx, project); err != nil {
		t.Fatal(err)
	}

	e := openEditor(t, deps, project.ID)
	e.Update(key("a"))
	if !e.Typing() {
		t.Fatal("expected the idea prompt to take input")
	}
	e.Update(key("Cold open"))
	e.Update(key("enter"))

	if e.err != nil {
		t.Fatalf("unexpected error: %v", e.err)
	}
	ideas := planner.InboxIdeas(e.snap.Project.Ideas, "", "")
	if len(ideas) != 1 || ideas[0].Title != "Cold open" {
		t.Fatalf("expected one inbox idea, got %#v", e.snap.Project.Ideas)
	}

	// Nothing is written until the autosave delay passes or the editor is left.
	stored, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Ideas) != 0 {
		t.Fatalf("expected the edit to still be pending, got %#v", stored.Ideas)
	}

	e.Leave()

	stored, err = deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Ideas) != 1 || stored.Ideas[0].Title != "Cold open" {
		t.Fatalf("expected the idea to be saved on leave, got %#v", stored.Ideas)
	}
}

func TestEditorLeaveWithoutEditsKeepsStoredProject(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()

	project := deps.Planner.NewProject("Demo", "")
	if err := deps.Repo.Put(ctx, project); err != nil {
		t.Fatal(err)
	}
	before, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}

	e := openEditor(t, deps, project.ID)
	e.Leave()

	after, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("viewing the project rewrote it: updatedAt %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestEditorFailedEditIsDiscarded(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()

	project := deps.Planner.NewProject("Demo", "")
	if err := deps.Repo.Put(ctx, project); err != nil {
		t.Fatal(err)
	}
	before, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}

	e := openEditor(t, deps, project.ID)
	loaded := e.snap.Project.UpdatedAt
	e.update(func(p *models.Project) error {
		p.Name = "Half done"
		return planner.ToggleShot(p, "missing")
	})
	if !errors.Is(e.err, planner.ErrNotFound) {
		t.Fatalf("expected the failed edit to be reported, got %v", e.err)
	}
	if got := e.sess.Snapshot().Project; got.Name != "Demo" || !got.UpdatedAt.Equal(loaded) {
		t.Fatalf("a failed edit changed the project: %#v", got)
	}

	e.Leave()
	after, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("a failed edit was saved: updatedAt %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestEditorNotesFeedSession(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()

	project := deps.Planner.NewProject("Demo", "")
	if err := deps.Repo.Put(ctx, project); err != nil {
		t.Fatal(err)
	}

	e := openEditor(t, deps, project.ID)
	e.Update(key("8")) // metadata
	e.Update(key("n"))
	if e.mode != projectModeNotes {
		t.Fatalf("expected notes mode, got %v", e.mode)
	}
	for _, r := range "hello" {
		e.Update(key(string(r)))
	}
	e.Update(key("esc"))

	if got := e.snap.Project.Metadata.Notes; got != "hello" {
		t.Fatalf("expected notes %q, got %q", "hello", got)
	}

	if err := e.sess.SaveNow(); err != nil {
		t.Fatal(err)
	}
	stored, err := deps.Repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Metadata.Notes != "hello" {
		t.Fatalf("expected saved notes, got %q", stored.Metadata.Notes)
	}
	e.Leave()
}

func TestEditorMissingProjectFails(t *testing.T) {
	deps := testDeps(t)
	e := NewProjectEditor(deps)

	batch := e.Open("missing")().(tea.BatchMsg)
	e.Update(batch[0]())
	e.Update(batch[1]())

	if e.snap.State != session.Failed {
		t.Fatalf("expected failed state, got %s", e.snap.State)
	}
	if cmd := e.Update(key("q")); cmd == nil {
		t.Fatal("expected navigation back to the picker")
	}
	if e.sess != nil {
		t.Fatal("expected the session to be closed on leave")
	}
}

func TestPickerCreatesAndOpensProject(t *testing.T) {
	deps := testDeps(t)
	p := NewProjects(deps)

	p.Update(p.Init()())
	if len(p.projects) != 0 {
		t.Fatalf("expected an empty store, got %#v", p.projects)
	}

	p.Update(key("a"))
	p.Update(key("Launch video"))
	cmd := p.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	done, ok := cmd().(projectsDoneMsg)
	if !ok || done.err != nil || done.openID == "" {
		t.Fatalf("unexpected result %#v", done)
	}

	nav, ok := p.Update(done)().(NavigateMsg)
	if !ok || nav.Screen != "project" || nav.ProjectID != done.openID {
		t.Fatalf("expected navigation to the new project, got %#v", nav)
	}

	stored, err := deps.Repo.MustGet(context.Background(), done.openID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Launch video" || stored.SchemaVersion == 0 {
		t.Fatalf("unexpected stored project %#v", stored)
	}
}

func TestPickerExportsSelected(t *testing.T) {
	deps := testDeps(t)
	project := deps.Planner.NewProject("Demo", "")
	if err := deps.Repo.Put(context.Background(), project); err != nil {
		t.Fatal(err)
	}

	p := NewProjects(deps)
	p.Update(p.Init()())

	done := p.Update(key("x"))().(projectsDoneMsg)
	if done.err != nil {
		t.Fatalf("export failed: %v", done.err)
	}
	want := "Exported to " + filepath.Join(deps.Config.ExportDir, "Demo.json")
	if done.message != want {
		t.Fatalf("expected %q, got %q", want, done.message)
	}
}

func TestParseAssetInput(t *testing.T) {
	tests := []struct {
		in      string
		want    planner.AssetInput
		wantErr bool
	}{
		{in: "video Intro clip", want: planner.AssetInput{Type: models.AssetVideo, Name: "Intro clip"}},
		{in: "Image logo https://example.com/logo.png", want: planner.AssetInput{Type: models.AssetImage, Name: "logo", URL: "https://example.com/logo.png"}},
		{in: "audio https://example.com/a.mp3", want: planner.AssetInput{Type: models.AssetAudio, Name: "https://example.com/a.mp3"}},
		{in: "video", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAssetInput(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAssetInput(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAssetInput(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAssetInput(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	due, err := parseDueDate("2026-03-01")
	if err != nil || due == nil || due.Format(dateLayout) != "2026-03-01" {
		t.Fatalf("unexpected %v, %v", due, err)
	}
	if due, err := parseDueDate("-"); err != nil || due != nil {
		t.Fatalf("expected '-' to clear, got %v, %v", due, err)
	}
	if _, err := parseDueDate("March"); err == nil {
		t.Fatal("expected error for a malformed date")
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		key          string
		cursor, rows int
		want         int
	}{
		{"down", 0, 3, 1},
		{"j", 2, 3, 2},
		{"up", 0, 3, 0},
		{"k", 2, 3, 1},
		{"x", 5, 2, 1},
		{"down", 0, 0, 0},
	}
	for _, tt := range tests {
		if got := moveCursor(tt.key, tt.cursor, tt.rows); got != tt.want {
			t.Errorf("moveCursor(%q, %d, %d) = %d, want %d", tt.key, tt.cursor, tt.rows, got, tt.want)
		}
	}
}
