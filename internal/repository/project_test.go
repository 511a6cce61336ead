package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emilianohg/storyboard/internal/db"
	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/repository"
)

func openRepo(t *testing.T, clock clockwork.Clock) (*repository.ProjectRepo, *db.DB) {
	t.Helper()
	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "storyboard.sqlite"))
	if err != nil {
		t.Fatalf("OpenAndMigrate failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return repository.NewProjectRepo(database.DB).WithClock(clock), database
}

func project(id, name string, created time.Time) *models.Project {
	return &models.Project{
		ID:        id,
		Name:      name,
		Ideas:     []models.Idea{{ID: id + "-idea", Title: "Idea", Status: models.IdeaRaw, CreatedAt: created, UpdatedAt: created}},
		Scenes:    []models.Scene{},
		Assets:    []models.Asset{},
		Todos:     []models.Todo{},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestPutStampsUpdatedAt(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	repo, _ := openRepo(t, clock)
	ctx := context.Background()

	p := project("p1", "Demo", start.Add(-time.Hour))
	p.UpdatedAt = start.Add(-time.Hour)
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !p.UpdatedAt.Equal(start) {
		t.Fatalf("expected Put to stamp %v, got %v", start, p.UpdatedAt)
	}

	got, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Name != "Demo" || len(got.Ideas) != 1 {
		t.Fatalf("unexpected project: %#v", got)
	}
	if !got.UpdatedAt.Equal(start) {
		t.Fatalf("stored UpdatedAt = %v, want %v", got.UpdatedAt, start)
	}
}

func TestPutUpserts(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	repo, _ := openRepo(t, clock)
	ctx := context.Background()

	p := project("p1", "Draft", clock.Now())
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	p.Name = "Final"
	clock.Advance(time.Minute)
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Final" {
		t.Fatalf("expected a single upserted project, got %#v", all)
	}
}

func TestGetAllOrdersByUpdatedAt(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	repo, _ := openRepo(t, clock)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := repo.Put(ctx, project(id, id, clock.Now())); err != nil {
			t.Fatalf("Put %s failed: %v", id, err)
		}
		clock.Advance(time.Second)
	}

	// touching "c" moves it to the end
	c, err := repo.MustGet(ctx, "c")
	if err != nil {
		t.Fatalf("MustGet failed: %v", err)
	}
	if err := repo.Put(ctx, c); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	var order []string
	for _, p := range all {
		order = append(order, p.ID)
	}
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestGetMissingAndDelete(t *testing.T) {
	clock := clockwork.NewFakeClock()
	repo, _ := openRepo(t, clock)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "nope")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing project, got %#v, %v", got, err)
	}
	if _, err := repo.MustGet(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "nope"); err != nil {
		t.Fatalf("Delete of missing project should be a no-op, got %v", err)
	}

	if err := repo.Put(ctx, project("p1", "Demo", clock.Now())); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := repo.GetByID(ctx, "p1"); got != nil {
		t.Fatalf("expected project to be deleted, got %#v", got)
	}
}

func TestCorruptRecordIsALoadError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	repo, database := openRepo(t, clock)
	ctx := context.Background()

	if err := repo.Put(ctx, project("good", "Good", clock.Now())); err != nil {
		t.Fatal(err)
	}
	if _, err := database.Exec(
		"INSERT INTO projects (id, name, data, created_at, updated_at) VALUES ('bad', 'Bad', '{not json', '', '')",
	); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.GetByID(ctx, "bad"); err == nil {
		t.Fatal("expected decode error for corrupt record")
	}
	if got, err := repo.GetByID(ctx, "good"); err != nil || got == nil {
		t.Fatalf("corrupt record must not affect others: %#v, %v", got, err)
	}

	summaries, err := repo.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected both rows in summaries, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == "good" && s.IdeaCount != 1 {
			t.Fatalf("expected idea count 1 for good project, got %d", s.IdeaCount)
		}
		if s.ID == "bad" && s.IdeaCount != 0 {
			t.Fatalf("expected idea count 0 for corrupt project, got %d", s.IdeaCount)
		}
	}
}
