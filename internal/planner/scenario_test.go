package planner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/emilianohg/storyboard/internal/db"
	"github.com/emilianohg/storyboard/internal/exchange"
	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/repository"
	"github.com/emilianohg/storyboard/internal/session"
	"github.com/emilianohg/storyboard/internal/timeline"
)

// TestDemoScenario walks through the planner the way a user would: a new
// project, an idea moved into a scene, a hook section and a generated shot list.
func TestDemoScenario(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "storyboard.sqlite"))
	if err != nil {
		t.Fatalf("OpenAndMigrate failed: %v", err)
	}
	defer database.Close()

	clock := clockwork.NewFakeClock()
	repo := repository.NewProjectRepo(database.DB).WithClock(clock)
	pl := planner.New(clock)

	project := pl.NewProject("Demo", "")
	if err := repo.Put(ctx, project); err != nil {
		t.Fatal(err)
	}

	s := session.New(repo, session.WithClock(clock))
	if err := s.Select(ctx, project.ID); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	var ideaID, sceneID string
	steps := []func(p *models.Project){
		func(p *models.Project) {
			ideaID = pl.AddIdea(p, planner.IdeaInput{Title: "A", Status: models.IdeaRaw}).ID
		},
		func(p *models.Project) {
			sceneID = pl.AddScene(p, "Intro", "").ID
		},
		func(p *models.Project) {
			if err := pl.MoveIdea(p, ideaID, sceneID); err != nil {
				t.Error(err)
			}
		},
		func(p *models.Project) {
			scene, _ := planner.FindScene(p, sceneID)
			sections := timeline.AddSection(scene.Timeline, models.SectionHook, 20)
			if err := pl.SetSceneTimeline(p, sceneID, sections); err != nil {
				t.Error(err)
			}
		},
		func(p *models.Project) {
			if err := planner.RegenerateShotList(p, sceneID); err != nil {
				t.Error(err)
			}
		},
	}
	for _, step := range steps {
		if err := s.Update(step); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	s.Close()

	check := func(p *models.Project) {
		t.Helper()
		if got := planner.SceneIdeas(p.Ideas, sceneID); len(got) != 1 || got[0].Title != "A" {
			t.Fatalf("idea not in the Intro scene: %#v", p.Ideas)
		}
		if len(p.ShotList) != 1 {
			t.Fatalf("expected one shot, got %#v", p.ShotList)
		}
		shot := p.ShotList[0]
		if shot.Duration != 20 || shot.Completed || shot.Order != 0 {
			t.Fatalf("unexpected shot %#v", shot)
		}
	}

	check(s.Snapshot().Project)

	// Writes may land out of order, so persist the final state explicitly
	// before reading it back.
	final := s.Snapshot().Project
	if err := repo.Put(ctx, final); err != nil {
		t.Fatal(err)
	}
	stored, err := repo.MustGet(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	check(stored)

	data, err := exchange.Export(stored)
	if err != nil {
		t.Fatal(err)
	}
	imported, err := exchange.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	check(imported)
}
