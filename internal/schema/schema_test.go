package schema

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/emilianohg/storyboard/internal/models"
)

func legacyProject() *models.Project {
	created := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)
	return &models.Project{
		ID:   "legacy",
		Name: "Old",
		Ideas: []models.Idea{
			{ID: "i1", Title: "A", Status: models.IdeaRaw, CreatedAt: created, UpdatedAt: created},
		},
		Scenes: []models.Scene{
			{ID: "s1", Title: "Intro", CreatedAt: created, UpdatedAt: created},
		},
		Todos: []models.Todo{
			{ID: "t1", Title: "Charge batteries", Priority: models.PriorityHigh, CreatedAt: created},
		},
		Metadata:  models.VideoMetadata{Notes: "n"},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMigrateFillsMissingCollections(t *testing.T) {
	in := legacyProject()
	out := Migrate(in)

	if out.SchemaVersion != CurrentVersion {
		t.Fatalf("expected version %d, got %d", CurrentVersion, out.SchemaVersion)
	}
	if out.RepurposingClips == nil || out.ShotList == nil || out.Metadata.ABTestVariants == nil {
		t.Fatalf("expected v1 collections to be present: %#v", out)
	}
	if out.Assets == nil || out.Metadata.Titles == nil || out.Metadata.Tags == nil || out.Metadata.Thumbnails == nil {
		t.Fatalf("expected v2 collections to be present: %#v", out)
	}
	if out.Scenes[0].Ideas == nil || out.Todos[0].Subtasks == nil {
		t.Fatalf("expected nested lists to be present: %#v", out)
	}
	if out.Metadata.Notes != "n" || out.Ideas[0].Title != "A" {
		t.Fatalf("existing data must survive migration: %#v", out)
	}
}

func TestMigrateDoesNotMutateInput(t *testing.T) {
	in := legacyProject()
	before, _ := json.Marshal(in)

	_ = Migrate(in)

	after, _ := json.Marshal(in)
	if string(before) != string(after) {
		t.Fatalf("input was mutated:\nbefore %s\nafter  %s", before, after)
	}
	if in.RepurposingClips != nil || in.SchemaVersion != 0 {
		t.Fatal("input was mutated")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	cases := map[string]*models.Project{
		"empty":  {ID: "e"},
		"legacy": legacyProject(),
		"current but gutted": {
			ID:            "c",
			SchemaVersion: CurrentVersion,
		},
		"future version": {
			ID:            "f",
			SchemaVersion: CurrentVersion + 3,
			Ideas:         []models.Idea{},
		},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			once := Migrate(in)
			twice := Migrate(once)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("migrate is not idempotent:\nonce  %#v\ntwice %#v", once, twice)
			}
			if NeedsMigration(once) {
				t.Fatal("migrated project still reports NeedsMigration")
			}
		})
	}
}

func TestMigrateNil(t *testing.T) {
	if Migrate(nil) != nil {
		t.Fatal("expected nil")
	}
	if NeedsMigration(nil) {
		t.Fatal("nil never needs migration")
	}
}

func TestNeedsMigration(t *testing.T) {
	if !NeedsMigration(legacyProject()) {
		t.Fatal("legacy project should need migration")
	}
	if NeedsMigration(Migrate(legacyProject())) {
		t.Fatal("migrated project should not need migration")
	}
}
