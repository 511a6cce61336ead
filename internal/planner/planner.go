// Package planner holds the editing operations behind every planner panel.
//
// Operations work on a *models.Project in place and are meant to run inside
// a session.Update mutator, which hands them a private copy. Read helpers
// such as InboxIdeas never modify their input.
package planner

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/schema"
)

// ErrNotFound is returned when an operation names an entity the project does not have.
var ErrNotFound = errors.New("not found")

// FirstProjectName is used for the project created on an empty store.
const FirstProjectName = "My first project"

// Planner stamps creation and update times from its clock.
type Planner struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Planner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Planner{clock: clock}
}

func (pl *Planner) now() time.Time {
	return pl.clock.Now().UTC()
}

func newID() string {
	return uuid.NewString()
}

// NewProject returns an empty project in the current schema.
func (pl *Planner) NewProject(name, description string) *models.Project {
	now := pl.now()
	return schema.Migrate(&models.Project{
		ID:            newID(),
		Name:          name,
		Description:   description,
		SchemaVersion: schema.CurrentVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}
