package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/timeline"
)

// MainSceneTitle names the scene created when the timeline is edited on a
// project that has no scenes yet.
const MainSceneTitle = "Main Scene"

// AddScene appends a scene ordered after the existing ones.
func (pl *Planner) AddScene(p *models.Project, title, description string) models.Scene {
	now := pl.now()
	scene := models.Scene{
		ID:          newID(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Order:       len(p.Scenes),
		Ideas:       []string{},
		Assets:      []string{},
		Todos:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Scenes = append(p.Scenes, scene)
	return scene
}

// UpdateScene applies fn to the scene and refreshes its UpdatedAt.
func (pl *Planner) UpdateScene(p *models.Project, id string, fn func(*models.Scene)) error {
	for i := range p.Scenes {
		if p.Scenes[i].ID == id {
			fn(&p.Scenes[i])
			p.Scenes[i].ID = id
			p.Scenes[i].UpdatedAt = pl.now()
			return nil
		}
	}
	return fmt.Errorf("scene %s: %w", id, ErrNotFound)
}

// DeleteScene removes the scene only. Ideas that pointed at it become orphans.
func DeleteScene(p *models.Project, id string) bool {
	out := p.Scenes[:0:0]
	for _, s := range p.Scenes {
		if s.ID != id {
			out = append(out, s)
		}
	}
	found := len(out) != len(p.Scenes)
	p.Scenes = out
	return found
}

// SortedScenes returns the scenes by their Order field.
func SortedScenes(scenes []models.Scene) []models.Scene {
	out := append([]models.Scene(nil), scenes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func FindScene(p *models.Project, id string) (models.Scene, bool) {
	for _, s := range p.Scenes {
		if s.ID == id {
			return s, true
		}
	}
	return models.Scene{}, false
}

func (pl *Planner) SetSceneTimeline(p *models.Project, id string, sections []models.TimelineSection) error {
	return pl.UpdateScene(p, id, func(s *models.Scene) { s.Timeline = sections })
}

func (pl *Planner) SetSceneItems(p *models.Project, id string, items []models.TimelineItem) error {
	return pl.UpdateScene(p, id, func(s *models.Scene) { s.TimelineItems = items })
}

func (pl *Planner) SetSceneDuration(p *models.Project, id string, seconds float64) error {
	if seconds <= 0 {
		return fmt.Errorf("scene duration must be positive, got %v", seconds)
	}
	return pl.UpdateScene(p, id, func(s *models.Scene) { s.Duration = &seconds })
}

// SceneDuration is the scene's own duration or timeline.DefaultVideoDuration.
func SceneDuration(s models.Scene) float64 {
	if s.Duration != nil && *s.Duration > 0 {
		return *s.Duration
	}
	return timeline.DefaultVideoDuration
}

// MainScene is the scene whose timeline the timeline, repurposing and shot
// list panels edit: the first stored scene.
func MainScene(p *models.Project) (models.Scene, bool) {
	if len(p.Scenes) == 0 {
		return models.Scene{}, false
	}
	return p.Scenes[0], true
}

// SetMainTimeline replaces the main scene's sections, creating the main
// scene first when the project has none.
func (pl *Planner) SetMainTimeline(p *models.Project, sections []models.TimelineSection) {
	if len(p.Scenes) == 0 {
		pl.AddScene(p, MainSceneTitle, "")
	}
	_ = pl.SetSceneTimeline(p, p.Scenes[0].ID, sections)
}
