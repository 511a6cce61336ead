package planner

import (
	"fmt"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
)

// IdeaColors are the sticky note colors offered for ideas. The first is the default.
var IdeaColors = []string{
	"#fef3c7", // yellow
	"#fecaca", // red
	"#d1fae5", // green
	"#ddd6fe", // purple
	"#bfdbfe", // blue
	"#fed7aa", // orange
	"#fbcfe8", // pink
	"#a7f3d0", // emerald
}

type IdeaInput struct {
	Title       string
	Description string
	Status      models.IdeaStatus
	Color       string
	SceneID     string
}

// AddIdea appends a new idea. It lands in the inbox unless SceneID is set.
func (pl *Planner) AddIdea(p *models.Project, in IdeaInput) models.Idea {
	now := pl.now()
	idea := models.Idea{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      in.Status,
		Color:       in.Color,
		SceneID:     in.SceneID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !idea.Status.Valid() {
		idea.Status = models.IdeaRaw
	}
	if idea.Color == "" {
		idea.Color = IdeaColors[0]
	}

	p.Ideas = append(p.Ideas, idea)
	return idea
}

// UpdateIdea applies fn to the idea and refreshes its UpdatedAt.
func (pl *Planner) UpdateIdea(p *models.Project, id string, fn func(*models.Idea)) error {
	for i := range p.Ideas {
		if p.Ideas[i].ID == id {
			fn(&p.Ideas[i])
			p.Ideas[i].ID = id
			p.Ideas[i].UpdatedAt = pl.now()
			return nil
		}
	}
	return fmt.Errorf("idea %s: %w", id, ErrNotFound)
}

// MoveIdea assigns the idea to sceneID. An empty sceneID returns it to the inbox.
func (pl *Planner) MoveIdea(p *models.Project, id, sceneID string) error {
	return pl.UpdateIdea(p, id, func(idea *models.Idea) { idea.SceneID = sceneID })
}

// SetIdeaStatus moves an idea between kanban columns.
func (pl *Planner) SetIdeaStatus(p *models.Project, id string, status models.IdeaStatus) error {
	if !status.Valid() {
		return fmt.Errorf("idea status %q is not valid", status)
	}
	return pl.UpdateIdea(p, id, func(idea *models.Idea) { idea.Status = status })
}

func DeleteIdea(p *models.Project, id string) bool {
	out := p.Ideas[:0:0]
	for _, idea := range p.Ideas {
		if idea.ID != id {
			out = append(out, idea)
		}
	}
	found := len(out) != len(p.Ideas)
	p.Ideas = out
	return found
}

// InboxIdeas lists ideas without a scene. An empty status matches every
// status; query matches title or description, ignoring case.
//
// An idea pointing at a scene that no longer exists is not in the inbox.
func InboxIdeas(ideas []models.Idea, status models.IdeaStatus, query string) []models.Idea {
	query = strings.ToLower(query)
	var out []models.Idea
	for _, idea := range ideas {
		if idea.SceneID != "" {
			continue
		}
		if status != "" && idea.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(idea.Title), query) &&
			!strings.Contains(strings.ToLower(idea.Description), query) {
			continue
		}
		out = append(out, idea)
	}
	return out
}

// SceneIdeas lists the ideas assigned to sceneID.
func SceneIdeas(ideas []models.Idea, sceneID string) []models.Idea {
	var out []models.Idea
	if sceneID == "" {
		return out
	}
	for _, idea := range ideas {
		if idea.SceneID == sceneID {
			out = append(out, idea)
		}
	}
	return out
}

// OrphanedIdeas lists ideas whose scene no longer exists. They appear in
// neither the inbox nor any scene column.
func OrphanedIdeas(p *models.Project) []models.Idea {
	scenes := make(map[string]bool, len(p.Scenes))
	for _, s := range p.Scenes {
		scenes[s.ID] = true
	}
	var out []models.Idea
	for _, idea := range p.Ideas {
		if idea.SceneID != "" && !scenes[idea.SceneID] {
			out = append(out, idea)
		}
	}
	return out
}
