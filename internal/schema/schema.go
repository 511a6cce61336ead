// Package schema upgrades stored and imported projects to the current shape.
//
// Every upgrade step is pure: it works on a clone and never touches the
// caller's value. Migrate is total over any older shape and idempotent.
package schema

import "github.com/emilianohg/storyboard/internal/models"

// CurrentVersion is the shape produced by Migrate.
const CurrentVersion = 2

// upgrades[v] lifts a project from version v to v+1.
var upgrades = []func(*models.Project){
	addRepurposingAndShots,
	fillCollections,
}

// Migrate returns a copy of p in the current schema. A nil project stays nil.
func Migrate(p *models.Project) *models.Project {
	if p == nil {
		return nil
	}

	out := p.Clone()
	for v := out.SchemaVersion; v >= 0 && v < len(upgrades); v++ {
		upgrades[v](out)
	}

	// Normalizing again covers documents that claim the current version but
	// were hand-edited or written by an older build.
	addRepurposingAndShots(out)
	fillCollections(out)

	if out.SchemaVersion < CurrentVersion {
		out.SchemaVersion = CurrentVersion
	}
	return out
}

// NeedsMigration reports whether Migrate would change p.
func NeedsMigration(p *models.Project) bool {
	if p == nil {
		return false
	}
	if p.SchemaVersion < CurrentVersion {
		return true
	}
	return p.RepurposingClips == nil || p.ShotList == nil || p.Metadata.ABTestVariants == nil ||
		p.Ideas == nil || p.Scenes == nil || p.Assets == nil || p.Todos == nil
}

// v0 -> v1: repurposing clips, the shot list and A-B variants did not exist.
func addRepurposingAndShots(p *models.Project) {
	if p.RepurposingClips == nil {
		p.RepurposingClips = []models.RepurposingClip{}
	}
	if p.ShotList == nil {
		p.ShotList = []models.ShotListItem{}
	}
	if p.Metadata.ABTestVariants == nil {
		p.Metadata.ABTestVariants = []models.YouTubePreviewVariant{}
	}
}

// v1 -> v2: every collection is present, down to nested reference lists.
func fillCollections(p *models.Project) {
	if p.Ideas == nil {
		p.Ideas = []models.Idea{}
	}
	if p.Scenes == nil {
		p.Scenes = []models.Scene{}
	}
	if p.Assets == nil {
		p.Assets = []models.Asset{}
	}
	if p.Todos == nil {
		p.Todos = []models.Todo{}
	}

	if p.Metadata.Titles == nil {
		p.Metadata.Titles = []string{}
	}
	if p.Metadata.Thumbnails == nil {
		p.Metadata.Thumbnails = []models.ThumbnailIdea{}
	}
	if p.Metadata.Tags == nil {
		p.Metadata.Tags = []string{}
	}

	for i := range p.Scenes {
		s := &p.Scenes[i]
		if s.Ideas == nil {
			s.Ideas = []string{}
		}
		if s.Assets == nil {
			s.Assets = []string{}
		}
		if s.Todos == nil {
			s.Todos = []string{}
		}
	}
	for i := range p.Todos {
		if p.Todos[i].Subtasks == nil {
			p.Todos[i].Subtasks = []models.SubTask{}
		}
	}
	for i := range p.RepurposingClips {
		if p.RepurposingClips[i].Platforms == nil {
			p.RepurposingClips[i].Platforms = []models.Platform{}
		}
	}
}
