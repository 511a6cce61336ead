package screens

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
)

var ideaStatuses = []models.IdeaStatus{models.IdeaRaw, models.IdeaResearching, models.IdeaApproved}

func nextIdeaStatus(s models.IdeaStatus) models.IdeaStatus {
	for i, st := range ideaStatuses {
		if st == s {
			return ideaStatuses[(i+1)%len(ideaStatuses)]
		}
	}
	return models.IdeaRaw
}

func nextIdeaColor(c string) string {
	for i, color := range planner.IdeaColors {
		if color == c {
			return planner.IdeaColors[(i+1)%len(planner.IdeaColors)]
		}
	}
	return planner.IdeaColors[0]
}

// ideasTab is the inbox: ideas not yet placed in a scene.
type ideasTab struct {
	cursor int
	status models.IdeaStatus // "" shows every status
	query  string
}

func (t *ideasTab) Title() string { return "Ideas" }

func (t *ideasTab) Help() string {
	return "[a] Add  [e] Edit  [s] Status  [c] Color  [m] Move to scene  [f] Filter  [/] Search  [d] Delete"
}

func (t *ideasTab) rows(p *models.Project) []models.Idea {
	return planner.InboxIdeas(p.Ideas, t.status, t.query)
}

func (t *ideasTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	rows := t.rows(p)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(rows))

	switch key {
	case "a":
		e.prompt("New idea:", "", func(title string) error {
			e.update(func(p *models.Project) error {
				e.deps.Planner.AddIdea(p, planner.IdeaInput{Title: title})
				return nil
			})
			return e.err
		})
	case "f":
		if t.status == "" {
			t.status = ideaStatuses[0]
		} else if t.status == ideaStatuses[len(ideaStatuses)-1] {
			t.status = ""
		} else {
			t.status = nextIdeaStatus(t.status)
		}
		t.cursor = 0
	case "/":
		e.prompt("Search ideas:", t.query, func(q string) error {
			t.query = q
			t.cursor = 0
			return nil
		})
	case "ctrl+u":
		t.query = ""
	}

	if len(rows) == 0 {
		return nil
	}
	idea := rows[t.cursor]

	switch key {
	case "e":
		e.prompt("Idea title:", idea.Title, func(title string) error {
			e.update(func(p *models.Project) error {
				return e.deps.Planner.UpdateIdea(p, idea.ID, func(i *models.Idea) { i.Title = title })
			})
			return e.err
		})
	case "s":
		e.update(func(p *models.Project) error {
			return e.deps.Planner.SetIdeaStatus(p, idea.ID, nextIdeaStatus(idea.Status))
		})
	case "c":
		e.update(func(p *models.Project) error {
			return e.deps.Planner.UpdateIdea(p, idea.ID, func(i *models.Idea) { i.Color = nextIdeaColor(i.Color) })
		})
	case "m":
		scenes := planner.SortedScenes(p.Scenes)
		if len(scenes) == 0 {
			e.message = "Add a scene first"
			return nil
		}
		e.prompt(fmt.Sprintf("Move to scene number (1-%d):", len(scenes)), "", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > len(scenes) {
				return fmt.Errorf("scene %q does not exist", v)
			}
			e.update(func(p *models.Project) error {
				return e.deps.Planner.MoveIdea(p, idea.ID, scenes[n-1].ID)
			})
			return e.err
		})
	case "d":
		e.confirm(fmt.Sprintf("Delete idea '%s'?", idea.Title), func() error {
			e.update(func(p *models.Project) error {
				planner.DeleteIdea(p, idea.ID)
				return nil
			})
			return e.err
		})
	}
	return nil
}

func (t *ideasTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	filter := "all"
	if t.status != "" {
		filter = string(t.status)
	}
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Inbox - status: %s", filter)))
	if t.query != "" {
		b.WriteString(DimStyle.Render(fmt.Sprintf("  search: %q", t.query)))
	}
	b.WriteString("\n")

	rows := t.rows(p)
	if len(rows) == 0 {
		b.WriteString(DimStyle.Render("No ideas here. Press 'a' to capture one."))
		b.WriteString("\n")
	}
	for i, idea := range rows {
		line := fmt.Sprintf("%s %s %s", swatch(idea.Color), idea.Title, DimStyle.Render("["+string(idea.Status)+"]"))
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}

	if orphans := planner.OrphanedIdeas(p); len(orphans) > 0 {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d ideas belong to deleted scenes", len(orphans))))
		b.WriteString("\n")
	}
	return b.String()
}

// scenesTab lists scenes in order with the ideas placed in each.
type scenesTab struct {
	cursor int
}

func (t *scenesTab) Title() string { return "Scenes" }

func (t *scenesTab) Help() string {
	return "[a] Add  [e] Rename  [l] Length  [u] Return ideas to inbox  [d] Delete"
}

func (t *scenesTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	scenes := planner.SortedScenes(p.Scenes)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(scenes))

	if key == "a" {
		e.prompt("New scene title:", "", func(title string) error {
			e.update(func(p *models.Project) error {
				e.deps.Planner.AddScene(p, title, "")
				return nil
			})
			return e.err
		})
		return nil
	}
	if len(scenes) == 0 {
		return nil
	}
	scene := scenes[t.cursor]

	switch key {
	case "e":
		e.prompt("Scene title:", scene.Title, func(title string) error {
			e.update(func(p *models.Project) error {
				return e.deps.Planner.UpdateScene(p, scene.ID, func(s *models.Scene) { s.Title = title })
			})
			return e.err
		})
	case "l":
		current := strconv.FormatFloat(planner.SceneDuration(scene), 'f', -1, 64)
		e.prompt("Scene length in seconds:", current, func(v string) error {
			secs, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("length %q is not a number", v)
			}
			e.update(func(p *models.Project) error {
				return e.deps.Planner.SetSceneDuration(p, scene.ID, secs)
			})
			return e.err
		})
	case "u":
		e.update(func(p *models.Project) error {
			for _, idea := range planner.SceneIdeas(p.Ideas, scene.ID) {
				if err := e.deps.Planner.MoveIdea(p, idea.ID, ""); err != nil {
					return err
				}
			}
			return nil
		})
	case "d":
		e.confirm(fmt.Sprintf("Delete scene '%s'?", scene.Title), func() error {
			e.update(func(p *models.Project) error {
				planner.DeleteScene(p, scene.ID)
				return nil
			})
			return e.err
		})
	}
	return nil
}

func (t *scenesTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	scenes := planner.SortedScenes(p.Scenes)
	if len(scenes) == 0 {
		b.WriteString(DimStyle.Render("No scenes yet. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, scene := range scenes {
		ideas := planner.SceneIdeas(p.Ideas, scene.ID)
		line := fmt.Sprintf("%d. %s %s", i+1, scene.Title,
			DimStyle.Render(fmt.Sprintf("(%d ideas, %s)", len(ideas), formatSeconds(planner.SceneDuration(scene)))))
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
		for _, idea := range ideas {
			b.WriteString(fmt.Sprintf("      %s %s\n", swatch(idea.Color), DimStyle.Render(idea.Title)))
		}
	}
	return b.String()
}

var assetTypes = []models.AssetType{models.AssetVideo, models.AssetImage, models.AssetAudio}

// assetsTab is the asset library.
type assetsTab struct {
	cursor int
	typ    models.AssetType
}

func (t *assetsTab) Title() string { return "Assets" }

func (t *assetsTab) Help() string {
	return "[a] Add (type name url)  [f] Filter type  [d] Delete"
}

func (t *assetsTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	rows := planner.FilterAssets(p.Assets, "", t.typ)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(rows))

	switch key {
	case "a":
		e.prompt("New asset as 'type name [url]' (video, image, audio):", "", func(v string) error {
			in, err := parseAssetInput(v)
			if err != nil {
				return err
			}
			e.update(func(p *models.Project) error {
				_, err := e.deps.Planner.AddAsset(p, in)
				return err
			})
			return e.err
		})
	case "f":
		t.typ = nextAssetType(t.typ)
		t.cursor = 0
	case "d":
		if len(rows) == 0 {
			return nil
		}
		asset := rows[t.cursor]
		e.confirm(fmt.Sprintf("Delete asset '%s'?", asset.Name), func() error {
			e.update(func(p *models.Project) error {
				planner.DeleteAsset(p, asset.ID)
				return nil
			})
			return e.err
		})
	}
	return nil
}

func nextAssetType(t models.AssetType) models.AssetType {
	if t == "" {
		return assetTypes[0]
	}
	for i, at := range assetTypes {
		if at == t && i+1 < len(assetTypes) {
			return assetTypes[i+1]
		}
	}
	return ""
}

// parseAssetInput reads "type name [url]". The url is the last field when
// it looks like one.
func parseAssetInput(v string) (planner.AssetInput, error) {
	fields := strings.Fields(v)
	if len(fields) < 2 {
		return planner.AssetInput{}, fmt.Errorf("expected 'type name [url]'")
	}
	in := planner.AssetInput{Type: models.AssetType(strings.ToLower(fields[0]))}
	rest := fields[1:]
	if last := rest[len(rest)-1]; len(rest) > 1 && strings.Contains(last, "://") {
		in.URL = last
		rest = rest[:len(rest)-1]
	}
	in.Name = strings.Join(rest, " ")
	return in, nil
}

func (t *assetsTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	filter := "all"
	if t.typ != "" {
		filter = string(t.typ)
	}
	b.WriteString(SubtitleStyle.Render("Assets - type: " + filter))
	b.WriteString("\n")

	rows := planner.FilterAssets(p.Assets, "", t.typ)
	if len(rows) == 0 {
		b.WriteString(DimStyle.Render("No assets."))
		b.WriteString("\n")
	}
	for i, a := range rows {
		line := fmt.Sprintf("%-6s %s", a.Type, a.Name)
		if a.URL != "" {
			line += " " + DimStyle.Render(a.URL)
		}
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}
	return b.String()
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64) + "s"
}
