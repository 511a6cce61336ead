package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/timeline"
)

var trackForAsset = map[models.AssetType]models.TimelineTrack{
	models.AssetVideo: models.TrackVideo,
	models.AssetAudio: models.TrackAudio,
	models.AssetImage: models.TrackOverlay,
}

// timelineTab edits the main scene timeline. The playhead column plays the
// part of the pointer: it is mapped to a time the same way a click would be.
type timelineTab struct {
	cursor  int
	zoom    float64
	playCol int
	cols    int
}

func newTimelineTab() *timelineTab {
	return &timelineTab{zoom: 1}
}

func (t *timelineTab) Title() string { return "Timeline" }

func (t *timelineTab) Help() string {
	return "[h/v/c] Add hook/value/cta  [n] Notes  [J/K] Move  [d] Delete  [+/-] Zoom  [←/→] Playhead  [p] Place asset  [x] Remove item"
}

func (t *timelineTab) rect() timeline.Rect {
	return timeline.Rect{Left: 0, Width: float64(t.cols)}
}

func (t *timelineTab) mainScene(p *models.Project) (models.Scene, float64) {
	scene, _ := planner.MainScene(p)
	return scene, planner.SceneDuration(scene)
}

func (t *timelineTab) playhead(duration float64) float64 {
	return timeline.PlayheadAt(float64(t.playCol), t.rect(), t.zoom, duration)
}

func (t *timelineTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	scene, duration := t.mainScene(p)
	sections := scene.Timeline
	pl := e.deps.Planner
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(sections))

	addSection := func(typ models.SectionType) {
		e.update(func(p *models.Project) error {
			pl.SetMainTimeline(p, timeline.AddSection(sections, typ, duration))
			return nil
		})
		t.cursor = len(sections)
	}

	switch key {
	case "h":
		addSection(models.SectionHook)
	case "v":
		addSection(models.SectionValue)
	case "c":
		addSection(models.SectionCTA)
	case "+", "=":
		t.zoom = timeline.ZoomIn(t.zoom)
	case "-":
		t.zoom = timeline.ZoomOut(t.zoom)
	case "left":
		if t.playCol > 0 {
			t.playCol--
		}
	case "right":
		if t.playCol < t.cols-1 {
			t.playCol++
		}
	case "p":
		e.prompt("Asset name to place at the playhead:", "", func(name string) error {
			start := timeline.DropAt(float64(t.playCol), t.rect(), t.zoom, duration)
			e.update(func(p *models.Project) error {
				asset, ok := findAssetByName(p.Assets, name)
				if !ok {
					return fmt.Errorf("asset %q not found", name)
				}
				if len(p.Scenes) == 0 {
					pl.SetMainTimeline(p, nil)
				}
				items := timeline.DropAsset(p.Scenes[0].TimelineItems, asset, trackForAsset[asset.Type], start)
				return pl.SetSceneItems(p, p.Scenes[0].ID, items)
			})
			return e.err
		})
	case "x":
		at := t.playhead(duration)
		for _, item := range scene.TimelineItems {
			if item.StartTime <= at && at < timeline.End(item) {
				e.update(func(p *models.Project) error {
					return pl.SetSceneItems(p, scene.ID, timeline.DeleteItem(scene.TimelineItems, item.ID))
				})
				break
			}
		}
	}

	if len(sections) == 0 {
		return nil
	}
	index := t.cursor

	switch key {
	case "n":
		e.prompt("Section script:", sections[index].Notes, func(notes string) error {
			e.update(func(p *models.Project) error {
				pl.SetMainTimeline(p, timeline.UpdateSection(sections, index, func(s *models.TimelineSection) {
					s.Notes = notes
					planner.AnnotateSection(s)
				}))
				return nil
			})
			return e.err
		})
	case "K":
		e.update(func(p *models.Project) error {
			pl.SetMainTimeline(p, timeline.MoveUp(sections, index))
			return nil
		})
		if t.cursor > 0 {
			t.cursor--
		}
	case "J":
		e.update(func(p *models.Project) error {
			pl.SetMainTimeline(p, timeline.MoveDown(sections, index))
			return nil
		})
		if t.cursor < len(sections)-1 {
			t.cursor++
		}
	case "d":
		e.confirm(fmt.Sprintf("Delete %s section %d?", sections[index].Type, index+1), func() error {
			e.update(func(p *models.Project) error {
				pl.SetMainTimeline(p, timeline.DeleteSection(sections, index))
				return nil
			})
			return e.err
		})
	}
	return nil
}

func findAssetByName(assets []models.Asset, name string) (models.Asset, bool) {
	for _, a := range assets {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return models.Asset{}, false
}

func (t *timelineTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	t.cols = max(40, e.width-12)
	if t.playCol >= t.cols {
		t.playCol = t.cols - 1
	}

	scene, duration := t.mainScene(p)
	title := scene.Title
	if title == "" {
		title = planner.MainSceneTitle + " (created on first edit)"
	}
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%s  length %s  zoom %.1fx  playhead %s",
		title, timeline.FormatTime(duration), t.zoom, timeline.FormatTime(t.playhead(duration)))))
	b.WriteString("\n")

	b.WriteString(t.ruler(duration))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%-9s", "sections"))
	b.WriteString(t.lane(duration, func(at float64) string {
		for _, s := range scene.Timeline {
			if s.StartTime <= at && at < s.EndTime {
				return timeline.SectionColors[s.Type]
			}
		}
		return ""
	}))
	b.WriteString("\n")

	for _, track := range models.Tracks {
		items := timeline.TrackItems(scene.TimelineItems, track)
		b.WriteString(fmt.Sprintf("%-9s", track))
		b.WriteString(t.lane(duration, func(at float64) string {
			for _, it := range items {
				if it.StartTime <= at && at < timeline.End(it) {
					return timeline.ItemColor(it)
				}
			}
			return ""
		}))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(scene.Timeline) == 0 {
		b.WriteString(DimStyle.Render("No sections. Start with a hook: press 'h'."))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range scene.Timeline {
		line := fmt.Sprintf("%s %-5s %s-%s (%s)",
			swatch(timeline.SectionColors[s.Type]),
			s.Type,
			timeline.FormatTime(s.StartTime),
			timeline.FormatTime(s.EndTime),
			formatSeconds(s.Duration()),
		)
		if s.WordCount != nil && s.EstimatedDuration != nil {
			line += DimStyle.Render(fmt.Sprintf("  %d words ~%.0fs", *s.WordCount, *s.EstimatedDuration))
		}
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render(fmt.Sprintf("Total %s", formatSeconds(timeline.TotalLength(scene.Timeline)))))
	b.WriteString("\n")

	if t.cursor < len(scene.Timeline) {
		s := scene.Timeline[t.cursor]
		if s.Notes != "" {
			b.WriteString("\n")
			b.WriteString(s.Notes)
			b.WriteString("\n")
		}
		for _, w := range planner.AnalyzePacing(s.Notes, s.Type).Warnings {
			b.WriteString(severityStyle(w.Severity).Render(w.Message))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ruler draws marker labels and the playhead.
func (t *timelineTab) ruler(duration float64) string {
	visible := timeline.VisibleDuration(duration, t.zoom)
	marks := []rune(strings.Repeat(" ", t.cols))
	for _, m := range timeline.Markers(duration, t.zoom) {
		col := int(m / visible * float64(t.cols))
		label := []rune(timeline.FormatTime(m))
		if col+len(label) > len(marks) {
			continue
		}
		// Skip labels that would overwrite the previous one.
		if col > 0 && marks[col-1] != ' ' {
			continue
		}
		copy(marks[col:], label)
	}

	head := []rune(strings.Repeat(" ", t.cols))
	head[t.playCol] = '▼'

	pad := strings.Repeat(" ", 9)
	return pad + DimStyle.Render(string(marks)) + "\n" + pad + WarningStyle.Render(string(head))
}

// lane renders one row of the timeline, coloring each column with the
// color colorAt returns for the time under it.
func (t *timelineTab) lane(duration float64, colorAt func(at float64) string) string {
	var b strings.Builder
	for col := 0; col < t.cols; col++ {
		at := timeline.TimeAt(float64(col), t.rect(), t.zoom, duration)
		color := ""
		if at < duration {
			color = colorAt(at)
		}
		if color == "" {
			b.WriteString(DimStyle.Render("·"))
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}
	return b.String()
}

func severityStyle(s planner.Severity) lipgloss.Style {
	switch s {
	case planner.SeverityError:
		return ErrorStyle
	case planner.SeverityWarning:
		return WarningStyle
	}
	return SuccessStyle
}
