package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/timeline"
)

const dateLayout = "2006-01-02"

// parseDueDate reads a YYYY-MM-DD date. "-" clears the date.
func parseDueDate(v string) (*time.Time, error) {
	if v == "-" {
		return nil, nil
	}
	due, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("due date %q: expected YYYY-MM-DD", v)
	}
	return &due, nil
}

var priorities = []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}

func nextPriority(p models.Priority) models.Priority {
	for i, pr := range priorities {
		if pr == p {
			return priorities[(i+1)%len(priorities)]
		}
	}
	return models.PriorityMedium
}

// todoRow is one line of the todo list: a todo, or one of its subtasks.
type todoRow struct {
	todo    models.Todo
	subtask *models.SubTask
}

type todosTab struct {
	cursor int
}

func (t *todosTab) Title() string { return "Todos" }

func (t *todosTab) Help() string {
	return "[a] Add  [t] From template  [space] Toggle  [p] Priority  [D] Due date  [d] Delete"
}

func (t *todosTab) rows(p *models.Project) []todoRow {
	var rows []todoRow
	for _, todo := range p.Todos {
		rows = append(rows, todoRow{todo: todo})
		for i := range todo.Subtasks {
			rows = append(rows, todoRow{todo: todo, subtask: &todo.Subtasks[i]})
		}
	}
	return rows
}

func (t *todosTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	pl := e.deps.Planner
	rows := t.rows(p)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(rows))

	switch key {
	case "a":
		e.prompt("New todo:", "", func(title string) error {
			e.update(func(p *models.Project) error {
				_, err := pl.AddTodo(p, title, models.PriorityMedium, nil, nil)
				return err
			})
			return e.err
		})
		return nil
	case "t":
		ids := make([]string, len(planner.Templates))
		for i, tpl := range planner.Templates {
			ids[i] = tpl.ID
		}
		e.prompt("Template ("+strings.Join(ids, ", ")+"):", "", func(id string) error {
			e.update(func(p *models.Project) error {
				_, err := pl.AddTodoFromTemplate(p, strings.ToLower(id), models.PriorityMedium, nil)
				return err
			})
			return e.err
		})
		return nil
	}

	if len(rows) == 0 {
		return nil
	}
	row := rows[t.cursor]
	id := row.todo.ID

	switch key {
	case " ", "enter":
		e.update(func(p *models.Project) error {
			if row.subtask != nil {
				return planner.ToggleSubtask(p, id, row.subtask.ID)
			}
			return planner.ToggleTodo(p, id)
		})
	case "p":
		e.update(func(p *models.Project) error {
			return planner.UpdateTodo(p, id, func(todo *models.Todo) { todo.Priority = nextPriority(todo.Priority) })
		})
	case "D":
		current := ""
		if row.todo.DueDate != nil {
			current = row.todo.DueDate.Format(dateLayout)
		}
		e.prompt("Due date (YYYY-MM-DD, '-' to clear):", current, func(v string) error {
			due, err := parseDueDate(v)
			if err != nil {
				return err
			}
			e.update(func(p *models.Project) error {
				return planner.UpdateTodo(p, id, func(todo *models.Todo) { todo.DueDate = due })
			})
			return e.err
		})
	case "d":
		e.confirm(fmt.Sprintf("Delete todo '%s'?", row.todo.Title), func() error {
			e.update(func(p *models.Project) error {
				planner.DeleteTodo(p, id)
				return nil
			})
			return e.err
		})
	}
	return nil
}

func (t *todosTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	done, total := planner.TodoProgress(p.Todos)
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d/%d done", done, total)))
	b.WriteString("\n")

	rows := t.rows(p)
	if len(rows) == 0 {
		b.WriteString(DimStyle.Render("Nothing to do. Press 't' for a checklist template."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		var line string
		if row.subtask != nil {
			line = fmt.Sprintf("    %s %s", checkbox(row.subtask.Completed), row.subtask.Title)
		} else {
			line = fmt.Sprintf("%s %s %s", checkbox(row.todo.Completed), row.todo.Title, priorityLabel(row.todo.Priority))
			if row.todo.DueDate != nil {
				line += DimStyle.Render(" due " + row.todo.DueDate.Format(dateLayout))
			}
		}
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}
	return b.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return ErrorStyle.Render("high")
	case models.PriorityLow:
		return DimStyle.Render("low")
	}
	return WarningStyle.Render("medium")
}

// shotsTab is the shot list generated from the main scene timeline.
type shotsTab struct {
	cursor int
	sort   planner.ShotSort
}

var shotTypes = []models.ShotType{models.ShotTalkingHead, models.ShotBRoll, models.ShotScreenRecording}

func nextShotType(s models.ShotType) models.ShotType {
	for i, st := range shotTypes {
		if st == s {
			return shotTypes[(i+1)%len(shotTypes)]
		}
	}
	return shotTypes[0]
}

func (t *shotsTab) Title() string { return "Shots" }

func (t *shotsTab) Help() string {
	return "[g] Generate from timeline  [space] Done  [t] Shot type  [o] Sort  [d] Delete"
}

func (t *shotsTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	rows := planner.SortShots(p.ShotList, t.sort)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(rows))

	switch key {
	case "g":
		scene, ok := planner.MainScene(p)
		if !ok || len(scene.Timeline) == 0 {
			e.message = "The timeline has no sections yet"
			return nil
		}
		regenerate := func() error {
			e.update(func(p *models.Project) error {
				return planner.RegenerateShotList(p, scene.ID)
			})
			return e.err
		}
		if len(p.ShotList) > 0 {
			e.confirm("Replace the current shot list?", regenerate)
			return nil
		}
		e.err = regenerate()
		return nil
	case "o":
		if t.sort == planner.SortByTimeline {
			t.sort = planner.SortByType
		} else {
			t.sort = planner.SortByTimeline
		}
		return nil
	}

	if len(rows) == 0 {
		return nil
	}
	shot := rows[t.cursor]

	switch key {
	case " ", "enter":
		e.update(func(p *models.Project) error {
			return planner.ToggleShot(p, shot.ID)
		})
	case "t":
		e.update(func(p *models.Project) error {
			return planner.SetShotType(p, shot.ID, nextShotType(shot.ShotType))
		})
	case "d":
		e.update(func(p *models.Project) error {
			planner.DeleteShot(p, shot.ID)
			return nil
		})
	}
	return nil
}

func (t *shotsTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	done, total := planner.ShotProgress(p.ShotList)
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d/%d shots, %s total, sorted by %s",
		done, total, timeline.FormatTime(planner.TotalShotDuration(p.ShotList)), t.sort)))
	b.WriteString("\n")

	rows := planner.SortShots(p.ShotList, t.sort)
	if len(rows) == 0 {
		b.WriteString(DimStyle.Render("No shots. Press 'g' to build them from the timeline."))
		b.WriteString("\n")
	}
	for i, shot := range rows {
		line := fmt.Sprintf("%s %-28s %-16s %s",
			checkbox(shot.Completed), shot.Title, shot.ShotType.Label(), formatSeconds(shot.Duration))
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}
	return b.String()
}

// clipsTab plans short-form clips cut from main timeline sections.
type clipsTab struct {
	cursor int
}

func (t *clipsTab) Title() string { return "Clips" }

func (t *clipsTab) Help() string {
	return "[a] Clip a section  [space] Advance status  [e] Title  [d] Delete"
}

func (t *clipsTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	clips := p.RepurposingClips
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(clips))

	if key == "a" {
		scene, _ := planner.MainScene(p)
		if len(scene.Timeline) == 0 {
			e.message = "The timeline has no sections yet"
			return nil
		}
		sections := scene.Timeline
		e.prompt(fmt.Sprintf("Section number to clip (1-%d):", len(sections)), "", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > len(sections) {
				return fmt.Errorf("section %q does not exist", v)
			}
			section := sections[n-1]
			platforms := planner.EligiblePlatforms(section.Duration())
			if len(platforms) == 0 {
				return fmt.Errorf("section is %s: %w", formatSeconds(section.Duration()), planner.ErrClipTooLong)
			}
			e.update(func(p *models.Project) error {
				_, err := e.deps.Planner.AddClipFromSection(p, section, planner.ClipInput{Platforms: platforms})
				return err
			})
			return e.err
		})
		return nil
	}

	if len(clips) == 0 {
		return nil
	}
	clip := clips[t.cursor]

	switch key {
	case " ", "enter":
		next := planner.NextStatus(clip.Status)
		if next == "" {
			e.message = "Clip is already published"
			return nil
		}
		e.update(func(p *models.Project) error {
			return planner.AdvanceClip(p, clip.ID, next)
		})
	case "e":
		e.prompt("Clip title:", clip.CustomTitle, func(title string) error {
			e.update(func(p *models.Project) error {
				return planner.UpdateClip(p, clip.ID, func(c *models.RepurposingClip) { c.CustomTitle = title })
			})
			return e.err
		})
	case "d":
		e.update(func(p *models.Project) error {
			planner.DeleteClip(p, clip.ID)
			return nil
		})
	}
	return nil
}

func (t *clipsTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	scene, _ := planner.MainScene(p)
	if len(scene.Timeline) > 0 {
		b.WriteString(SubtitleStyle.Render("Sections"))
		b.WriteString("\n")
		for i, s := range scene.Timeline {
			fits := "too long for any platform"
			if platforms := planner.EligiblePlatforms(s.Duration()); len(platforms) > 0 {
				names := make([]string, len(platforms))
				for j, pf := range platforms {
					names[j] = planner.PlatformSpecs[pf].Name
				}
				fits = strings.Join(names, ", ")
			}
			b.WriteString(DimStyle.Render(fmt.Sprintf("  %d. %s %s  %s", i+1, s.Type, formatSeconds(s.Duration()), fits)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(SubtitleStyle.Render("Clips"))
	b.WriteString("\n")
	if len(p.RepurposingClips) == 0 {
		b.WriteString(DimStyle.Render("No clips planned."))
		b.WriteString("\n")
	}
	for i, c := range p.RepurposingClips {
		title := c.CustomTitle
		if title == "" {
			title = "Untitled clip"
		}
		platforms := make([]string, len(c.Platforms))
		for j, pf := range c.Platforms {
			platforms[j] = string(pf)
		}
		line := fmt.Sprintf("%s %s-%s [%s] %s", title,
			timeline.FormatTime(c.StartTime), timeline.FormatTime(c.EndTime),
			c.Status, DimStyle.Render(strings.Join(platforms, ",")))
		b.WriteString(cursorLine(i == t.cursor, line))
		b.WriteString("\n")
	}
	return b.String()
}
