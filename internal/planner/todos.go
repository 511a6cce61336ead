package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/emilianohg/storyboard/internal/models"
)

// TodoTemplate is a ready-made checklist for a recurring production chore.
type TodoTemplate struct {
	ID       string
	Name     string
	Subtasks []string
}

var Templates = []TodoTemplate{
	{
		ID:   "equipment",
		Name: "Equipment check",
		Subtasks: []string{
			"Check camera batteries",
			"Format the SD card",
			"Test the lights",
			"Connect the microphone",
			"Set up the tripod",
		},
	},
	{
		ID:   "thumbnail",
		Name: "Thumbnail shoot",
		Subtasks: []string{
			"Prepare the background",
			"Set up the lighting",
			"Try different poses (at least 5)",
			"Vary facial expressions",
			"Use props",
		},
	},
	{
		ID:   "b-roll",
		Name: "B-roll gathering",
		Subtasks: []string{
			"List b-roll for the main topic",
			"Search stock footage",
			"Shoot your own b-roll",
			"Plan camera angles",
			"Plan transitions",
		},
	},
	{
		ID:   "editing",
		Name: "Editing",
		Subtasks: []string{
			"Build the main edit timeline",
			"Add b-roll",
			"Pick and add music",
			"Add sound effects",
			"Color grading",
			"Create the thumbnail",
		},
	},
	{
		ID:   "upload",
		Name: "Upload prep",
		Subtasks: []string{
			"Export the video",
			"Finalize the title",
			"Write the description",
			"Pick tags",
			"Upload the thumbnail",
			"Set up the end screen",
		},
	},
}

func FindTemplate(id string) (TodoTemplate, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return TodoTemplate{}, false
}

// AddTodo appends a todo with one subtask per title. due may be nil.
func (pl *Planner) AddTodo(p *models.Project, title string, priority models.Priority, subtasks []string, due *time.Time) (models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Todo{}, fmt.Errorf("todo title is required")
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Todo{}, fmt.Errorf("todo priority %q is not valid", priority)
	}

	todo := models.Todo{
		ID:        newID(),
		Title:     title,
		Priority:  priority,
		DueDate:   due,
		Subtasks:  make([]models.SubTask, 0, len(subtasks)),
		CreatedAt: pl.now(),
	}
	for _, st := range subtasks {
		if st = strings.TrimSpace(st); st != "" {
			todo.Subtasks = append(todo.Subtasks, models.SubTask{ID: newID(), Title: st})
		}
	}

	p.Todos = append(p.Todos, todo)
	return todo, nil
}

// AddTodoFromTemplate creates a todo named after the template with its checklist.
func (pl *Planner) AddTodoFromTemplate(p *models.Project, templateID string, priority models.Priority, due *time.Time) (models.Todo, error) {
	tpl, ok := FindTemplate(templateID)
	if !ok {
		return models.Todo{}, fmt.Errorf("todo template %s: %w", templateID, ErrNotFound)
	}
	return pl.AddTodo(p, tpl.Name, priority, tpl.Subtasks, due)
}

func findTodo(p *models.Project, id string) (*models.Todo, error) {
	for i := range p.Todos {
		if p.Todos[i].ID == id {
			return &p.Todos[i], nil
		}
	}
	return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
}

// ToggleTodo flips completion and sets every subtask to the new value.
func ToggleTodo(p *models.Project, id string) error {
	todo, err := findTodo(p, id)
	if err != nil {
		return err
	}
	todo.Completed = !todo.Completed
	subtasks := make([]models.SubTask, len(todo.Subtasks))
	for i, st := range todo.Subtasks {
		st.Completed = todo.Completed
		subtasks[i] = st
	}
	todo.Subtasks = subtasks
	return nil
}

// ToggleSubtask flips one subtask. The todo is complete exactly when all of
// its subtasks are.
func ToggleSubtask(p *models.Project, todoID, subtaskID string) error {
	todo, err := findTodo(p, todoID)
	if err != nil {
		return err
	}

	found := false
	all := true
	subtasks := make([]models.SubTask, len(todo.Subtasks))
	for i, st := range todo.Subtasks {
		if st.ID == subtaskID {
			st.Completed = !st.Completed
			found = true
		}
		all = all && st.Completed
		subtasks[i] = st
	}
	if !found {
		return fmt.Errorf("subtask %s: %w", subtaskID, ErrNotFound)
	}

	todo.Subtasks = subtasks
	todo.Completed = all
	return nil
}

func UpdateTodo(p *models.Project, id string, fn func(*models.Todo)) error {
	todo, err := findTodo(p, id)
	if err != nil {
		return err
	}
	fn(todo)
	todo.ID = id
	return nil
}

func DeleteTodo(p *models.Project, id string) bool {
	out := p.Todos[:0:0]
	for _, t := range p.Todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	found := len(out) != len(p.Todos)
	p.Todos = out
	return found
}

// TodoProgress returns the completed and total counts.
func TodoProgress(todos []models.Todo) (done, total int) {
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	return done, len(todos)
}
