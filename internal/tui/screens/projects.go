package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/emilianohg/storyboard/internal/exchange"
	"github.com/emilianohg/storyboard/internal/models"
)

type projectsMode int

const (
	projectsModeList projectsMode = iota
	projectsModeAdd
	projectsModeRename
	projectsModeDelete
	projectsModeImport
)

// Projects is the project picker.
type Projects struct {
	deps   Deps
	width  int
	height int

	projects []models.ProjectSummary
	cursor   int
	mode     projectsMode
	input    textinput.Model
	loading  bool
	err      error
	message  string
}

func NewProjects(deps Deps) *Projects {
	ti := textinput.New()
	ti.Placeholder = "Project name"
	ti.CharLimit = 100
	ti.Width = 40

	return &Projects{
		deps:  deps,
		input: ti,
	}
}

func (p *Projects) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = min(60, max(20, width-10))
}

// Typing reports whether keys currently go to the text field.
func (p *Projects) Typing() bool {
	return p.mode == projectsModeAdd || p.mode == projectsModeRename || p.mode == projectsModeImport
}

type projectsDataMsg struct {
	projects []models.ProjectSummary
	err      error
}

// projectsDoneMsg reports the outcome of a write made from the picker.
type projectsDoneMsg struct {
	message string
	openID  string
	err     error
}

func (p *Projects) Init() tea.Cmd {
	p.loading = true
	p.mode = projectsModeList
	return p.loadData
}

func (p *Projects) loadData() tea.Msg {
	ctx, cancel := storeContext()
	defer cancel()

	projects, err := p.deps.Repo.Summaries(ctx)
	return projectsDataMsg{projects: projects, err: err}
}

func (p *Projects) Update(msg tea.Msg) tea.Cmd {
	// In input mode, pass messages to text input first
	if p.Typing() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				return p.handleInputKey()
			case "esc":
				p.mode = projectsModeList
				p.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.loading = false
		p.err = msg.err
		// Most recently edited first.
		p.projects = make([]models.ProjectSummary, 0, len(msg.projects))
		for i := len(msg.projects) - 1; i >= 0; i-- {
			p.projects = append(p.projects, msg.projects[i])
		}
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return nil

	case projectsDoneMsg:
		p.err = msg.err
		if msg.err == nil {
			p.message = msg.message
		}
		if msg.openID != "" {
			return NavigateToProject(msg.openID)
		}
		return p.loadData

	case RefreshMsg:
		return p.Init()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return nil
}

func (p *Projects) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch p.mode {
	case projectsModeList:
		return p.handleListKey(msg)
	case projectsModeDelete:
		return p.handleDeleteKey(msg)
	}
	return nil
}

func (p *Projects) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case "a":
		p.startInput(projectsModeAdd, "Project name", "")
	case "e":
		if len(p.projects) > 0 {
			p.startInput(projectsModeRename, "Project name", p.projects[p.cursor].Name)
		}
	case "i":
		p.startInput(projectsModeImport, "Path to an exported .json file", "")
	case "x":
		if len(p.projects) > 0 {
			return p.exportProject(p.projects[p.cursor].ID)
		}
	case "d":
		if len(p.projects) > 0 {
			p.mode = projectsModeDelete
		}
	case "enter":
		if len(p.projects) > 0 {
			return NavigateToProject(p.projects[p.cursor].ID)
		}
	case "h":
		return Navigate("hooks")
	}
	return nil
}

func (p *Projects) startInput(mode projectsMode, placeholder, value string) {
	p.mode = mode
	p.message = ""
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.Focus()
}

func (p *Projects) handleInputKey() tea.Cmd {
	value := strings.TrimSpace(p.input.Value())
	mode := p.mode
	p.mode = projectsModeList
	p.input.Blur()
	if value == "" {
		return nil
	}

	switch mode {
	case projectsModeAdd:
		return p.createProject(value)
	case projectsModeRename:
		return p.renameProject(p.projects[p.cursor].ID, value)
	case projectsModeImport:
		return p.importProject(value)
	}
	return nil
}

func (p *Projects) createProject(name string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()

		project := deps.Planner.NewProject(name, "")
		if err := deps.Repo.Put(ctx, project); err != nil {
			return projectsDoneMsg{err: err}
		}
		deps.Logger.Info("project created", zap.String("project_id", project.ID))
		return projectsDoneMsg{message: fmt.Sprintf("Created project: %s", name), openID: project.ID}
	}
}

func (p *Projects) renameProject(id, name string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()

		project, err := deps.Repo.MustGet(ctx, id)
		if err != nil {
			return projectsDoneMsg{err: err}
		}
		project.Name = name
		if err := deps.Repo.Put(ctx, project); err != nil {
			return projectsDoneMsg{err: err}
		}
		return projectsDoneMsg{message: fmt.Sprintf("Renamed project: %s", name)}
	}
}

func (p *Projects) importProject(path string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()

		project, err := exchange.ImportFile(ctx, deps.Repo, path)
		if err != nil {
			deps.Logger.Warn("import failed", zap.String("path", path), zap.Error(err))
			return projectsDoneMsg{err: err}
		}
		deps.Logger.Info("project imported", zap.String("project_id", project.ID), zap.String("path", path))
		return projectsDoneMsg{message: fmt.Sprintf("Imported %s", project.Name), openID: project.ID}
	}
}

func (p *Projects) exportProject(id string) tea.Cmd {
	deps := p.deps
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()

		project, err := deps.Repo.MustGet(ctx, id)
		if err != nil {
			return projectsDoneMsg{err: err}
		}
		path, err := exchange.WriteFile(deps.Config.ExportDir, project)
		if err != nil {
			return projectsDoneMsg{err: err}
		}
		return projectsDoneMsg{message: fmt.Sprintf("Exported to %s", path)}
	}
}

func (p *Projects) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		deps := p.deps
		proj := p.projects[p.cursor]
		p.mode = projectsModeList
		return func() tea.Msg {
			ctx, cancel := storeContext()
			defer cancel()
			if err := deps.Repo.Delete(ctx, proj.ID); err != nil {
				return projectsDoneMsg{err: err}
			}
			return projectsDoneMsg{message: fmt.Sprintf("Deleted project: %s", proj.Name)}
		}

	case "n", "N", "esc":
		p.mode = projectsModeList
	}
	return nil
}

func (p *Projects) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("STORYBOARD"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Video production planner"))
	b.WriteString("\n\n")

	if p.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if p.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", p.err)))
		b.WriteString("\n\n")
	}

	if p.message != "" {
		b.WriteString(SuccessStyle.Render(p.message))
		b.WriteString("\n\n")
	}

	switch p.mode {
	case projectsModeAdd, projectsModeRename, projectsModeImport:
		label := map[projectsMode]string{
			projectsModeAdd:    "New project name:",
			projectsModeRename: "Rename project:",
			projectsModeImport: "Import project file:",
		}[p.mode]
		b.WriteString(label + "\n")
		b.WriteString(p.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()

	case projectsModeDelete:
		if len(p.projects) > 0 {
			b.WriteString(WarningStyle.Render(fmt.Sprintf(
				"Delete project '%s'? This cannot be undone. (y/n)",
				p.projects[p.cursor].Name,
			)))
			b.WriteString("\n")
			return b.String()
		}
	}

	if len(p.projects) == 0 {
		b.WriteString(DimStyle.Render("No projects yet. Press 'a' to create one."))
		b.WriteString("\n\n")
	} else {
		for i, proj := range p.projects {
			line := fmt.Sprintf("%s %s",
				proj.Name,
				DimStyle.Render(fmt.Sprintf("- %d ideas, %d scenes, edited %s",
					proj.IdeaCount,
					proj.SceneCount,
					proj.UpdatedAt.Local().Format("Jan 02, 2006 15:04"),
				)),
			)
			b.WriteString(cursorLine(i == p.cursor, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Rename  [d] Delete  [i] Import  [x] Export  [h] Hook library  [enter] Open  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
