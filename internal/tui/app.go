package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/emilianohg/storyboard/internal/tui/screens"
)

type Screen int

const (
	ScreenProjects Screen = iota
	ScreenProject
	ScreenHooks
)

type App struct {
	deps          screens.Deps
	currentScreen Screen
	width         int
	height        int

	// Screen models
	projects *screens.Projects
	project  *screens.ProjectEditor
	hooks    *screens.Hooks

	// openProjectID is opened right after start when set.
	openProjectID string
}

func NewApp(deps screens.Deps) *App {
	return &App{
		deps:          deps,
		currentScreen: ScreenProjects,
	}
}

// OpenProject makes the app start on the editor for id.
func (a *App) OpenProject(id string) *App {
	a.openProjectID = id
	return a
}

func (a *App) Init() tea.Cmd {
	a.projects = screens.NewProjects(a.deps)
	a.project = screens.NewProjectEditor(a.deps)
	a.hooks = screens.NewHooks()

	if a.openProjectID != "" {
		a.currentScreen = ScreenProject
		return a.project.Open(a.openProjectID)
	}
	return a.projects.Init()
}

// typing reports whether the current screen is taking text input.
func (a *App) typing() bool {
	switch a.currentScreen {
	case ScreenProjects:
		return a.projects.Typing()
	case ScreenProject:
		return a.project.Typing()
	case ScreenHooks:
		return a.hooks.Typing()
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.project.Leave()
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenProjects && !a.typing() {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projects.SetSize(msg.Width, msg.Height)
		a.project.SetSize(msg.Width, msg.Height)
		a.hooks.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenProjects:
		cmd = a.projects.Update(msg)
	case ScreenProject:
		cmd = a.project.Update(msg)
	case ScreenHooks:
		cmd = a.hooks.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	a.deps.Logger.Debug("navigate", zap.String("screen", msg.Screen), zap.String("project_id", msg.ProjectID))

	switch msg.Screen {
	case "projects":
		a.project.Leave()
		a.currentScreen = ScreenProjects
		return a, a.projects.Init()
	case "project":
		a.currentScreen = ScreenProject
		return a, a.project.Open(msg.ProjectID)
	case "hooks":
		a.currentScreen = ScreenHooks
		return a, a.hooks.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenProjects:
		content = a.projects.View()
	case ScreenProject:
		content = a.project.View()
	case ScreenHooks:
		content = a.hooks.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

// Run starts the interface on the project picker, or on the editor when
// projectID is set. Pending edits are saved before it returns.
func Run(deps screens.Deps, projectID string) error {
	app := NewApp(deps).OpenProject(projectID)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	if app.project != nil {
		app.project.Leave()
	}
	return err
}
