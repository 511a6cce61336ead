package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/session"
)

type projectMode int

const (
	projectModeList projectMode = iota
	projectModeInput
	projectModeNotes
	projectModeDelete
)

// tab is one panel of the project editor. Tabs read the current project
// from the screen and write through ProjectEditor.update.
type tab interface {
	Title() string
	Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd
	View(e *ProjectEditor, p *models.Project) string
	Help() string
}

// ProjectEditor edits one project through a session with autosave.
type ProjectEditor struct {
	deps   Deps
	width  int
	height int

	sess *session.Session
	sub  <-chan session.Snapshot
	snap session.Snapshot

	tabs   []tab
	active int

	mode     projectMode
	input    textinput.Model
	label    string
	onSubmit func(value string) error
	onDelete func() error
	notes    textarea.Model

	err     error
	message string
}

func NewProjectEditor(deps Deps) *ProjectEditor {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Production notes..."
	ta.SetWidth(70)
	ta.SetHeight(10)

	return &ProjectEditor{
		deps:  deps,
		input: ti,
		notes: ta,
		tabs: []tab{
			&ideasTab{},
			&scenesTab{},
			&assetsTab{},
			newTimelineTab(),
			&todosTab{},
			&shotsTab{sort: planner.SortByTimeline},
			&clipsTab{},
			&metadataTab{},
		},
	}
}

func (e *ProjectEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.input.Width = min(80, max(20, width-10))
	e.notes.SetWidth(min(100, max(30, width-6)))
	e.notes.SetHeight(max(5, height-14))
}

type projectSelectedMsg struct {
	err error
}

// projectSnapshotMsg carries a published snapshot. Messages from a session
// that has since been replaced are ignored.
type projectSnapshotMsg struct {
	sess *session.Session
	snap session.Snapshot
	ok   bool
}

// Open starts a fresh session for id. Any previous session is flushed and
// closed first.
func (e *ProjectEditor) Open(id string) tea.Cmd {
	e.Leave()

	// Config is validated at startup.
	delay, _ := e.deps.Config.Autosave()
	e.sess = session.New(e.deps.Repo,
		session.WithClock(e.deps.Clock),
		session.WithLogger(e.deps.Logger.Named("session")),
		session.WithAutosave(delay),
	)
	e.sub = e.sess.Subscribe()
	e.snap = session.Snapshot{ID: id, State: session.Loading}
	e.active = 0
	e.mode = projectModeList
	e.err = nil
	e.message = ""

	sess := e.sess
	load := func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		return projectSelectedMsg{err: sess.Select(ctx, id)}
	}
	return tea.Batch(load, e.waitSnapshot())
}

// Leave writes edits still waiting for autosave and stops the session.
// A project that was only viewed is not saved again.
func (e *ProjectEditor) Leave() {
	if e.sess == nil {
		return
	}
	if err := e.sess.Flush(); err != nil {
		e.deps.Logger.Warn("final save failed", zap.String("project_id", e.snap.ID), zap.Error(err))
	}
	e.sess.Close()
	e.sess = nil
	e.sub = nil
}

// Typing reports whether keys currently go to a text field.
func (e *ProjectEditor) Typing() bool {
	return e.mode == projectModeInput || e.mode == projectModeNotes
}

func (e *ProjectEditor) waitSnapshot() tea.Cmd {
	sess, sub := e.sess, e.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-sub
		return projectSnapshotMsg{sess: sess, snap: snap, ok: ok}
	}
}

// update applies fn to the loaded project. A failing fn leaves the
// project untouched.
func (e *ProjectEditor) update(fn func(p *models.Project) error) {
	if e.sess == nil {
		return
	}
	err := e.sess.Apply(fn)
	e.err = err
	if err == nil {
		e.snap = e.sess.Snapshot()
	}
}

// prompt asks for one line of text and hands it to submit.
func (e *ProjectEditor) prompt(label, value string, submit func(value string) error) {
	e.mode = projectModeInput
	e.label = label
	e.onSubmit = submit
	e.message = ""
	e.input.SetValue(value)
	e.input.CursorEnd()
	e.input.Focus()
}

// confirm asks a y/n question before running del.
func (e *ProjectEditor) confirm(label string, del func() error) {
	e.mode = projectModeDelete
	e.label = label
	e.onDelete = del
}

func (e *ProjectEditor) editNotes(value string) tea.Cmd {
	e.mode = projectModeNotes
	e.notes.SetValue(value)
	return e.notes.Focus()
}

func (e *ProjectEditor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case projectSelectedMsg:
		if msg.err != nil && !errors.Is(msg.err, session.ErrStale) && !errors.Is(msg.err, context.Canceled) {
			e.deps.Logger.Debug("select finished with error", zap.Error(msg.err))
		}
		return nil

	case projectSnapshotMsg:
		if !msg.ok || msg.sess != e.sess {
			return nil
		}
		e.snap = msg.snap
		return e.waitSnapshot()
	}

	switch e.mode {
	case projectModeInput:
		return e.updateInput(msg)
	case projectModeNotes:
		return e.updateNotes(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if e.mode == projectModeDelete {
		switch keyMsg.String() {
		case "y", "Y":
			e.mode = projectModeList
			if err := e.onDelete(); err != nil {
				e.err = err
			}
		case "n", "N", "esc":
			e.mode = projectModeList
		}
		return nil
	}

	switch keyMsg.String() {
	case "q", "esc":
		e.Leave()
		return Navigate("projects")
	case "ctrl+s":
		if e.sess != nil {
			e.err = e.sess.SaveNow()
			if e.err == nil {
				e.message = "Saved"
			}
		}
		return nil
	case "r":
		if e.snap.State == session.Failed && e.sess != nil {
			sess := e.sess
			return func() tea.Msg {
				ctx, cancel := storeContext()
				defer cancel()
				return projectSelectedMsg{err: sess.Reload(ctx)}
			}
		}
	case "tab":
		e.active = (e.active + 1) % len(e.tabs)
		return nil
	case "shift+tab":
		e.active = (e.active + len(e.tabs) - 1) % len(e.tabs)
		return nil
	case "1", "2", "3", "4", "5", "6", "7", "8":
		n := int(keyMsg.String()[0] - '1')
		if n < len(e.tabs) {
			e.active = n
		}
		return nil
	}

	if e.snap.State != session.Ready || e.snap.Project == nil {
		return nil
	}
	e.message = ""
	return e.tabs[e.active].Keys(e, e.snap.Project, keyMsg)
}

func (e *ProjectEditor) updateInput(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			value := strings.TrimSpace(e.input.Value())
			e.mode = projectModeList
			e.input.Blur()
			if value != "" && e.onSubmit != nil {
				e.err = e.onSubmit(value)
			}
			return nil
		case "esc":
			e.mode = projectModeList
			e.input.Blur()
			return nil
		}
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *ProjectEditor) updateNotes(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		e.mode = projectModeList
		e.notes.Blur()
		return nil
	}
	before := e.notes.Value()
	var cmd tea.Cmd
	e.notes, cmd = e.notes.Update(msg)
	if after := e.notes.Value(); after != before {
		// Every keystroke goes through the session; autosave coalesces them.
		e.update(func(p *models.Project) error {
			planner.SetNotes(p, after)
			return nil
		})
	}
	return cmd
}

func (e *ProjectEditor) View() string {
	var b strings.Builder

	name := "Project"
	if e.snap.Project != nil {
		name = e.snap.Project.Name
	}
	b.WriteString(TitleStyle.Render(strings.ToUpper(name)))
	b.WriteString("\n")
	b.WriteString(e.statusLine())
	b.WriteString("\n\n")

	titles := make([]string, len(e.tabs))
	for i, t := range e.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if i == e.active {
			titles[i] = ActiveTabStyle.Render(label)
		} else {
			titles[i] = TabStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(titles, " "))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		b.WriteString("\n\n")
	}
	if e.message != "" {
		b.WriteString(SuccessStyle.Render(e.message))
		b.WriteString("\n\n")
	}

	switch e.snap.State {
	case session.Idle, session.Loading:
		b.WriteString("Loading...\n")
		return b.String()
	case session.Failed:
		b.WriteString(ErrorStyle.Render("Could not load this project."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[r] Retry  [q] Back"))
		return b.String()
	}

	switch e.mode {
	case projectModeInput:
		b.WriteString(e.label + "\n")
		b.WriteString(e.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	case projectModeNotes:
		b.WriteString("Notes:\n")
		b.WriteString(e.notes.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Changes save automatically  [esc] Done"))
		return b.String()
	case projectModeDelete:
		b.WriteString(WarningStyle.Render(e.label + " (y/n)"))
		b.WriteString("\n")
		return b.String()
	}

	t := e.tabs[e.active]
	b.WriteString(t.View(e, e.snap.Project))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(t.Help() + "\n[tab] Next panel  [ctrl+s] Save  [q] Back"))

	return b.String()
}

func (e *ProjectEditor) statusLine() string {
	switch {
	case e.snap.State == session.Loading:
		return DimStyle.Render("Loading...")
	case e.snap.State == session.Failed:
		return ErrorStyle.Render("Failed: " + e.snap.ErrText())
	case e.snap.Err != nil:
		return ErrorStyle.Render("Save failed: " + e.snap.ErrText())
	case e.snap.State == session.Ready && e.snap.Project != nil:
		return DimStyle.Render("Saved locally, last edit " + e.snap.Project.UpdatedAt.Local().Format("15:04:05"))
	}
	return DimStyle.Render(e.snap.State.String())
}

// moveCursor applies up/down keys to cursor over n rows.
func moveCursor(key string, cursor, n int) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			cursor--
		}
	case "down", "j":
		if cursor < n-1 {
			cursor++
		}
	}
	if cursor >= n {
		cursor = max(0, n-1)
	}
	return cursor
}
