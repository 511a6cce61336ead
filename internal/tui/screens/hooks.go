package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/storyboard/internal/planner"
)

// Hooks browses the hook framework library.
type Hooks struct {
	width  int
	height int

	categories []string
	category   int // -1 shows every category
	query      string
	cursor     int
	searching  bool
	input      textinput.Model
}

func NewHooks() *Hooks {
	ti := textinput.New()
	ti.Placeholder = "Search hooks"
	ti.CharLimit = 80
	ti.Width = 40

	return &Hooks{
		categories: planner.HookCategories(),
		category:   -1,
		input:      ti,
	}
}

func (h *Hooks) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *Hooks) Init() tea.Cmd {
	h.cursor = 0
	h.searching = false
	return nil
}

// Typing reports whether keys currently go to the search field.
func (h *Hooks) Typing() bool {
	return h.searching
}

func (h *Hooks) results() []planner.HookFramework {
	category := ""
	if h.category >= 0 {
		category = h.categories[h.category]
	}
	return planner.SearchHooks(category, h.query)
}

func (h *Hooks) Update(msg tea.Msg) tea.Cmd {
	if h.searching {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter", "esc":
				h.searching = false
				h.input.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		h.query = h.input.Value()
		h.cursor = 0
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	results := h.results()
	switch keyMsg.String() {
	case "up", "k", "down", "j":
		h.cursor = moveCursor(keyMsg.String(), h.cursor, len(results))
	case "c":
		h.category++
		if h.category >= len(h.categories) {
			h.category = -1
		}
		h.cursor = 0
	case "/":
		h.searching = true
		return h.input.Focus()
	case "q", "esc":
		return Navigate("projects")
	}
	return nil
}

func (h *Hooks) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("HOOK LIBRARY"))
	b.WriteString("\n")

	category := "all"
	if h.category >= 0 {
		category = h.categories[h.category]
	}
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Category: %s", category)))
	b.WriteString("\n")

	if h.searching || h.query != "" {
		b.WriteString(h.input.View())
		b.WriteString("\n\n")
	}

	results := h.results()
	if len(results) == 0 {
		b.WriteString(DimStyle.Render("No hooks match."))
		b.WriteString("\n")
	}
	for i, hook := range results {
		b.WriteString(cursorLine(i == h.cursor, fmt.Sprintf("%s %s", hook.Name, DimStyle.Render("("+hook.Category+")"))))
		b.WriteString("\n")
	}

	if h.cursor < len(results) {
		hook := results[h.cursor]
		detail := fmt.Sprintf("%s\n\nFormula: %s\nExample: %s\n\n%s",
			SelectedStyle.Render(hook.Name), hook.Formula, hook.Example, DimStyle.Render(hook.Purpose))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(min(80, max(40, h.width-4))).Render(detail))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[c] Category  [/] Search  [q] Back"))
	return b.String()
}
