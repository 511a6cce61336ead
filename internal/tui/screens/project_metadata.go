package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/planner"
)

type metadataKind int

const (
	metaTitle metadataKind = iota
	metaThumbnail
	metaVariant
)

type metadataRow struct {
	kind  metadataKind
	index int
	id    string
	text  string
}

// metadataTab collects title candidates, thumbnail ideas, tags, A/B test
// variants and free-form notes.
type metadataTab struct {
	cursor int
}

func (t *metadataTab) Title() string { return "Metadata" }

func (t *metadataTab) Help() string {
	return "[t] Title  [i] Thumbnail idea  [v] A/B variant  [e] Edit variant  [g] Tags  [n] Notes  [d] Remove"
}

func (t *metadataTab) rows(p *models.Project) []metadataRow {
	var rows []metadataRow
	for i, title := range p.Metadata.Titles {
		rows = append(rows, metadataRow{kind: metaTitle, index: i, text: title})
	}
	for _, th := range p.Metadata.Thumbnails {
		rows = append(rows, metadataRow{kind: metaThumbnail, id: th.ID, text: th.Description})
	}
	for _, v := range p.Metadata.ABTestVariants {
		rows = append(rows, metadataRow{kind: metaVariant, id: v.ID, text: v.Title})
	}
	return rows
}

func (t *metadataTab) Keys(e *ProjectEditor, p *models.Project, msg tea.KeyMsg) tea.Cmd {
	rows := t.rows(p)
	key := msg.String()
	t.cursor = moveCursor(key, t.cursor, len(rows))

	switch key {
	case "t":
		e.prompt("Title idea:", "", func(title string) error {
			e.update(func(p *models.Project) error {
				return planner.AddTitle(p, title)
			})
			return e.err
		})
	case "i":
		e.prompt("Thumbnail idea:", "", func(desc string) error {
			e.update(func(p *models.Project) error {
				planner.AddThumbnail(p, desc, "")
				return nil
			})
			return e.err
		})
	case "v":
		e.prompt("Variant title:", "", func(title string) error {
			e.update(func(p *models.Project) error {
				_, err := planner.AddVariant(p, title, "")
				return err
			})
			return e.err
		})
	case "g":
		e.prompt("Tags, comma separated:", strings.Join(p.Metadata.Tags, ", "), func(raw string) error {
			e.update(func(p *models.Project) error {
				planner.SetTags(p, raw)
				return nil
			})
			return e.err
		})
	case "n":
		return e.editNotes(p.Metadata.Notes)
	}

	if len(rows) == 0 {
		return nil
	}
	row := rows[t.cursor]

	switch key {
	case "e":
		if row.kind != metaVariant {
			return nil
		}
		e.prompt("Variant description:", variantDescription(p, row.id), func(desc string) error {
			e.update(func(p *models.Project) error {
				return planner.UpdateVariant(p, row.id, func(v *models.YouTubePreviewVariant) { v.Description = desc })
			})
			return e.err
		})
	case "d":
		e.update(func(p *models.Project) error {
			switch row.kind {
			case metaTitle:
				return planner.RemoveTitle(p, row.index)
			case metaThumbnail:
				planner.RemoveThumbnail(p, row.id)
			case metaVariant:
				planner.DeleteVariant(p, row.id)
			}
			return nil
		})
	}
	return nil
}

func variantDescription(p *models.Project, id string) string {
	for _, v := range p.Metadata.ABTestVariants {
		if v.ID == id {
			return v.Description
		}
	}
	return ""
}

func (t *metadataTab) View(e *ProjectEditor, p *models.Project) string {
	var b strings.Builder

	headings := map[metadataKind]string{
		metaTitle:     "Titles",
		metaThumbnail: "Thumbnail ideas",
		metaVariant:   "A/B variants",
	}
	last := metadataKind(-1)
	for i, row := range t.rows(p) {
		if row.kind != last {
			b.WriteString(SubtitleStyle.Render(headings[row.kind]))
			b.WriteString("\n")
			last = row.kind
		}
		b.WriteString(cursorLine(i == t.cursor, row.text))
		b.WriteString("\n")
	}
	if last < 0 {
		b.WriteString(DimStyle.Render("No titles, thumbnails or variants yet."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	tags := "none"
	if len(p.Metadata.Tags) > 0 {
		tags = strings.Join(p.Metadata.Tags, ", ")
	}
	b.WriteString(fmt.Sprintf("Tags: %s\n", tags))

	notes := p.Metadata.Notes
	if notes == "" {
		notes = DimStyle.Render("(no notes)")
	}
	b.WriteString("Notes:\n")
	b.WriteString(notes)
	b.WriteString("\n")
	return b.String()
}
