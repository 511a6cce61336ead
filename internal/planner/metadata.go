package planner

import (
	"fmt"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
)

func AddTitle(p *models.Project, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is empty")
	}
	p.Metadata.Titles = append(p.Metadata.Titles, title)
	return nil
}

func RemoveTitle(p *models.Project, index int) error {
	titles := p.Metadata.Titles
	if index < 0 || index >= len(titles) {
		return fmt.Errorf("title #%d: %w", index, ErrNotFound)
	}
	out := make([]string, 0, len(titles)-1)
	out = append(out, titles[:index]...)
	p.Metadata.Titles = append(out, titles[index+1:]...)
	return nil
}

func AddThumbnail(p *models.Project, description, imageURL string) models.ThumbnailIdea {
	thumb := models.ThumbnailIdea{
		ID:          newID(),
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	p.Metadata.Thumbnails = append(p.Metadata.Thumbnails, thumb)
	return thumb
}

func RemoveThumbnail(p *models.Project, id string) bool {
	out := p.Metadata.Thumbnails[:0:0]
	for _, t := range p.Metadata.Thumbnails {
		if t.ID != id {
			out = append(out, t)
		}
	}
	found := len(out) != len(p.Metadata.Thumbnails)
	p.Metadata.Thumbnails = out
	return found
}

// SetTags replaces the tags with the comma separated values in raw.
func SetTags(p *models.Project, raw string) {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	p.Metadata.Tags = tags
}

func SetNotes(p *models.Project, notes string) {
	p.Metadata.Notes = notes
}

func AddVariant(p *models.Project, title, thumbnailURL string) (models.YouTubePreviewVariant, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.YouTubePreviewVariant{}, fmt.Errorf("variant title is empty")
	}
	v := models.YouTubePreviewVariant{
		ID:           newID(),
		Title:        title,
		ThumbnailURL: strings.TrimSpace(thumbnailURL),
	}
	p.Metadata.ABTestVariants = append(p.Metadata.ABTestVariants, v)
	return v, nil
}

func UpdateVariant(p *models.Project, id string, fn func(*models.YouTubePreviewVariant)) error {
	for i := range p.Metadata.ABTestVariants {
		if p.Metadata.ABTestVariants[i].ID == id {
			fn(&p.Metadata.ABTestVariants[i])
			p.Metadata.ABTestVariants[i].ID = id
			return nil
		}
	}
	return fmt.Errorf("variant %s: %w", id, ErrNotFound)
}

func DeleteVariant(p *models.Project, id string) bool {
	out := p.Metadata.ABTestVariants[:0:0]
	for _, v := range p.Metadata.ABTestVariants {
		if v.ID != id {
			out = append(out, v)
		}
	}
	found := len(out) != len(p.Metadata.ABTestVariants)
	p.Metadata.ABTestVariants = out
	return found
}
