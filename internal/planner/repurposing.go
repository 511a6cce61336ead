package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
)

type PlatformSpec struct {
	Name        string
	MaxDuration float64 // seconds
	AspectRatio string
}

var PlatformSpecs = map[models.Platform]PlatformSpec{
	models.PlatformShorts:  {Name: "YouTube Shorts", MaxDuration: 60, AspectRatio: "9:16"},
	models.PlatformTikTok:  {Name: "TikTok", MaxDuration: 180, AspectRatio: "9:16"},
	models.PlatformReel:    {Name: "Instagram Reel", MaxDuration: 90, AspectRatio: "9:16"},
	models.PlatformTwitter: {Name: "Twitter/X", MaxDuration: 140, AspectRatio: "16:9"},
}

var ErrClipTooLong = errors.New("clip is longer than the platform allows")

// EligiblePlatforms lists, in display order, the platforms that accept a
// clip of the given length.
func EligiblePlatforms(duration float64) []models.Platform {
	var out []models.Platform
	for _, pl := range models.Platforms {
		if duration <= PlatformSpecs[pl].MaxDuration {
			out = append(out, pl)
		}
	}
	return out
}

type ClipInput struct {
	Platforms   []models.Platform
	CustomTitle string
	Notes       string
}

// AddClipFromSection plans a clip over the span of section.
func (pl *Planner) AddClipFromSection(p *models.Project, section models.TimelineSection, in ClipInput) (models.RepurposingClip, error) {
	duration := section.Duration()
	if duration <= 0 {
		return models.RepurposingClip{}, fmt.Errorf("section %s has no length", section.ID)
	}

	platforms := make([]models.Platform, 0, len(in.Platforms))
	for _, platform := range in.Platforms {
		spec, ok := PlatformSpecs[platform]
		if !ok {
			return models.RepurposingClip{}, fmt.Errorf("platform %q is not supported", platform)
		}
		if duration > spec.MaxDuration {
			return models.RepurposingClip{}, fmt.Errorf("%s max %.0fs, clip %.0fs: %w", spec.Name, spec.MaxDuration, duration, ErrClipTooLong)
		}
		platforms = append(platforms, platform)
	}

	clip := models.RepurposingClip{
		ID:                newID(),
		TimelineSectionID: section.ID,
		StartTime:         section.StartTime,
		EndTime:           section.EndTime,
		Platforms:         platforms,
		CustomTitle:       strings.TrimSpace(in.CustomTitle),
		Notes:             strings.TrimSpace(in.Notes),
		Status:            models.ClipPlanned,
		CreatedAt:         pl.now(),
	}
	p.RepurposingClips = append(p.RepurposingClips, clip)
	return clip, nil
}

func findClip(p *models.Project, id string) (*models.RepurposingClip, error) {
	for i := range p.RepurposingClips {
		if p.RepurposingClips[i].ID == id {
			return &p.RepurposingClips[i], nil
		}
	}
	return nil, fmt.Errorf("repurposing clip %s: %w", id, ErrNotFound)
}

// AdvanceClip moves a clip to status. Statuses only move forward along
// planned, exported, published.
func AdvanceClip(p *models.Project, id string, status models.ClipStatus) error {
	clip, err := findClip(p, id)
	if err != nil {
		return err
	}
	if status.Rank() < 0 {
		return fmt.Errorf("clip status %q is not valid", status)
	}
	if status.Rank() <= clip.Status.Rank() {
		return fmt.Errorf("clip %s is already %s", id, clip.Status)
	}
	clip.Status = status
	return nil
}

// NextStatus is the status after s, or "" once published.
func NextStatus(s models.ClipStatus) models.ClipStatus {
	switch s {
	case models.ClipPlanned:
		return models.ClipExported
	case models.ClipExported:
		return models.ClipPublished
	}
	return ""
}

func UpdateClip(p *models.Project, id string, fn func(*models.RepurposingClip)) error {
	clip, err := findClip(p, id)
	if err != nil {
		return err
	}
	fn(clip)
	clip.ID = id
	return nil
}

func DeleteClip(p *models.Project, id string) bool {
	out := p.RepurposingClips[:0:0]
	for _, c := range p.RepurposingClips {
		if c.ID != id {
			out = append(out, c)
		}
	}
	found := len(out) != len(p.RepurposingClips)
	p.RepurposingClips = out
	return found
}
