package timeline

import (
	"github.com/google/uuid"

	"github.com/emilianohg/storyboard/internal/models"
)

// SectionLength is the span given to a newly added section.
const SectionLength = 30.0

// DefaultVideoDuration is used by scenes that have no duration of their own.
const DefaultVideoDuration = 300.0

// AddSection appends a section of type typ that starts where the latest
// section ends and runs for SectionLength, capped at videoDuration.
func AddSection(sections []models.TimelineSection, typ models.SectionType, videoDuration float64) []models.TimelineSection {
	start := 0.0
	for _, s := range sections {
		if s.EndTime > start {
			start = s.EndTime
		}
	}
	end := start + SectionLength
	if end > videoDuration {
		end = videoDuration
	}

	out := append(copySections(sections), models.TimelineSection{
		ID:        uuid.NewString(),
		Type:      typ,
		StartTime: start,
		EndTime:   end,
	})
	return out
}

// UpdateSection applies fn to the section at index. Out of range indexes
// leave the list unchanged.
func UpdateSection(sections []models.TimelineSection, index int, fn func(*models.TimelineSection)) []models.TimelineSection {
	out := copySections(sections)
	if index < 0 || index >= len(out) {
		return out
	}
	fn(&out[index])
	return out
}

func DeleteSection(sections []models.TimelineSection, index int) []models.TimelineSection {
	out := make([]models.TimelineSection, 0, len(sections))
	for i, s := range sections {
		if i != index {
			out = append(out, s)
		}
	}
	return out
}

// MoveUp swaps the section at index with the one before it.
func MoveUp(sections []models.TimelineSection, index int) []models.TimelineSection {
	out := copySections(sections)
	if index <= 0 || index >= len(out) {
		return out
	}
	out[index-1], out[index] = out[index], out[index-1]
	return out
}

// MoveDown swaps the section at index with the one after it.
func MoveDown(sections []models.TimelineSection, index int) []models.TimelineSection {
	out := copySections(sections)
	if index < 0 || index >= len(out)-1 {
		return out
	}
	out[index], out[index+1] = out[index+1], out[index]
	return out
}

// TotalLength is the end of the last section.
func TotalLength(sections []models.TimelineSection) float64 {
	var end float64
	for _, s := range sections {
		if s.EndTime > end {
			end = s.EndTime
		}
	}
	return end
}

func copySections(in []models.TimelineSection) []models.TimelineSection {
	out := make([]models.TimelineSection, len(in), len(in)+1)
	copy(out, in)
	return out
}
