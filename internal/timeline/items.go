package timeline

import (
	"github.com/google/uuid"

	"github.com/emilianohg/storyboard/internal/models"
)

// DefaultItemDuration is the length of an item created by dropping an asset.
const DefaultItemDuration = 5.0

var (
	trackColors = map[models.TimelineTrack]string{
		models.TrackVideo:   "#ec4899",
		models.TrackAudio:   "#8b5cf6",
		models.TrackOverlay: "#3b82f6",
	}
	itemColors = map[models.ItemType]string{
		models.ItemHook:  "#ec4899",
		models.ItemValue: "#6366f1",
		models.ItemCTA:   "#10b981",
	}
	SectionColors = map[models.SectionType]string{
		models.SectionHook:  "#ec4899",
		models.SectionValue: "#6366f1",
		models.SectionCTA:   "#10b981",
	}
)

const defaultItemColor = "#8b5cf6"

// DropAsset appends an asset item to track at start.
func DropAsset(items []models.TimelineItem, asset models.Asset, track models.TimelineTrack, start float64) []models.TimelineItem {
	out := make([]models.TimelineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, models.TimelineItem{
		ID:        uuid.NewString(),
		Track:     track,
		AssetID:   asset.ID,
		StartTime: start,
		Duration:  DefaultItemDuration,
		Type:      models.ItemAsset,
		Label:     asset.Name,
	})
}

// TrackItems returns the items on track in their stored order.
func TrackItems(items []models.TimelineItem, track models.TimelineTrack) []models.TimelineItem {
	var out []models.TimelineItem
	for _, it := range items {
		if it.Track == track {
			out = append(out, it)
		}
	}
	return out
}

func DeleteItem(items []models.TimelineItem, id string) []models.TimelineItem {
	out := make([]models.TimelineItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// ItemColor is the explicit item color, or the default for its type.
func ItemColor(item models.TimelineItem) string {
	if item.Color != "" {
		return item.Color
	}
	if c, ok := itemColors[item.Type]; ok {
		return c
	}
	return defaultItemColor
}

func TrackColor(track models.TimelineTrack) string {
	return trackColors[track]
}

// End is the time the item stops playing.
func End(item models.TimelineItem) float64 {
	return item.StartTime + item.Duration
}
