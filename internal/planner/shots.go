package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emilianohg/storyboard/internal/models"
)

type ShotSort string

const (
	SortByTimeline ShotSort = "timeline"
	SortByType     ShotSort = "type"
)

// GenerateShotList builds one talking-head shot per section, in section order.
func GenerateShotList(sections []models.TimelineSection) []models.ShotListItem {
	shots := make([]models.ShotListItem, 0, len(sections))
	for i, s := range sections {
		notes := s.Notes
		label := notes
		if label == "" {
			label = "No notes"
		}
		shots = append(shots, models.ShotListItem{
			ID:                newID(),
			Title:             fmt.Sprintf("%s - %s", strings.ToUpper(string(s.Type)), label),
			ShotType:          models.ShotTalkingHead,
			TimelineSectionID: s.ID,
			Duration:          s.Duration(),
			Notes:             notes,
			Order:             i,
		})
	}
	return shots
}

// RegenerateShotList replaces the project's shot list from a scene timeline.
func RegenerateShotList(p *models.Project, sceneID string) error {
	scene, ok := FindScene(p, sceneID)
	if !ok {
		return fmt.Errorf("scene %s: %w", sceneID, ErrNotFound)
	}
	p.ShotList = GenerateShotList(scene.Timeline)
	return nil
}

func findShot(p *models.Project, id string) (*models.ShotListItem, error) {
	for i := range p.ShotList {
		if p.ShotList[i].ID == id {
			return &p.ShotList[i], nil
		}
	}
	return nil, fmt.Errorf("shot %s: %w", id, ErrNotFound)
}

func ToggleShot(p *models.Project, id string) error {
	shot, err := findShot(p, id)
	if err != nil {
		return err
	}
	shot.Completed = !shot.Completed
	return nil
}

func SetShotType(p *models.Project, id string, typ models.ShotType) error {
	if !typ.Valid() {
		return fmt.Errorf("shot type %q is not valid", typ)
	}
	shot, err := findShot(p, id)
	if err != nil {
		return err
	}
	shot.ShotType = typ
	return nil
}

func DeleteShot(p *models.Project, id string) bool {
	out := p.ShotList[:0:0]
	for _, s := range p.ShotList {
		if s.ID != id {
			out = append(out, s)
		}
	}
	found := len(out) != len(p.ShotList)
	p.ShotList = out
	return found
}

// SortShots returns a sorted copy: by timeline order, or by shot type name.
func SortShots(shots []models.ShotListItem, by ShotSort) []models.ShotListItem {
	out := append([]models.ShotListItem(nil), shots...)
	sort.SliceStable(out, func(i, j int) bool {
		if by == SortByType {
			return out[i].ShotType < out[j].ShotType
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// ShotProgress returns the completed and total counts.
func ShotProgress(shots []models.ShotListItem) (done, total int) {
	for _, s := range shots {
		if s.Completed {
			done++
		}
	}
	return done, len(shots)
}

// TotalShotDuration sums the shot durations in seconds.
func TotalShotDuration(shots []models.ShotListItem) float64 {
	var total float64
	for _, s := range shots {
		total += s.Duration
	}
	return total
}
