package timeline

import (
	"reflect"
	"testing"

	"github.com/emilianohg/storyboard/internal/models"
)

func TestTimeAt(t *testing.T) {
	rect := Rect{Left: 0, Width: 1000}
	tests := []struct {
		name     string
		x        float64
		rect     Rect
		zoom     float64
		duration float64
		want     float64
	}{
		{"exact quarter", 250, rect, 1, 100, 25.0},
		{"snaps down", 257, rect, 1, 100, 25.5},
		{"snaps up", 258, rect, 1, 100, 26.0},
		{"zoomed in", 500, rect, 2, 100, 25.0},
		{"offset rect", 350, Rect{Left: 100, Width: 1000}, 1, 100, 25.0},
		{"left of rect", -100, rect, 1, 100, -10.0},
		{"right of rect", 1200, rect, 1, 100, 120.0},
		{"tie rounds up", 252.5, rect, 1, 100, 25.5},
		{"negative tie rounds up", -2.5, rect, 1, 100, 0},
		{"negative tie below zero", -7.5, rect, 1, 100, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAt(tt.x, tt.rect, tt.zoom, tt.duration); got != tt.want {
				t.Errorf("TimeAt(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestPlayheadClampsButDropDoesNot(t *testing.T) {
	rect := Rect{Width: 1000}
	if got := PlayheadAt(1200, rect, 1, 100); got != 100 {
		t.Errorf("PlayheadAt past the end = %v, want 100", got)
	}
	if got := PlayheadAt(-50, rect, 1, 100); got != 0 {
		t.Errorf("PlayheadAt before the start = %v, want 0", got)
	}
	if got := DropAt(1200, rect, 1, 100); got != 120 {
		t.Errorf("DropAt past the end = %v, want 120", got)
	}
}

func TestZoom(t *testing.T) {
	z := 1.0
	for i := 0; i < 10; i++ {
		z = ZoomIn(z)
	}
	if z != MaxZoom {
		t.Fatalf("zoom in should stop at %v, got %v", MaxZoom, z)
	}
	for i := 0; i < 10; i++ {
		z = ZoomOut(z)
	}
	if z != MinZoom {
		t.Fatalf("zoom out should stop at %v, got %v", MinZoom, z)
	}
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		zoom     float64
		interval float64
		count    int
	}{
		{1, 10, 7},    // 0..60 every 10s
		{1.5, 5, 9},   // 0..40 every 5s
		{3, 1, 21},    // 0..20 every 1s
		{0.5, 10, 13}, // 0..120 every 10s
	}
	for _, tt := range tests {
		if got := MarkerInterval(tt.zoom); got != tt.interval {
			t.Errorf("MarkerInterval(%v) = %v, want %v", tt.zoom, got, tt.interval)
		}
		markers := Markers(60, tt.zoom)
		if len(markers) != tt.count {
			t.Errorf("Markers(60, %v) has %d entries, want %d", tt.zoom, len(markers), tt.count)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[float64]string{
		0:     "0:00",
		5.5:   "0:05",
		65:    "1:05",
		600:   "10:00",
		-3:    "0:00",
		119.9: "1:59",
	}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestAddSection(t *testing.T) {
	var sections []models.TimelineSection
	sections = AddSection(sections, models.SectionHook, 300)
	sections = AddSection(sections, models.SectionValue, 300)

	if sections[0].StartTime != 0 || sections[0].EndTime != 30 {
		t.Fatalf("unexpected first section %+v", sections[0])
	}
	if sections[1].StartTime != 30 || sections[1].EndTime != 60 {
		t.Fatalf("unexpected second section %+v", sections[1])
	}
	if sections[0].ID == "" || sections[0].ID == sections[1].ID {
		t.Fatal("sections need distinct ids")
	}

	capped := AddSection([]models.TimelineSection{{Type: models.SectionHook, StartTime: 0, EndTime: 50}}, models.SectionCTA, 60)
	if last := capped[len(capped)-1]; last.StartTime != 50 || last.EndTime != 60 {
		t.Fatalf("expected the end to be capped at the video duration, got %+v", last)
	}
}

func TestSectionEditsDoNotAlias(t *testing.T) {
	in := []models.TimelineSection{
		{ID: "a", Type: models.SectionHook},
		{ID: "b", Type: models.SectionValue},
		{ID: "c", Type: models.SectionCTA},
	}
	orig := append([]models.TimelineSection(nil), in...)

	ids := func(s []models.TimelineSection) []string {
		var out []string
		for _, x := range s {
			out = append(out, x.ID)
		}
		return out
	}

	if got := ids(MoveUp(in, 1)); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("MoveUp = %v", got)
	}
	if got := ids(MoveUp(in, 0)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("MoveUp at the top = %v", got)
	}
	if got := ids(MoveDown(in, 1)); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Errorf("MoveDown = %v", got)
	}
	if got := ids(MoveDown(in, 2)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("MoveDown at the bottom = %v", got)
	}
	if got := ids(DeleteSection(in, 1)); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("DeleteSection = %v", got)
	}
	updated := UpdateSection(in, 2, func(s *models.TimelineSection) { s.Notes = "subscribe" })
	if updated[2].Notes != "subscribe" {
		t.Errorf("UpdateSection did not apply")
	}

	if !reflect.DeepEqual(in, orig) {
		t.Fatal("input slice was modified")
	}
}

func TestDropAssetAndTracks(t *testing.T) {
	asset := models.Asset{ID: "a1", Name: "b-roll.mp4", Type: models.AssetVideo}
	var items []models.TimelineItem
	items = DropAsset(items, asset, models.TrackVideo, 12.5)
	items = DropAsset(items, asset, models.TrackOverlay, 3)

	first := items[0]
	if first.Type != models.ItemAsset || first.Label != "b-roll.mp4" || first.Duration != DefaultItemDuration || first.StartTime != 12.5 {
		t.Fatalf("unexpected item %+v", first)
	}
	if got := TrackItems(items, models.TrackVideo); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("TrackItems(video) = %+v", got)
	}
	if got := TrackItems(items, models.TrackAudio); len(got) != 0 {
		t.Fatalf("expected an empty audio track, got %+v", got)
	}
	if got := DeleteItem(items, first.ID); len(got) != 1 || got[0].Track != models.TrackOverlay {
		t.Fatalf("DeleteItem = %+v", got)
	}
	if End(first) != 17.5 {
		t.Fatalf("End = %v", End(first))
	}
}

func TestItemColor(t *testing.T) {
	cases := []struct {
		item models.TimelineItem
		want string
	}{
		{models.TimelineItem{Type: models.ItemHook}, "#ec4899"},
		{models.TimelineItem{Type: models.ItemCTA}, "#10b981"},
		{models.TimelineItem{Type: models.ItemAsset}, "#8b5cf6"},
		{models.TimelineItem{Type: models.ItemValue, Color: "#000000"}, "#000000"},
	}
	for _, c := range cases {
		if got := ItemColor(c.item); got != c.want {
			t.Errorf("ItemColor(%+v) = %s, want %s", c.item, got, c.want)
		}
	}
}
