package models

import "time"

type Project struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Ideas            []Idea            `json:"ideas"`
	Scenes           []Scene           `json:"scenes"`
	Assets           []Asset           `json:"assets"`
	Todos            []Todo            `json:"todos"`
	Metadata         VideoMetadata     `json:"metadata"`
	RepurposingClips []RepurposingClip `json:"repurposingClips"`
	ShotList         []ShotListItem    `json:"shotList"`
	SchemaVersion    int               `json:"schemaVersion,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Idea struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      IdeaStatus `json:"status"`
	Color       string     `json:"color"`
	SceneID     string     `json:"sceneId,omitempty"` // empty while in the inbox
	Position    *Position  `json:"position,omitempty"`
	Order       *int       `json:"order,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Scene struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`

	// Denormalized reference lists kept for older exports. Idea.SceneID is authoritative.
	Ideas  []string `json:"ideas"`
	Assets []string `json:"assets"`
	Todos  []string `json:"todos"`

	Timeline      []TimelineSection `json:"timeline,omitempty"`
	TimelineItems []TimelineItem    `json:"timelineItems,omitempty"`
	Duration      *float64          `json:"duration,omitempty"` // seconds
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type TimelineSection struct {
	ID                string      `json:"id,omitempty"`
	Type              SectionType `json:"type"`
	StartTime         float64     `json:"startTime"`
	EndTime           float64     `json:"endTime"`
	Notes             string      `json:"notes"`
	RepurposingClips  []string    `json:"repurposingClips,omitempty"`
	WordCount         *int        `json:"wordCount,omitempty"`
	EstimatedDuration *float64    `json:"estimatedDuration,omitempty"`
}

func (s TimelineSection) Duration() float64 {
	return s.EndTime - s.StartTime
}

type TimelineItem struct {
	ID        string        `json:"id"`
	Track     TimelineTrack `json:"track"`
	AssetID   string        `json:"assetId,omitempty"`
	StartTime float64       `json:"startTime"`
	Duration  float64       `json:"duration"`
	Type      ItemType      `json:"type"`
	Label     string        `json:"label,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Color     string        `json:"color,omitempty"`
}

type Asset struct {
	ID        string    `json:"id"`
	Type      AssetType `json:"type"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	SceneID   string    `json:"sceneId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Todo struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Priority  Priority   `json:"priority"`
	Subtasks  []SubTask  `json:"subtasks"`
	SceneID   string     `json:"sceneId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type RepurposingClip struct {
	ID                string     `json:"id"`
	TimelineSectionID string     `json:"timelineSectionId,omitempty"`
	StartTime         float64    `json:"startTime"`
	EndTime           float64    `json:"endTime"`
	Platforms         []Platform `json:"platforms"`
	CustomTitle       string     `json:"customTitle,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Status            ClipStatus `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func (c RepurposingClip) Duration() float64 {
	return c.EndTime - c.StartTime
}

type ShotListItem struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	ShotType          ShotType `json:"shotType"`
	TimelineSectionID string   `json:"timelineSectionId,omitempty"`
	Duration          float64  `json:"duration"`
	Notes             string   `json:"notes,omitempty"`
	Completed         bool     `json:"completed"`
	Order             int      `json:"order"`
}

type ThumbnailIdea struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`
}

type VideoMetadata struct {
	Titles         []string                `json:"titles"`
	Thumbnails     []ThumbnailIdea         `json:"thumbnails"`
	Tags           []string                `json:"tags"`
	Notes          string                  `json:"notes"`
	ABTestVariants []YouTubePreviewVariant `json:"abTestVariants"`
}

type YouTubePreviewVariant struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ProjectSummary is the listing row used by pickers; it avoids decoding whole documents.
type ProjectSummary struct {
	ID         string
	Name       string
	IdeaCount  int
	SceneCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
