package models

type IdeaStatus string

const (
	IdeaRaw         IdeaStatus = "raw"
	IdeaResearching IdeaStatus = "researching"
	IdeaApproved    IdeaStatus = "approved"
)

func (s IdeaStatus) Valid() bool {
	switch s {
	case IdeaRaw, IdeaResearching, IdeaApproved:
		return true
	}
	return false
}

type SectionType string

const (
	SectionHook  SectionType = "hook"
	SectionValue SectionType = "value"
	SectionCTA   SectionType = "cta"
)

func (s SectionType) Valid() bool {
	switch s {
	case SectionHook, SectionValue, SectionCTA:
		return true
	}
	return false
}

type TimelineTrack string

const (
	TrackVideo   TimelineTrack = "video"
	TrackAudio   TimelineTrack = "audio"
	TrackOverlay TimelineTrack = "overlay"
)

var Tracks = []TimelineTrack{TrackVideo, TrackAudio, TrackOverlay}

func (t TimelineTrack) Valid() bool {
	switch t {
	case TrackVideo, TrackAudio, TrackOverlay:
		return true
	}
	return false
}

type ItemType string

const (
	ItemHook  ItemType = "hook"
	ItemValue ItemType = "value"
	ItemCTA   ItemType = "cta"
	ItemAsset ItemType = "asset"
)

type AssetType string

const (
	AssetVideo AssetType = "video"
	AssetImage AssetType = "image"
	AssetAudio AssetType = "audio"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetVideo, AssetImage, AssetAudio:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Platform string

const (
	PlatformShorts  Platform = "shorts"
	PlatformTikTok  Platform = "tiktok"
	PlatformReel    Platform = "reel"
	PlatformTwitter Platform = "twitter"
)

var Platforms = []Platform{PlatformShorts, PlatformTikTok, PlatformReel, PlatformTwitter}

func (p Platform) Valid() bool {
	switch p {
	case PlatformShorts, PlatformTikTok, PlatformReel, PlatformTwitter:
		return true
	}
	return false
}

// ClipStatus progresses planned -> exported -> published.
type ClipStatus string

const (
	ClipPlanned   ClipStatus = "planned"
	ClipExported  ClipStatus = "exported"
	ClipPublished ClipStatus = "published"
)

// Rank orders statuses along the publishing pipeline; unknown values rank -1.
func (s ClipStatus) Rank() int {
	switch s {
	case ClipPlanned:
		return 0
	case ClipExported:
		return 1
	case ClipPublished:
		return 2
	}
	return -1
}

type ShotType string

const (
	ShotTalkingHead     ShotType = "talking-head"
	ShotBRoll           ShotType = "b-roll"
	ShotScreenRecording ShotType = "screen-recording"
)

func (t ShotType) Valid() bool {
	switch t {
	case ShotTalkingHead, ShotBRoll, ShotScreenRecording:
		return true
	}
	return false
}

func (t ShotType) Label() string {
	switch t {
	case ShotTalkingHead:
		return "Talking Head"
	case ShotBRoll:
		return "B-Roll"
	case ShotScreenRecording:
		return "Screen Recording"
	}
	return string(t)
}
