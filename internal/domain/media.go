package domain

import (
	"time"
)

type MediaKind string

const (
	MediaKindPhoto     MediaKind = "photo"
	MediaKindVideo     MediaKind = "video"
	MediaKindStory     MediaKind = "story"
	MediaKindHighlight MediaKind = "highlight"
)

// Source is one listing of a profile. Only the post feed is ordered
// newest-first, so only it takes part in the checkpoint.
type Source string

const (
	SourcePosts      Source = "posts"
	SourceStories    Source = "stories"
	SourceHighlights Source = "highlights"
	SourceProfilePic Source = "profile_pic"
)

func (s Source) Ordered() bool {
	return s == SourcePosts
}

// RemoteMedia is one item of a remote listing.
type RemoteMedia struct {
	RemoteID   string
	Kind       MediaKind
	Source     Source
	CapturedAt time.Time
	URL        string
	IsVideo    bool
}

func (m RemoteMedia) Position() Position {
	return Position{TakenAt: m.CapturedAt, RemoteID: m.RemoteID}
}

// Extension is the file extension used when saving the item.
func (m RemoteMedia) Extension() string {
	if m.IsVideo || m.Kind == MediaKindVideo {
		return ".mp4"
	}
	return ".jpg"
}

// MediaItem is a downloaded item. LocalPath is relative to the download
// directory and empty once the file has been cleaned up.
type MediaItem struct {
	ID             int64
	TargetUsername string
	RemoteID       string
	Kind           MediaKind
	Source         Source
	CapturedAt     time.Time
	LocalPath      string
	SizeBytes      int64
	DownloadedAt   time.Time
}
