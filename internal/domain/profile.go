package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"time"
)

// Profile is the remote metadata of a target as last seen by a sync.
type Profile struct {
	Username         string
	FullName         string
	Biography        string
	ExternalURL      string
	Followers        int
	Followees        int
	PostCount        int
	IsPrivate        bool
	FollowedByViewer bool
	BlockedByViewer  bool
	// PicID and PicURL describe the current profile picture. PicURL is
	// empty when the profile shows the default avatar.
	PicID  string
	PicURL string
}

func (p Profile) Visibility() Visibility {
	if p.IsPrivate {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// Accessible reports whether the session can see the profile's media.
func (p Profile) Accessible() bool {
	if p.BlockedByViewer {
		return false
	}
	return !p.IsPrivate || p.FollowedByViewer
}

// Picture returns the current profile picture as a plan item. A new picture
// gets a new remote id, so an unchanged picture is already known.
func (p Profile) Picture(seenAt time.Time) (RemoteMedia, bool) {
	if p.PicURL == "" {
		return RemoteMedia{}, false
	}

	key := p.PicID
	if key == "" {
		key = pictureKey(p.PicURL)
	}
	return RemoteMedia{
		RemoteID:   "pic_" + key,
		Kind:       MediaKindPhoto,
		Source:     SourceProfilePic,
		CapturedAt: seenAt.UTC().Truncate(time.Second),
		URL:        p.PicURL,
	}, true
}

// pictureKey hashes the path of a CDN url. The query holds a signature that
// changes between requests.
func pictureKey(raw string) string {
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}
