package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseVisibilityFilter(t *testing.T) {
	v, err := ParseVisibilityFilter("ALL")
	assert.NoError(t, err)
	assert.Equal(t, VisibilityAll, v)

	v, err = ParseVisibilityFilter("Private")
	assert.NoError(t, err)
	assert.Equal(t, VisibilityPrivate, v)

	_, err = ParseVisibilityFilter("friends")
	assert.Error(t, err)
}

func TestSanitizeAndValidateUsername(t *testing.T) {
	assert.Equal(t, "nasa", SanitizeUsername(" @NASA "))
	assert.NoError(t, ValidateUsername("nat.geo_1"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("has space"))
}

func TestProfileAccessible(t *testing.T) {
	assert.True(t, Profile{}.Accessible())
	assert.False(t, Profile{IsPrivate: true}.Accessible())
	assert.True(t, Profile{IsPrivate: true, FollowedByViewer: true}.Accessible())
	assert.False(t, Profile{BlockedByViewer: true}.Accessible())
	assert.Equal(t, VisibilityPrivate, Profile{IsPrivate: true}.Visibility())
}

func TestProfilePicture(t *testing.T) {
	seen := time.Date(2025, 6, 1, 8, 30, 15, 500, time.UTC)

	_, ok := Profile{}.Picture(seen)
	assert.False(t, ok, "default avatar")

	pic, ok := Profile{PicID: "3301_42", PicURL: "https://cdn/a.jpg?sig=1"}.Picture(seen)
	assert.True(t, ok)
	assert.Equal(t, "pic_3301_42", pic.RemoteID)
	assert.Equal(t, SourceProfilePic, pic.Source)
	assert.Equal(t, MediaKindPhoto, pic.Kind)
	assert.Equal(t, seen.Truncate(time.Second), pic.CapturedAt)
	assert.False(t, pic.Source.Ordered())

	a, _ := Profile{PicURL: "https://cdn/v/t51/p.jpg?sig=1"}.Picture(seen)
	b, _ := Profile{PicURL: "https://cdn/v/t51/p.jpg?sig=2"}.Picture(seen)
	c, _ := Profile{PicURL: "https://cdn/v/t51/q.jpg?sig=1"}.Picture(seen)
	assert.Equal(t, a.RemoteID, b.RemoteID, "signature does not change the id")
	assert.NotEqual(t, a.RemoteID, c.RemoteID)
	assert.LessOrEqual(t, len(a.RemoteID), 64)
}
