package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(minute int, id string) Position {
	return Position{TakenAt: time.Date(2025, 1, 1, 0, minute, 0, 0, time.UTC), RemoteID: id}
}

func TestCheckpoint_AdvanceCompletePass(t *testing.T) {
	cp := Checkpoint{Floor: pos(1, "a")}

	next := cp.Advance([]Position{pos(9, "i"), pos(8, "h"), pos(2, "b")}, true)

	assert.Equal(t, pos(9, "i"), next.Floor)
	assert.True(t, next.Top.IsZero())
	assert.True(t, next.Resume.IsZero())
}

func TestCheckpoint_AdvanceStopsAtFailure(t *testing.T) {
	cp := Checkpoint{Floor: pos(0, "z")}
	// Items #1..#4 committed, #5 failed.
	committed := []Position{pos(10, "p1"), pos(9, "p2"), pos(8, "p3"), pos(7, "p4")}

	next := cp.Advance(committed, false)

	assert.Equal(t, pos(0, "z"), next.Floor, "floor must not pass a failed item")
	assert.Equal(t, pos(10, "p1"), next.Top)
	assert.Equal(t, pos(7, "p4"), next.Resume)
}

func TestCheckpoint_ResumedPassCompletes(t *testing.T) {
	cp := Checkpoint{Floor: pos(0, "z"), Top: pos(10, "p1"), Resume: pos(7, "p4")}

	next := cp.Advance([]Position{pos(6, "p5"), pos(5, "p6")}, true)

	assert.Equal(t, pos(10, "p1"), next.Floor)
	assert.True(t, next.Resume.IsZero())
}

func TestCheckpoint_NothingNew(t *testing.T) {
	cp := Checkpoint{Floor: pos(5, "e")}
	assert.Equal(t, cp, cp.Advance(nil, true))
	assert.Equal(t, cp, cp.Advance(nil, false))
}

func TestCheckpoint_FloorNeverRegresses(t *testing.T) {
	cp := Checkpoint{Floor: pos(30, "new")}
	next := cp.Advance([]Position{pos(3, "old")}, true)
	assert.Equal(t, pos(30, "new"), next.Floor)
}

func TestCheckpoint_Covers(t *testing.T) {
	assert.False(t, Checkpoint{}.Covers(pos(1, "a")))

	cp := Checkpoint{Floor: pos(5, "e")}
	assert.True(t, cp.Covers(pos(5, "e")))
	assert.True(t, cp.Covers(pos(4, "x")))
	assert.False(t, cp.Covers(pos(6, "a")))
}

func TestCheckpoint_EncodeDecode(t *testing.T) {
	empty, err := Checkpoint{}.Encode()
	require.NoError(t, err)
	assert.Empty(t, empty)

	cp := Checkpoint{Floor: pos(1, "a"), Resume: pos(3, "c")}
	s, err := cp.Encode()
	require.NoError(t, err)

	decoded, err := DecodeCheckpoint(s)
	require.NoError(t, err)
	assert.True(t, decoded.Floor.TakenAt.Equal(cp.Floor.TakenAt))
	assert.Equal(t, cp.Floor.RemoteID, decoded.Floor.RemoteID)
	assert.True(t, decoded.Top.IsZero())
	assert.Equal(t, "c", decoded.Resume.RemoteID)

	_, err = DecodeCheckpoint("{not json")
	assert.Error(t, err)
}

func TestSortNewestFirst(t *testing.T) {
	items := []RemoteMedia{
		{RemoteID: "old", CapturedAt: pos(1, "").TakenAt},
		{RemoteID: "b", CapturedAt: pos(5, "").TakenAt},
		{RemoteID: "new", CapturedAt: pos(9, "").TakenAt},
		{RemoteID: "c", CapturedAt: pos(5, "").TakenAt},
	}

	SortNewestFirst(items)

	var ids []string
	for _, it := range items {
		ids = append(ids, it.RemoteID)
	}
	assert.Equal(t, []string{"new", "c", "b", "old"}, ids)
}

func TestSyncResult_CommittedPositions(t *testing.T) {
	item := func(minute int, id string, source Source) MediaItem {
		return MediaItem{RemoteID: id, Source: source, CapturedAt: pos(minute, id).TakenAt}
	}
	committed := []MediaItem{
		item(9, "p9", SourcePosts),
		item(8, "s8", SourceStories),
		item(7, "p7", SourcePosts),
		// p6 failed
		item(5, "p5", SourcePosts),
	}

	open := SyncResult{Committed: committed, Contiguous: 3}
	assert.Equal(t, []Position{pos(9, "p9"), pos(7, "p7")}, open.CommittedPositions())

	done := SyncResult{Committed: committed, PassComplete: true}
	assert.Equal(t, []Position{pos(9, "p9"), pos(7, "p7"), pos(5, "p5")}, done.CommittedPositions())
}
