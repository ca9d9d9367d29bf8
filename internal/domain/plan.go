package domain

import (
	"sort"
)

// Plan is the ordered set of items a reconciliation found missing locally.
type Plan struct {
	Target  Target
	Profile *Profile
	// Items are ordered newest-first.
	Items []RemoteMedia
	// Complete is false when the listing was cut short, e.g. by the per-run
	// item cap, so the region above the checkpoint floor was not fully seen.
	Complete bool
	// Denied is set when the session cannot see the profile's media. Items
	// then hold at most the profile picture.
	Denied error
}

// SortNewestFirst orders items by capture time, newest first. Ties are
// broken by remote id so the order is deterministic.
func SortNewestFirst(items []RemoteMedia) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position().Compare(items[j].Position()) > 0
	})
}

// SyncResult is what the persistence writer commits for one target.
type SyncResult struct {
	Target  Target
	Profile *Profile
	// Committed items in plan order, with bytes already in place.
	Committed []MediaItem
	// Contiguous is the number of leading Committed items with no failed
	// post ahead of them.
	Contiguous int
	// PassComplete is true when the plan was complete and fully processed.
	PassComplete bool
	Run          SyncRun
}

// CommittedPositions returns the positions of committed posts in plan order
// up to the first failed post. A complete pass has no failed post.
func (r SyncResult) CommittedPositions() []Position {
	items := r.Committed
	if !r.PassComplete && r.Contiguous < len(items) {
		items = items[:r.Contiguous]
	}

	var positions []Position
	for _, item := range items {
		if item.Source.Ordered() {
			positions = append(positions, Position{TakenAt: item.CapturedAt, RemoteID: item.RemoteID})
		}
	}
	return positions
}
