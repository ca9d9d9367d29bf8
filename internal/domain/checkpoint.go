package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Position orders posts by capture time, then by remote id.
type Position struct {
	TakenAt  time.Time
	RemoteID string
}

func (p Position) IsZero() bool {
	return p.TakenAt.IsZero() && p.RemoteID == ""
}

func (p Position) Compare(o Position) int {
	switch {
	case p.TakenAt.Before(o.TakenAt):
		return -1
	case p.TakenAt.After(o.TakenAt):
		return 1
	case p.RemoteID < o.RemoteID:
		return -1
	case p.RemoteID > o.RemoteID:
		return 1
	default:
		return 0
	}
}

func maxPosition(a, b Position) Position {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Checkpoint marks how far a target's post history is confirmed.
//
// Every post at or below Floor is recorded. Top and Resume describe a pass
// that has not finished yet: Top is the newest post it committed and Resume
// the last post of its contiguous committed prefix.
type Checkpoint struct {
	Floor  Position
	Top    Position
	Resume Position
}

func (c Checkpoint) IsZero() bool {
	return c.Floor.IsZero() && c.Top.IsZero() && c.Resume.IsZero()
}

// Covers reports whether p lies in the already synced region.
func (c Checkpoint) Covers(p Position) bool {
	return !c.Floor.IsZero() && p.Compare(c.Floor) <= 0
}

// Advance applies the committed posts of one run (in plan order) to c.
// passComplete means the whole region above Floor was listed and every
// planned item was accounted for. Floor never moves down.
func (c Checkpoint) Advance(committed []Position, passComplete bool) Checkpoint {
	next := c
	for _, p := range committed {
		next.Top = maxPosition(next.Top, p)
	}

	if passComplete {
		next.Floor = maxPosition(next.Floor, next.Top)
		next.Top = Position{}
		next.Resume = Position{}
		return next
	}

	if len(committed) > 0 {
		next.Resume = committed[len(committed)-1]
	}
	return next
}

type positionWire struct {
	At int64  `json:"at"`
	ID string `json:"id"`
}

type checkpointWire struct {
	Floor  *positionWire `json:"floor,omitempty"`
	Top    *positionWire `json:"top,omitempty"`
	Resume *positionWire `json:"resume,omitempty"`
}

func toWire(p Position) *positionWire {
	if p.IsZero() {
		return nil
	}
	return &positionWire{At: p.TakenAt.UnixNano(), ID: p.RemoteID}
}

func fromWire(w *positionWire) Position {
	if w == nil {
		return Position{}
	}
	return Position{TakenAt: time.Unix(0, w.At).UTC(), RemoteID: w.ID}
}

// Encode returns the opaque stored form; an empty checkpoint encodes to "".
func (c Checkpoint) Encode() (string, error) {
	if c.IsZero() {
		return "", nil
	}
	b, err := json.Marshal(checkpointWire{
		Floor:  toWire(c.Floor),
		Top:    toWire(c.Top),
		Resume: toWire(c.Resume),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return string(b), nil
}

func DecodeCheckpoint(s string) (Checkpoint, error) {
	if s == "" {
		return Checkpoint{}, nil
	}
	var w checkpointWire
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return Checkpoint{}, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return Checkpoint{
		Floor:  fromWire(w.Floor),
		Top:    fromWire(w.Top),
		Resume: fromWire(w.Resume),
	}, nil
}
