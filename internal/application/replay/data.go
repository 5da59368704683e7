// Package replay records and plays back the per-frame controls of a level attempt.
//
// A recording plus its seed and level name is enough to reproduce a run exactly,
// which makes it useful for chasing bugs that only show up after a few hundred frames.
package replay

import "github.com/younwookim/crumble/internal/domain/entity"

// Version is written into every recording
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	U  bool    `json:"u,omitempty"`  // Up (jump)
	D  bool    `json:"d,omitempty"`  // Down
	RS bool    `json:"rs,omitempty"` // Level restarted before this frame
	DT float64 `json:"dt"`           // Frame units
}

// Controls converts the recorded keys back into player controls
func (fi FrameInput) Controls() entity.Controls {
	return entity.Controls{Left: fi.L, Right: fi.R, Up: fi.U, Down: fi.D}
}

// ReplayData contains all data needed to replay a level attempt
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
