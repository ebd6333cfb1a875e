// Package animation advances per-instance sprite playback over elapsed
// time, using clip data parsed by the aseprite package.
package animation

import "github.com/hollowbyte/gravel/aseprite"

// DefaultSpeed is the playback speed applied to new states.
const DefaultSpeed = 2.0

// State tracks playback for a single animated instance. Each state is
// exclusively owned by its instance; the shared SpriteSheet is read-only.
type State struct {
	clip      string
	frame     int // position within the current clip
	sheetIdx  int // sheet frame index of the displayed frame
	duration  float64
	remaining float64
	loop      bool
	dirty     bool
	frozen    bool
	speed     float64
}

// NewState returns a state ready for its first SetClip/Advance.
func NewState() *State {
	return &State{loop: true, dirty: true, speed: DefaultSpeed}
}

// SetClip selects the clip to play. Selecting the already-active clip is a
// no-op: frame index and timer are left untouched. Any other name resets
// the frame index to zero and marks the state dirty so the next Advance
// commits frame 0 before timer-driven playback resumes.
func (s *State) SetClip(name string, loop bool) {
	if s == nil || name == s.clip {
		return
	}
	s.clip = name
	s.frame = 0
	s.loop = loop
	s.dirty = true
	s.frozen = false
}

// SetSpeed changes the playback speed multiplier. It takes effect when the
// next frame duration is committed.
func (s *State) SetSpeed(speed float64) {
	if s == nil || speed <= 0 {
		return
	}
	s.speed = speed
}

// Advance moves playback forward by elapsed seconds.
//
// A dirty state commits frame 0 of the current clip and consumes no
// elapsed time. A non-looping clip whose last frame timer has expired is
// frozen: frame index and timer stop changing until SetClip selects a new
// clip. A clip with no frames leaves the state as a permanent no-op.
func (s *State) Advance(sheet *aseprite.SpriteSheet, elapsed float64) {
	if s == nil || sheet == nil {
		return
	}
	clip := sheet.Clip(s.clip)

	if s.dirty {
		if clip != nil && len(clip.Frames) > 0 {
			s.commit(clip, 0)
		}
		s.dirty = false
		return
	}
	if s.frozen || clip == nil || len(clip.Frames) == 0 {
		return
	}

	s.remaining -= elapsed
	if s.remaining > 0 {
		return
	}
	if s.frame >= len(clip.Frames)-1 {
		if s.loop {
			s.commit(clip, 0)
			return
		}
		s.frozen = true
		return
	}
	s.commit(clip, s.frame+1)
}

func (s *State) commit(clip *aseprite.Clip, frame int) {
	s.frame = frame
	s.sheetIdx = clip.Frames[frame].Index
	s.duration = clip.Frames[frame].Duration / s.speed
	s.remaining = s.duration
}

// Clip returns the active clip name.
func (s *State) Clip() string {
	if s == nil {
		return ""
	}
	return s.clip
}

// FrameIndex returns the position within the active clip.
func (s *State) FrameIndex() int {
	if s == nil {
		return 0
	}
	return s.frame
}

// SheetIndex returns the sheet frame index of the displayed frame, for
// use as an atlas index by a renderer.
func (s *State) SheetIndex() int {
	if s == nil {
		return 0
	}
	return s.sheetIdx
}

// Remaining returns the seconds left on the current frame's timer.
func (s *State) Remaining() float64 {
	if s == nil {
		return 0
	}
	return s.remaining
}

// Frozen reports whether a non-looping clip has finished and playback is
// halted until a new clip is selected.
func (s *State) Frozen() bool {
	return s != nil && s.frozen
}

// Tick advances every state by the same elapsed time. Hosts call this
// once per update pass; no state is shared between instances, so no
// locking is involved.
func Tick(sheet *aseprite.SpriteSheet, elapsed float64, states ...*State) {
	for _, s := range states {
		s.Advance(sheet, elapsed)
	}
}
