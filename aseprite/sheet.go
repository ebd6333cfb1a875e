package aseprite

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"regexp"
	"sort"
	"strconv"
)

// ErrMalformed reports an export that does not decode into the expected shape.
var ErrMalformed = errors.New("aseprite: malformed export")

// Frame is one cell of the packed sheet, in sheet order.
type Frame struct {
	// Index is the frame's ordinal position in the sheet, usable as an
	// atlas index by a renderer.
	Index int
	// Duration is in seconds.
	Duration float64
}

// Clip is a named, ordered run of frames.
type Clip struct {
	Name   string
	Frames []Frame
}

// SpriteSheet is the parsed, shareable form of a sprite sheet export.
// It is read-only after Parse and may be referenced by any number of
// animation states without synchronization.
type SpriteSheet struct {
	// Image is the sheet texture path, relative to the export file.
	Image string
	// Size is the sheet texture size in pixels.
	Size Size
	// Rects is the atlas layout: one source rectangle per frame, in
	// frame order.
	Rects []image.Rectangle
	// Frames is ordered ascending by the numeric suffix extracted from
	// each export entry's name.
	Frames []Frame
	Clips  map[string]*Clip
}

// frameIndexPattern captures the trailing digit run of a frame name,
// ignoring a file extension if one is present ("player 7.aseprite" -> 7).
var frameIndexPattern = regexp.MustCompile(`(\d+)(?:\.[A-Za-z0-9]+)?$`)

// Parse decodes a sprite sheet export and builds its runtime form.
func Parse(b []byte) (*SpriteSheet, error) {
	data, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return ParseSheet(data), nil
}

// ParseSheet builds the runtime sheet from decoded export data.
//
// Entries whose names carry no numeric suffix are excluded from the frame
// order. Tag ranges are intersected with the valid index range; indices
// outside it are dropped, not errored.
func ParseSheet(data *Data) *SpriteSheet {
	if data == nil {
		return nil
	}

	type keyed struct {
		key   int
		value FrameValue
	}
	entries := make([]keyed, 0, len(data.Frames))
	for name, value := range data.Frames {
		m := frameIndexPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entries = append(entries, keyed{key: key, value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	sheet := &SpriteSheet{
		Image:  data.Meta.Image,
		Size:   data.Meta.Size,
		Rects:  make([]image.Rectangle, 0, len(entries)),
		Frames: make([]Frame, 0, len(entries)),
		Clips:  make(map[string]*Clip, len(data.Meta.FrameTags)),
	}
	for i, e := range entries {
		r := e.value.Frame
		sheet.Rects = append(sheet.Rects, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
		sheet.Frames = append(sheet.Frames, Frame{
			Index:    i,
			Duration: float64(e.value.Duration) / 1000.0,
		})
	}

	for _, tag := range data.Meta.FrameTags {
		clip := &Clip{Name: tag.Name}
		for i := tag.From; i <= tag.To; i++ {
			if i < 0 || i >= len(sheet.Frames) {
				continue
			}
			clip.Frames = append(clip.Frames, sheet.Frames[i])
		}
		sheet.Clips[tag.Name] = clip
	}

	return sheet
}

// Clip returns the named clip, or nil if the sheet doesn't define it.
func (s *SpriteSheet) Clip(name string) *Clip {
	if s == nil {
		return nil
	}
	return s.Clips[name]
}

// FrameRect returns the atlas rectangle for a sheet frame index.
func (s *SpriteSheet) FrameRect(index int) (image.Rectangle, bool) {
	if s == nil || index < 0 || index >= len(s.Rects) {
		return image.Rectangle{}, false
	}
	return s.Rects[index], true
}

// Decode unmarshals export bytes without building the runtime sheet.
func Decode(b []byte) (*Data, error) {
	var data Data
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &data, nil
}
