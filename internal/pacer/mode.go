package pacer

import (
	"fmt"
	"strings"
)

// Mode selects how the word sequence is presented.
type Mode int

const (
	// Run shows the whole text with the current word highlighted.
	Run Mode = iota
	// Flash shows only the current word, bionic-split.
	Flash
)

const modeCount = 2

// Style tags a rendered segment.
type Style int

const (
	Faded Style = iota
	Highlight
	Bold
	Plain
)

// Segment is one styled piece of a Frame. Word is the index of the word the
// text belongs to.
type Segment struct {
	Text  string
	Style Style
	Word  int
}

// Frame is the renderable output of a mode for one cursor position.
type Frame struct {
	Mode     Mode
	Index    int
	Segments []Segment
	// Done is set when the cursor sits on the end-of-sequence sentinel.
	Done bool
}

type modeSpec struct {
	name        string
	minFont     int
	maxFont     int
	defaultFont int
	render      func(words []string, index int) []Segment
}

var modeSpecs = [modeCount]modeSpec{
	Run: {
		name:        "run",
		minFont:     12,
		maxFont:     32,
		defaultFont: 18,
		render:      renderRun,
	},
	Flash: {
		name:        "flash",
		minFont:     24,
		maxFont:     96,
		defaultFont: 48,
		render:      renderFlash,
	},
}

func (m Mode) normalize() Mode {
	if m < 0 || int(m) >= modeCount {
		return Run
	}
	return m
}

func (m Mode) spec() modeSpec {
	return modeSpecs[m.normalize()]
}

// ParseMode maps a mode name ("run" or "flash") to a Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for i, spec := range modeSpecs {
		if spec.name == name {
			return Mode(i), nil
		}
	}
	return Run, fmt.Errorf("unknown mode %q (expected run or flash)", name)
}

func (m Mode) String() string {
	return m.spec().name
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == Flash {
		return Run
	}
	return Flash
}

// FontBounds returns the inclusive font size range and the default size in px.
func (m Mode) FontBounds() (minPx, maxPx, defaultPx int) {
	spec := m.spec()
	return spec.minFont, spec.maxFont, spec.defaultFont
}

// ClampFont clamps px into the mode's font range. Zero selects the default.
func (m Mode) ClampFont(px int) int {
	spec := m.spec()
	switch {
	case px == 0:
		return spec.defaultFont
	case px < spec.minFont:
		return spec.minFont
	case px > spec.maxFont:
		return spec.maxFont
	}
	return px
}

// Render builds the frame for the word at index.
func (m Mode) Render(words []string, index int) Frame {
	frame := Frame{Mode: m, Index: index}
	if len(words) > 0 && index >= len(words) {
		frame.Done = true
	}
	frame.Segments = m.spec().render(words, index)
	return frame
}

func renderRun(words []string, index int) []Segment {
	segments := make([]Segment, len(words))
	for i, word := range words {
		style := Faded
		if i == index {
			style = Highlight
		}
		segments[i] = Segment{Text: word, Style: style, Word: i}
	}
	return segments
}

func renderFlash(words []string, index int) []Segment {
	if index < 0 || index >= len(words) {
		return nil
	}
	bold, normal := BionicSplit(words[index])
	return []Segment{
		{Text: bold, Style: Bold, Word: index},
		{Text: normal, Style: Plain, Word: index},
	}
}
