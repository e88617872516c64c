// Package imgdata provides the typed image and metadata representation used
// across the camera data path: the closed set of pixel storage layouts, the
// acquisition metadata record, the flat typed pixel buffers, and the
// conversion and serialization routines between them.
package imgdata

import "fmt"

// Depth is the storage element family of a pixel layout.
type Depth int

const (
	// Depth8 is 8-bit unsigned storage
	Depth8 Depth = iota
	// Depth16 is 16-bit unsigned storage
	Depth16
	// Depth32F is 32-bit float storage
	Depth32F
)

func (d Depth) String() string {
	switch d {
	case Depth8:
		return "8-bit unsigned"
	case Depth16:
		return "16-bit unsigned"
	case Depth32F:
		return "32-bit float"
	}
	return "unknown"
}

// Layout identifies one of the supported pixel storage layouts.  The numeric
// values are persisted in serialized records; they must never be renumbered.
type Layout int

const (
	// Mono8 is single channel, 8 bits per pixel
	Mono8 Layout = 1
	// Mono16 is single channel, 16 bits per pixel
	Mono16 Layout = 2
	// LumaAlpha8 is luma + alpha, 8 bits per channel
	LumaAlpha8 Layout = 3
	// LumaAlpha16 is luma + alpha, 16 bits per channel
	LumaAlpha16 Layout = 4
	// RGB8 is red, green, blue, 8 bits per channel
	RGB8 Layout = 5
	// RGB16 is red, green, blue, 16 bits per channel
	RGB16 Layout = 6
	// RGB32F is red, green, blue, 32-bit float per channel
	RGB32F Layout = 7
	// RGBA8 is red, green, blue, alpha, 8 bits per channel
	RGBA8 Layout = 8
	// RGBA16 is red, green, blue, alpha, 16 bits per channel
	RGBA16 Layout = 9
	// RGBA32F is red, green, blue, alpha, 32-bit float per channel
	RGBA32F Layout = 10
)

type layoutInfo struct {
	name     string
	depth    Depth
	channels []string
}

var layouts = map[Layout]layoutInfo{
	Mono8:       {"Mono8", Depth8, []string{"IMAGE"}},
	Mono16:      {"Mono16", Depth16, []string{"IMAGE"}},
	LumaAlpha8:  {"LumaAlpha8", Depth8, []string{"LUMA", "ALPHA"}},
	LumaAlpha16: {"LumaAlpha16", Depth16, []string{"LUMA", "ALPHA"}},
	RGB8:        {"RGB8", Depth8, []string{"RED", "GREEN", "BLUE"}},
	RGB16:       {"RGB16", Depth16, []string{"RED", "GREEN", "BLUE"}},
	RGB32F:      {"RGB32F", Depth32F, []string{"RED", "GREEN", "BLUE"}},
	RGBA8:       {"RGBA8", Depth8, []string{"RED", "GREEN", "BLUE", "ALPHA"}},
	RGBA16:      {"RGBA16", Depth16, []string{"RED", "GREEN", "BLUE", "ALPHA"}},
	RGBA32F:     {"RGBA32F", Depth32F, []string{"RED", "GREEN", "BLUE", "ALPHA"}},
}

// Valid reports whether l is a member of the closed layout set.
func (l Layout) Valid() bool {
	_, ok := layouts[l]
	return ok
}

func (l Layout) String() string {
	if info, ok := layouts[l]; ok {
		return info.name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Channels returns the number of channels in the layout, zero if unknown.
func (l Layout) Channels() int {
	if info, ok := layouts[l]; ok {
		return len(info.channels)
	}
	return 0
}

// Depth returns the storage element family of the layout.
func (l Layout) Depth() Depth {
	if info, ok := layouts[l]; ok {
		return info.depth
	}
	return Depth(-1)
}

// ChannelNames returns the channel semantic names in interleave order.  These
// double as the FITS extension names for each channel plane.
func (l Layout) ChannelNames() []string {
	if info, ok := layouts[l]; ok {
		out := make([]string, len(info.channels))
		copy(out, info.channels)
		return out
	}
	return nil
}

// Code returns the stable numeric code for the layout, used in the
// serialized record form.
func (l Layout) Code() int {
	return int(l)
}

// LayoutFromCode maps a persisted numeric code back to a layout.
func LayoutFromCode(code int) (Layout, error) {
	l := Layout(code)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: layout code %d", ErrUnsupportedLayout, code)
	}
	return l, nil
}
