package imgdata

import (
	"errors"
	"testing"
)

var allLayouts = []Layout{
	Mono8, Mono16, LumaAlpha8, LumaAlpha16,
	RGB8, RGB16, RGB32F, RGBA8, RGBA16, RGBA32F,
}

func TestLayoutCodeRoundTrip(t *testing.T) {
	for _, l := range allLayouts {
		got, err := LayoutFromCode(l.Code())
		if err != nil {
			t.Fatalf("%s: %v", l, err)
		}
		if got != l {
			t.Errorf("code %d mapped to %s, expected %s", l.Code(), got, l)
		}
	}
}

func TestLayoutCodesStable(t *testing.T) {
	// persisted records depend on these exact values
	want := map[Layout]int{
		Mono8: 1, Mono16: 2, LumaAlpha8: 3, LumaAlpha16: 4,
		RGB8: 5, RGB16: 6, RGB32F: 7, RGBA8: 8, RGBA16: 9, RGBA32F: 10,
	}
	for l, code := range want {
		if l.Code() != code {
			t.Errorf("%s code changed: expected %d got %d", l, code, l.Code())
		}
	}
}

func TestLayoutUnknownCodeRejected(t *testing.T) {
	for _, code := range []int{0, -1, 11, 255} {
		if _, err := LayoutFromCode(code); !errors.Is(err, ErrUnsupportedLayout) {
			t.Errorf("code %d: expected ErrUnsupportedLayout, got %v", code, err)
		}
	}
}

func TestLayoutChannelsAndDepth(t *testing.T) {
	cases := []struct {
		l        Layout
		channels int
		depth    Depth
	}{
		{Mono8, 1, Depth8},
		{Mono16, 1, Depth16},
		{LumaAlpha8, 2, Depth8},
		{LumaAlpha16, 2, Depth16},
		{RGB8, 3, Depth8},
		{RGB16, 3, Depth16},
		{RGB32F, 3, Depth32F},
		{RGBA8, 4, Depth8},
		{RGBA16, 4, Depth16},
		{RGBA32F, 4, Depth32F},
	}
	for _, tc := range cases {
		if tc.l.Channels() != tc.channels {
			t.Errorf("%s: expected %d channels, got %d", tc.l, tc.channels, tc.l.Channels())
		}
		if tc.l.Depth() != tc.depth {
			t.Errorf("%s: expected depth %s, got %s", tc.l, tc.depth, tc.l.Depth())
		}
		if len(tc.l.ChannelNames()) != tc.channels {
			t.Errorf("%s: channel name count %d does not match channel count %d",
				tc.l, len(tc.l.ChannelNames()), tc.channels)
		}
	}
}
