package imgdata

import (
	"errors"
	"testing"
	"time"
)

// testImage builds a 3x2 image for the given layout with a distinct value in
// every element.
func testImage(t *testing.T, l Layout) *Image {
	t.Helper()
	const w, h = 3, 2
	n := w * h * l.Channels()
	meta := NewMetadata()
	meta.CameraName = "testcam"
	meta.Exposure = 100 * time.Millisecond
	meta.Timestamp = time.Unix(1700000000, 0).UTC()
	meta.AddExtended("OBSERVER", "unit test")

	var (
		im  *Image
		err error
	)
	switch l.Depth() {
	case Depth8:
		data := make([]uint8, n)
		for i := range data {
			data[i] = uint8(i * 7)
		}
		im, err = NewImage8(l, w, h, data, meta)
	case Depth16:
		data := make([]uint16, n)
		for i := range data {
			data[i] = uint16(i * 1000)
		}
		im, err = NewImage16(l, w, h, data, meta)
	default:
		data := make([]float32, n)
		for i := range data {
			data[i] = float32(i) / float32(n)
		}
		im, err = NewImage32F(l, w, h, data, meta)
	}
	if err != nil {
		t.Fatalf("building %s test image: %v", l, err)
	}
	return im
}

func imagesEqual(t *testing.T, a, b *Image) {
	t.Helper()
	if a.Layout() != b.Layout() || a.Width() != b.Width() || a.Height() != b.Height() {
		t.Fatalf("tag mismatch: %s %dx%d vs %s %dx%d",
			a.Layout(), a.Width(), a.Height(), b.Layout(), b.Width(), b.Height())
	}
	for i, v := range a.Pix8() {
		if b.Pix8()[i] != v {
			t.Fatalf("pix8[%d]: expected %d got %d", i, v, b.Pix8()[i])
		}
	}
	for i, v := range a.Pix16() {
		if b.Pix16()[i] != v {
			t.Fatalf("pix16[%d]: expected %d got %d", i, v, b.Pix16()[i])
		}
	}
	for i, v := range a.Pix32F() {
		if b.Pix32F()[i] != v {
			t.Fatalf("pix32[%d]: expected %g got %g", i, v, b.Pix32F()[i])
		}
	}
	ma, mb := a.Metadata(), b.Metadata()
	if !ma.Timestamp.Equal(mb.Timestamp) {
		t.Fatalf("timestamp: expected %v got %v", ma.Timestamp, mb.Timestamp)
	}
	ma.Timestamp = mb.Timestamp
	if ma.String() != mb.String() {
		t.Fatalf("metadata mismatch:\n%s\nvs\n%s", ma, mb)
	}
}

func TestConvertRoundTripAllLayouts(t *testing.T) {
	for _, l := range allLayouts {
		im := testImage(t, l)
		var (
			back *Image
			err  error
		)
		switch l.Depth() {
		case Depth8:
			var b Buffer8
			if b, err = ToBuffer8(im); err == nil {
				back, err = FromBuffer8(b)
			}
		case Depth16:
			var b Buffer16
			if b, err = ToBuffer16(im); err == nil {
				back, err = FromBuffer16(b)
			}
		default:
			var b Buffer32F
			if b, err = ToBuffer32F(im); err == nil {
				back, err = FromBuffer32F(b)
			}
		}
		if err != nil {
			t.Fatalf("%s: round trip failed: %v", l, err)
		}
		imagesEqual(t, im, back)
	}
}

func TestConvertFamilyMismatch(t *testing.T) {
	im8 := testImage(t, RGB8)
	if _, err := ToBuffer16(im8); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("16-bit buffer from 8-bit image: expected ErrUnsupportedLayout, got %v", err)
	}
	if _, err := ToBuffer32F(im8); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("float buffer from 8-bit image: expected ErrUnsupportedLayout, got %v", err)
	}
	im16 := testImage(t, Mono16)
	if _, err := ToBuffer8(im16); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("8-bit buffer from 16-bit image: expected ErrUnsupportedLayout, got %v", err)
	}
}

func TestConvertShapeMismatchRejected(t *testing.T) {
	meta := NewMetadata()
	// one element short of 2x2 RGB8
	if _, err := NewImage8(RGB8, 2, 2, make([]uint8, 11), meta); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("short buffer: expected ErrShapeMismatch, got %v", err)
	}
	// one element too many
	if _, err := NewBuffer16(Mono16, 2, 2, make([]uint16, 5), meta); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("long buffer: expected ErrShapeMismatch, got %v", err)
	}
	b := Buffer8{Layout: RGBA8, Width: 2, Height: 2, Data: make([]uint8, 3)}
	if _, err := FromBuffer8(b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("FromBuffer8 with bad shape: expected ErrShapeMismatch, got %v", err)
	}
	b.Layout = Layout(42)
	b.Data = make([]uint8, 16)
	if _, err := FromBuffer8(b); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("FromBuffer8 with unknown layout: expected ErrUnsupportedLayout, got %v", err)
	}
}

func TestConvertDoesNotAliasSource(t *testing.T) {
	im := testImage(t, Mono8)
	b, err := ToBuffer8(im)
	if err != nil {
		t.Fatal(err)
	}
	b.Data[0] = 200
	if im.Pix8()[0] == 200 {
		t.Error("mutating the buffer reached the source image")
	}
}
