package imgdata

import (
	"fmt"
	"image"
	"image/color"
)

// Image is the runtime-tagged image representation produced by a capture.
// Pixel data is stored flat, row major and channel interleaved, in exactly
// one of three stores selected by the layout's element family.  Construction
// always validates the shape invariant
// len(data) == width*height*channels; a constructed Image never violates it.
type Image struct {
	layout Layout
	width  int
	height int

	pix8  []uint8
	pix16 []uint16
	pix32 []float32

	meta Metadata
}

func checkShape(l Layout, width, height, n int) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedLayout, l)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %d x %d", ErrInvalidValue, width, height)
	}
	if want := width * height * l.Channels(); n != want {
		return fmt.Errorf("%w: have %d elements, want %d (%d x %d x %d)",
			ErrShapeMismatch, n, want, width, height, l.Channels())
	}
	return nil
}

// NewImage8 constructs an image over an 8-bit layout.  The data slice is
// adopted, not copied.
func NewImage8(l Layout, width, height int, data []uint8, meta Metadata) (*Image, error) {
	if err := checkShape(l, width, height, len(data)); err != nil {
		return nil, err
	}
	if l.Depth() != Depth8 {
		return nil, fmt.Errorf("%w: %s is not an 8-bit layout", ErrUnsupportedLayout, l)
	}
	return &Image{layout: l, width: width, height: height, pix8: data, meta: meta.Clone()}, nil
}

// NewImage16 constructs an image over a 16-bit layout.
func NewImage16(l Layout, width, height int, data []uint16, meta Metadata) (*Image, error) {
	if err := checkShape(l, width, height, len(data)); err != nil {
		return nil, err
	}
	if l.Depth() != Depth16 {
		return nil, fmt.Errorf("%w: %s is not a 16-bit layout", ErrUnsupportedLayout, l)
	}
	return &Image{layout: l, width: width, height: height, pix16: data, meta: meta.Clone()}, nil
}

// NewImage32F constructs an image over a 32-bit float layout.
func NewImage32F(l Layout, width, height int, data []float32, meta Metadata) (*Image, error) {
	if err := checkShape(l, width, height, len(data)); err != nil {
		return nil, err
	}
	if l.Depth() != Depth32F {
		return nil, fmt.Errorf("%w: %s is not a float layout", ErrUnsupportedLayout, l)
	}
	return &Image{layout: l, width: width, height: height, pix32: data, meta: meta.Clone()}, nil
}

// Layout returns the runtime layout tag.
func (im *Image) Layout() Layout { return im.layout }

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Metadata returns a copy of the attached metadata record.
func (im *Image) Metadata() Metadata { return im.meta.Clone() }

// SetMetadata replaces the attached metadata record with a copy of meta.
func (im *Image) SetMetadata(meta Metadata) { im.meta = meta.Clone() }

// AddExtended appends one (key, value) pair to the attached metadata.
func (im *Image) AddExtended(key, value string) { im.meta.AddExtended(key, value) }

// Pix8 returns the flat interleaved store for 8-bit layouts, nil otherwise.
func (im *Image) Pix8() []uint8 { return im.pix8 }

// Pix16 returns the flat interleaved store for 16-bit layouts, nil otherwise.
func (im *Image) Pix16() []uint16 { return im.pix16 }

// Pix32F returns the flat interleaved store for float layouts, nil otherwise.
func (im *Image) Pix32F() []float32 { return im.pix32 }

func (im *Image) String() string {
	return fmt.Sprintf("%sLayout: %s, Size: %d x %d", im.meta, im.layout, im.width, im.height)
}

// FromImage converts a stdlib image into the tagged representation, copying
// pixel data into the canonical interleaved order.  Gray maps to Mono8,
// Gray16 to Mono16, RGBA/NRGBA to RGBA8 and RGBA64/NRGBA64 to RGBA16.
// Other stdlib types are outside the closed layout set.
func FromImage(src image.Image, meta Metadata) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	switch img := src.(type) {
	case *image.Gray:
		return NewImage8(Mono8, w, h, packStride(img.Pix, img.Stride, w, h, 1), meta)
	case *image.Gray16:
		return NewImage16(Mono16, w, h, packWide(img.Pix, img.Stride, w, h, 1), meta)
	case *image.RGBA:
		return NewImage8(RGBA8, w, h, packStride(img.Pix, img.Stride, w, h, 4), meta)
	case *image.NRGBA:
		return NewImage8(RGBA8, w, h, packStride(img.Pix, img.Stride, w, h, 4), meta)
	case *image.RGBA64:
		return NewImage16(RGBA16, w, h, packWide(img.Pix, img.Stride, w, h, 4), meta)
	case *image.NRGBA64:
		return NewImage16(RGBA16, w, h, packWide(img.Pix, img.Stride, w, h, 4), meta)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedLayout, src)
	}
}

// packStride drops row padding from a strided 8-bit pixel store.
func packStride(pix []uint8, stride, w, h, channels int) []uint8 {
	row := w * channels
	out := make([]uint8, row*h)
	for y := 0; y < h; y++ {
		copy(out[y*row:(y+1)*row], pix[y*stride:y*stride+row])
	}
	return out
}

// packWide converts a strided big-endian 16-bit pixel store to uint16s.
func packWide(pix []uint8, stride, w, h, channels int) []uint16 {
	row := w * channels
	out := make([]uint16, row*h)
	for y := 0; y < h; y++ {
		src := pix[y*stride:]
		for x := 0; x < row; x++ {
			out[y*row+x] = uint16(src[2*x])<<8 | uint16(src[2*x+1])
		}
	}
	return out
}

// ToImage converts the tagged representation back to a stdlib image for the
// layouts that have an exact stdlib counterpart.  RGB layouts come back as
// NRGBA/NRGBA64 with opaque alpha; float layouts have no stdlib counterpart.
func (im *Image) ToImage() (image.Image, error) {
	r := image.Rect(0, 0, im.width, im.height)
	switch im.layout {
	case Mono8:
		out := image.NewGray(r)
		copyRows8(out.Pix, out.Stride, im.pix8, im.width, im.height, 1)
		return out, nil
	case Mono16:
		out := image.NewGray16(r)
		copyRows16(out.Pix, out.Stride, im.pix16, im.width, im.height, 1)
		return out, nil
	case RGBA8:
		out := image.NewNRGBA(r)
		copyRows8(out.Pix, out.Stride, im.pix8, im.width, im.height, 4)
		return out, nil
	case RGBA16:
		out := image.NewNRGBA64(r)
		copyRows16(out.Pix, out.Stride, im.pix16, im.width, im.height, 4)
		return out, nil
	case RGB8:
		out := image.NewNRGBA(r)
		for i := 0; i < im.width*im.height; i++ {
			out.Pix[4*i+0] = im.pix8[3*i+0]
			out.Pix[4*i+1] = im.pix8[3*i+1]
			out.Pix[4*i+2] = im.pix8[3*i+2]
			out.Pix[4*i+3] = 0xff
		}
		return out, nil
	case RGB16:
		out := image.NewNRGBA64(r)
		for i := 0; i < im.width*im.height; i++ {
			put16(out.Pix[8*i:], im.pix16[3*i+0])
			put16(out.Pix[8*i+2:], im.pix16[3*i+1])
			put16(out.Pix[8*i+4:], im.pix16[3*i+2])
			put16(out.Pix[8*i+6:], 0xffff)
		}
		return out, nil
	case LumaAlpha8:
		out := image.NewNRGBA(r)
		for i := 0; i < im.width*im.height; i++ {
			v := im.pix8[2*i]
			out.Pix[4*i+0] = v
			out.Pix[4*i+1] = v
			out.Pix[4*i+2] = v
			out.Pix[4*i+3] = im.pix8[2*i+1]
		}
		return out, nil
	case LumaAlpha16:
		out := image.NewNRGBA64(r)
		for i := 0; i < im.width*im.height; i++ {
			v := im.pix16[2*i]
			put16(out.Pix[8*i:], v)
			put16(out.Pix[8*i+2:], v)
			put16(out.Pix[8*i+4:], v)
			put16(out.Pix[8*i+6:], im.pix16[2*i+1])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s has no stdlib image counterpart", ErrUnsupportedLayout, im.layout)
	}
}

func put16(dst []uint8, v uint16) {
	dst[0] = uint8(v >> 8)
	dst[1] = uint8(v)
}

func copyRows8(dst []uint8, stride int, src []uint8, w, h, channels int) {
	row := w * channels
	for y := 0; y < h; y++ {
		copy(dst[y*stride:y*stride+row], src[y*row:(y+1)*row])
	}
}

func copyRows16(dst []uint8, stride int, src []uint16, w, h, channels int) {
	row := w * channels
	for y := 0; y < h; y++ {
		for x := 0; x < row; x++ {
			put16(dst[y*stride+2*x:], src[y*row+x])
		}
	}
}

// BT.709 luma weights, scaled by 10000
const (
	lumaR = 2126
	lumaG = 7152
	lumaB = 722
)

// Luma16 flattens the image to a single 16-bit luma plane.  Mono and luma
// layouts pass their luma channel through (8-bit values are scaled to the
// 16-bit domain); color layouts are weighted with the BT.709 coefficients;
// float channels are clamped to [0, 1] before scaling.  The exposure
// optimizer samples this plane.
func (im *Image) Luma16() []uint16 {
	n := im.width * im.height
	out := make([]uint16, n)
	ch := im.layout.Channels()
	switch im.layout.Depth() {
	case Depth8:
		for i := 0; i < n; i++ {
			out[i] = widen8(luma8(im.pix8[i*ch:], im.layout))
		}
	case Depth16:
		for i := 0; i < n; i++ {
			out[i] = luma16(im.pix16[i*ch:], im.layout)
		}
	case Depth32F:
		for i := 0; i < n; i++ {
			out[i] = lumaF(im.pix32[i*ch:], im.layout)
		}
	}
	return out
}

// widen8 maps 0..255 onto 0..65535
func widen8(v uint8) uint16 {
	return uint16(v) * 257
}

func luma8(px []uint8, l Layout) uint8 {
	switch l {
	case Mono8, LumaAlpha8:
		return px[0]
	default: // RGB8, RGBA8
		return uint8((lumaR*uint32(px[0]) + lumaG*uint32(px[1]) + lumaB*uint32(px[2])) / 10000)
	}
}

func luma16(px []uint16, l Layout) uint16 {
	switch l {
	case Mono16, LumaAlpha16:
		return px[0]
	default: // RGB16, RGBA16
		return uint16((lumaR*uint64(px[0]) + lumaG*uint64(px[1]) + lumaB*uint64(px[2])) / 10000)
	}
}

func lumaF(px []float32, l Layout) uint16 {
	// RGB32F, RGBA32F
	v := (lumaR*float64(px[0]) + lumaG*float64(px[1]) + lumaB*float64(px[2])) / 10000
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v * 65535)
}

// At returns the color at (x, y) for layouts with a stdlib counterpart; it
// exists so an Image can be inspected without a full ToImage conversion.
func (im *Image) At(x, y int) color.Color {
	i := y*im.width + x
	switch im.layout {
	case Mono8:
		return color.Gray{Y: im.pix8[i]}
	case Mono16:
		return color.Gray16{Y: im.pix16[i]}
	case RGBA8:
		return color.NRGBA{R: im.pix8[4*i], G: im.pix8[4*i+1], B: im.pix8[4*i+2], A: im.pix8[4*i+3]}
	case RGBA16:
		return color.NRGBA64{R: im.pix16[4*i], G: im.pix16[4*i+1], B: im.pix16[4*i+2], A: im.pix16[4*i+3]}
	default:
		return color.Gray16{Y: im.Luma16()[i]}
	}
}
