package imgdata

import "fmt"

// Conversion between the runtime-tagged Image and the typed buffers.  Both
// directions copy pixel data and clone metadata, so neither side ever
// aliases the other, and both directions are exact: for every supported
// layout, FromBuffer(ToBuffer(img)) reproduces img pixel for pixel and
// metadata for metadata.

func errFamilyMismatch(l Layout, want Depth) error {
	return fmt.Errorf("%w: %s stores %s elements, not %s", ErrUnsupportedLayout, l, l.Depth(), want)
}

// ToBuffer8 extracts a typed 8-bit buffer from an image.  Fails with
// ErrUnsupportedLayout if the image's layout is not in the 8-bit family.
func ToBuffer8(im *Image) (Buffer8, error) {
	if im.layout.Depth() != Depth8 {
		return Buffer8{}, errFamilyMismatch(im.layout, Depth8)
	}
	data := make([]uint8, len(im.pix8))
	copy(data, im.pix8)
	return Buffer8{Meta: im.meta.Clone(), Data: data, Width: im.width, Height: im.height, Layout: im.layout}, nil
}

// ToBuffer16 extracts a typed 16-bit buffer from an image.  Fails with
// ErrUnsupportedLayout if the image's layout is not in the 16-bit family.
func ToBuffer16(im *Image) (Buffer16, error) {
	if im.layout.Depth() != Depth16 {
		return Buffer16{}, errFamilyMismatch(im.layout, Depth16)
	}
	data := make([]uint16, len(im.pix16))
	copy(data, im.pix16)
	return Buffer16{Meta: im.meta.Clone(), Data: data, Width: im.width, Height: im.height, Layout: im.layout}, nil
}

// ToBuffer32F extracts a typed float buffer from an image.  Fails with
// ErrUnsupportedLayout if the image's layout is not in the float family.
func ToBuffer32F(im *Image) (Buffer32F, error) {
	if im.layout.Depth() != Depth32F {
		return Buffer32F{}, errFamilyMismatch(im.layout, Depth32F)
	}
	data := make([]float32, len(im.pix32))
	copy(data, im.pix32)
	return Buffer32F{Meta: im.meta.Clone(), Data: data, Width: im.width, Height: im.height, Layout: im.layout}, nil
}

// FromBuffer8 reconstructs an image from a typed 8-bit buffer, re-validating
// the layout and the shape invariant.
func FromBuffer8(b Buffer8) (*Image, error) {
	if err := checkBuffer(b.Layout, Depth8, b.Width, b.Height, len(b.Data)); err != nil {
		return nil, err
	}
	data := make([]uint8, len(b.Data))
	copy(data, b.Data)
	return &Image{layout: b.Layout, width: b.Width, height: b.Height, pix8: data, meta: b.Meta.Clone()}, nil
}

// FromBuffer16 reconstructs an image from a typed 16-bit buffer.
func FromBuffer16(b Buffer16) (*Image, error) {
	if err := checkBuffer(b.Layout, Depth16, b.Width, b.Height, len(b.Data)); err != nil {
		return nil, err
	}
	data := make([]uint16, len(b.Data))
	copy(data, b.Data)
	return &Image{layout: b.Layout, width: b.Width, height: b.Height, pix16: data, meta: b.Meta.Clone()}, nil
}

// FromBuffer32F reconstructs an image from a typed float buffer.
func FromBuffer32F(b Buffer32F) (*Image, error) {
	if err := checkBuffer(b.Layout, Depth32F, b.Width, b.Height, len(b.Data)); err != nil {
		return nil, err
	}
	data := make([]float32, len(b.Data))
	copy(data, b.Data)
	return &Image{layout: b.Layout, width: b.Width, height: b.Height, pix32: data, meta: b.Meta.Clone()}, nil
}
