package imgdata

// The typed buffers are a closed union of three concrete kinds, one per
// storage element family.  Only these three families are ever valid, so the
// union replaces an open-ended generic and makes layout/element mismatches
// a constructor-time error instead of a runtime type assertion.

// Buffer8 is a flat, layout-tagged pixel buffer over 8-bit unsigned elements.
type Buffer8 struct {
	Meta   Metadata
	Data   []uint8
	Width  int
	Height int
	Layout Layout
}

// Buffer16 is a flat, layout-tagged pixel buffer over 16-bit unsigned elements.
type Buffer16 struct {
	Meta   Metadata
	Data   []uint16
	Width  int
	Height int
	Layout Layout
}

// Buffer32F is a flat, layout-tagged pixel buffer over 32-bit float elements.
type Buffer32F struct {
	Meta   Metadata
	Data   []float32
	Width  int
	Height int
	Layout Layout
}

// NewBuffer8 validates the shape invariant and element family before
// constructing the buffer.
func NewBuffer8(l Layout, width, height int, data []uint8, meta Metadata) (Buffer8, error) {
	if err := checkBuffer(l, Depth8, width, height, len(data)); err != nil {
		return Buffer8{}, err
	}
	return Buffer8{Meta: meta.Clone(), Data: data, Width: width, Height: height, Layout: l}, nil
}

// NewBuffer16 validates the shape invariant and element family before
// constructing the buffer.
func NewBuffer16(l Layout, width, height int, data []uint16, meta Metadata) (Buffer16, error) {
	if err := checkBuffer(l, Depth16, width, height, len(data)); err != nil {
		return Buffer16{}, err
	}
	return Buffer16{Meta: meta.Clone(), Data: data, Width: width, Height: height, Layout: l}, nil
}

// NewBuffer32F validates the shape invariant and element family before
// constructing the buffer.
func NewBuffer32F(l Layout, width, height int, data []float32, meta Metadata) (Buffer32F, error) {
	if err := checkBuffer(l, Depth32F, width, height, len(data)); err != nil {
		return Buffer32F{}, err
	}
	return Buffer32F{Meta: meta.Clone(), Data: data, Width: width, Height: height, Layout: l}, nil
}

func checkBuffer(l Layout, want Depth, width, height, n int) error {
	if err := checkShape(l, width, height, n); err != nil {
		return err
	}
	if l.Depth() != want {
		return errFamilyMismatch(l, want)
	}
	return nil
}
