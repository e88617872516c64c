package imgdata

import (
	"encoding/json"
	"fmt"
)

// record is the structural wire form: the stable layout code, the
// dimensions, exactly one family-typed flat pixel sequence, and the full
// metadata record.  []uint8 rides as base64 under encoding/json; the wider
// families ride as plain number arrays.
type record struct {
	Layout int       `json:"layout"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Data8  []uint8   `json:"data8,omitempty"`
	Data16 []uint16  `json:"data16,omitempty"`
	Data32 []float32 `json:"data32,omitempty"`
	Meta   Metadata  `json:"metadata"`
}

// Serialize flattens an image and its metadata into a single JSON record.
// The image's runtime layout is resolved to its element family and the
// matching typed conversion picks the pixel sequence to embed.
func Serialize(im *Image) ([]byte, error) {
	rec := record{
		Layout: im.layout.Code(),
		Width:  im.width,
		Height: im.height,
		Meta:   im.meta.Clone(),
	}
	switch im.layout.Depth() {
	case Depth8:
		b, err := ToBuffer8(im)
		if err != nil {
			return nil, err
		}
		rec.Data8 = b.Data
	case Depth16:
		b, err := ToBuffer16(im)
		if err != nil {
			return nil, err
		}
		rec.Data16 = b.Data
	case Depth32F:
		b, err := ToBuffer32F(im)
		if err != nil {
			return nil, err
		}
		rec.Data32 = b.Data
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, im.layout)
	}
	return json.Marshal(rec)
}

// Deserialize parses a record produced by Serialize and rebuilds the image
// through the typed buffer constructors, so the declared length must equal
// width x height x channels for the declared layout or the record is
// rejected.
func Deserialize(p []byte) (*Image, error) {
	var rec record
	if err := json.Unmarshal(p, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	layout, err := LayoutFromCode(rec.Layout)
	if err != nil {
		return nil, err
	}
	switch layout.Depth() {
	case Depth8:
		b, err := NewBuffer8(layout, rec.Width, rec.Height, rec.Data8, rec.Meta)
		if err != nil {
			return nil, err
		}
		return FromBuffer8(b)
	case Depth16:
		b, err := NewBuffer16(layout, rec.Width, rec.Height, rec.Data16, rec.Meta)
		if err != nil {
			return nil, err
		}
		return FromBuffer16(b)
	default:
		b, err := NewBuffer32F(layout, rec.Width, rec.Height, rec.Data32, rec.Meta)
		if err != nil {
			return nil, err
		}
		return FromBuffer32F(b)
	}
}
