package imgdata

import (
	"fmt"
	"strings"
	"time"
)

// ExtendedAttrib is one user-supplied header entry.  Keys are not required
// to be unique; entry order is preserved and becomes the order of the
// persisted header fields.
type ExtendedAttrib struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Metadata carries the acquisition parameters attached to an image.  It is
// value-semantic: attach a Clone, never a shared pointer.
type Metadata struct {
	// BinX and BinY are the detector binning factors
	BinX int `json:"binX"`
	BinY int `json:"binY"`

	// Top and Left locate the image origin on the detector, in binned
	// pixel coordinates
	Top  int `json:"top"`
	Left int `json:"left"`

	// Temperature is the detector temperature in Celsius
	Temperature float32 `json:"temperature"`

	// Exposure is the exposure duration
	Exposure time.Duration `json:"exposure"`

	// Timestamp is the acquisition time
	Timestamp time.Time `json:"timestamp"`

	// CameraName is the name of the acquiring camera, may be empty
	CameraName string `json:"cameraName"`

	// Gain and Offset are raw device units
	Gain   int64 `json:"gain"`
	Offset int64 `json:"offset"`

	// MinGain and MaxGain are the device gain bounds, raw units
	MinGain int `json:"minGain"`
	MaxGain int `json:"maxGain"`

	// Extended is the ordered open-ended attribute list
	Extended []ExtendedAttrib `json:"extended,omitempty"`
}

// NewMetadata returns a metadata record in its default state: unit binning,
// zero origin, epoch timestamp, everything else zero or empty.
func NewMetadata() Metadata {
	return Metadata{
		BinX:      1,
		BinY:      1,
		Timestamp: time.Unix(0, 0).UTC(),
	}
}

// AddExtended appends one (key, value) pair to the extended attribute list.
func (m *Metadata) AddExtended(key, value string) {
	m.Extended = append(m.Extended, ExtendedAttrib{Key: key, Value: value})
}

// Clone returns a deep copy of the record.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Extended != nil {
		out.Extended = make([]ExtendedAttrib, len(m.Extended))
		copy(out.Extended, m.Extended)
	}
	return out
}

func (m Metadata) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Metadata [%s]:\n", m.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "\tCamera name: %s\n", m.CameraName)
	fmt.Fprintf(&b, "\tBin: %d x %d\n", m.BinX, m.BinY)
	fmt.Fprintf(&b, "\tOrigin: %d x %d\n", m.Left, m.Top)
	fmt.Fprintf(&b, "\tExposure: %s\n", m.Exposure)
	fmt.Fprintf(&b, "\tGain: %d, Offset: %d\n", m.Gain, m.Offset)
	fmt.Fprintf(&b, "\tTemperature: %g C\n", m.Temperature)
	if len(m.Extended) > 0 {
		b.WriteString("\tExtended:\n")
		for _, att := range m.Extended {
			fmt.Fprintf(&b, "\t\t%s: %s\n", att.Key, att.Value)
		}
	}
	return b.String()
}
