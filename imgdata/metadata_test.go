package imgdata

import (
	"testing"
	"time"
)

func TestMetadataDefaults(t *testing.T) {
	m := NewMetadata()
	if m.BinX != 1 || m.BinY != 1 {
		t.Errorf("expected unit binning, got %d x %d", m.BinX, m.BinY)
	}
	if m.Top != 0 || m.Left != 0 {
		t.Errorf("expected zero origin, got (%d, %d)", m.Left, m.Top)
	}
	if !m.Timestamp.Equal(time.Unix(0, 0)) {
		t.Errorf("expected epoch timestamp, got %v", m.Timestamp)
	}
	if m.Exposure != 0 || m.Temperature != 0 || m.CameraName != "" {
		t.Errorf("expected zero exposure/temperature and empty name, got %v %v %q",
			m.Exposure, m.Temperature, m.CameraName)
	}
	if m.Gain != 0 || m.Offset != 0 || m.MinGain != 0 || m.MaxGain != 0 {
		t.Error("expected zero gain, offset and gain bounds")
	}
	if len(m.Extended) != 0 {
		t.Errorf("expected empty extended list, got %v", m.Extended)
	}
}

func TestMetadataCloneIsIndependent(t *testing.T) {
	m := NewMetadata()
	m.AddExtended("KEY", "original")
	c := m.Clone()
	c.Extended[0].Value = "changed"
	c.AddExtended("KEY2", "extra")
	if m.Extended[0].Value != "original" {
		t.Error("mutating the clone reached the source record")
	}
	if len(m.Extended) != 1 {
		t.Errorf("appending to the clone grew the source list to %d", len(m.Extended))
	}
}

func TestImageMetadataValueSemantics(t *testing.T) {
	meta := NewMetadata()
	meta.CameraName = "cam"
	im, err := NewImage8(Mono8, 2, 2, make([]uint8, 4), meta)
	if err != nil {
		t.Fatal(err)
	}
	meta.CameraName = "mutated after attach"
	if im.Metadata().CameraName != "cam" {
		t.Error("metadata was not cloned on attachment")
	}
	got := im.Metadata()
	got.CameraName = "mutated accessor copy"
	if im.Metadata().CameraName != "cam" {
		t.Error("metadata accessor leaked a mutable reference")
	}
}
