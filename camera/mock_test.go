package camera

import (
	"errors"
	"time"

	"github.com/skywatch-obs/camkit/imgdata"
)

// simCam is a software camera for the package tests.  It produces a flat
// Mono16 frame at a level proportional to the exposure time.
type simCam struct {
	name      string
	exposure  time.Duration
	roi       ROI
	bpp       PixelBpp
	started   bool
	readyIn   int // ImageReady polls remaining before ready
	pollCount int
	level     uint16
}

func newSimCam() *simCam {
	return &simCam{
		name:     "simcam",
		exposure: time.Second,
		roi:      ROI{Width: 8, Height: 8, BinX: 1, BinY: 1},
		bpp:      Bpp16,
		level:    1000,
	}
}

func (c *simCam) frame() (*imgdata.Image, error) {
	meta := imgdata.NewMetadata()
	meta.CameraName = c.name
	meta.Exposure = c.exposure
	meta.Timestamp = time.Now()
	meta.BinX, meta.BinY = c.roi.BinX, c.roi.BinY
	data := make([]uint16, c.roi.Width*c.roi.Height)
	for i := range data {
		data[i] = c.level
	}
	return imgdata.NewImage16(imgdata.Mono16, c.roi.Width, c.roi.Height, data, meta)
}

func (c *simCam) CameraReady() bool { return true }
func (c *simCam) CameraName() string { return c.name }
func (c *simCam) IsCapturing() bool { return c.started }
func (c *simCam) CancelCapture() error { c.started = false; return nil }

func (c *simCam) GetTemperature() (float32, error) { return -10, nil }
func (c *simCam) SetTemperature(t float32) (float32, error) { return t, nil }
func (c *simCam) GetCooler() (bool, error) { return true, nil }
func (c *simCam) SetCooler(bool) error { return nil }
func (c *simCam) GetCoolerPower() (float32, error) { return 50, nil }
func (c *simCam) SetCoolerPower(p float32) (float32, error) { return p, nil }
func (c *simCam) CCDWidth() int { return 8 }
func (c *simCam) CCDHeight() int { return 8 }
func (c *simCam) PixelSize() (float32, float32, error) { return 3.8, 3.8, nil }

func (c *simCam) Vendor() string { return "camkit" }

func (c *simCam) CaptureImage() (*imgdata.Image, error) { return c.frame() }

func (c *simCam) StartExposure() error {
	c.started = true
	c.pollCount = 0
	return nil
}

func (c *simCam) ImageReady() (bool, error) {
	c.pollCount++
	return c.pollCount > c.readyIn, nil
}

func (c *simCam) DownloadImage() (*imgdata.Image, error) {
	if !c.started {
		return nil, errors.New("no exposure started")
	}
	c.started = false
	return c.frame()
}

func (c *simCam) SetExposure(d time.Duration) (time.Duration, error) {
	c.exposure = d
	return d, nil
}
func (c *simCam) GetExposure() time.Duration { return c.exposure }
func (c *simCam) MinExposure() (time.Duration, error) { return time.Microsecond, nil }
func (c *simCam) MaxExposure() (time.Duration, error) { return time.Hour, nil }

func (c *simCam) GainRaw() int64 { return 0 }
func (c *simCam) SetGainRaw(g int64) (int64, error) { return g, nil }
func (c *simCam) MinGainRaw() (int64, error) { return 0, nil }
func (c *simCam) MaxGainRaw() (int64, error) { return 500, nil }
func (c *simCam) Offset() int64 { return 0 }
func (c *simCam) SetOffset(o int64) (int64, error) { return o, nil }
func (c *simCam) SetShutterOpen(o bool) (bool, error) { return o, nil }
func (c *simCam) ShutterOpen() (bool, error) { return true, nil }

func (c *simCam) GetROI() ROI { return c.roi }
func (c *simCam) SetROI(r ROI) (ROI, error) {
	c.roi = r
	return r, nil
}

func (c *simCam) Bpp() PixelBpp { return c.bpp }
func (c *simCam) SetBpp(b PixelBpp) (PixelBpp, error) { c.bpp = b; return b, nil }
func (c *simCam) SetFlip(x, y bool) error { return nil }
func (c *simCam) Flip() (bool, bool) { return false, false }
func (c *simCam) Status() string { return "idle" }
