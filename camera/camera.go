/*Package camera describes a standard set of interfaces for control of cameras

The Camera type is the capture surface handed to the acquisition loop, while
Info is the reduced housekeeping surface that may be shared with monitoring
goroutines.  The package holds no hardware logic of its own; it also hosts
the two entry points drivers call once a capture completes, saving the image
to FITS and optimizing the next exposure.
*/
package camera

import (
	"fmt"
	"time"

	"github.com/skywatch-obs/camkit/imgdata"
)

// Descriptor identifies one attached camera device.
type Descriptor struct {
	// ID is the driver-assigned index
	ID int `json:"id"`

	// Name is the camera name
	Name string `json:"name"`
}

// ROI is a region of interest on the detector, in binned pixel coordinates.
// Setting all fields to zero selects the full detector.
type ROI struct {
	// X and Y are the minimum coordinates
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the image dimensions
	Width  int `json:"width"`
	Height int `json:"height"`

	// BinX and BinY are the binning factors
	BinX int `json:"binX"`
	BinY int `json:"binY"`
}

func (r ROI) String() string {
	return fmt.Sprintf("ROI: Origin = (%d, %d), Size = (%d x %d), Bin = (%d, %d)",
		r.X, r.Y, r.Width, r.Height, r.BinX, r.BinY)
}

// PixelBpp is the pixel bit depth of the detector readout.
type PixelBpp int

// Known bit depths.
const (
	Bpp8  PixelBpp = 8
	Bpp10 PixelBpp = 10
	Bpp12 PixelBpp = 12
	Bpp16 PixelBpp = 16
	Bpp24 PixelBpp = 24
	Bpp32 PixelBpp = 32
)

// BppFromInt normalizes an integer to a known bit depth, falling back to
// Bpp8 for anything unrecognized.
func BppFromInt(v int) PixelBpp {
	switch v {
	case 10, 12, 16, 24, 32:
		return PixelBpp(v)
	default:
		return Bpp8
	}
}

// Driver lists attached devices and connects to them.
type Driver interface {
	// AvailableDevices returns the number of attached devices
	AvailableDevices() int

	// ListDevices enumerates the attached devices
	ListDevices() ([]Descriptor, error)

	// Connect opens the described device, returning the capture handle
	// and a housekeeping handle that may be shared across goroutines
	Connect(Descriptor) (Camera, Info, error)

	// ConnectFirst opens the first available device
	ConnectFirst() (Camera, Info, error)
}

// Info is the housekeeping surface of a camera.  Implementations must be
// safe for concurrent use; this is the handle handed to monitoring
// goroutines.
type Info interface {
	// CameraReady reports whether the camera is ready
	CameraReady() bool

	// CameraName returns the camera name
	CameraName() string

	// IsCapturing reports whether an exposure is in progress
	IsCapturing() bool

	// CancelCapture aborts an ongoing exposure
	CancelCapture() error

	// GetTemperature reads the detector temperature in Celsius
	GetTemperature() (float32, error)

	// SetTemperature sets the detector temperature setpoint and returns
	// the setpoint actually applied
	SetTemperature(float32) (float32, error)

	// GetCooler reports whether the cooler is on
	GetCooler() (bool, error)

	// SetCooler turns the cooler on or off
	SetCooler(bool) error

	// GetCoolerPower reads the cooler power in percent
	GetCoolerPower() (float32, error)

	// SetCoolerPower sets the cooler power and returns the power applied
	SetCoolerPower(float32) (float32, error)

	// CCDWidth and CCDHeight are the detector dimensions in unbinned pixels
	CCDWidth() int
	CCDHeight() int

	// PixelSize returns the physical pixel pitch in microns
	PixelSize() (x, y float32, err error)
}

// Camera is the capture surface of a camera.  It is intended for a single
// goroutine; share the Info handle instead.
type Camera interface {
	Info

	// Vendor returns the device vendor
	Vendor() string

	// CaptureImage runs a blocking exposure and returns the image with
	// its metadata attached
	CaptureImage() (*imgdata.Image, error)

	// StartExposure begins an exposure without blocking
	StartExposure() error

	// ImageReady reports whether the exposure started by StartExposure
	// has completed
	ImageReady() (bool, error)

	// DownloadImage retrieves the completed exposure
	DownloadImage() (*imgdata.Image, error)

	// SetExposure sets the exposure time and returns the time applied
	SetExposure(time.Duration) (time.Duration, error)

	// GetExposure returns the currently set exposure time
	GetExposure() time.Duration

	// MinExposure and MaxExposure are the device exposure limits
	MinExposure() (time.Duration, error)
	MaxExposure() (time.Duration, error)

	// GainRaw returns the gain in raw device units
	GainRaw() int64

	// SetGainRaw sets the gain in raw device units
	SetGainRaw(int64) (int64, error)

	// MinGainRaw and MaxGainRaw are the device gain limits
	MinGainRaw() (int64, error)
	MaxGainRaw() (int64, error)

	// Offset returns the pixel offset in raw device units
	Offset() int64

	// SetOffset sets the pixel offset
	SetOffset(int64) (int64, error)

	// SetShutterOpen opens or closes the shutter
	SetShutterOpen(bool) (bool, error)

	// ShutterOpen reports the shutter state
	ShutterOpen() (bool, error)

	// GetROI returns the current region of interest
	GetROI() ROI

	// SetROI applies a region of interest and returns the region applied
	SetROI(ROI) (ROI, error)

	// Bpp returns the current pixel bit depth
	Bpp() PixelBpp

	// SetBpp sets the pixel bit depth
	SetBpp(PixelBpp) (PixelBpp, error)

	// SetFlip mirrors the readout along the X and/or Y axes
	SetFlip(x, y bool) error

	// Flip reports the mirror state
	Flip() (x, y bool)

	// Status describes the current operational state
	Status() string
}
