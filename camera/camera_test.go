package camera

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/skywatch-obs/camkit/exposure"
	"github.com/skywatch-obs/camkit/imgdata"
)

// interface compliance
var _ Camera = (*simCam)(nil)
var _ Info = (*simCam)(nil)

func TestSaveWritesThroughFitsrec(t *testing.T) {
	cam := newSimCam()
	im, err := cam.CaptureImage()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	err = Save(im, im.Metadata(), SaveOptions{Dir: dir, FilePrefix: "sim", Program: "test"})
	if err != nil {
		t.Fatal(err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "sim_*.fits"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one output file, got %v (%v)", matches, err)
	}
}

func TestSaveMissingDir(t *testing.T) {
	cam := newSimCam()
	im, _ := cam.CaptureImage()
	err := Save(im, im.Metadata(), SaveOptions{Dir: filepath.Join(t.TempDir(), "absent")})
	if !errors.Is(err, imgdata.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestWaitCaptureReturnsAfterPolling(t *testing.T) {
	cam := newSimCam()
	cam.readyIn = 3
	if err := cam.StartExposure(); err != nil {
		t.Fatal(err)
	}
	im, err := WaitCapture(cam, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if im.Layout() != imgdata.Mono16 {
		t.Errorf("expected a Mono16 frame, got %s", im.Layout())
	}
	if cam.pollCount <= cam.readyIn {
		t.Errorf("expected more than %d polls, got %d", cam.readyIn, cam.pollCount)
	}
}

func TestOptimizeExposureAppliesResult(t *testing.T) {
	cam := newSimCam()
	// dim flat frame: level far below the target drives the exposure up
	cam.level = 1000
	im, err := cam.CaptureImage()
	if err != nil {
		t.Fatal(err)
	}
	s := exposure.Settings{
		Percentile:          50,
		TargetFraction:      0.5,
		UncertaintyFraction: 0.01,
		MinExposure:         time.Millisecond,
		MaxExposure:         time.Minute,
		MaxBin:              1,
	}
	exp, bin, err := OptimizeExposure(cam, im, s)
	if err != nil {
		t.Fatal(err)
	}
	if bin != 1 {
		t.Errorf("binning disabled, expected bin 1, got %d", bin)
	}
	if exp <= im.Metadata().Exposure {
		t.Errorf("dim frame should increase exposure, got %v", exp)
	}
	if cam.GetExposure() != exp {
		t.Errorf("result not applied to camera: camera %v, proposed %v", cam.GetExposure(), exp)
	}
}

func TestOptimizeExposureNilCamera(t *testing.T) {
	cam := newSimCam()
	im, _ := cam.CaptureImage()
	s := exposure.Settings{
		Percentile:          50,
		TargetFraction:      0.5,
		UncertaintyFraction: 0.01,
		MinExposure:         time.Millisecond,
		MaxExposure:         time.Minute,
		MaxBin:              1,
	}
	if _, _, err := OptimizeExposure(nil, im, s); err != nil {
		t.Fatalf("pure computation should not need a camera: %v", err)
	}
}

func TestBppFromInt(t *testing.T) {
	if BppFromInt(16) != Bpp16 {
		t.Error("16 should map to Bpp16")
	}
	if BppFromInt(13) != Bpp8 {
		t.Error("unknown depths fall back to Bpp8")
	}
}
