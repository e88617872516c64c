package camera

import (
	"sort"
	"time"

	"github.com/skywatch-obs/camkit/exposure"
	"github.com/skywatch-obs/camkit/fitsrec"
	"github.com/skywatch-obs/camkit/imgdata"
)

// SaveOptions selects where and how a captured image is persisted.
type SaveOptions struct {
	// Dir is the destination directory, which must exist
	Dir string

	// FilePrefix is the filename prefix; empty falls back to the camera
	// name and then to "image"
	FilePrefix string

	// Program is written to the PROGRAM header card
	Program string

	// Compress selects gzip output
	Compress bool

	// Overwrite replaces an existing target file
	Overwrite bool
}

// Save persists a captured image and its metadata to a FITS file.
func Save(im *imgdata.Image, meta imgdata.Metadata, o SaveOptions) error {
	return fitsrec.Write(o.Dir, o.FilePrefix, o.Program, o.Compress, o.Overwrite, im, meta)
}

// OptimizeExposure proposes the next (exposure, bin) pair from a captured
// image and applies it to cam when cam is non-nil.  The image is flattened
// to its 16-bit luma plane and sorted to form the percentile sample.
func OptimizeExposure(cam Camera, im *imgdata.Image, s exposure.Settings) (time.Duration, int, error) {
	sample := im.Luma16()
	sort.Slice(sample, func(i, j int) bool { return sample[i] < sample[j] })
	exp, bin, err := s.Optimize(im.Metadata(), sample)
	if err != nil {
		return 0, 0, err
	}
	if cam == nil {
		return exp, bin, nil
	}
	if _, err := cam.SetExposure(exp); err != nil {
		return exp, bin, err
	}
	roi := cam.GetROI()
	if roi.BinX != bin || roi.BinY != bin {
		roi.BinX = bin
		roi.BinY = bin
		if _, err := cam.SetROI(roi); err != nil {
			return exp, bin, err
		}
	}
	return exp, bin, nil
}
