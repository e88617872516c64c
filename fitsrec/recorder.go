package fitsrec

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skywatch-obs/camkit/imgdata"
)

// Recorder saves image sequences with incrementing filename prefixes in
// yyyy-mm-dd subfolders.  It is not thread safe.
type Recorder struct {
	// counter is the internally incrementing sequence number
	counter int

	// Root is the root path
	Root string

	// Prefix is the prefix for the filenames
	Prefix string

	// Program is written to the PROGRAM header card
	Program string

	// Compress selects gzip output
	Compress bool

	// Enabled is a flag unused by this struct that allows consumers to
	// disable its use in their code
	Enabled bool
}

// folder returns the dated subfolder for now, creating it if needed.
func (r *Recorder) folder() (string, error) {
	now := time.Now()
	fldr := filepath.Join(r.Root, fmt.Sprintf("%04d-%02d-%02d", now.Year(), now.Month(), now.Day()))
	err := os.MkdirAll(fldr, 0777)
	return fldr, err
}

// Save writes one image into the current dated subfolder, advancing the
// sequence counter on success.
func (r *Recorder) Save(im *imgdata.Image, meta imgdata.Metadata) error {
	fldr, err := r.folder()
	if err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	prefix := fmt.Sprintf("%s%06d", r.Prefix, r.counter)
	if err := Write(fldr, prefix, r.Program, r.Compress, false, im, meta); err != nil {
		return err
	}
	r.counter++
	return nil
}

// Reset rewinds the sequence counter, for use when the prefix changes.
func (r *Recorder) Reset() {
	r.counter = 0
}
