package camera

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/skywatch-obs/camkit/imgdata"
)

var errNotReady = errors.New("exposure not complete")

// WaitCapture polls ImageReady with exponential backoff until the exposure
// started by StartExposure completes, then downloads the image.  The poll
// gives up after timeout.
func WaitCapture(cam Camera, timeout time.Duration) (*imgdata.Image, error) {
	op := func() error {
		ready, err := cam.ImageReady()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ready {
			return errNotReady
		}
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = timeout
	if err := backoff.Retry(op, b); err != nil {
		if errors.Is(err, errNotReady) {
			return nil, fmt.Errorf("%w: no image after %v", imgdata.ErrIO, timeout)
		}
		return nil, err
	}
	return cam.DownloadImage()
}
