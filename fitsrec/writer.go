// Package fitsrec persists camera images to multi-extension FITS files,
// one image extension per channel, with the acquisition metadata written as
// header cards on the primary extension.
package fitsrec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/klauspost/compress/gzip"

	"github.com/skywatch-obs/camkit/imgdata"
)

// Write saves an image and its metadata under dir.  The file is named
// {prefix}_{timestamp-ms}.fits, where prefix falls back to the camera name
// and then to "image"; compress appends a gzip layer and the .gz suffix.
// An existing target fails with ErrAlreadyExists unless overwrite is set,
// in which case it is deleted first and a failed delete is an error.
func Write(dir, filePrefix, progname string, compress, overwrite bool, im *imgdata.Image, meta imgdata.Metadata) error {
	layout := im.Layout()
	if !layout.Valid() {
		return fmt.Errorf("%w: %s", imgdata.ErrUnsupportedLayout, layout)
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: directory %s does not exist", imgdata.ErrInvalidPath, dir)
	}

	prefix := strings.TrimSpace(filePrefix)
	if prefix == "" {
		prefix = meta.CameraName
	}
	if prefix == "" {
		prefix = "image"
	}

	name := fmt.Sprintf("%s_%d.fits", prefix, meta.Timestamp.UnixMilli())
	if compress {
		name += ".gz"
	}
	fpath := filepath.Join(dir, name)

	if _, err := os.Stat(fpath); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", imgdata.ErrAlreadyExists, fpath)
		}
		if err := os.Remove(fpath); err != nil {
			return fmt.Errorf("%w: removing %s: %v", imgdata.ErrIO, fpath, err)
		}
	}

	f, err := os.Create(fpath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", imgdata.ErrIO, fpath, err)
	}
	defer f.Close()

	if compress {
		err = writeCompressed(f, progname, im, meta)
	} else {
		err = writeFits(f, progname, im, meta)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", imgdata.ErrIO, fpath, err)
	}
	return nil
}

// writeCompressed wraps the FITS stream in gzip.  The trailer and any
// buffered tail are only emitted on Close, so a Close failure means a
// truncated file and must surface to the caller.
func writeCompressed(w io.Writer, progname string, im *imgdata.Image, meta imgdata.Metadata) error {
	gz := gzip.NewWriter(w)
	if err := writeFits(gz, progname, im, meta); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("%w: flushing compressed stream: %v", imgdata.ErrIO, err)
	}
	return nil
}

// writeFits streams the multi-extension file to w.  The channel split is
// driven entirely by the layout table: channel i of the interleaved store
// becomes extension i, named after the channel.
func writeFits(w io.Writer, progname string, im *imgdata.Image, meta imgdata.Metadata) error {
	fits, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	defer fits.Close()

	layout := im.Layout()
	names := layout.ChannelNames()
	dims := []int{im.Width(), im.Height()}

	for ch, extname := range names {
		cards := []fitsio.Card{{Name: "EXTNAME", Value: extname}}
		if ch == 0 {
			cards = append(cards, primaryCards(progname, layout, meta)...)
		}
		if err := writeChannel(fits, im, ch, dims, cards); err != nil {
			return err
		}
	}
	return nil
}

func writeChannel(fits *fitsio.File, im *imgdata.Image, ch int, dims []int, cards []fitsio.Card) error {
	layout := im.Layout()
	stride := layout.Channels()
	n := im.Width() * im.Height()

	var (
		bitpix int
		data   interface{}
	)
	switch layout.Depth() {
	case imgdata.Depth8:
		buf := make([]uint8, n)
		src := im.Pix8()
		for i := 0; i < n; i++ {
			buf[i] = src[i*stride+ch]
		}
		bitpix, data = 8, buf
	case imgdata.Depth16:
		// FITS 16-bit is signed; shift into int16 and declare BZERO so
		// readers recover the unsigned values
		buf := make([]int16, n)
		src := im.Pix16()
		for i := 0; i < n; i++ {
			buf[i] = int16(src[i*stride+ch] - 32768)
		}
		cards = append(cards, fitsio.Card{Name: "BZERO", Value: 32768}, fitsio.Card{Name: "BSCALE", Value: 1.0})
		bitpix, data = 16, buf
	case imgdata.Depth32F:
		buf := make([]float32, n)
		src := im.Pix32F()
		for i := 0; i < n; i++ {
			buf[i] = src[i*stride+ch]
		}
		bitpix, data = -32, buf
	default:
		return fmt.Errorf("%w: %s", imgdata.ErrUnsupportedLayout, layout)
	}

	hdu := fitsio.NewImage(bitpix, dims)
	defer hdu.Close()
	if err := hdu.Header().Append(cards...); err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	if err := hdu.Write(data); err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	if err := fits.Write(hdu); err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	return nil
}

// primaryCards builds the fixed header card set for the primary extension,
// followed by the user extension list in its original order.
func primaryCards(progname string, layout imgdata.Layout, meta imgdata.Metadata) []fitsio.Card {
	cards := []fitsio.Card{
		{Name: "PROGRAM", Value: progname},
		{Name: "CAMERA", Value: meta.CameraName},
		{Name: "TIMESTMP", Value: int(meta.Timestamp.UnixMilli()), Comment: "ms since epoch"},
		{Name: "CCDTEMP", Value: float64(meta.Temperature), Comment: "detector temperature, C"},
		{Name: "EXPOSURE", Value: int(meta.Exposure.Microseconds()), Comment: "exposure, us"},
		{Name: "ORIGIN_X", Value: meta.Left},
		{Name: "ORIGIN_Y", Value: meta.Top},
		{Name: "BINX", Value: meta.BinX},
		{Name: "BINY", Value: meta.BinY},
		{Name: "GAIN", Value: int(meta.Gain)},
		{Name: "OFFSET", Value: int(meta.Offset)},
		{Name: "GAIN_MIN", Value: meta.MinGain},
		{Name: "GAIN_MAX", Value: meta.MaxGain},
		{Name: "CHANNELS", Value: layout.Channels()},
	}
	for _, att := range meta.Extended {
		cards = append(cards, fitsio.Card{Name: att.Key, Value: att.Value})
	}
	return cards
}
