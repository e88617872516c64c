package imgdata

import "errors"

// Error kinds shared by the data-path packages.  Callers match them with
// errors.Is; the concrete errors carry context via fmt.Errorf wrapping.
var (
	// ErrInvalidValue indicates a parameter outside its contractual range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnsupportedLayout indicates a pixel layout outside the closed set
	// for the requested operation.
	ErrUnsupportedLayout = errors.New("unsupported pixel layout")

	// ErrShapeMismatch indicates a buffer length inconsistent with
	// width x height x channels.
	ErrShapeMismatch = errors.New("buffer shape mismatch")

	// ErrInvalidPath indicates a missing destination directory.
	ErrInvalidPath = errors.New("invalid path")

	// ErrAlreadyExists indicates the output file is present and overwrite
	// was not requested.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrIO indicates an underlying read/write/delete failure.
	ErrIO = errors.New("i/o failure")
)
