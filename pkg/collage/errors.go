package collage

import "errors"

var (
	// ErrInvalidInput is returned for an empty image set or unusable settings.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDecode is returned when a source image cannot be opened or decoded.
	ErrDecode = errors.New("decode failed")
	// ErrFontLoad is returned when the title font cannot be loaded.
	ErrFontLoad = errors.New("font load failed")
	// ErrEncode is returned when the collage cannot be written out.
	ErrEncode = errors.New("encode failed")
)

// Process exit codes, one per error kind.
const (
	ExitOK           = 0
	ExitOther        = 1
	ExitInvalidInput = 2
	ExitDecode       = 3
	ExitFontLoad     = 4
	ExitEncode       = 5
)

// ExitCode maps an error returned by this package to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrDecode):
		return ExitDecode
	case errors.Is(err, ErrFontLoad):
		return ExitFontLoad
	case errors.Is(err, ErrEncode):
		return ExitEncode
	default:
		return ExitOther
	}
}
