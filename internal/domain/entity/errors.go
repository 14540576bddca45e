package entity

import "errors"

// Pipeline failure kinds. Errors produced by the sampler, preprocessor or
// predictor wrap one of these sentinels so the HTTP layer can classify them
// with errors.Is without inspecting messages.
var (
	ErrUnsupportedFormat  = errors.New("unsupported video format")
	ErrVideoDecode        = errors.New("video decode failed")
	ErrInsufficientFrames = errors.New("video has fewer frames than requested")
	ErrShapeMismatch      = errors.New("clip shape does not match model input")
	ErrModelLoad          = errors.New("model load failed")
	ErrTimeout            = errors.New("processing deadline exceeded")
)

// IsClientError reports whether the failure was caused by the uploaded
// video or the request parameters rather than the service itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrVideoDecode) ||
		errors.Is(err, ErrInsufficientFrames) ||
		errors.Is(err, ErrShapeMismatch)
}
