package domain

import "errors"

// Error kinds surfaced to callers. Wrap them with fmt.Errorf("%w: ...") and
// match with errors.Is. Anything that does not wrap one of these is an
// infrastructure failure.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrUnsupportedState       = errors.New("unsupported state")
	ErrConflict               = errors.New("conflict")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Kind names the error kind of err for structured responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnsupportedState):
		return "UNSUPPORTED_STATE"
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, ErrConcurrentModification):
		return "CONCURRENT_MODIFICATION"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}
