package thermal

// Error is a constant error value.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGridSize          = Error("grid dimensions do not match")
	ErrSensorUnavailable = Error("sensor unavailable")
	ErrInert             = Error("pipeline halted after sensor failure")
	ErrNotStarted        = Error("pipeline not started")
)
