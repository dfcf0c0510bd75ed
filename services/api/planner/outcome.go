package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/02loveslollipop/heroic-planner/internal/heroic"
)

// Kind names one of the query coordinators.
type Kind string

const (
	KindVisibility   Kind = "visibility"
	KindAirmass      Kind = "airmass"
	KindGWVisibility Kind = "gw"
)

// Kinds lists every coordinator kind in display order.
var Kinds = []Kind{KindVisibility, KindAirmass, KindGWVisibility}

var ErrUnknownKind = errors.New("unknown query kind")

// ParseKind maps a path segment onto a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Status is the coordinator lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusAborted Status = "aborted"
)

// ErrorKind classifies user-visible query errors.
type ErrorKind string

const (
	ErrorValidation   ErrorKind = "validation"
	ErrorPrecondition ErrorKind = "precondition"
	ErrorTransport    ErrorKind = "transport"
)

var (
	ErrMissingCoordinates  = errors.New("target coordinates (RA/Dec) are required")
	ErrGWMissingCoordinate = errors.New("RA and Dec coordinates are required for GW visibility")
	ErrNoVisibleTelescopes = errors.New("no telescopes have visibility, edit your parameters and try again")
)

// QueryError is the error state a coordinator exposes to the UI.
type QueryError struct {
	Kind    ErrorKind       `json:"kind"`
	Message string          `json:"message"`
	Status  int             `json:"status,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
	err     error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.err
}

func validationError(err error) *QueryError {
	return &QueryError{Kind: ErrorValidation, Message: err.Error(), err: err}
}

func preconditionError(err error) *QueryError {
	return &QueryError{Kind: ErrorPrecondition, Message: err.Error(), err: err}
}

// transportError surfaces a backend failure verbatim.
func transportError(err error) *QueryError {
	qe := &QueryError{Kind: ErrorTransport, Message: err.Error(), err: err}
	var apiErr *heroic.APIError
	if errors.As(err, &apiErr) {
		qe.Status = apiErr.StatusCode
		qe.Body = apiErr.Body
	}
	return qe
}

// Outcome is the single current result of a coordinator.
type Outcome struct {
	Status    Status          `json:"status"`
	RequestID string          `json:"request_id,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *QueryError     `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Snapshot is a point-in-time view of a coordinator.
type Snapshot struct {
	Kind    Kind `json:"kind"`
	Loading bool `json:"loading"`
	Outcome
}
