package executor

import "fmt"

type ErrorKind string

const (
	ErrTransport ErrorKind = "transport"
	ErrTimeout   ErrorKind = "timeout"
)

type ProbeError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message,omitempty"`
}

func (e *ProbeError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Outcome is the result of one probe: either a response code or an error.
type Outcome struct {
	Error        *ProbeError `json:"error,omitempty"`
	ResponseCode int         `json:"responseCode,omitempty"` // 0 when no response arrived
	LatencyMs    int64       `json:"latencyMs"`
}

// Responded reports whether a response was received.
func (o Outcome) Responded() bool {
	return o.Error == nil && o.ResponseCode > 0
}
