package youtube

import (
	"fmt"
	"strings"
)

// InvalidParameterError reports a caller-supplied identifier or part
// argument of an unsupported shape. It is returned before any network
// call and is never worth retrying.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// UnsupportedPartsError reports requested part names absent from the
// resource's whitelist. Parts lists every offending name.
type UnsupportedPartsError struct {
	Resource Resource
	Parts    []string
}

func (e *UnsupportedPartsError) Error() string {
	return fmt.Sprintf("parts %s not supported for resource %s",
		strings.Join(e.Parts, ","), e.Resource)
}

// TransportError wraps a network-level failure (timeout, connection
// error). It aborts the operation in progress; the core never retries.
type TransportError struct {
	Resource Resource
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports an error field carried in the response
// envelope. Treated like TransportError for propagation.
type UpstreamError struct {
	Resource Resource
	Code     int
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error on %s: %d %s", e.Resource, e.Code, e.Message)
}
