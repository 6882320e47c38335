package source

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes fetch failures.
type ErrorCode string

const (
	// CodeTransport indicates the request never produced a response.
	CodeTransport ErrorCode = "TRANSPORT"

	// CodeStatus indicates the server answered with a non-2xx status.
	CodeStatus ErrorCode = "STATUS"

	// CodeDecode indicates the body was not a well-formed page.
	CodeDecode ErrorCode = "DECODE"
)

// FetchError is the network error of the catalog loader.
type FetchError struct {
	Code       ErrorCode
	Page       int
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: page %d: %s: %v", e.Code, e.Page, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: page %d: %s", e.Code, e.Page, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a FetchError.
func IsNetworkError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsStatusError reports whether err is a FetchError for a non-2xx reply.
func IsStatusError(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Code == CodeStatus
	}
	return false
}
