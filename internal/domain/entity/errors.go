// internal/domain/entity/errors.go
package entity

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is a transport-level failure talking to an upstream API
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseError is a non-2xx status or malformed payload from an upstream API
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: bad response (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: bad response (status %d): %s", e.Op, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Transient reports whether the response is worth retrying with backoff
func (e *ResponseError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// DeliveryError is a failure to post a message to the messaging channel
type DeliveryError struct {
	Topic string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("telegram delivery to topic %q failed: %v", e.Topic, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err should be retried with backoff.
// Transport failures always qualify; response errors only for 429 and 5xx.
func IsTransient(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return true
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Transient()
	}
	return false
}
