// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package apiclient

// In this file: fetch result and failure types.

import (
	"fmt"
	"time"
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure: connection refused, DNS
	// failure, connection reset.
	KindNetwork ErrorKind = iota
	// KindTimeout indicates that the request did not complete within the
	// configured timeout.
	KindTimeout
	// KindAPI indicates that the upstream responded with a non-2xx status.
	KindAPI
	// KindInvalidResponse indicates a 2xx response whose body is not valid
	// JSON.
	KindInvalidResponse
	// KindConfig indicates an invalid client configuration, such as an
	// unparsable base URL.  Normally caught at startup by Config.Validate.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindAPI:
		return "api_error"
	case KindInvalidResponse:
		return "invalid_response_format"
	case KindConfig:
		return "configuration_error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Failure describes a failed fetch.  It satisfies the error interface so
// that callers can return it up the stack if they choose to.
type Failure struct {
	// Kind is the failure category.
	Kind ErrorKind
	// Message is the human-readable cause: the upstream response body for
	// API errors, or the underlying transport error otherwise.
	Message string
	// StatusCode is the HTTP status of the upstream response, or 0 if no
	// response was received (network errors and timeouts).
	StatusCode int
}

func (f *Failure) Error() string {
	if f.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Result is the outcome of a single gateway invocation.  Every call to
// [Client.Fetch] produces exactly one Result: either a success carrying the
// decoded payload, or a failure with Failure set.  Transport errors never
// escape as panics or naked errors.
type Result struct {
	// Payload is the decoded JSON body.  Nil unless the fetch succeeded.
	Payload any
	// StatusCode is the HTTP status of the response, 0 if none was received.
	StatusCode int
	// Elapsed is the wall-clock time between issuing the request and
	// receiving (or failing to receive) the response.
	Elapsed time.Duration
	// FetchedAt is the time the result was produced, in UTC.
	FetchedAt time.Time
	// Failure is nil on success.
	Failure *Failure
}

// Ok reports whether the fetch succeeded.
func (r *Result) Ok() bool {
	return r.Failure == nil
}
