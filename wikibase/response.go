package wikibase

import (
	"encoding/json"
	"fmt"

	"github.com/teranos/wikibase/errors"
)

// Error codes the client reacts to
const (
	CodeMaxlag   = "maxlag"
	CodeBadToken = "badtoken"
)

// APIError is the error object of a failed API response
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Info)
}

// Response is a decoded API reply.
//
// Server-reported errors other than maxlag and badtoken are passed through:
// the call succeeds at the Go level and Error is set.
type Response struct {
	Raw   json.RawMessage
	Error *APIError
}

func parseResponse(body []byte) (*Response, error) {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrapf(err, "failed to decode API response: %s", truncate(string(body), 128))
	}
	return &Response{Raw: body, Error: envelope.Error}, nil
}

// IsError reports whether the response carries the given error code
func (r *Response) IsError(code string) bool {
	return r != nil && r.Error != nil && r.Error.Code == code
}

// Err returns the server error, if any, as a Go error
func (r *Response) Err() error {
	if r == nil || r.Error == nil {
		return nil
	}
	return r.Error
}

// Decode unmarshals the raw body into v
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
