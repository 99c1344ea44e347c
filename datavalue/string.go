package datavalue

import (
	"encoding/json"

	"github.com/teranos/wikibase/errors"
)

// StringValue is a plain string datavalue
type StringValue string

func (StringValue) Kind() Kind { return KindString }

func (s StringValue) String() string { return string(s) }

func (s StringValue) ToWire() (any, error) { return string(s), nil }

// DecodeString decodes a string payload
func DecodeString(raw json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrap(err, "failed to decode string value")
	}
	return StringValue(s), nil
}
