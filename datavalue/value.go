// Package datavalue converts between typed Wikibase values and the service's
// {type, value} datavalue wire encoding.
//
// Every value kind implements Value. Reading goes through a dispatch table keyed by
// the wire type tag:
//
//	v, err := datavalue.Decode(dv) // dv.Type == "time"
//	tv := v.(datavalue.TimeValue)
//
// The "wikibase-entityid" tag is always decoded by DecodeItem, which yields a
// PropertyRef when the payload's entity-type is "property". Callers must type-switch
// on the result rather than assume an ItemRef.
//
// The package never talks to the network.
package datavalue

import (
	"encoding/json"

	"github.com/teranos/wikibase/errors"
)

// Kind is the wire type tag of a datavalue
type Kind string

// Supported wire type tags
const (
	KindEntityID        Kind = "wikibase-entityid"
	KindString          Kind = "string"
	KindTime            Kind = "time"
	KindGlobeCoordinate Kind = "globecoordinate"
)

// Value is a typed datavalue.
type Value interface {
	// Kind returns the wire type tag the value is transmitted under.
	Kind() Kind
	// ToWire returns the payload placed in the "value" field of a datavalue,
	// ready for json.Marshal.
	ToWire() (any, error)
	String() string
}

// DataValue is the {type, value} envelope found in snaks.
type DataValue struct {
	Type  Kind            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Encode wraps v in a DataValue envelope
func Encode(v Value) (DataValue, error) {
	if v == nil {
		return DataValue{}, errors.NewInvalidFieldEncoding("nil value")
	}
	payload, err := v.ToWire()
	if err != nil {
		return DataValue{}, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return DataValue{}, errors.Wrap(errors.Mark(err, errors.ErrInvalidFieldEncoding), "failed to marshal value")
	}
	return DataValue{Type: v.Kind(), Value: raw}, nil
}

// MarshalWire returns the JSON encoding of v's wire payload, the form the
// API expects in the "value" parameter of claim edits.
func MarshalWire(v Value) (string, error) {
	dv, err := Encode(v)
	if err != nil {
		return "", err
	}
	return string(dv.Value), nil
}
