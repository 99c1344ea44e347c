package datavalue

import (
	"encoding/json"

	"github.com/teranos/wikibase/errors"
)

// Decoder reconstructs a typed value from a wire payload
type Decoder func(raw json.RawMessage) (Value, error)

// decoders maps wire tags to decoders. Entity ids go through DecodeItem,
// which refines to PropertyRef itself.
var decoders = map[Kind]Decoder{
	KindEntityID:        DecodeItem,
	KindString:          DecodeString,
	KindTime:            DecodeTime,
	KindGlobeCoordinate: DecodeGlobeCoordinate,
}

// Decode reconstructs the typed value held in dv
func Decode(dv DataValue) (Value, error) {
	return DecodeWire(dv.Type, dv.Value)
}

// DecodeWire reconstructs a typed value from a type tag and its payload.
// Unknown tags fail with ErrUnsupportedValueType.
func DecodeWire(tag Kind, raw json.RawMessage) (Value, error) {
	decode, ok := decoders[tag]
	if !ok {
		return nil, errors.NewUnsupportedValueType(string(tag))
	}
	return decode(raw)
}

// Supported reports whether tag has a decoder
func Supported(tag Kind) bool {
	_, ok := decoders[tag]
	return ok
}
