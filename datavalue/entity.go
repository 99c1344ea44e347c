package datavalue

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/teranos/wikibase/errors"
)

// Entity types carried in the entity-type field
const (
	EntityTypeItem     = "item"
	EntityTypeProperty = "property"
)

// entityIDWire is the wire payload of a wikibase-entityid datavalue.
// Newer servers also send "id"; it is read but never written.
type entityIDWire struct {
	EntityType string `json:"entity-type"`
	NumericID  int    `json:"numeric-id"`
	ID         string `json:"id,omitempty"`
}

// ItemRef references an item (Q-id)
type ItemRef struct {
	ID int
}

// PropertyRef references a property (P-id)
type PropertyRef struct {
	ID int
}

// ParseItemRef parses "Q42", "q42" or "42"
func ParseItemRef(s string) (ItemRef, error) {
	id, err := parseEntityID(s, 'Q')
	if err != nil {
		return ItemRef{}, err
	}
	return ItemRef{ID: id}, nil
}

// ParsePropertyRef parses "P31", "p31" or "31"
func ParsePropertyRef(s string) (PropertyRef, error) {
	id, err := parseEntityID(s, 'P')
	if err != nil {
		return PropertyRef{}, err
	}
	return PropertyRef{ID: id}, nil
}

func parseEntityID(s string, prefix byte) (int, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if len(trimmed) > 0 && trimmed[0] == prefix {
		trimmed = trimmed[1:]
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return 0, errors.Newf("invalid %c-id %q", prefix, s)
	}
	return id, nil
}

func (ItemRef) Kind() Kind { return KindEntityID }

func (r ItemRef) String() string { return "Q" + strconv.Itoa(r.ID) }

func (r ItemRef) ToWire() (any, error) {
	if r.ID <= 0 {
		return nil, errors.NewInvalidFieldEncoding("item numeric-id must be positive, got %d", r.ID)
	}
	return entityIDWire{EntityType: EntityTypeItem, NumericID: r.ID}, nil
}

func (PropertyRef) Kind() Kind { return KindEntityID }

func (r PropertyRef) String() string { return "P" + strconv.Itoa(r.ID) }

func (r PropertyRef) ToWire() (any, error) {
	if r.ID <= 0 {
		return nil, errors.NewInvalidFieldEncoding("property numeric-id must be positive, got %d", r.ID)
	}
	return entityIDWire{EntityType: EntityTypeProperty, NumericID: r.ID}, nil
}

// DecodeItem decodes a wikibase-entityid payload. It is the default reader for
// entity ids: a payload whose entity-type is "property" is handed to
// DecodeProperty and comes back as a PropertyRef.
func DecodeItem(raw json.RawMessage) (Value, error) {
	w, err := unmarshalEntityID(raw)
	if err != nil {
		return nil, err
	}

	switch w.EntityType {
	case EntityTypeProperty:
		return DecodeProperty(raw)
	case EntityTypeItem:
		id, err := w.numericID('Q')
		if err != nil {
			return nil, err
		}
		return ItemRef{ID: id}, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedValueType, "entity-type %q", w.EntityType)
	}
}

// DecodeProperty decodes a wikibase-entityid payload whose entity-type is "property"
func DecodeProperty(raw json.RawMessage) (Value, error) {
	w, err := unmarshalEntityID(raw)
	if err != nil {
		return nil, err
	}
	if w.EntityType != EntityTypeProperty {
		return nil, errors.Wrapf(errors.ErrUnsupportedValueType, "expected entity-type %q, got %q", EntityTypeProperty, w.EntityType)
	}
	id, err := w.numericID('P')
	if err != nil {
		return nil, err
	}
	return PropertyRef{ID: id}, nil
}

func unmarshalEntityID(raw json.RawMessage) (entityIDWire, error) {
	var w entityIDWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return w, errors.Wrap(err, "failed to decode entity id")
	}
	return w, nil
}

func (w entityIDWire) numericID(prefix byte) (int, error) {
	if w.NumericID > 0 {
		return w.NumericID, nil
	}
	if w.ID != "" {
		return parseEntityID(w.ID, prefix)
	}
	return 0, errors.Newf("entity id has no numeric-id")
}
