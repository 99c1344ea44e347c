package wikibase

import (
	"sort"

	"github.com/teranos/wikibase/datavalue"
	"github.com/teranos/wikibase/errors"
)

// Snak types
const (
	SnakValue     = "value"
	SnakSomeValue = "somevalue"
	SnakNoValue   = "novalue"
)

// ErrNoValue is returned by Snak.Value for somevalue and novalue snaks
var ErrNoValue = errors.New("snak carries no value")

// Snak is a property/value pair
type Snak struct {
	SnakType  string               `json:"snaktype"`
	Property  string               `json:"property"`
	DataType  string               `json:"datatype,omitempty"`
	DataValue *datavalue.DataValue `json:"datavalue,omitempty"`
}

// Value decodes the snak's datavalue
func (s Snak) Value() (datavalue.Value, error) {
	if s.SnakType != SnakValue || s.DataValue == nil {
		return nil, errors.Wrapf(ErrNoValue, "%s snak on %s", s.SnakType, s.Property)
	}
	return datavalue.Decode(*s.DataValue)
}

// Claim is a statement as returned by the claim and entity modules
type Claim struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Rank       string            `json:"rank"`
	MainSnak   Snak              `json:"mainsnak"`
	Qualifiers map[string][]Snak `json:"qualifiers,omitempty"`
}

type claimsMap map[string][]Claim

// flatten orders claims by property id, keeping server order within a property
func (m claimsMap) flatten() []Claim {
	props := make([]string, 0, len(m))
	for p := range m {
		props = append(props, p)
	}
	sort.Strings(props)

	var out []Claim
	for _, p := range props {
		out = append(out, m[p]...)
	}
	return out
}

// Claims decodes the "claims" map of a wbgetclaims reply
func (r *Response) Claims() ([]Claim, error) {
	var reply struct {
		Claims claimsMap `json:"claims"`
	}
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	return reply.Claims.flatten(), nil
}

// EntityClaims decodes the claims of one entity from a wbgetentities reply
func (r *Response) EntityClaims(id string) ([]Claim, error) {
	var reply struct {
		Entities map[string]struct {
			Missing *string   `json:"missing"`
			Claims  claimsMap `json:"claims"`
		} `json:"entities"`
	}
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}

	entity, ok := reply.Entities[id]
	if !ok {
		return nil, errors.Newf("entity %s not in response", id)
	}
	if entity.Missing != nil {
		return nil, errors.Newf("entity %s is missing", id)
	}
	return entity.Claims.flatten(), nil
}

// Claim decodes the single claim returned by wbcreateclaim and wbsetclaimvalue
func (r *Response) Claim() (*Claim, error) {
	var reply struct {
		Claim *Claim `json:"claim"`
	}
	if err := r.Decode(&reply); err != nil {
		return nil, err
	}
	if reply.Claim == nil {
		return nil, errors.New("response carries no claim")
	}
	return reply.Claim, nil
}
