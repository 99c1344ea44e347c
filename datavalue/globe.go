package datavalue

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/teranos/wikibase/errors"
)

// Globes
const (
	GlobeEarth = "http://www.wikidata.org/entity/Q2"
)

// DefaultCoordinatePrecision is one micro-degree
const DefaultCoordinatePrecision = 0.000001

// GlobeCoordinate is a position on a globe. Precision is in degrees.
type GlobeCoordinate struct {
	Latitude  float64
	Longitude float64
	Precision float64
	Globe     string
}

// globeWire also accepts the legacy altitude field, which is dropped on read.
type globeWire struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Precision float64  `json:"precision"`
	Globe     string   `json:"globe"`
}

// NewGlobeCoordinate returns an Earth coordinate with micro-degree precision
func NewGlobeCoordinate(latitude, longitude float64) GlobeCoordinate {
	return GlobeCoordinate{
		Latitude:  latitude,
		Longitude: longitude,
		Precision: DefaultCoordinatePrecision,
		Globe:     GlobeEarth,
	}
}

func (GlobeCoordinate) Kind() Kind { return KindGlobeCoordinate }

func (g GlobeCoordinate) String() string {
	return fmt.Sprintf("%f, %f", g.Latitude, g.Longitude)
}

func (g GlobeCoordinate) ToWire() (any, error) {
	for name, f := range map[string]float64{"latitude": g.Latitude, "longitude": g.Longitude, "precision": g.Precision} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.NewInvalidFieldEncoding("%s is not a finite number", name)
		}
	}
	if g.Globe == "" {
		return nil, errors.NewInvalidFieldEncoding("globe is required")
	}
	return globeWire{
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
		Precision: g.Precision,
		Globe:     g.Globe,
	}, nil
}

// DecodeGlobeCoordinate decodes a globecoordinate payload, ignoring altitude
func DecodeGlobeCoordinate(raw json.RawMessage) (Value, error) {
	var w globeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrap(err, "failed to decode globe coordinate")
	}
	return GlobeCoordinate{
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
		Precision: w.Precision,
		Globe:     w.Globe,
	}, nil
}
