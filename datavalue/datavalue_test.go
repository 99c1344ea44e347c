package datavalue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/wikibase/errors"
)

// roundTrip encodes v and decodes the result through the dispatch table
func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	dv, err := Encode(v)
	require.NoError(t, err)

	// Through a full JSON hop, as a server response would arrive
	data, err := json.Marshal(dv)
	require.NoError(t, err)
	var back DataValue
	require.NoError(t, json.Unmarshal(data, &back))

	got, err := Decode(back)
	require.NoError(t, err)
	return got
}

func TestTimeValue_ToWire(t *testing.T) {
	v := NewTimeValue(2013, 1, 1)

	payload, err := v.ToWire()
	require.NoError(t, err)
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"time": "+00000002013-01-01T00:00:00Z",
		"timezone": 0,
		"before": 0,
		"after": 0,
		"precision": 11,
		"calendarmodel": "http://www.wikidata.org/entity/Q1985727"
	}`, string(data))
}

func TestTimeValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    TimeValue
	}{
		{"day precision", NewTimeValue(2013, 1, 1)},
		{"negative year", TimeValue{Year: -44, Month: 3, Day: 15, Precision: PrecisionDay, CalendarModel: CalendarJulian}},
		{"year zero", TimeValue{Year: 0, Precision: PrecisionYear, CalendarModel: CalendarGregorian}},
		{"all fields", TimeValue{
			Year: 1969, Month: 7, Day: 20, Hour: 20, Minute: 17, Second: 40,
			Timezone: -300, Before: 1, After: 2, Precision: PrecisionSecond, CalendarModel: CalendarGregorian,
		}},
		{"eleven digit year", TimeValue{Year: -13798000000, Precision: PrecisionHundredMillionYears, CalendarModel: CalendarGregorian}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.v)
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestTimeValue_NegativeYearRendering(t *testing.T) {
	v := TimeValue{Year: -44, Month: 3, Day: 15, Precision: PrecisionDay, CalendarModel: CalendarJulian}
	assert.Equal(t, "-00000000044-03-15T00:00:00Z", v.String())
}

func TestTimeValue_InvalidFieldEncoding(t *testing.T) {
	base := NewTimeValue(2013, 1, 1)

	tests := []struct {
		name   string
		mutate func(*TimeValue)
	}{
		{"month 13", func(v *TimeValue) { v.Month = 13 }},
		{"negative day", func(v *TimeValue) { v.Day = -1 }},
		{"hour 24", func(v *TimeValue) { v.Hour = 24 }},
		{"minute 60", func(v *TimeValue) { v.Minute = 60 }},
		{"second 60", func(v *TimeValue) { v.Second = 60 }},
		{"precision 15", func(v *TimeValue) { v.Precision = 15 }},
		{"negative before", func(v *TimeValue) { v.Before = -1 }},
		{"twelve digit year", func(v *TimeValue) { v.Year = 100000000000 }},
		{"missing calendar", func(v *TimeValue) { v.CalendarModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.mutate(&v)
			_, err := v.ToWire()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidFieldEncoding), "got %v", err)

			_, err = Encode(v)
			assert.True(t, errors.Is(err, errors.ErrInvalidFieldEncoding))
		})
	}
}

func TestDecodeTime_Malformed(t *testing.T) {
	tests := []string{
		"+00000002013-01-01T00:00:00",  // missing Z
		"00000002013-01-01T00:00:00Z",  // missing sign
		"+00000002013-01-01 00:00:00Z", // missing T
		"+2013-01-01T00:00:00.5Z",      // fractional seconds
		"",
	}

	for _, ts := range tests {
		t.Run(ts, func(t *testing.T) {
			raw := json.RawMessage(`{"time":"` + ts + `","timezone":0,"before":0,"after":0,"precision":11,"calendarmodel":"` + CalendarGregorian + `"}`)
			_, err := DecodeTime(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedTimestamp), "got %v", err)
		})
	}
}

func TestParseTimestamp_ShortYear(t *testing.T) {
	year, fields, err := ParseTimestamp("+2013-05-09T08:07:06Z")
	require.NoError(t, err)
	assert.Equal(t, int64(2013), year)
	assert.Equal(t, [5]int{5, 9, 8, 7, 6}, fields)
}

func TestTimeValueFromTime(t *testing.T) {
	zone := time.FixedZone("CET", 60*60)
	ts := time.Date(2024, time.February, 29, 13, 45, 10, 0, zone)

	v := TimeValueFromTime(ts, PrecisionSecond)
	assert.Equal(t, int64(2024), v.Year)
	assert.Equal(t, 2, v.Month)
	assert.Equal(t, 29, v.Day)
	assert.Equal(t, 60, v.Timezone)
	assert.Equal(t, CalendarGregorian, v.CalendarModel)
	assert.True(t, v.Time().Equal(ts))
}

func TestTimeValue_TimeWithZeroMonthDay(t *testing.T) {
	v := TimeValue{Year: 1850, Precision: PrecisionYear, CalendarModel: CalendarGregorian}
	assert.Equal(t, time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC), v.Time())
}

func TestGlobeCoordinate_RoundTrip(t *testing.T) {
	v := GlobeCoordinate{Latitude: 52.516666, Longitude: 13.383333, Precision: 0.0001, Globe: GlobeEarth}
	assert.Equal(t, v, roundTrip(t, v))
}

func TestGlobeCoordinate_ToWire(t *testing.T) {
	payload, err := NewGlobeCoordinate(1.5, -2.25).ToWire()
	require.NoError(t, err)
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{"latitude":1.5,"longitude":-2.25,"precision":0.000001,"globe":"http://www.wikidata.org/entity/Q2"}`, string(data))
}

func TestDecodeGlobeCoordinate_DropsAltitude(t *testing.T) {
	for _, altitude := range []string{"null", "120.5"} {
		t.Run(altitude, func(t *testing.T) {
			raw := json.RawMessage(`{"latitude":10,"longitude":20,"altitude":` + altitude + `,"precision":0.01,"globe":"` + GlobeEarth + `"}`)

			v, err := DecodeWire(KindGlobeCoordinate, raw)
			require.NoError(t, err)
			assert.Equal(t, GlobeCoordinate{Latitude: 10, Longitude: 20, Precision: 0.01, Globe: GlobeEarth}, v)

			// Re-encoding never carries altitude
			data, err := MarshalWire(v)
			require.NoError(t, err)
			assert.NotContains(t, data, "altitude")
		})
	}
}

func TestGlobeCoordinate_InvalidFieldEncoding(t *testing.T) {
	g := NewGlobeCoordinate(1, 2)
	g.Globe = ""
	_, err := g.ToWire()
	assert.True(t, errors.Is(err, errors.ErrInvalidFieldEncoding))
}

func TestEntityRefs_RoundTrip(t *testing.T) {
	assert.Equal(t, ItemRef{ID: 42}, roundTrip(t, ItemRef{ID: 42}))
	assert.Equal(t, PropertyRef{ID: 31}, roundTrip(t, PropertyRef{ID: 31}))
}

func TestEntityRefs_ToWire(t *testing.T) {
	data, err := MarshalWire(ItemRef{ID: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity-type":"item","numeric-id":5}`, data)

	data, err = MarshalWire(PropertyRef{ID: 31})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity-type":"property","numeric-id":31}`, data)

	_, err = ItemRef{}.ToWire()
	assert.True(t, errors.Is(err, errors.ErrInvalidFieldEncoding))
}

func TestDecodeItem_RedirectsToProperty(t *testing.T) {
	raw := json.RawMessage(`{"entity-type":"property","numeric-id":569}`)

	v, err := DecodeItem(raw)
	require.NoError(t, err)
	assert.Equal(t, PropertyRef{ID: 569}, v)

	v, err = DecodeWire(KindEntityID, raw)
	require.NoError(t, err)
	_, isItem := v.(ItemRef)
	assert.False(t, isItem)
	assert.Equal(t, "P569", v.String())
}

func TestDecodeItem_IDOnly(t *testing.T) {
	v, err := DecodeItem(json.RawMessage(`{"entity-type":"item","id":"Q64"}`))
	require.NoError(t, err)
	assert.Equal(t, ItemRef{ID: 64}, v)
}

func TestDecodeItem_UnknownEntityType(t *testing.T) {
	_, err := DecodeItem(json.RawMessage(`{"entity-type":"lexeme","numeric-id":1}`))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValueType))
}

func TestDecodeProperty_RejectsItem(t *testing.T) {
	_, err := DecodeProperty(json.RawMessage(`{"entity-type":"item","numeric-id":1}`))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValueType))
}

func TestStringValue_RoundTrip(t *testing.T) {
	v := StringValue("Douglas Adams")
	assert.Equal(t, v, roundTrip(t, v))

	data, err := MarshalWire(v)
	require.NoError(t, err)
	assert.Equal(t, `"Douglas Adams"`, data)
}

func TestDecodeWire_UnsupportedTag(t *testing.T) {
	_, err := DecodeWire("quantity", json.RawMessage(`{"amount":"+1"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValueType))
	assert.Contains(t, err.Error(), "quantity")
	assert.False(t, Supported("quantity"))
	assert.True(t, Supported(KindTime))
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidFieldEncoding))
}

func TestParseRefs(t *testing.T) {
	item, err := ParseItemRef("q42")
	require.NoError(t, err)
	assert.Equal(t, ItemRef{ID: 42}, item)
	assert.Equal(t, "Q42", item.String())

	prop, err := ParsePropertyRef("P31")
	require.NoError(t, err)
	assert.Equal(t, PropertyRef{ID: 31}, prop)

	prop, err = ParsePropertyRef("31")
	require.NoError(t, err)
	assert.Equal(t, 31, prop.ID)

	for _, bad := range []string{"", "Q", "P31", "Q-1", "Qx"} {
		_, err := ParseItemRef(bad)
		assert.Error(t, err, bad)
	}
}
