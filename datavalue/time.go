package datavalue

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/teranos/wikibase/errors"
)

// Calendar models
const (
	CalendarGregorian = "http://www.wikidata.org/entity/Q1985727"
	CalendarJulian    = "http://www.wikidata.org/entity/Q1985786"
)

// Time precision codes
const (
	PrecisionBillionYears = iota
	PrecisionHundredMillionYears
	PrecisionTenMillionYears
	PrecisionMillionYears
	PrecisionHundredThousandYears
	PrecisionTenThousandYears
	PrecisionMillennium
	PrecisionCentury
	PrecisionDecade
	PrecisionYear
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
)

const maxYearMagnitude = 99999999999 // 11 digits

// +00000002013-01-01T00:00:00Z
var timestampPattern = regexp.MustCompile(`^([+-])(\d+)-(\d+)-(\d+)T(\d+):(\d+):(\d+)Z$`)

// TimeValue is a point in time with an uncertainty window, precision and calendar.
// Month and Day may be 0 for values less precise than a month or day.
type TimeValue struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	Timezone      int // offset from UTC in minutes
	Before        int // uncertainty before, in units of Precision
	After         int // uncertainty after, in units of Precision
	Precision     int
	CalendarModel string
}

type timeWire struct {
	Time          string `json:"time"`
	Timezone      int    `json:"timezone"`
	Before        int    `json:"before"`
	After         int    `json:"after"`
	Precision     int    `json:"precision"`
	CalendarModel string `json:"calendarmodel"`
}

// NewTimeValue returns a day-precision Gregorian date in UTC
func NewTimeValue(year int64, month, day int) TimeValue {
	return TimeValue{
		Year:          year,
		Month:         month,
		Day:           day,
		Precision:     PrecisionDay,
		CalendarModel: CalendarGregorian,
	}
}

// TimeValueFromTime converts t using its wall clock and zone offset.
func TimeValueFromTime(t time.Time, precision int) TimeValue {
	_, offset := t.Zone()
	return TimeValue{
		Year:          int64(t.Year()),
		Month:         int(t.Month()),
		Day:           t.Day(),
		Hour:          t.Hour(),
		Minute:        t.Minute(),
		Second:        t.Second(),
		Timezone:      offset / 60,
		Precision:     precision,
		CalendarModel: CalendarGregorian,
	}
}

// Time converts the value to a time.Time in a fixed zone of Timezone minutes.
// A zero month or day is treated as the first.
func (v TimeValue) Time() time.Time {
	month, day := v.Month, v.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	loc := time.UTC
	if v.Timezone != 0 {
		loc = time.FixedZone("", v.Timezone*60)
	}
	return time.Date(int(v.Year), time.Month(month), day, v.Hour, v.Minute, v.Second, 0, loc)
}

func (TimeValue) Kind() Kind { return KindTime }

// String returns the wire timestamp
func (v TimeValue) String() string {
	return v.timestamp()
}

func (v TimeValue) timestamp() string {
	sign := '+'
	year := v.Year
	if year < 0 {
		sign = '-'
		year = -year
	}
	return fmt.Sprintf("%c%011d-%02d-%02dT%02d:%02d:%02dZ", sign, year, v.Month, v.Day, v.Hour, v.Minute, v.Second)
}

func (v TimeValue) validate() error {
	if v.Year > maxYearMagnitude || v.Year < -maxYearMagnitude {
		return errors.NewInvalidFieldEncoding("year %d exceeds 11 digits", v.Year)
	}
	fields := []struct {
		name     string
		val      int
		min, max int
	}{
		{"month", v.Month, 0, 12},
		{"day", v.Day, 0, 31},
		{"hour", v.Hour, 0, 23},
		{"minute", v.Minute, 0, 59},
		{"second", v.Second, 0, 59},
		{"precision", v.Precision, PrecisionBillionYears, PrecisionSecond},
	}
	for _, f := range fields {
		if f.val < f.min || f.val > f.max {
			return errors.NewInvalidFieldEncoding("%s %d out of range [%d, %d]", f.name, f.val, f.min, f.max)
		}
	}
	if v.Before < 0 || v.After < 0 {
		return errors.NewInvalidFieldEncoding("before/after must be >= 0, got %d/%d", v.Before, v.After)
	}
	if v.CalendarModel == "" {
		return errors.NewInvalidFieldEncoding("calendarmodel is required")
	}
	return nil
}

func (v TimeValue) ToWire() (any, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	return timeWire{
		Time:          v.timestamp(),
		Timezone:      v.Timezone,
		Before:        v.Before,
		After:         v.After,
		Precision:     v.Precision,
		CalendarModel: v.CalendarModel,
	}, nil
}

// DecodeTime decodes a time payload. The time string must match
// <sign><digits>-<digits>-<digits>T<digits>:<digits>:<digits>Z.
func DecodeTime(raw json.RawMessage) (Value, error) {
	var w timeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrap(err, "failed to decode time value")
	}

	year, fields, err := ParseTimestamp(w.Time)
	if err != nil {
		return nil, err
	}

	return TimeValue{
		Year:          year,
		Month:         fields[0],
		Day:           fields[1],
		Hour:          fields[2],
		Minute:        fields[3],
		Second:        fields[4],
		Timezone:      w.Timezone,
		Before:        w.Before,
		After:         w.After,
		Precision:     w.Precision,
		CalendarModel: w.CalendarModel,
	}, nil
}

// ParseTimestamp splits a wire timestamp into the signed year and
// month, day, hour, minute, second.
func ParseTimestamp(s string) (int64, [5]int, error) {
	var fields [5]int

	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fields, errors.NewMalformedTimestamp(s)
	}

	year, err := strconv.ParseInt(m[1]+m[2], 10, 64)
	if err != nil {
		return 0, fields, errors.WithDetail(errors.NewMalformedTimestamp(s), "year out of range")
	}
	for i := range fields {
		n, err := strconv.Atoi(m[i+3])
		if err != nil {
			return 0, fields, errors.WithDetail(errors.NewMalformedTimestamp(s), "field out of range")
		}
		fields[i] = n
	}
	return year, fields, nil
}
