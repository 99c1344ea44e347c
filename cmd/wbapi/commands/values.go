package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/wikibase/datavalue"
	"github.com/teranos/wikibase/errors"
)

var valueFlagNames = []string{"item", "property", "string", "time", "coord"}

// addValueFlags registers the mutually exclusive value flags
func addValueFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("item", "", "Item value, e.g. Q5")
	f.String("property", "", "Property value, e.g. P31")
	f.String("string", "", "String value")
	f.String("time", "", "Time value: +2013, 2013-05, -44-03-15 or a full +00000002013-01-01T00:00:00Z timestamp")
	f.String("coord", "", "Globe coordinate on Earth as lat,lon")
	f.String("calendar", "gregorian", "Calendar for --time: gregorian or julian")
	cmd.MarkFlagsMutuallyExclusive(valueFlagNames...)
	cmd.MarkFlagsOneRequired(valueFlagNames...)
}

// valueFromFlags builds the datavalue selected by the value flags
func valueFromFlags(cmd *cobra.Command) (datavalue.Value, error) {
	f := cmd.Flags()
	for _, name := range valueFlagNames {
		if !f.Changed(name) {
			continue
		}
		raw, _ := f.GetString(name)
		switch name {
		case "item":
			return datavalue.ParseItemRef(raw)
		case "property":
			return datavalue.ParsePropertyRef(raw)
		case "string":
			return datavalue.StringValue(raw), nil
		case "time":
			calendar, _ := f.GetString("calendar")
			return parseTimeFlag(raw, calendar)
		case "coord":
			return parseCoordFlag(raw)
		}
	}
	return nil, errors.Newf("one of --%s is required", strings.Join(valueFlagNames, ", --"))
}

// parseTimeFlag accepts a full wire timestamp or a short [sign]Y[-M[-D]]
// date whose precision follows the number of parts given.
func parseTimeFlag(s, calendar string) (datavalue.TimeValue, error) {
	var model string
	switch strings.ToLower(calendar) {
	case "", "gregorian":
		model = datavalue.CalendarGregorian
	case "julian":
		model = datavalue.CalendarJulian
	default:
		return datavalue.TimeValue{}, errors.Newf("unknown calendar %q", calendar)
	}

	if strings.Contains(s, "T") {
		year, fields, err := datavalue.ParseTimestamp(s)
		if err != nil {
			return datavalue.TimeValue{}, err
		}
		tv := datavalue.NewTimeValue(year, fields[0], fields[1])
		tv.Hour, tv.Minute, tv.Second = fields[2], fields[3], fields[4]
		tv.CalendarModel = model
		return tv, nil
	}

	sign := int64(1)
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, "-")
	if len(parts) > 3 || parts[0] == "" {
		return datavalue.TimeValue{}, errors.Newf("invalid date %q", s)
	}
	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return datavalue.TimeValue{}, errors.Newf("invalid date component %q", p)
		}
		nums[i] = n
	}

	tv := datavalue.NewTimeValue(sign*nums[0], 0, 0)
	tv.CalendarModel = model
	switch len(nums) {
	case 1:
		tv.Precision = datavalue.PrecisionYear
	case 2:
		tv.Month = int(nums[1])
		tv.Precision = datavalue.PrecisionMonth
	case 3:
		tv.Month, tv.Day = int(nums[1]), int(nums[2])
		tv.Precision = datavalue.PrecisionDay
	}
	return tv, nil
}

func parseCoordFlag(s string) (datavalue.GlobeCoordinate, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return datavalue.GlobeCoordinate{}, errors.Newf("invalid coordinate %q: expected lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return datavalue.GlobeCoordinate{}, errors.Wrapf(err, "invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return datavalue.GlobeCoordinate{}, errors.Wrapf(err, "invalid longitude %q", lonStr)
	}
	if lat < -90 || lat > 90 || lon < -360 || lon > 360 {
		return datavalue.GlobeCoordinate{}, errors.Newf("coordinate %q out of range", s)
	}
	return datavalue.NewGlobeCoordinate(lat, lon), nil
}
