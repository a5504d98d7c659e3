package hddtemp

import (
	"strconv"
	"strings"
)

const (
	// DefaultSeparator is the daemon's default field separator.
	// The daemon never accepts '?' or '*' as a separator.
	DefaultSeparator byte = '|'

	errorMarker = "*"
)

// ParseDevices parses a full daemon response of the form
//
//	|dev1|model1|temp1|unit1||dev2|model2|temp2|unit2|
//
// Devices are joined by a doubled separator. A repeated device id keeps the
// last record.
func ParseDevices(text string, sep byte) (Devices, error) {
	s := string(sep)
	body, ok := strings.CutPrefix(text, s)
	if !ok {
		return nil, ErrMissingStartDelimiter
	}
	body, ok = strings.CutSuffix(body, s)
	if !ok {
		return nil, ErrMissingEndDelimiter
	}

	devices := make(Devices)
	for _, line := range strings.Split(body, s+s) {
		id, device := ParseDevice(line, sep)
		devices[id] = device
	}
	return devices, nil
}

// ParseDevice parses one device segment without the surrounding separators:
//
//	/dev/sda|ST1000DM003|34|C
//	/dev/sdb|WDC WD40EFRX|SLP|*
//
// Missing or malformed columns leave the matching fields empty; it never fails.
func ParseDevice(line string, sep byte) (string, Device) {
	columns := strings.Split(line, string(sep))

	var device Device
	device.Model = column(columns, 1)

	if len(columns) > 3 && columns[3] == errorMarker {
		// Unrecognised error tokens fall back to ResultKnown with no reading.
		// This keeps compatibility with existing hddtemp clients rather than
		// inventing a separate kind.
		if result, err := ParseResult(columns[2]); err == nil {
			device.Result = result
		}
		return column(columns, 0), device
	}

	if len(columns) > 2 {
		// A single leading '+' is accepted, as other hddtemp clients do.
		if temp, err := strconv.ParseUint(strings.TrimPrefix(columns[2], "+"), 10, 64); err == nil {
			device.Temperature = &temp
		}
	}
	if len(columns) > 3 {
		if unit, err := ParseUnit(columns[3]); err == nil {
			device.Unit = &unit
		}
	}
	device.Result = ResultKnown
	return column(columns, 0), device
}

func column(columns []string, i int) string {
	if i < len(columns) {
		return columns[i]
	}
	return ""
}
