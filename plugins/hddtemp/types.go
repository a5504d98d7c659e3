package hddtemp

import "sort"

// Device is the latest status of one drive.
// Temperature and Unit are only set when Result is ResultKnown.
type Device struct {
	Model       string
	Result      Result
	Temperature *uint64
	Unit        *Unit
}

// HasReading reports whether both temperature and unit were parsed.
func (d Device) HasReading() bool {
	return d.Result == ResultKnown && d.Temperature != nil && d.Unit != nil
}

// Celsius returns the reading converted to degrees Celsius.
func (d Device) Celsius() (float64, bool) {
	if !d.HasReading() {
		return 0, false
	}
	return d.Unit.Celsius(float64(*d.Temperature)), true
}

// Equal compares two records by value.
func (d Device) Equal(other Device) bool {
	if d.Model != other.Model || d.Result != other.Result {
		return false
	}
	if (d.Temperature == nil) != (other.Temperature == nil) {
		return false
	}
	if d.Temperature != nil && *d.Temperature != *other.Temperature {
		return false
	}
	if (d.Unit == nil) != (other.Unit == nil) {
		return false
	}
	return d.Unit == nil || *d.Unit == *other.Unit
}

// Devices maps a device path (e.g. /dev/sda) to its record.
type Devices map[string]Device

// IDs returns the device identifiers in sorted order.
func (d Devices) IDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal compares two tables by value.
func (d Devices) Equal(other Devices) bool {
	if len(d) != len(other) {
		return false
	}
	for id, dev := range d {
		o, ok := other[id]
		if !ok || !dev.Equal(o) {
			return false
		}
	}
	return true
}
