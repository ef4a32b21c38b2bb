package formats

import "strconv"

// Sample is one grid cell: either a measured value or no data.
type Sample struct {
	value float32
	valid bool
}

// NoData is the sample stored for cells matching the file's NODATA_value.
var NoData = Sample{}

// Value returns a sample holding v.
func Value(v float32) Sample {
	return Sample{value: v, valid: true}
}

// Get returns the value and whether the sample holds one.
func (s Sample) Get() (float32, bool) {
	return s.value, s.valid
}

// IsNoData reports whether the cell has no measurement.
func (s Sample) IsNoData() bool {
	return !s.valid
}

// Or returns the value, or def for a NODATA sample.
func (s Sample) Or(def float32) float32 {
	if !s.valid {
		return def
	}
	return s.value
}

// String returns the value, or "NoData".
func (s Sample) String() string {
	if !s.valid {
		return "NoData"
	}
	return strconv.FormatFloat(float64(s.value), 'g', -1, 32)
}
