package chart

import "strconv"

// Granularity selects how the series is bucketed.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// LineMode is the rendering style the consumer will draw the series with.
// It only affects axis-domain padding here.
type LineMode string

const (
	ModeLine   LineMode = "line"
	ModeSmooth LineMode = "smooth"
	ModeArea   LineMode = "area"
)

// RawRecord holds one calendar day of raw counts, keyed by variant key.
// A missing key means zero for that variant. Records are owned by the
// caller and never mutated.
type RawRecord struct {
	Date        string
	Visits      map[string]int
	Conversions map[string]int
}

// Variant describes one experiment arm. Identity for series processing is
// the derived key, not the name (names may collide).
type Variant struct {
	ID   *int
	Name string
}

// Key returns the variant's series key: the stringified ID, or "0" when
// no ID is set.
func (v Variant) Key() string {
	if v.ID == nil {
		return "0"
	}
	return strconv.Itoa(*v.ID)
}

// Point is one plotted entry: a date label plus one finite percentage
// value per selected variant key.
type Point struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// Range is an inclusive index range into a series.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Domain is the numeric bounds of the value axis.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
