package chart

// weekSize is the number of daily points folded into one weekly bucket.
const weekSize = 7

// BuildSeries maps raw daily records into per-variant percentage points for
// the selected variant keys, then buckets them weekly if asked. Output order
// matches input order. Every call allocates a fresh slice; inputs are never
// mutated, so repeated calls with the same arguments yield deep-equal output.
func BuildSeries(records []RawRecord, keys []string, g Granularity) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		p := Point{Date: r.Date, Values: make(map[string]float64, len(keys))}
		for _, k := range keys {
			// Missing keys read as zero counts.
			p.Values[k] = Rate(float64(r.Conversions[k]), float64(r.Visits[k]))
		}
		points = append(points, p)
	}

	if g != GranularityWeek {
		return points
	}
	return bucketWeekly(points, keys)
}

// bucketWeekly partitions a daily series into consecutive chunks of seven,
// averaging each key across the chunk. A short trailing chunk is emitted,
// never dropped.
func bucketWeekly(daily []Point, keys []string) []Point {
	weekly := make([]Point, 0, (len(daily)+weekSize-1)/weekSize)

	for start := 0; start < len(daily); start += weekSize {
		end := start + weekSize
		if end > len(daily) {
			end = len(daily)
		}
		chunk := daily[start:end]

		label := chunk[0].Date
		if len(chunk) > 1 {
			label = chunk[0].Date + " - " + chunk[len(chunk)-1].Date
		}

		p := Point{Date: label, Values: make(map[string]float64, len(keys))}
		for _, k := range keys {
			p.Values[k] = meanOf(chunk, k)
		}
		weekly = append(weekly, p)
	}

	return weekly
}

// meanOf averages a key's finite values across a chunk. A week with no
// usable values averages to zero, not NaN.
func meanOf(chunk []Point, key string) float64 {
	var sum float64
	var n int
	for _, p := range chunk {
		v, ok := p.Values[key]
		if !ok || !isFinite(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(safe(sum / float64(n)))
}
