package metrics

// Segment is one slice of the total sales breakdown.
type Segment struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// Share is a segment with its percentage of the total.
type Share struct {
	Segment
	Percent float64 `json:"percent"`
}

// Location is a revenue point on the world map. Revenue is in thousands.
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Revenue   float64 `json:"revenue" yaml:"revenue"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
}

// Scale is a location with its bar width relative to the top location.
type Scale struct {
	Location
	Width float64 `json:"width"`
}

// DefaultSales is the total sales breakdown shown on the overview.
func DefaultSales() []Segment {
	return []Segment{
		{Name: "Direct", Value: 300.56, Color: "#B19CD9"},
		{Name: "Affiliate", Value: 135.18, Color: "#A8E6CF"},
		{Name: "Sponsored", Value: 154.02, Color: "#B8D4F0"},
		{Name: "E-mail", Value: 48.96, Color: "#B3E5FC"},
	}
}

// DefaultLocations is the revenue by location dataset.
func DefaultLocations() []Location {
	return []Location{
		{Name: "New York", Revenue: 72, Longitude: -74.006, Latitude: 40.7128},
		{Name: "San Francisco", Revenue: 39, Longitude: -122.4194, Latitude: 37.7749},
		{Name: "Sydney", Revenue: 25, Longitude: 151.2093, Latitude: -33.8688},
		{Name: "Singapore", Revenue: 61, Longitude: 103.8198, Latitude: 1.3521},
	}
}

// SalesTotal sums segment values.
func SalesTotal(segments []Segment) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.Value
	}
	return total
}

// Shares pairs every segment with PercentOfTotal against the segment sum.
func Shares(segments []Segment) []Share {
	total := SalesTotal(segments)
	out := make([]Share, len(segments))
	for i, s := range segments {
		out[i] = Share{Segment: s, Percent: PercentOfTotal(s.Value, total)}
	}
	return out
}

// Scales pairs every location with RelativeScale against the largest revenue.
func Scales(locations []Location) []Scale {
	revenues := make([]float64, len(locations))
	for i, l := range locations {
		revenues[i] = l.Revenue
	}
	top := Max(revenues...)
	out := make([]Scale, len(locations))
	for i, l := range locations {
		out[i] = Scale{Location: l, Width: RelativeScale(l.Revenue, top)}
	}
	return out
}
