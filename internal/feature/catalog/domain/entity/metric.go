package entity

// Metric kinds. A quantitative metric is an objectively measured quantity
// with a single illustrative example; a qualitative metric is a subjective
// rating scale with described endpoints.
const (
	KindQuantitative = "quantitative"
	KindQualitative  = "qualitative"
)

// Metric is a named, bounded, typed quantity or rating a user tracks daily.
// The (UserID, Name) pair is unique.
//
// Invariant: qualitative metrics populate ExampleLow/ExampleHigh and leave
// Example nil; quantitative metrics populate Example and leave the other
// two nil. A nil MaxValue means unbounded above.
type Metric struct {
	ID          uint
	UserID      uint
	CategoryID  uint
	Name        string
	Kind        string
	MinValue    float64
	MaxValue    *float64
	Description string
	Example     *string
	ExampleLow  *string
	ExampleHigh *string
}

// CatalogItem pairs a metric with the name of its category,
// as produced by the ordered catalog listing.
type CatalogItem struct {
	Category string
	Metric   Metric
}
