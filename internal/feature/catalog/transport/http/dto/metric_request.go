package dto

// CreateMetricReq is the request body for defining a new metric.
// MaxValue may be omitted for metrics that are unbounded above.
type CreateMetricReq struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required,min=1,max=64"`
	Kind        string   `json:"kind" binding:"required"`
	MinValue    float64  `json:"min_value"`
	MaxValue    *float64 `json:"max_value"`
	Description string   `json:"description"`
	Example     *string  `json:"example"`
	ExampleLow  *string  `json:"example_low"`
	ExampleHigh *string  `json:"example_high"`
}

// CreateMetricResponse returns the ID assigned to a new metric.
type CreateMetricResponse struct {
	ID uint `json:"id"`
}

// UpdateMetricReq is the request body for a partial metric update.
// Fields left out of the JSON keep their current values.
type UpdateMetricReq struct {
	MinValue    *float64 `json:"min_value"`
	MaxValue    *float64 `json:"max_value"`
	Description *string  `json:"description"`
	Example     *string  `json:"example"`
	ExampleLow  *string  `json:"example_low"`
	ExampleHigh *string  `json:"example_high"`
}

// MetricResponse is a single metric in a catalog listing.
type MetricResponse struct {
	ID          uint     `json:"id"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	MinValue    float64  `json:"min_value"`
	MaxValue    *float64 `json:"max_value"`
	Description string   `json:"description"`
	Example     *string  `json:"example,omitempty"`
	ExampleLow  *string  `json:"example_low,omitempty"`
	ExampleHigh *string  `json:"example_high,omitempty"`
}
