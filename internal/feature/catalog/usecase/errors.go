package usecase

import "errors"

var (
	// ErrDuplicateName is returned when a category or metric name already exists for the user.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidDefinition is returned when a metric definition violates its constraints
	// (bad bounds, unknown kind, missing required guidance fields).
	ErrInvalidDefinition = errors.New("invalid metric definition")

	// ErrMetricNotFound is returned when no metric with the given name exists for the user.
	ErrMetricNotFound = errors.New("metric not found")

	// ErrCategoryNotFound is returned when a category lookup misses.
	ErrCategoryNotFound = errors.New("category not found")
)
