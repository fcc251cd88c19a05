// Package entity defines the domain models for the catalog feature.
package entity

// Category is a user-defined grouping label for related metrics.
// The (UserID, Name) pair is unique.
type Category struct {
	ID     uint
	UserID uint
	Name   string
}
