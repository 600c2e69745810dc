package chart

import "errors"

var (
	ErrUnknownType = errors.New("unknown chart type")

	// ErrStaleColumn means a selection names a column the dataset does
	// not have, typically because the dataset changed after the roles
	// were picked.
	ErrStaleColumn = errors.New("column not in dataset")

	ErrInvalidOption     = errors.New("invalid option")
	ErrInvalidFacetOrder = errors.New("invalid facet order")
	ErrWrapCount         = errors.New("facet wrap count out of range")
)
