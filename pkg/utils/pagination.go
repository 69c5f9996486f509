package utils

import (
	"errors"
	"fmt"
)

var ErrInvalidPagination = errors.New("invalid pagination")

// Sort is a single ORDER BY column.
type Sort struct {
	Column string
	Desc   bool
}

// SortByStartDesc is the default ordering of every booking listing.
var SortByStartDesc = Sort{Column: "start_date", Desc: true}

// Page is a zero-based page descriptor.
type Page struct {
	Number int
	Size   int
	Sort   Sort
}

func (p Page) Offset() int {
	return p.Number * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// BuildPage turns a from/size pair into a page descriptor.
// The page index is from/size rounded down, so a from that is not a multiple
// of size starts at the previous page boundary rather than at row from.
func BuildPage(from, size int, sort ...Sort) (*Page, error) {
	if from < 0 || size < 1 {
		return nil, fmt.Errorf("%w: from=%d size=%d", ErrInvalidPagination, from, size)
	}

	order := SortByStartDesc
	if len(sort) > 0 {
		order = sort[0]
	}

	return &Page{
		Number: from / size,
		Size:   size,
		Sort:   order,
	}, nil
}

// PageFromParams applies the from/size pairing rule: both absent means an
// unpaged listing, one without the other is invalid.
func PageFromParams(from, size *int, sort ...Sort) (*Page, error) {
	switch {
	case from == nil && size == nil:
		return nil, nil
	case from == nil || size == nil:
		return nil, fmt.Errorf("%w: from and size must be supplied together", ErrInvalidPagination)
	}
	return BuildPage(*from, *size, sort...)
}
