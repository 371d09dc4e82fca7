// Package paging provides the page descriptor shared by every paged query.
package paging

import (
	"net/http"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// ErrInvalidPagination is returned when offset or size are out of range.
var ErrInvalidPagination = apperror.New(http.StatusBadRequest, "pagination", "page offset must be >= 0 and page size must be > 0")

// Direction is a sort direction for a paged query.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort describes the ordering applied to a paged query.
type Sort struct {
	Field     string
	Direction Direction
}

// OrderBy renders the sort as an ORDER BY fragment for query builders.
func (s Sort) OrderBy() string {
	return s.Field + " " + string(s.Direction)
}

// Page is a pure value type describing one page of a query: a zero-based row
// offset, a page size and a sort specification. Two pages are equal when
// offset, size and sort all match, so Page values can be compared with ==.
type Page struct {
	Offset int
	Size   int
	Sort   Sort
}

// New validates offset and size and returns the page descriptor.
func New(offset, size int, sort Sort) (Page, error) {
	if offset < 0 || size <= 0 {
		return Page{}, ErrInvalidPagination
	}
	return Page{Offset: offset, Size: size, Sort: sort}, nil
}

// Number returns the zero-based page number the offset falls into.
func (p Page) Number() int {
	return p.Offset / p.Size
}

// Next returns the descriptor advanced by one page.
func (p Page) Next() Page {
	return Page{Offset: p.Offset + p.Size, Size: p.Size, Sort: p.Sort}
}

// Previous returns the descriptor moved back by one page, clamped to the
// first page.
func (p Page) Previous() Page {
	offset := p.Offset - p.Size
	if offset < 0 {
		offset = 0
	}
	return Page{Offset: offset, Size: p.Size, Sort: p.Sort}
}

// First returns the descriptor rewound to the first page.
func (p Page) First() Page {
	return Page{Offset: 0, Size: p.Size, Sort: p.Sort}
}

// HasPrevious reports whether the descriptor is past the first row.
func (p Page) HasPrevious() bool {
	return p.Offset > 0
}
