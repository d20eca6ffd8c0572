// Package pagination splits ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// Paginator computes page windows for a fixed page size.
type Paginator struct {
	PerPage int
}

// New returns a paginator; sizes below one are treated as one.
func New(perPage int) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	return Paginator{PerPage: perPage}
}

// NumPages is the number of pages for total rows. An empty set still has one page.
func (p Paginator) NumPages(total int64) int {
	if total <= 0 {
		return 1
	}
	per := int64(p.size())
	return int((total + per - 1) / per)
}

// Window resolves the raw page parameter against total. Values that are not
// integers, or are below one, resolve to the first page; values beyond the last
// page, including ones too large for an int, resolve to the last page.
func (p Paginator) Window(raw string, total int64) Window {
	numPages := p.NumPages(total)
	raw = strings.TrimSpace(raw)
	number, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		number = numPages
	case err != nil || number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}
	return Window{
		Number:   number,
		NumPages: numPages,
		Total:    total,
		PerPage:  p.size(),
	}
}

func (p Paginator) size() int {
	if p.PerPage < 1 {
		return 1
	}
	return p.PerPage
}

// Window is a resolved page position.
type Window struct {
	Number   int
	NumPages int
	Total    int64
	PerPage  int
}

func (w Window) Offset() int { return (w.Number - 1) * w.PerPage }
func (w Window) Limit() int  { return w.PerPage }

// Page is one page of items.
type Page[T any] struct {
	Window
	Items []T
}

// NewPage attaches items to a window.
func NewPage[T any](w Window, items []T) Page[T] {
	return Page[T]{Window: w, Items: items}
}

func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}
func (p Page[T]) NextNumber() int     { return p.Number + 1 }
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// StartIndex is the 1-based index of the first item on the page, zero when empty.
func (p Page[T]) StartIndex() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page[T]) EndIndex() int {
	return p.Offset() + len(p.Items)
}
