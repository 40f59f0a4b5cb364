// Package paging computes page windows and pager entries for list tables.
package paging

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
)

// DefaultPageSize is the row count per table page unless configured.
const DefaultPageSize = 10

var configuredSize atomic.Int64

// Configure sets the process-wide page size. Non-positive sizes restore
// DefaultPageSize.
func Configure(size int) {
	configuredSize.Store(int64(size))
}

// Size returns the configured page size.
func Size() int {
	if size := configuredSize.Load(); size > 0 {
		return int(size)
	}
	return DefaultPageSize
}

// neighborhood is how many pages either side of the current one stay visible.
const neighborhood = 2

// Page is a clamped position within a list.
type Page struct {
	Total      int
	Size       int
	Current    int
	TotalPages int
}

// Paginate clamps current into [1, TotalPages]. An empty list still has one
// page.
func Paginate(total, size, current int) Page {
	if total < 0 {
		total = 0
	}
	if size <= 0 {
		size = Size()
	}
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	return Page{Total: total, Size: size, Current: current, TotalPages: totalPages}
}

// Bounds returns the half-open row range [start, end) of the current page.
func (p Page) Bounds() (int, int) {
	start := (p.Current - 1) * p.Size
	if start > p.Total {
		start = p.Total
	}
	end := start + p.Size
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Current < p.TotalPages }

// Slice returns the rows of items on page.
func Slice[T any](items []T, page Page) []T {
	start, end := page.Bounds()
	if start >= len(items) {
		return nil
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ItemKind classifies a pager entry.
type ItemKind int

const (
	ItemPrev ItemKind = iota
	ItemPage
	ItemEllipsis
	ItemNext
)

// Item is one pager entry.
type Item struct {
	Kind     ItemKind
	Number   int
	Current  bool
	Disabled bool
}

// Items lists the pager: prev, first page, the current page with its two
// neighbors on each side, last page and next. Gaps become ellipses.
func Items(p Page) []Item {
	items := []Item{{Kind: ItemPrev, Number: p.Current - 1, Disabled: !p.HasPrev()}}
	last := p.TotalPages
	from := max(2, p.Current-neighborhood)
	to := min(last-1, p.Current+neighborhood)

	items = append(items, pageItem(1, p.Current))
	if from > 2 {
		items = append(items, Item{Kind: ItemEllipsis, Disabled: true})
	}
	for n := from; n <= to; n++ {
		items = append(items, pageItem(n, p.Current))
	}
	if to < last-1 {
		items = append(items, Item{Kind: ItemEllipsis, Disabled: true})
	}
	if last > 1 {
		items = append(items, pageItem(last, p.Current))
	}
	return append(items, Item{Kind: ItemNext, Number: p.Current + 1, Disabled: !p.HasNext()})
}

func pageItem(n, current int) Item {
	return Item{Kind: ItemPage, Number: n, Current: n == current}
}

// FromRequest reads a 1-based page number from query parameter param,
// defaulting to 1.
func FromRequest(r *http.Request, param string) int {
	if r == nil || r.URL == nil {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(param)))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
