package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
)

// Column describes one table column. Cell, when set, renders the cell;
// otherwise Value is written HTML-escaped.
type Column[Row any] struct {
	Header string
	Value  func(Row) string
	Cell   func(Row) templ.Component
	Class  string
}

// TableView is the input of Table. Rows holds every row; the table shows
// the CurrentPage window of PageSize rows and links pages through PageURL.
type TableView[Row any] struct {
	ID           string
	Columns      []Column[Row]
	Rows         []Row
	PageSize     int
	CurrentPage  int
	PageURL      func(page int) string
	EmptyMessage string
}

// Table renders a paginated table.
func Table[Row any](view TableView[Row], loc Localizer) templ.Component {
	return component(func(h *html) {
		page := paging.Paginate(len(view.Rows), view.PageSize, view.CurrentPage)
		rows := paging.Slice(view.Rows, page)

		h.raw(`<div class="table-wrap"`)
		if view.ID != "" {
			h.attr("id", view.ID)
		}
		h.raw(`><table class="table"><thead><tr>`)
		for _, column := range view.Columns {
			h.raw(`<th scope="col"`)
			if column.Class != "" {
				h.attr("class", column.Class)
			}
			h.raw(`>`)
			h.text(column.Header)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if len(rows) == 0 {
			h.raw(`<tr class="table-empty"><td`)
			h.attr("colspan", itoa(max(1, len(view.Columns))))
			h.raw(`>`)
			h.text(defaultString(view.EmptyMessage, T(loc, "core.table.empty")))
			h.raw(`</td></tr>`)
		}
		for _, row := range rows {
			h.raw(`<tr>`)
			for _, column := range view.Columns {
				h.raw(`<td`)
				if column.Class != "" {
					h.attr("class", column.Class)
				}
				h.raw(`>`)
				switch {
				case column.Cell != nil:
					h.render(column.Cell(row))
				case column.Value != nil:
					h.text(column.Value(row))
				}
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		if page.Total > 0 {
			start, end := page.Bounds()
			h.raw(`<p class="table-summary">`)
			h.text(T(loc, "core.table.summary", start+1, end, page.Total))
			h.raw(`</p>`)
		}
		if page.TotalPages > 1 {
			h.render(Pager(page, view.PageURL, loc))
		}
		h.raw(`</div>`)
	})
}

// Pager renders the page links for p. Disabled entries are not links.
func Pager(p paging.Page, pageURL func(int) string, loc Localizer) templ.Component {
	return component(func(h *html) {
		if pageURL == nil {
			pageURL = func(int) string { return "" }
		}
		h.raw(`<nav class="pager"`)
		h.attr("aria-label", T(loc, "core.table.pagination"))
		h.raw(`><ul>`)
		for _, item := range paging.Items(p) {
			h.raw(`<li>`)
			label := pagerLabel(item, loc)
			switch {
			case item.Kind == paging.ItemEllipsis:
				h.raw(`<span class="pager-ellipsis" aria-hidden="true">&hellip;</span>`)
			case item.Disabled:
				h.raw(`<span class="pager-item is-disabled" aria-disabled="true">`)
				h.text(label)
				h.raw(`</span>`)
			case item.Current:
				h.raw(`<span class="pager-item is-current" aria-current="page">`)
				h.text(label)
				h.raw(`</span>`)
			default:
				h.raw(`<a class="pager-item"`)
				h.href(pageURL(item.Number))
				h.attr("data-page", itoa(item.Number))
				h.raw(`>`)
				h.text(label)
				h.raw(`</a>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul></nav>`)
	})
}

func pagerLabel(item paging.Item, loc Localizer) string {
	switch item.Kind {
	case paging.ItemPrev:
		return T(loc, "core.table.prev")
	case paging.ItemNext:
		return T(loc, "core.table.next")
	case paging.ItemPage:
		return itoa(item.Number)
	default:
		return ""
	}
}

// ColumnText builds a plain value column.
func ColumnText[Row any](header string, value func(Row) string) Column[Row] {
	return Column[Row]{Header: header, Value: func(row Row) string {
		return defaultString(strings.TrimSpace(value(row)), Placeholder)
	}}
}
