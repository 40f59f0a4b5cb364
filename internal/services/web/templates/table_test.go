package templates

import (
	"strconv"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type tableRow struct {
	ID   int
	Name string
}

func tableRows(n int) []tableRow {
	rows := make([]tableRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, tableRow{ID: i, Name: "row-" + strconv.Itoa(i)})
	}
	return rows
}

func tableView(rows []tableRow, current int) TableView[tableRow] {
	return TableView[tableRow]{
		Columns: []Column[tableRow]{
			{Header: "ID", Value: func(r tableRow) string { return strconv.Itoa(r.ID) }},
			{Header: "Name", Value: func(r tableRow) string { return r.Name }},
		},
		Rows:        rows,
		PageSize:    10,
		CurrentPage: current,
		PageURL:     func(page int) string { return "/app/patient/images?page=" + strconv.Itoa(page) },
	}
}

func TestTableRendersRequestedPage(t *testing.T) {
	t.Parallel()

	got := renderString(t, nil, Table(tableView(tableRows(25), 3), keyLocalizer{}))

	if n := strings.Count(got, "<tr>") - 1; n != 5 {
		t.Fatalf("body rows = %d, want 5", n)
	}
	for _, want := range []string{"row-21", "row-25"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, "row-20<") {
		t.Fatalf("row 20 rendered on page 3: %s", got)
	}
	if !strings.Contains(got, `<span class="pager-item is-disabled" aria-disabled="true">core.table.next</span>`) {
		t.Fatalf("next should be disabled on the last page: %s", got)
	}
	if !strings.Contains(got, `href="/app/patient/images?page=2" data-page="2">core.table.prev</a>`) {
		t.Fatalf("prev should link page 2: %s", got)
	}
	if !strings.Contains(got, `aria-current="page">3</span>`) {
		t.Fatalf("page 3 should be current: %s", got)
	}
}

func TestTableRowCountProperty(t *testing.T) {
	t.Parallel()

	for _, total := range []int{0, 1, 9, 10, 11, 25, 47} {
		for page := 1; page <= 6; page++ {
			got := renderString(t, nil, Table(tableView(tableRows(total), page), keyLocalizer{}))
			want := 0
			if total > 0 {
				pages := (total + 9) / 10
				p := min(page, pages)
				want = min(10, total-(p-1)*10)
			}
			rows := strings.Count(got, "<tr>") - 1
			if rows != want {
				t.Fatalf("total=%d page=%d: rows = %d, want %d", total, page, rows, want)
			}
		}
	}
}

func TestTableEscapesValuesAndUsesCells(t *testing.T) {
	t.Parallel()

	view := TableView[tableRow]{
		Columns: []Column[tableRow]{
			{Header: "Name", Value: func(r tableRow) string { return r.Name }},
			{Header: "Action", Cell: func(r tableRow) templ.Component {
				return Link(LinkView{Label: "Open", URL: "/app/patient/images/" + strconv.Itoa(r.ID)})
			}},
		},
		Rows: []tableRow{{ID: 7, Name: `<script>alert(1)</script>`}},
	}
	got := renderString(t, nil, Table(view, keyLocalizer{}))
	if strings.Contains(got, "<script>") {
		t.Fatalf("value not escaped: %s", got)
	}
	if !strings.Contains(got, `href="/app/patient/images/7"`) {
		t.Fatalf("cell renderer not used: %s", got)
	}
	if strings.Contains(got, `class="pager"`) {
		t.Fatalf("single page should not render a pager: %s", got)
	}
}

func TestTableEmptyState(t *testing.T) {
	t.Parallel()

	view := tableView(nil, 1)
	got := renderString(t, nil, Table(view, keyLocalizer{}))
	if !strings.Contains(got, `<tr class="table-empty"><td colspan="2">core.table.empty</td></tr>`) {
		t.Fatalf("missing empty row: %s", got)
	}

	view.EmptyMessage = "No images yet."
	got = renderString(t, nil, Table(view, keyLocalizer{}))
	if !strings.Contains(got, "No images yet.") {
		t.Fatalf("missing custom empty message: %s", got)
	}
}

func TestTableSummaryFormatsRange(t *testing.T) {
	t.Parallel()

	loc := catalogLocalizer{"core.table.summary": "Showing %d to %d of %d"}
	got := renderString(t, nil, Table(tableView(tableRows(25), 2), loc))
	if !strings.Contains(got, `<p class="table-summary">Showing 11 to 20 of 25</p>`) {
		t.Fatalf("missing range summary: %s", got)
	}
}
