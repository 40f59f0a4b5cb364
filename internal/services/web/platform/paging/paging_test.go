package paging

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		total, size, p int
		want           Page
	}{
		{name: "first page", total: 25, size: 10, p: 1, want: Page{Total: 25, Size: 10, Current: 1, TotalPages: 3}},
		{name: "clamps high", total: 25, size: 10, p: 9, want: Page{Total: 25, Size: 10, Current: 3, TotalPages: 3}},
		{name: "clamps low", total: 25, size: 10, p: -4, want: Page{Total: 25, Size: 10, Current: 1, TotalPages: 3}},
		{name: "exact multiple", total: 20, size: 10, p: 2, want: Page{Total: 20, Size: 10, Current: 2, TotalPages: 2}},
		{name: "empty", total: 0, size: 10, p: 3, want: Page{Total: 0, Size: 10, Current: 1, TotalPages: 1}},
		{name: "default size", total: 11, size: 0, p: 2, want: Page{Total: 11, Size: DefaultPageSize, Current: 2, TotalPages: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Paginate(tc.total, tc.size, tc.p); got != tc.want {
				t.Fatalf("Paginate(%d, %d, %d) = %+v, want %+v", tc.total, tc.size, tc.p, got, tc.want)
			}
		})
	}
}

func TestSliceRowCountMatchesFormula(t *testing.T) {
	t.Parallel()

	for total := 0; total <= 37; total++ {
		rows := make([]int, total)
		for i := range rows {
			rows[i] = i + 1
		}
		for size := 1; size <= 12; size++ {
			pages := (total + size - 1) / size
			for p := 1; p <= pages; p++ {
				page := Paginate(total, size, p)
				got := Slice(rows, page)
				want := min(size, total-(p-1)*size)
				if len(got) != want {
					t.Fatalf("total=%d size=%d page=%d rows = %d, want %d", total, size, p, len(got), want)
				}
				if page.TotalPages != pages {
					t.Fatalf("total=%d size=%d TotalPages = %d, want %d", total, size, page.TotalPages, pages)
				}
			}
		}
	}
}

func TestPageThreeOfTwentyFiveRows(t *testing.T) {
	t.Parallel()

	rows := make([]int, 25)
	for i := range rows {
		rows[i] = i + 1
	}
	page := Paginate(len(rows), 10, 3)
	got := Slice(rows, page)
	if len(got) != 5 || got[0] != 21 || got[4] != 25 {
		t.Fatalf("rows = %v, want 21..25", got)
	}
	items := Items(page)
	prev, next := items[0], items[len(items)-1]
	if prev.Disabled || prev.Number != 2 {
		t.Fatalf("prev = %+v, want enabled page 2", prev)
	}
	if !next.Disabled {
		t.Fatalf("next = %+v, want disabled", next)
	}
}

func TestItems(t *testing.T) {
	t.Parallel()

	render := func(items []Item) string {
		out := ""
		for _, item := range items {
			switch item.Kind {
			case ItemPrev:
				out += "<"
				if item.Disabled {
					out += "x"
				}
			case ItemNext:
				out += " >"
				if item.Disabled {
					out += "x"
				}
			case ItemEllipsis:
				out += " …"
			case ItemPage:
				if item.Current {
					out += " [" + itoa(item.Number) + "]"
				} else {
					out += " " + itoa(item.Number)
				}
			}
		}
		return out
	}

	tests := []struct {
		total, current int
		want           string
	}{
		{total: 1, current: 1, want: "<x [1] >x"},
		{total: 3, current: 1, want: "<x [1] 2 3 >"},
		{total: 10, current: 1, want: "<x [1] 2 3 … 10 >"},
		{total: 10, current: 5, want: "< 1 … 3 4 [5] 6 7 … 10 >"},
		{total: 10, current: 4, want: "< 1 2 3 [4] 5 6 … 10 >"},
		{total: 10, current: 10, want: "< 1 … 8 9 [10] >x"},
		{total: 7, current: 4, want: "< 1 2 3 [4] 5 6 7 >"},
	}
	for _, tc := range tests {
		page := Paginate(tc.total*10, 10, tc.current)
		if got := render(Items(page)); got != tc.want {
			t.Fatalf("Items(pages=%d, current=%d) = %q, want %q", tc.total, tc.current, got, tc.want)
		}
	}
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"/x":           1,
		"/x?page=3":    3,
		"/x?page=0":    1,
		"/x?page=-2":   1,
		"/x?page=abc":  1,
		"/x?page=%203": 3,
	}
	for target, want := range tests {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if got := FromRequest(req, "page"); got != want {
			t.Fatalf("FromRequest(%q) = %d, want %d", target, got, want)
		}
	}
	if got := FromRequest(nil, "page"); got != 1 {
		t.Fatalf("FromRequest(nil) = %d, want 1", got)
	}
}

// Not parallel: Configure changes process-wide state.
func TestConfigureOverridesDefaultSize(t *testing.T) {
	t.Cleanup(func() { Configure(0) })

	Configure(25)
	if got := Size(); got != 25 {
		t.Fatalf("Size() = %d, want 25", got)
	}
	if got := Paginate(60, 0, 1).TotalPages; got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}
	Configure(-1)
	if got := Size(); got != DefaultPageSize {
		t.Fatalf("Size() = %d, want %d", got, DefaultPageSize)
	}
}
