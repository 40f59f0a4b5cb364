package templates

import "testing"

type otherReference struct{}

func TestTFallsBackWithoutLocalizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  any
		args []any
		want string
	}{
		{name: "plain key", key: "core.table.empty", want: "core.table.empty"},
		{name: "formatted key", key: "page %d", args: []any{3}, want: "page 3"},
		{name: "non-string reference", key: otherReference{}, want: ""},
	}
	for _, tc := range tests {
		if got := T(nil, tc.key, tc.args...); got != tc.want {
			t.Fatalf("%s: T() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTDelegatesToLocalizer(t *testing.T) {
	t.Parallel()

	loc := catalogLocalizer{"web.notifications.unread_count": "%d unread"}
	if got := T(loc, "web.notifications.unread_count", 4); got != "4 unread" {
		t.Fatalf("T() = %q, want %q", got, "4 unread")
	}
}
